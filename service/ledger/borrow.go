package ledger

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/sirupsen/logrus"
)

func (s *ledgerService) BorrowToken(ctx context.Context, req *core.BorrowReq) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":  "borrow_token",
		"amount": req.Amount,
	})

	if req.Amount == 0 {
		return core.ErrInvalidAmount
	}

	market, err := s.requireMarket(ctx)
	if err != nil {
		return err
	}

	account, err := s.accounts.FindByAddress(ctx, req.AccountAddress)
	if err != nil {
		log.WithError(err).Errorln("accounts.FindByAddress")
		return err
	}

	if account.ID == 0 {
		return core.ErrAccountNotFound
	}

	if err := requireDerived(account.Address, core.UserAccountTag, account.User); err != nil {
		return err
	}

	// the account borrowed against decides; a valid signature over someone
	// else's account is still rejected
	if err := requireOwner(req.Actor, account.User); err != nil {
		return err
	}

	destination, err := s.requireTokenAccount(ctx, req.Destination)
	if err != nil {
		return err
	}

	if err := requireOwner(req.Actor, destination.Owner); err != nil {
		return err
	}

	if destination.Mint != market.LoanMint {
		return core.ErrMintMismatch
	}

	// cumulative: existing borrow plus this request against the collateral cap
	max := market.MaxBorrowable(account.DepositedCollateralAmount)
	if account.BorrowedAmount > max || req.Amount > max-account.BorrowedAmount {
		return core.ErrBorrowLimitExceeded
	}

	vault, err := s.requireTokenAccount(ctx, market.LoanVault)
	if err != nil {
		return err
	}

	if vault.Balance < req.Amount {
		return core.ErrInsufficientLiquidity
	}

	// vault funds move under the market record itself, never a user key;
	// a vault record not owned by the market grants nothing
	if !market.ApproveTransfer(vault.Address, req.Amount, vault.Owner) {
		return core.ErrUnauthorized
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.tokenz.Transfer(ctx, tx, vault, destination, req.Amount); err != nil {
			return err
		}

		account.BorrowedAmount += req.Amount
		if err := s.accounts.Update(ctx, tx, account); err != nil {
			return err
		}

		market.BorrowedAmount += req.Amount
		return s.markets.Update(ctx, tx, market)
	}); err != nil {
		log.WithError(err).Errorln("borrow token")
		return err
	}

	return nil
}
