package ledger

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/sirupsen/logrus"
)

func (s *ledgerService) DepositCollateral(ctx context.Context, req *core.DepositReq) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":  "deposit_collateral",
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

	if err := requireOwner(req.Actor, account.User); err != nil {
		return err
	}

	source, err := s.requireTokenAccount(ctx, req.Source)
	if err != nil {
		return err
	}

	// the source custody account must belong to the depositor
	if err := requireOwner(req.Actor, source.Owner); err != nil {
		return err
	}

	if source.Mint != market.CollateralMint {
		return core.ErrMintMismatch
	}

	if source.Balance < req.Amount {
		return core.ErrInsufficientLiquidity
	}

	vault, err := s.requireTokenAccount(ctx, market.CollateralVault)
	if err != nil {
		return err
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.tokenz.Transfer(ctx, tx, source, vault, req.Amount); err != nil {
			return err
		}

		account.DepositedCollateralAmount += req.Amount
		if err := s.accounts.Update(ctx, tx, account); err != nil {
			return err
		}

		market.CollateralAmount += req.Amount
		return s.markets.Update(ctx, tx, market)
	}); err != nil {
		log.WithError(err).Errorln("deposit collateral")
		return err
	}

	return nil
}
