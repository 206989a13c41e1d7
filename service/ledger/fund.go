package ledger

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/sirupsen/logrus"
)

func (s *ledgerService) FundLoanVault(ctx context.Context, req *core.FundVaultReq) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":  "fund_loan_vault",
		"amount": req.Amount,
	})

	if req.Amount == 0 {
		return core.ErrInvalidAmount
	}

	market, err := s.requireMarket(ctx)
	if err != nil {
		return err
	}

	// only the market authority supplies loan liquidity
	if err := requireOwner(req.Actor, market.Authority); err != nil {
		return err
	}

	source, err := s.requireTokenAccount(ctx, req.Source)
	if err != nil {
		return err
	}

	if err := requireOwner(req.Actor, source.Owner); err != nil {
		return err
	}

	if source.Mint != market.LoanMint {
		return core.ErrMintMismatch
	}

	if source.Balance < req.Amount {
		return core.ErrInsufficientLiquidity
	}

	vault, err := s.requireTokenAccount(ctx, market.LoanVault)
	if err != nil {
		return err
	}

	// liquidity only; no borrower accounting is touched
	if err := s.db.Tx(func(tx *db.DB) error {
		return s.tokenz.Transfer(ctx, tx, source, vault, req.Amount)
	}); err != nil {
		log.WithError(err).Errorln("fund loan vault")
		return err
	}

	return nil
}
