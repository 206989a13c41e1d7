package ledger

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

func (s *ledgerService) CreateUserAccount(ctx context.Context, req *core.CreateUserAccountReq) (*core.UserAccount, error) {
	log := logger.FromContext(ctx).WithField("event", "create_user_account")

	// self service only; nobody may pre-create another user's account
	if err := requireOwner(req.Actor, req.User); err != nil {
		return nil, err
	}

	if err := requireDerived(req.AccountAddress, core.UserAccountTag, req.User); err != nil {
		return nil, err
	}

	market, err := s.requireMarket(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.accounts.FindByAddress(ctx, req.AccountAddress)
	if err != nil {
		log.WithError(err).Errorln("accounts.FindByAddress")
		return nil, err
	}

	if existing.ID > 0 {
		return nil, core.ErrAlreadyRegistered
	}

	account := &core.UserAccount{
		Address:       req.AccountAddress,
		User:          req.User,
		LendingMarket: market.Address,
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		return s.accounts.Create(ctx, tx, account)
	}); err != nil {
		log.WithError(err).Errorln("accounts.Create")
		return nil, err
	}

	return account, nil
}
