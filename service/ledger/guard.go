package ledger

import (
	"context"

	"lending/core"
	"lending/pkg/id"
)

// The guard fails closed: every mutating operation runs these checks before a
// single field is touched.

func requireOwner(actor, owner string) error {
	if actor == "" || actor != owner {
		return core.ErrUnauthorized
	}

	return nil
}

// requireDerived rejects any supplied address that does not equal the
// derivation of its claimed inputs; naming someone else's record as a
// parameter grants no authority over it.
func requireDerived(address, tag string, owners ...string) error {
	if address != id.Derive(tag, owners...) {
		return core.ErrUnauthorized
	}

	return nil
}

func (s *ledgerService) requireMarket(ctx context.Context) (*core.Market, error) {
	market, err := s.markets.Find(ctx)
	if err != nil {
		return nil, err
	}

	if market.ID == 0 {
		return nil, core.ErrMarketNotFound
	}

	return market, nil
}

func (s *ledgerService) requireTokenAccount(ctx context.Context, address string) (*core.TokenAccount, error) {
	account, err := s.tokens.Find(ctx, address)
	if err != nil {
		return nil, err
	}

	if account.ID == 0 {
		return nil, core.ErrTokenAccountNotFound
	}

	return account, nil
}
