package token

import (
	"context"

	"lending/core"
	"lending/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

type tokenService struct {
	db     *db.DB
	tokens core.ITokenStore
}

// New new token service
func New(db *db.DB, tokens core.ITokenStore) core.ITokenService {
	return &tokenService{
		db:     db,
		tokens: tokens,
	}
}

func (s *tokenService) CreateAccount(ctx context.Context, owner, mint string) (*core.TokenAccount, error) {
	address := id.Derive(core.TokenAccountTag, owner, mint)

	existing, err := s.tokens.Find(ctx, address)
	if err != nil {
		return nil, err
	}

	if existing.ID > 0 {
		return existing, nil
	}

	account := &core.TokenAccount{
		Address: address,
		Owner:   owner,
		Mint:    mint,
	}

	if err := s.tokens.Create(ctx, s.db, account); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("tokens.Create")
		return nil, err
	}

	return account, nil
}

func (s *tokenService) Mint(ctx context.Context, address string, amount uint64) (*core.TokenAccount, error) {
	if amount == 0 {
		return nil, core.ErrInvalidAmount
	}

	account, err := s.tokens.Find(ctx, address)
	if err != nil {
		return nil, err
	}

	if account.ID == 0 {
		return nil, core.ErrTokenAccountNotFound
	}

	account.Balance += amount
	if err := s.tokens.Update(ctx, s.db, account); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("tokens.Update")
		return nil, err
	}

	return account, nil
}

func (s *tokenService) OwnerOf(ctx context.Context, address string) (string, error) {
	account, err := s.tokens.Find(ctx, address)
	if err != nil {
		return "", err
	}

	if account.ID == 0 {
		return "", core.ErrTokenAccountNotFound
	}

	return account.Owner, nil
}

func (s *tokenService) Transfer(ctx context.Context, tx *db.DB, from, to *core.TokenAccount, amount uint64) error {
	if amount == 0 {
		return core.ErrInvalidAmount
	}

	if from.Balance < amount {
		return core.ErrInsufficientLiquidity
	}

	from.Balance -= amount
	if err := s.tokens.Update(ctx, tx, from); err != nil {
		return err
	}

	to.Balance += amount
	return s.tokens.Update(ctx, tx, to)
}
