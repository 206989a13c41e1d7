package token

import (
	"context"
	"time"

	"lending/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type tokenStore struct {
	db *db.DB
}

// New new token account store
func New(db *db.DB) core.ITokenStore {
	return &tokenStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.TokenAccount{})
		if err := tx.AutoMigrate(core.TokenAccount{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_token_accounts_address", "address").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *tokenStore) Create(ctx context.Context, tx *db.DB, account *core.TokenAccount) error {
	return tx.Update().Create(account).Error
}

func (s *tokenStore) Find(ctx context.Context, address string) (*core.TokenAccount, error) {
	var account core.TokenAccount
	if err := s.db.View().Where("address = ?", address).First(&account).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.TokenAccount{}, nil
		}

		return nil, err
	}

	return &account, nil
}

func (s *tokenStore) FindByOwner(ctx context.Context, owner, mint string) (*core.TokenAccount, error) {
	var account core.TokenAccount
	if err := s.db.View().Where("owner = ? AND mint = ?", owner, mint).First(&account).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.TokenAccount{}, nil
		}

		return nil, err
	}

	return &account, nil
}

func (s *tokenStore) Update(ctx context.Context, tx *db.DB, account *core.TokenAccount) error {
	version := account.Version
	account.Version++
	account.UpdatedAt = time.Now()

	updates := map[string]interface{}{
		"balance":    account.Balance,
		"version":    account.Version,
		"updated_at": account.UpdatedAt,
	}

	result := tx.Update().Model(core.TokenAccount{}).
		Where("address = ? AND version = ?", account.Address, version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
