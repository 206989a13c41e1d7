package account

import (
	"context"
	"time"

	"lending/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type accountStore struct {
	db *db.DB
}

// New new user account store
func New(db *db.DB) core.IAccountStore {
	return &accountStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.UserAccount{})
		if err := tx.AutoMigrate(core.UserAccount{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_user_accounts_address", "address").Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_user_accounts_user", "user").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountStore) Create(ctx context.Context, tx *db.DB, account *core.UserAccount) error {
	return tx.Update().Create(account).Error
}

func (s *accountStore) Find(ctx context.Context, user string) (*core.UserAccount, error) {
	var account core.UserAccount
	if err := s.db.View().Where("user = ?", user).First(&account).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.UserAccount{}, nil
		}

		return nil, err
	}

	return &account, nil
}

func (s *accountStore) FindByAddress(ctx context.Context, address string) (*core.UserAccount, error) {
	var account core.UserAccount
	if err := s.db.View().Where("address = ?", address).First(&account).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.UserAccount{}, nil
		}

		return nil, err
	}

	return &account, nil
}

func (s *accountStore) All(ctx context.Context) ([]*core.UserAccount, error) {
	var accounts []*core.UserAccount
	if err := s.db.View().Find(&accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}

func (s *accountStore) Update(ctx context.Context, tx *db.DB, account *core.UserAccount) error {
	version := account.Version
	account.Version++
	account.UpdatedAt = time.Now()

	updates := map[string]interface{}{
		"deposited_collateral_amount": account.DepositedCollateralAmount,
		"borrowed_amount":             account.BorrowedAmount,
		"version":                     account.Version,
		"updated_at":                  account.UpdatedAt,
	}

	result := tx.Update().Model(core.UserAccount{}).
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
