package market

import (
	"context"
	"time"

	"lending/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type marketStore struct {
	db *db.DB
}

// New new market store
func New(db *db.DB) core.IMarketStore {
	return &marketStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Market{})
		if err := tx.AutoMigrate(core.Market{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *marketStore) Create(ctx context.Context, tx *db.DB, market *core.Market) error {
	return tx.Update().Create(market).Error
}

func (s *marketStore) Find(ctx context.Context) (*core.Market, error) {
	var market core.Market
	if err := s.db.View().First(&market).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Market{}, nil
		}

		return nil, err
	}

	return &market, nil
}

func (s *marketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	version := market.Version
	market.Version++
	market.UpdatedAt = time.Now()

	updates := map[string]interface{}{
		"collateral_amount": market.CollateralAmount,
		"borrowed_amount":   market.BorrowedAmount,
		"version":           market.Version,
		"updated_at":        market.UpdatedAt,
	}

	result := tx.Update().Model(core.Market{}).
		Where("address = ? AND version = ?", market.Address, version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
