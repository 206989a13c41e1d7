package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// UserAccount per-user ledger record
type UserAccount struct {
	ID                        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Address                   string    `sql:"size:36;unique_index:address_idx" json:"address"`
	User                      string    `sql:"size:36;unique_index:user_idx" json:"user"`
	LendingMarket             string    `sql:"size:36" json:"lending_market"`
	DepositedCollateralAmount uint64    `sql:"default:0" json:"deposited_collateral_amount"`
	BorrowedAmount            uint64    `sql:"default:0" json:"borrowed_amount"`
	Version                   int64     `sql:"default:0" json:"version"`
	CreatedAt                 time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt                 time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IAccountStore user account store interface
type IAccountStore interface {
	Create(ctx context.Context, tx *db.DB, account *UserAccount) error
	Find(ctx context.Context, user string) (*UserAccount, error)
	FindByAddress(ctx context.Context, address string) (*UserAccount, error)
	All(ctx context.Context) ([]*UserAccount, error)
	Update(ctx context.Context, tx *db.DB, account *UserAccount) error
}
