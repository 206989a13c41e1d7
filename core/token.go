package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// TokenAccount custody account holding a balance of a single mint
type TokenAccount struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Address   string    `sql:"size:36;unique_index:address_idx" json:"address"`
	Owner     string    `sql:"size:36;index:owner_idx" json:"owner"`
	Mint      string    `sql:"size:36" json:"mint"`
	Balance   uint64    `sql:"default:0" json:"balance"`
	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ITokenStore token account store interface
type ITokenStore interface {
	Create(ctx context.Context, tx *db.DB, account *TokenAccount) error
	Find(ctx context.Context, address string) (*TokenAccount, error)
	FindByOwner(ctx context.Context, owner, mint string) (*TokenAccount, error)
	Update(ctx context.Context, tx *db.DB, account *TokenAccount) error
}

// ITokenService custody primitive: raw balance moves between token accounts.
// Transfer applies both balance updates inside the supplied transaction so a
// failing ledger mutation rolls the movement back with everything else.
type ITokenService interface {
	CreateAccount(ctx context.Context, owner, mint string) (*TokenAccount, error)
	Mint(ctx context.Context, address string, amount uint64) (*TokenAccount, error)
	OwnerOf(ctx context.Context, address string) (string, error)
	Transfer(ctx context.Context, tx *db.DB, from, to *TokenAccount, amount uint64) error
}
