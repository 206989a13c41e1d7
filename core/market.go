package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// derivation tags, one per ledger entity
const (
	MarketTag          = "lending-market"
	CollateralVaultTag = "collateral-vault"
	LoanVaultTag       = "loan-vault"
	UserAccountTag     = "user-account"
	TokenAccountTag    = "token-account"
)

const (
	// BpsBase basis points of 100%
	BpsBase = 10000
	// DefaultCollateralRatioBps 120%
	DefaultCollateralRatioBps = 12000
	// DefaultInterestRateBps 5%, stored only; no accrual is applied
	DefaultInterestRateBps = 500
)

// Market the single shared lending market record
type Market struct {
	ID                 uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Address            string    `sql:"size:36;unique_index:address_idx" json:"address"`
	Authority          string    `sql:"size:36" json:"authority"`
	CollateralMint     string    `sql:"size:36" json:"collateral_mint"`
	LoanMint           string    `sql:"size:36" json:"loan_mint"`
	CollateralVault    string    `sql:"size:36" json:"collateral_vault"`
	LoanVault          string    `sql:"size:36" json:"loan_vault"`
	CollateralRatioBps int64     `sql:"default:0" json:"collateral_ratio_bps"`
	InterestRateBps    int64     `sql:"default:0" json:"interest_rate_bps"`
	CollateralAmount   uint64    `sql:"default:0" json:"collateral_amount"`
	BorrowedAmount     uint64    `sql:"default:0" json:"borrowed_amount"`
	Version            int64     `sql:"default:0" json:"version"`
	CreatedAt          time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// MaxBorrowable the largest total borrow the deposited collateral can carry,
// floor(deposited * 10000 / ratio). Split to avoid overflowing uint64.
func (m *Market) MaxBorrowable(deposited uint64) uint64 {
	ratio := uint64(m.CollateralRatioBps)
	if ratio == 0 {
		return 0
	}

	quo, rem := deposited/ratio, deposited%ratio
	return quo*BpsBase + rem*BpsBase/ratio
}

// ApproveTransfer reports whether the market authorizes moving funds out of
// vault. Vault funds move under the market record itself, never under an
// individual key; the requester therefore must present the market address.
func (m *Market) ApproveTransfer(vault string, amount uint64, requester string) bool {
	if requester != m.Address {
		return false
	}

	return vault == m.CollateralVault || vault == m.LoanVault
}

// IMarketStore market store interface
type IMarketStore interface {
	Create(ctx context.Context, tx *db.DB, market *Market) error
	// Find loads the singleton market record; returns an empty record if the
	// market has not been initialized yet.
	Find(ctx context.Context) (*Market, error)
	Update(ctx context.Context, tx *db.DB, market *Market) error
}
