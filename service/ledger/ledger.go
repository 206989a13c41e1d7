package ledger

import (
	"lending/core"

	"github.com/fox-one/pkg/store/db"
)

type txer interface {
	Tx(fn func(tx *db.DB) error) error
}

type ledgerService struct {
	db       txer
	markets  core.IMarketStore
	accounts core.IAccountStore
	tokens   core.ITokenStore
	tokenz   core.ITokenService
}

// New new ledger service
func New(
	db *db.DB,
	markets core.IMarketStore,
	accounts core.IAccountStore,
	tokens core.ITokenStore,
	tokenz core.ITokenService,
) core.ILedgerService {
	return &ledgerService{
		db:       db,
		markets:  markets,
		accounts: accounts,
		tokens:   tokens,
		tokenz:   tokenz,
	}
}
