package cmd

import (
	"lending/core"
	ledgerservice "lending/service/ledger"
	sessionservice "lending/service/session"
	tokenservice "lending/service/token"
	"lending/store/account"
	"lending/store/market"
	"lending/store/token"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

func provideSystem() *core.System {
	return &core.System{
		Genesis: cfg.App.Genesis,
		Version: rootCmd.Version,
	}
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideMarketStore(db *db.DB) core.IMarketStore {
	return market.New(db)
}

func provideAccountStore(db *db.DB) core.IAccountStore {
	return account.Cache(account.New(db))
}

func provideTokenStore(db *db.DB) core.ITokenStore {
	return token.New(db)
}

// ------------------service------------------------------------

func provideTokenService(db *db.DB, tokens core.ITokenStore) core.ITokenService {
	return tokenservice.New(db, tokens)
}

func provideLedgerService(db *db.DB) core.ILedgerService {
	tokens := provideTokenStore(db)

	return ledgerservice.New(
		db,
		provideMarketStore(db),
		provideAccountStore(db),
		tokens,
		provideTokenService(db, tokens),
	)
}

func provideSession() core.Session {
	return sessionservice.New(cfg.App.SessionSecret, 512)
}
