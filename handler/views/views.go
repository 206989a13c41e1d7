package views

import (
	"lending/core"
	"lending/pkg/number"
)

// Market market view with display amounts
type Market struct {
	core.Market
	CollateralDisplay string `json:"collateral_display"`
	BorrowedDisplay   string `json:"borrowed_display"`
}

// MarketView new market view
func MarketView(market *core.Market) *Market {
	return &Market{
		Market:            *market,
		CollateralDisplay: number.FormatAmount(market.CollateralAmount),
		BorrowedDisplay:   number.FormatAmount(market.BorrowedAmount),
	}
}

// Account user account view with display amounts and the remaining borrow room
type Account struct {
	core.UserAccount
	DepositedDisplay     string `json:"deposited_display"`
	BorrowedDisplay      string `json:"borrowed_display"`
	MaxBorrowable        uint64 `json:"max_borrowable"`
	MaxBorrowableDisplay string `json:"max_borrowable_display"`
}

// AccountView new account view
func AccountView(market *core.Market, account *core.UserAccount) *Account {
	max := market.MaxBorrowable(account.DepositedCollateralAmount)
	return &Account{
		UserAccount:          *account,
		DepositedDisplay:     number.FormatAmount(account.DepositedCollateralAmount),
		BorrowedDisplay:      number.FormatAmount(account.BorrowedAmount),
		MaxBorrowable:        max,
		MaxBorrowableDisplay: number.FormatAmount(max),
	}
}

// Vault custody vault view
type Vault struct {
	core.TokenAccount
	BalanceDisplay string `json:"balance_display"`
}

// VaultView new vault view
func VaultView(account *core.TokenAccount) *Vault {
	return &Vault{
		TokenAccount:   *account,
		BalanceDisplay: number.FormatAmount(account.Balance),
	}
}
