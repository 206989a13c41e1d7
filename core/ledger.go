package core

import "context"

// InitializeMarketReq one-time market creation
type InitializeMarketReq struct {
	Actor          string `json:"actor,omitempty"`
	CollateralMint string `json:"collateral_mint,omitempty" valid:"uuid,required"`
	LoanMint       string `json:"loan_mint,omitempty" valid:"uuid,required"`
}

// CreateUserAccountReq self-service user account registration
type CreateUserAccountReq struct {
	Actor string `json:"actor,omitempty"`
	User  string `json:"user,omitempty" valid:"uuid,required"`
	// AccountAddress must derive from User; supplying a well formed but
	// wrongly derived address is rejected.
	AccountAddress string `json:"account_address,omitempty" valid:"uuid,required"`
}

// DepositReq collateral deposit
type DepositReq struct {
	Actor          string `json:"actor,omitempty"`
	AccountAddress string `json:"account_address,omitempty" valid:"uuid,required"`
	Source         string `json:"source,omitempty" valid:"uuid,required"`
	Amount         uint64 `json:"amount,omitempty"`
}

// BorrowReq loan disbursement against deposited collateral
type BorrowReq struct {
	Actor          string `json:"actor,omitempty"`
	AccountAddress string `json:"account_address,omitempty" valid:"uuid,required"`
	Destination    string `json:"destination,omitempty" valid:"uuid,required"`
	Amount         uint64 `json:"amount,omitempty"`
}

// FundVaultReq authority-gated loan vault top-up
type FundVaultReq struct {
	Actor  string `json:"actor,omitempty"`
	Source string `json:"source,omitempty" valid:"uuid,required"`
	Amount uint64 `json:"amount,omitempty"`
}

// ILedgerService the five mutating ledger operations. Every call validates
// with the authorization guard first; a failing check aborts with a typed
// error and no partial state change.
type ILedgerService interface {
	InitializeMarket(ctx context.Context, req *InitializeMarketReq) (*Market, error)
	CreateUserAccount(ctx context.Context, req *CreateUserAccountReq) (*UserAccount, error)
	DepositCollateral(ctx context.Context, req *DepositReq) error
	BorrowToken(ctx context.Context, req *BorrowReq) error
	FundLoanVault(ctx context.Context, req *FundVaultReq) error
}
