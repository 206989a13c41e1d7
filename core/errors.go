package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrUnauthorized signer / owner / derivation mismatch
	ErrUnauthorized ErrorCode = 100001

	// ErrMarketNotFound no market
	ErrMarketNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrInvalidConfiguration collateral and loan mints are the same
	ErrInvalidConfiguration ErrorCode = 100102
	// ErrAlreadyInitialized market already initialized
	ErrAlreadyInitialized ErrorCode = 100103
	// ErrAlreadyRegistered user account already in use
	ErrAlreadyRegistered ErrorCode = 100104
	// ErrAccountNotFound no user account
	ErrAccountNotFound ErrorCode = 100105
	// ErrBorrowLimitExceeded total borrow would exceed the maximum allowable borrow
	ErrBorrowLimitExceeded ErrorCode = 100106
	// ErrInsufficientLiquidity token account balance cannot cover the transfer
	ErrInsufficientLiquidity ErrorCode = 100107
	// ErrTokenAccountNotFound no token account
	ErrTokenAccountNotFound ErrorCode = 100108
	// ErrMintMismatch custody account holds a different mint than the operation requires
	ErrMintMismatch ErrorCode = 100109
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// Hint human readable error message
func (e ErrorCode) Hint() string {
	switch e {
	case ErrUnauthorized:
		return "unauthorized"
	case ErrMarketNotFound:
		return "lending market not found"
	case ErrInvalidAmount:
		return "amount must be positive"
	case ErrInvalidConfiguration:
		return "collateral and loan mints cannot be the same"
	case ErrAlreadyInitialized:
		return "lending market already initialized"
	case ErrAlreadyRegistered:
		return "user account already in use"
	case ErrAccountNotFound:
		return "user account not found"
	case ErrBorrowLimitExceeded:
		return "total borrow amount will exceed the maximum allowable borrow"
	case ErrInsufficientLiquidity:
		return "insufficient liquidity"
	case ErrTokenAccountNotFound:
		return "token account not found"
	case ErrMintMismatch:
		return "custody account mint does not match"
	default:
		return "unknown error"
	}
}
