package codes

import (
	"net/http"

	"lending/core"
)

// HTTPStatus maps a ledger error code to the http status it surfaces as.
func HTTPStatus(code core.ErrorCode) int {
	switch code {
	case core.ErrUnauthorized:
		return http.StatusUnauthorized
	case core.ErrMarketNotFound, core.ErrAccountNotFound, core.ErrTokenAccountNotFound:
		return http.StatusNotFound
	case core.ErrAlreadyInitialized, core.ErrAlreadyRegistered:
		return http.StatusConflict
	case core.ErrInvalidAmount, core.ErrInvalidConfiguration, core.ErrMintMismatch, core.ErrBorrowLimitExceeded, core.ErrInsufficientLiquidity:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
