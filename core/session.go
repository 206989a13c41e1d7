package core

import "context"

// Session resolves a bearer token into the actor identity behind it. The
// verifier is what makes a declared actor unforgeable; the ledger itself only
// ever compares the resolved identity against record owners.
type Session interface {
	Login(ctx context.Context, accessToken string) (string, error)
}
