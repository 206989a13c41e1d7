package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDeterministic(t *testing.T) {
	user := GenTraceID()

	assert.Equal(t, Derive("lending-market"), Derive("lending-market"))
	assert.Equal(t, Derive("user-account", user), Derive("user-account", user))
}

func TestDeriveDistinct(t *testing.T) {
	market := Derive("lending-market")

	addresses := []string{
		market,
		Derive("collateral-vault", market),
		Derive("loan-vault", market),
		Derive("user-account", GenTraceID()),
		Derive("user-account", GenTraceID()),
	}

	seen := make(map[string]bool)
	for _, addr := range addresses {
		assert.False(t, seen[addr], addr)
		seen[addr] = true
	}
}

func TestDeriveOwnerChain(t *testing.T) {
	owner := GenTraceID()
	mint := GenTraceID()

	assert.NotEqual(t, Derive("token-account", owner, mint), Derive("token-account", mint, owner))
}
