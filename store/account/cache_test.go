package account

import (
	"context"
	"errors"
	"testing"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccountStore struct {
	accounts map[string]*core.UserAccount
	reads    int
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[string]*core.UserAccount)}
}

func (s *fakeAccountStore) Create(ctx context.Context, tx *db.DB, account *core.UserAccount) error {
	if _, ok := s.accounts[account.Address]; ok {
		return errors.New("account address already in use")
	}

	account.ID = uint64(len(s.accounts) + 1)
	clone := *account
	s.accounts[account.Address] = &clone
	return nil
}

func (s *fakeAccountStore) Find(ctx context.Context, user string) (*core.UserAccount, error) {
	s.reads++
	for _, account := range s.accounts {
		if account.User == user {
			clone := *account
			return &clone, nil
		}
	}

	return &core.UserAccount{}, nil
}

func (s *fakeAccountStore) FindByAddress(ctx context.Context, address string) (*core.UserAccount, error) {
	s.reads++
	if account, ok := s.accounts[address]; ok {
		clone := *account
		return &clone, nil
	}

	return &core.UserAccount{}, nil
}

func (s *fakeAccountStore) All(ctx context.Context) ([]*core.UserAccount, error) {
	accounts := make([]*core.UserAccount, 0, len(s.accounts))
	for _, account := range s.accounts {
		clone := *account
		accounts = append(accounts, &clone)
	}

	return accounts, nil
}

func (s *fakeAccountStore) Update(ctx context.Context, tx *db.DB, account *core.UserAccount) error {
	existing, ok := s.accounts[account.Address]
	if !ok || existing.Version != account.Version {
		return db.ErrOptimisticLock
	}

	account.Version++
	clone := *account
	s.accounts[account.Address] = &clone
	return nil
}

// rollback restores a record to a previous snapshot, the way an aborted
// transaction leaves the table.
func (s *fakeAccountStore) rollback(snapshot *core.UserAccount) {
	clone := *snapshot
	s.accounts[snapshot.Address] = &clone
}

func TestCacheAccountStore(t *testing.T) {
	ctx := context.Background()

	t.Run("read through caches", func(t *testing.T) {
		backing := newFakeAccountStore()
		cached := Cache(backing)

		account := &core.UserAccount{Address: "addr-1", User: "user-1"}
		require.NoError(t, cached.Create(ctx, nil, account))

		first, err := cached.Find(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "addr-1", first.Address)

		reads := backing.reads
		second, err := cached.Find(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, reads, backing.reads)
	})

	t.Run("update evicts", func(t *testing.T) {
		backing := newFakeAccountStore()
		cached := Cache(backing)

		account := &core.UserAccount{Address: "addr-2", User: "user-2"}
		require.NoError(t, cached.Create(ctx, nil, account))

		_, err := cached.FindByAddress(ctx, "addr-2")
		require.NoError(t, err)

		account.DepositedCollateralAmount = 1000000
		require.NoError(t, cached.Update(ctx, nil, account))

		reads := backing.reads
		current, err := cached.FindByAddress(ctx, "addr-2")
		require.NoError(t, err)
		assert.Equal(t, uint64(1000000), current.DepositedCollateralAmount)
		assert.Equal(t, reads+1, backing.reads)
	})

	t.Run("rolled back update never served", func(t *testing.T) {
		backing := newFakeAccountStore()
		cached := Cache(backing)

		account := &core.UserAccount{Address: "addr-3", User: "user-3"}
		require.NoError(t, cached.Create(ctx, nil, account))

		committed, err := cached.FindByAddress(ctx, "addr-3")
		require.NoError(t, err)

		// a later step of the enclosing transaction fails and the whole
		// transaction aborts after this update already went through the store
		mutated := *committed
		mutated.DepositedCollateralAmount += 1000000
		require.NoError(t, cached.Update(ctx, nil, &mutated))
		backing.rollback(committed)

		current, err := cached.FindByAddress(ctx, "addr-3")
		require.NoError(t, err)
		assert.Equal(t, committed.DepositedCollateralAmount, current.DepositedCollateralAmount)
		assert.Equal(t, committed.Version, current.Version)

		// the committed version must still be updatable
		current.BorrowedAmount = 42
		require.NoError(t, cached.Update(ctx, nil, current))
	})
}
