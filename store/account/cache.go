package account

import (
	"context"
	"fmt"

	"lending/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a user account store with an LRU read cache. Only committed
// reads populate the cache; mutations run inside a caller-supplied
// transaction that may still roll back, so they evict instead of writing
// through and the next read repopulates from committed state.
func Cache(store core.IAccountStore) core.IAccountStore {
	return &cacheAccountStore{
		IAccountStore: store,
		cache:         gcache.New(2048).LRU().Build(),
		sf:            &singleflight.Group{},
	}
}

type cacheAccountStore struct {
	core.IAccountStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheAccountStore) Create(ctx context.Context, tx *db.DB, account *core.UserAccount) error {
	if err := s.IAccountStore.Create(ctx, tx, account); err != nil {
		return err
	}
	s.evictAccount(account)
	return nil
}

func (s *cacheAccountStore) Find(ctx context.Context, user string) (*core.UserAccount, error) {
	if v, err := s.cache.Get(s.userKey(user)); err == nil {
		if account, ok := v.(*core.UserAccount); ok {
			return account, nil
		}
	}

	v, err, _ := s.sf.Do(s.userKey(user), func() (interface{}, error) {
		account, err := s.IAccountStore.Find(ctx, user)
		if err != nil {
			return nil, err
		}
		if account.ID > 0 {
			s.cacheAccount(account)
		}
		return account, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.UserAccount), nil
}

func (s *cacheAccountStore) FindByAddress(ctx context.Context, address string) (*core.UserAccount, error) {
	if v, err := s.cache.Get(s.addressKey(address)); err == nil {
		if account, ok := v.(*core.UserAccount); ok {
			return account, nil
		}
	}

	account, err := s.IAccountStore.FindByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if account.ID > 0 {
		s.cacheAccount(account)
	}
	return account, nil
}

func (s *cacheAccountStore) Update(ctx context.Context, tx *db.DB, account *core.UserAccount) error {
	if err := s.IAccountStore.Update(ctx, tx, account); err != nil {
		return err
	}
	s.evictAccount(account)
	return nil
}

func (s *cacheAccountStore) cacheAccount(account *core.UserAccount) {
	s.cache.Set(s.userKey(account.User), account)
	s.cache.Set(s.addressKey(account.Address), account)
}

func (s *cacheAccountStore) evictAccount(account *core.UserAccount) {
	s.cache.Remove(s.userKey(account.User))
	s.cache.Remove(s.addressKey(account.Address))
}

func (s *cacheAccountStore) userKey(user string) string {
	return fmt.Sprintf("account:user:%s", user)
}

func (s *cacheAccountStore) addressKey(address string) string {
	return fmt.Sprintf("account:address:%s", address)
}
