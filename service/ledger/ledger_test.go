package ledger

import (
	"context"
	"errors"
	"math"
	"math/big"
	"testing"

	"lending/core"
	"lending/pkg/id"
	tokenservice "lending/service/token"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memDB struct{}

func (memDB) Tx(fn func(tx *db.DB) error) error {
	return fn(nil)
}

type memMarkets struct {
	market *core.Market
}

func (s *memMarkets) Create(ctx context.Context, tx *db.DB, market *core.Market) error {
	if s.market != nil {
		return errors.New("market address already in use")
	}

	market.ID = 1
	clone := *market
	s.market = &clone
	return nil
}

func (s *memMarkets) Find(ctx context.Context) (*core.Market, error) {
	if s.market == nil {
		return &core.Market{}, nil
	}

	clone := *s.market
	return &clone, nil
}

func (s *memMarkets) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	if s.market == nil || s.market.Version != market.Version {
		return db.ErrOptimisticLock
	}

	market.Version++
	clone := *market
	s.market = &clone
	return nil
}

type memAccounts struct {
	accounts map[string]*core.UserAccount
	lastID   uint64
}

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: make(map[string]*core.UserAccount)}
}

func (s *memAccounts) Create(ctx context.Context, tx *db.DB, account *core.UserAccount) error {
	if _, ok := s.accounts[account.Address]; ok {
		return errors.New("account address already in use")
	}

	s.lastID++
	account.ID = s.lastID
	clone := *account
	s.accounts[account.Address] = &clone
	return nil
}

func (s *memAccounts) Find(ctx context.Context, user string) (*core.UserAccount, error) {
	for _, account := range s.accounts {
		if account.User == user {
			clone := *account
			return &clone, nil
		}
	}

	return &core.UserAccount{}, nil
}

func (s *memAccounts) FindByAddress(ctx context.Context, address string) (*core.UserAccount, error) {
	if account, ok := s.accounts[address]; ok {
		clone := *account
		return &clone, nil
	}

	return &core.UserAccount{}, nil
}

func (s *memAccounts) All(ctx context.Context) ([]*core.UserAccount, error) {
	accounts := make([]*core.UserAccount, 0, len(s.accounts))
	for _, account := range s.accounts {
		clone := *account
		accounts = append(accounts, &clone)
	}

	return accounts, nil
}

func (s *memAccounts) Update(ctx context.Context, tx *db.DB, account *core.UserAccount) error {
	existing, ok := s.accounts[account.Address]
	if !ok || existing.Version != account.Version {
		return db.ErrOptimisticLock
	}

	account.Version++
	clone := *account
	s.accounts[account.Address] = &clone
	return nil
}

type memTokens struct {
	accounts map[string]*core.TokenAccount
	lastID   uint64
}

func newMemTokens() *memTokens {
	return &memTokens{accounts: make(map[string]*core.TokenAccount)}
}

func (s *memTokens) Create(ctx context.Context, tx *db.DB, account *core.TokenAccount) error {
	if _, ok := s.accounts[account.Address]; ok {
		return errors.New("token account address already in use")
	}

	s.lastID++
	account.ID = s.lastID
	clone := *account
	s.accounts[account.Address] = &clone
	return nil
}

func (s *memTokens) Find(ctx context.Context, address string) (*core.TokenAccount, error) {
	if account, ok := s.accounts[address]; ok {
		clone := *account
		return &clone, nil
	}

	return &core.TokenAccount{}, nil
}

func (s *memTokens) FindByOwner(ctx context.Context, owner, mint string) (*core.TokenAccount, error) {
	for _, account := range s.accounts {
		if account.Owner == owner && account.Mint == mint {
			clone := *account
			return &clone, nil
		}
	}

	return &core.TokenAccount{}, nil
}

func (s *memTokens) Update(ctx context.Context, tx *db.DB, account *core.TokenAccount) error {
	existing, ok := s.accounts[account.Address]
	if !ok || existing.Version != account.Version {
		return db.ErrOptimisticLock
	}

	account.Version++
	clone := *account
	s.accounts[account.Address] = &clone
	return nil
}

type testLedger struct {
	service  *ledgerService
	markets  *memMarkets
	accounts *memAccounts
	tokens   *memTokens
	tokenz   core.ITokenService
}

func newTestLedger() *testLedger {
	markets := &memMarkets{}
	accounts := newMemAccounts()
	tokens := newMemTokens()
	tokenz := tokenservice.New(nil, tokens)

	return &testLedger{
		service: &ledgerService{
			db:       memDB{},
			markets:  markets,
			accounts: accounts,
			tokens:   tokens,
			tokenz:   tokenz,
		},
		markets:  markets,
		accounts: accounts,
		tokens:   tokens,
		tokenz:   tokenz,
	}
}

func (l *testLedger) initialize(t *testing.T, authority string) *core.Market {
	market, err := l.service.InitializeMarket(context.Background(), &core.InitializeMarketReq{
		Actor:          authority,
		CollateralMint: id.GenTraceID(),
		LoanMint:       id.GenTraceID(),
	})
	require.NoError(t, err)
	return market
}

func (l *testLedger) register(t *testing.T, user string) *core.UserAccount {
	account, err := l.service.CreateUserAccount(context.Background(), &core.CreateUserAccountReq{
		Actor:          user,
		User:           user,
		AccountAddress: id.Derive(core.UserAccountTag, user),
	})
	require.NoError(t, err)
	return account
}

func (l *testLedger) custody(t *testing.T, owner, mint string, balance uint64) *core.TokenAccount {
	ctx := context.Background()
	account, err := l.tokenz.CreateAccount(ctx, owner, mint)
	require.NoError(t, err)

	if balance > 0 {
		account, err = l.tokenz.Mint(ctx, account.Address, balance)
		require.NoError(t, err)
	}

	return account
}

func TestInitializeMarket(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()
	authority := id.GenTraceID()

	t.Run("identical mints rejected", func(t *testing.T) {
		mint := id.GenTraceID()
		_, err := l.service.InitializeMarket(ctx, &core.InitializeMarketReq{
			Actor:          authority,
			CollateralMint: mint,
			LoanMint:       mint,
		})
		assert.Equal(t, core.ErrInvalidConfiguration, err)
		assert.Nil(t, l.markets.market)
	})

	t.Run("initializes once", func(t *testing.T) {
		market := l.initialize(t, authority)

		assert.Equal(t, int64(12000), market.CollateralRatioBps)
		assert.Equal(t, int64(500), market.InterestRateBps)
		assert.Equal(t, uint64(0), market.CollateralAmount)
		assert.Equal(t, uint64(0), market.BorrowedAmount)
		assert.Equal(t, authority, market.Authority)
		assert.Equal(t, id.Derive(core.MarketTag), market.Address)

		for _, vault := range []string{market.CollateralVault, market.LoanVault} {
			account, err := l.tokens.Find(ctx, vault)
			require.NoError(t, err)
			assert.True(t, account.ID > 0)
			assert.Equal(t, market.Address, account.Owner)
			assert.Equal(t, uint64(0), account.Balance)
		}
	})

	t.Run("cannot initialize twice", func(t *testing.T) {
		_, err := l.service.InitializeMarket(ctx, &core.InitializeMarketReq{
			Actor:          authority,
			CollateralMint: id.GenTraceID(),
			LoanMint:       id.GenTraceID(),
		})
		assert.Equal(t, core.ErrAlreadyInitialized, err)
	})
}

func TestCreateUserAccount(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()
	l.initialize(t, id.GenTraceID())

	t.Run("cannot create an account for another user", func(t *testing.T) {
		malicious, victim := id.GenTraceID(), id.GenTraceID()
		_, err := l.service.CreateUserAccount(ctx, &core.CreateUserAccountReq{
			Actor:          malicious,
			User:           victim,
			AccountAddress: id.Derive(core.UserAccountTag, victim),
		})
		assert.Equal(t, core.ErrUnauthorized, err)
	})

	t.Run("wrongly derived address rejected", func(t *testing.T) {
		user := id.GenTraceID()
		_, err := l.service.CreateUserAccount(ctx, &core.CreateUserAccountReq{
			Actor:          user,
			User:           user,
			AccountAddress: id.Derive(core.UserAccountTag, id.GenTraceID()),
		})
		assert.Equal(t, core.ErrUnauthorized, err)
	})

	t.Run("self service succeeds once", func(t *testing.T) {
		user := id.GenTraceID()
		account := l.register(t, user)

		assert.Equal(t, user, account.User)
		assert.Equal(t, id.Derive(core.MarketTag), account.LendingMarket)
		assert.Equal(t, uint64(0), account.DepositedCollateralAmount)
		assert.Equal(t, uint64(0), account.BorrowedAmount)

		_, err := l.service.CreateUserAccount(ctx, &core.CreateUserAccountReq{
			Actor:          user,
			User:           user,
			AccountAddress: account.Address,
		})
		assert.Equal(t, core.ErrAlreadyRegistered, err)
	})
}

func TestDepositCollateral(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()
	market := l.initialize(t, id.GenTraceID())

	t.Run("cannot deposit from another user's custody", func(t *testing.T) {
		victim, malicious := id.GenTraceID(), id.GenTraceID()
		victimCustody := l.custody(t, victim, market.CollateralMint, 1000000000)
		account := l.register(t, malicious)

		err := l.service.DepositCollateral(ctx, &core.DepositReq{
			Actor:          malicious,
			AccountAddress: account.Address,
			Source:         victimCustody.Address,
			Amount:         1000000,
		})
		assert.Equal(t, core.ErrUnauthorized, err)

		untouched, _ := l.tokens.Find(ctx, victimCustody.Address)
		assert.Equal(t, uint64(1000000000), untouched.Balance)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		user := id.GenTraceID()
		account := l.register(t, user)
		custody := l.custody(t, user, market.CollateralMint, 1000000)

		err := l.service.DepositCollateral(ctx, &core.DepositReq{
			Actor:          user,
			AccountAddress: account.Address,
			Source:         custody.Address,
		})
		assert.Equal(t, core.ErrInvalidAmount, err)
	})

	t.Run("wrong mint custody rejected", func(t *testing.T) {
		user := id.GenTraceID()
		account := l.register(t, user)
		custody := l.custody(t, user, market.LoanMint, 1000000)

		err := l.service.DepositCollateral(ctx, &core.DepositReq{
			Actor:          user,
			AccountAddress: account.Address,
			Source:         custody.Address,
			Amount:         1000000,
		})
		assert.Equal(t, core.ErrMintMismatch, err)
	})

	t.Run("deposit credits user and market", func(t *testing.T) {
		user := id.GenTraceID()
		account := l.register(t, user)
		custody := l.custody(t, user, market.CollateralMint, 1000000000)

		err := l.service.DepositCollateral(ctx, &core.DepositReq{
			Actor:          user,
			AccountAddress: account.Address,
			Source:         custody.Address,
			Amount:         1000000,
		})
		require.NoError(t, err)

		account, _ = l.accounts.FindByAddress(ctx, account.Address)
		assert.Equal(t, uint64(1000000), account.DepositedCollateralAmount)

		current, _ := l.markets.Find(ctx)
		assert.Equal(t, uint64(1000000), current.CollateralAmount)

		vault, _ := l.tokens.Find(ctx, market.CollateralVault)
		assert.Equal(t, uint64(1000000), vault.Balance)

		source, _ := l.tokens.Find(ctx, custody.Address)
		assert.Equal(t, uint64(999000000), source.Balance)
	})
}

func TestBorrowToken(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()
	authority := id.GenTraceID()
	market := l.initialize(t, authority)

	fund := func(t *testing.T, amount uint64) {
		source := l.custody(t, authority, market.LoanMint, amount)
		require.NoError(t, l.service.FundLoanVault(ctx, &core.FundVaultReq{
			Actor:  authority,
			Source: source.Address,
			Amount: amount,
		}))
	}
	fund(t, 100000000)

	deposit := func(t *testing.T, user string, amount uint64) *core.UserAccount {
		account := l.register(t, user)
		custody := l.custody(t, user, market.CollateralMint, amount)
		require.NoError(t, l.service.DepositCollateral(ctx, &core.DepositReq{
			Actor:          user,
			AccountAddress: account.Address,
			Source:         custody.Address,
			Amount:         amount,
		}))
		return account
	}

	t.Run("borrow beyond collateral cap rejected", func(t *testing.T) {
		user := id.GenTraceID()
		account := deposit(t, user, 100)
		destination := l.custody(t, user, market.LoanMint, 0)

		assert.Equal(t, uint64(83), market.MaxBorrowable(100))

		err := l.service.BorrowToken(ctx, &core.BorrowReq{
			Actor:          user,
			AccountAddress: account.Address,
			Destination:    destination.Address,
			Amount:         500000,
		})
		assert.Equal(t, core.ErrBorrowLimitExceeded, err)

		account, _ = l.accounts.FindByAddress(ctx, account.Address)
		assert.Equal(t, uint64(0), account.BorrowedAmount)
	})

	t.Run("cannot borrow against another user's account", func(t *testing.T) {
		victim, malicious := id.GenTraceID(), id.GenTraceID()
		victimAccount := deposit(t, victim, 1000000)
		maliciousDestination := l.custody(t, malicious, market.LoanMint, 0)

		err := l.service.BorrowToken(ctx, &core.BorrowReq{
			Actor:          malicious,
			AccountAddress: victimAccount.Address,
			Destination:    maliciousDestination.Address,
			Amount:         10,
		})
		assert.Equal(t, core.ErrUnauthorized, err)

		// even with the victim declared, the payout may not leave the owner
		err = l.service.BorrowToken(ctx, &core.BorrowReq{
			Actor:          victim,
			AccountAddress: victimAccount.Address,
			Destination:    maliciousDestination.Address,
			Amount:         10,
		})
		assert.Equal(t, core.ErrUnauthorized, err)
	})

	t.Run("wrong mint destination rejected", func(t *testing.T) {
		user := id.GenTraceID()
		account := deposit(t, user, 1200000)
		destination := l.custody(t, user, market.CollateralMint, 0)

		err := l.service.BorrowToken(ctx, &core.BorrowReq{
			Actor:          user,
			AccountAddress: account.Address,
			Destination:    destination.Address,
			Amount:         10,
		})
		assert.Equal(t, core.ErrMintMismatch, err)
	})

	t.Run("vault not owned by the market grants nothing", func(t *testing.T) {
		user := id.GenTraceID()
		account := deposit(t, user, 1200000)
		destination := l.custody(t, user, market.LoanMint, 0)

		vault := l.tokens.accounts[market.LoanVault]
		owner := vault.Owner
		vault.Owner = id.GenTraceID()
		defer func() { vault.Owner = owner }()

		err := l.service.BorrowToken(ctx, &core.BorrowReq{
			Actor:          user,
			AccountAddress: account.Address,
			Destination:    destination.Address,
			Amount:         10,
		})
		assert.Equal(t, core.ErrUnauthorized, err)
	})

	t.Run("borrow at the exact limit succeeds", func(t *testing.T) {
		user := id.GenTraceID()
		account := deposit(t, user, 1200000)
		destination := l.custody(t, user, market.LoanMint, 0)

		vaultBefore, _ := l.tokens.Find(ctx, market.LoanVault)

		err := l.service.BorrowToken(ctx, &core.BorrowReq{
			Actor:          user,
			AccountAddress: account.Address,
			Destination:    destination.Address,
			Amount:         1000000,
		})
		require.NoError(t, err)

		account, _ = l.accounts.FindByAddress(ctx, account.Address)
		assert.Equal(t, uint64(1000000), account.BorrowedAmount)

		destination, _ = l.tokens.Find(ctx, destination.Address)
		assert.Equal(t, uint64(1000000), destination.Balance)

		vaultAfter, _ := l.tokens.Find(ctx, market.LoanVault)
		assert.Equal(t, vaultBefore.Balance-1000000, vaultAfter.Balance)

		// one more unit breaks the 120% ratio
		err = l.service.BorrowToken(ctx, &core.BorrowReq{
			Actor:          user,
			AccountAddress: account.Address,
			Destination:    destination.Address,
			Amount:         1,
		})
		assert.Equal(t, core.ErrBorrowLimitExceeded, err)
	})

	t.Run("aggregates stay in sync", func(t *testing.T) {
		current, _ := l.markets.Find(ctx)
		accounts, _ := l.accounts.All(ctx)

		var deposited, borrowed uint64
		for _, account := range accounts {
			deposited += account.DepositedCollateralAmount
			borrowed += account.BorrowedAmount
		}

		assert.Equal(t, deposited, current.CollateralAmount)
		assert.Equal(t, borrowed, current.BorrowedAmount)
	})
}

func TestFundLoanVault(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()
	authority := id.GenTraceID()
	market := l.initialize(t, authority)

	t.Run("non-authority rejected", func(t *testing.T) {
		other := id.GenTraceID()
		source := l.custody(t, other, market.LoanMint, 5000000)

		err := l.service.FundLoanVault(ctx, &core.FundVaultReq{
			Actor:  other,
			Source: source.Address,
			Amount: 5000000,
		})
		assert.Equal(t, core.ErrUnauthorized, err)

		vault, _ := l.tokens.Find(ctx, market.LoanVault)
		assert.Equal(t, uint64(0), vault.Balance)
	})

	t.Run("authority tops up liquidity only", func(t *testing.T) {
		source := l.custody(t, authority, market.LoanMint, 5000000)

		err := l.service.FundLoanVault(ctx, &core.FundVaultReq{
			Actor:  authority,
			Source: source.Address,
			Amount: 5000000,
		})
		require.NoError(t, err)

		vault, _ := l.tokens.Find(ctx, market.LoanVault)
		assert.Equal(t, uint64(5000000), vault.Balance)

		current, _ := l.markets.Find(ctx)
		assert.Equal(t, uint64(0), current.BorrowedAmount)
		assert.Equal(t, uint64(0), current.CollateralAmount)
	})

	t.Run("borrow without liquidity rejected", func(t *testing.T) {
		l := newTestLedger()
		authority := id.GenTraceID()
		market := l.initialize(t, authority)

		user := id.GenTraceID()
		account := l.register(t, user)
		custody := l.custody(t, user, market.CollateralMint, 1200000)
		require.NoError(t, l.service.DepositCollateral(ctx, &core.DepositReq{
			Actor:          user,
			AccountAddress: account.Address,
			Source:         custody.Address,
			Amount:         1200000,
		}))

		destination := l.custody(t, user, market.LoanMint, 0)
		err := l.service.BorrowToken(ctx, &core.BorrowReq{
			Actor:          user,
			AccountAddress: account.Address,
			Destination:    destination.Address,
			Amount:         1000000,
		})
		assert.Equal(t, core.ErrInsufficientLiquidity, err)
	})
}

func TestMaxBorrowable(t *testing.T) {
	market := &core.Market{CollateralRatioBps: core.DefaultCollateralRatioBps}

	for _, deposited := range []uint64{0, 1, 83, 100, 1200000, 999999937, math.MaxUint64} {
		expected := new(big.Int).SetUint64(deposited)
		expected.Mul(expected, big.NewInt(core.BpsBase))
		expected.Div(expected, big.NewInt(core.DefaultCollateralRatioBps))

		assert.Equal(t, expected.Uint64(), market.MaxBorrowable(deposited))
	}
}
