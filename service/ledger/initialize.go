package ledger

import (
	"context"

	"lending/core"
	"lending/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

func (s *ledgerService) InitializeMarket(ctx context.Context, req *core.InitializeMarketReq) (*core.Market, error) {
	log := logger.FromContext(ctx).WithField("event", "initialize_market")

	if req.Actor == "" {
		return nil, core.ErrUnauthorized
	}

	if req.CollateralMint == req.LoanMint {
		return nil, core.ErrInvalidConfiguration
	}

	existing, err := s.markets.Find(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.Find")
		return nil, err
	}

	if existing.ID > 0 {
		return nil, core.ErrAlreadyInitialized
	}

	address := id.Derive(core.MarketTag)
	market := &core.Market{
		Address:            address,
		Authority:          req.Actor,
		CollateralMint:     req.CollateralMint,
		LoanMint:           req.LoanMint,
		CollateralVault:    id.Derive(core.CollateralVaultTag, address),
		LoanVault:          id.Derive(core.LoanVaultTag, address),
		CollateralRatioBps: core.DefaultCollateralRatioBps,
		InterestRateBps:    core.DefaultInterestRateBps,
	}

	vaults := []*core.TokenAccount{
		{Address: market.CollateralVault, Owner: market.Address, Mint: market.CollateralMint},
		{Address: market.LoanVault, Owner: market.Address, Mint: market.LoanMint},
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.markets.Create(ctx, tx, market); err != nil {
			return err
		}

		for _, vault := range vaults {
			if err := s.tokens.Create(ctx, tx, vault); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		log.WithError(err).Errorln("initialize market")
		return nil, err
	}

	log.Infoln("market initialized at", market.Address)
	return market, nil
}
