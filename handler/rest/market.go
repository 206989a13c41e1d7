package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/views"
)

func marketHandler(marketStore core.IMarketStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		market, err := marketStore.Find(r.Context())
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if market.ID == 0 {
			render.Error(w, core.ErrMarketNotFound)
			return
		}

		render.JSON(w, views.MarketView(market))
	}
}

func vaultsHandler(marketStore core.IMarketStore, tokenStore core.ITokenStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		market, err := marketStore.Find(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if market.ID == 0 {
			render.Error(w, core.ErrMarketNotFound)
			return
		}

		vaultViews := make([]*views.Vault, 0, 2)
		for _, address := range []string{market.CollateralVault, market.LoanVault} {
			vault, err := tokenStore.Find(ctx, address)
			if err != nil {
				render.BadRequest(w, err)
				return
			}

			vaultViews = append(vaultViews, views.VaultView(vault))
		}

		render.JSON(w, vaultViews)
	}
}
