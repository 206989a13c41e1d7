package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/views"

	"github.com/go-chi/chi"
)

func accountHandler(marketStore core.IMarketStore, accountStore core.IAccountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := chi.URLParam(r, "user")

		market, err := marketStore.Find(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if market.ID == 0 {
			render.Error(w, core.ErrMarketNotFound)
			return
		}

		account, err := accountStore.Find(ctx, user)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if account.ID == 0 {
			render.Error(w, core.ErrAccountNotFound)
			return
		}

		render.JSON(w, views.AccountView(market, account))
	}
}
