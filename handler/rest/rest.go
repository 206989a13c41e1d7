package rest

import (
	"errors"
	"net/http"

	"lending/core"
	"lending/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	marketStore core.IMarketStore,
	accountStore core.IAccountStore,
	tokenStore core.ITokenStore,
	ledgerz core.ILedgerService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/market", marketHandler(marketStore))
	router.Get("/market/vaults", vaultsHandler(marketStore, tokenStore))
	router.Get("/accounts/{user}", accountHandler(marketStore, accountStore))

	router.Post("/market", initializeHandler(ledgerz))
	router.Post("/accounts", registerHandler(ledgerz))
	router.Post("/deposits", depositHandler(ledgerz))
	router.Post("/borrows", borrowHandler(ledgerz))
	router.Post("/vault-funding", fundHandler(ledgerz))

	return router
}
