package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/request"
	"lending/handler/views"
	"lending/pkg/number"
)

func actorFrom(r *http.Request) (string, bool) {
	return request.NewContext(r.Context()).GetActor()
}

func initializeHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			render.Error(w, core.ErrUnauthorized)
			return
		}

		var body struct {
			CollateralMint string `json:"collateral_mint,omitempty" valid:"uuid,required"`
			LoanMint       string `json:"loan_mint,omitempty" valid:"uuid,required"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		market, err := ledgerz.InitializeMarket(r.Context(), &core.InitializeMarketReq{
			Actor:          actor,
			CollateralMint: body.CollateralMint,
			LoanMint:       body.LoanMint,
		})
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.MarketView(market))
	}
}

func registerHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			render.Error(w, core.ErrUnauthorized)
			return
		}

		var body struct {
			User           string `json:"user,omitempty" valid:"uuid,required"`
			AccountAddress string `json:"account_address,omitempty" valid:"uuid,required"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		account, err := ledgerz.CreateUserAccount(r.Context(), &core.CreateUserAccountReq{
			Actor:          actor,
			User:           body.User,
			AccountAddress: body.AccountAddress,
		})
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, account)
	}
}

func depositHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			render.Error(w, core.ErrUnauthorized)
			return
		}

		var body struct {
			AccountAddress string `json:"account_address,omitempty" valid:"uuid,required"`
			Source         string `json:"source,omitempty" valid:"uuid,required"`
			Amount         string `json:"amount,omitempty" valid:"required"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := number.ParseAmount(body.Amount)
		if err != nil {
			render.Error(w, core.ErrInvalidAmount)
			return
		}

		if err := ledgerz.DepositCollateral(r.Context(), &core.DepositReq{
			Actor:          actor,
			AccountAddress: body.AccountAddress,
			Source:         body.Source,
			Amount:         amount,
		}); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func borrowHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			render.Error(w, core.ErrUnauthorized)
			return
		}

		var body struct {
			AccountAddress string `json:"account_address,omitempty" valid:"uuid,required"`
			Destination    string `json:"destination,omitempty" valid:"uuid,required"`
			Amount         string `json:"amount,omitempty" valid:"required"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := number.ParseAmount(body.Amount)
		if err != nil {
			render.Error(w, core.ErrInvalidAmount)
			return
		}

		if err := ledgerz.BorrowToken(r.Context(), &core.BorrowReq{
			Actor:          actor,
			AccountAddress: body.AccountAddress,
			Destination:    body.Destination,
			Amount:         amount,
		}); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func fundHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			render.Error(w, core.ErrUnauthorized)
			return
		}

		var body struct {
			Source string `json:"source,omitempty" valid:"uuid,required"`
			Amount string `json:"amount,omitempty" valid:"required"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := number.ParseAmount(body.Amount)
		if err != nil {
			render.Error(w, core.ErrInvalidAmount)
			return
		}

		if err := ledgerz.FundLoanVault(r.Context(), &core.FundVaultReq{
			Actor:  actor,
			Source: body.Source,
			Amount: amount,
		}); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}
