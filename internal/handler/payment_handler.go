/*
Package handler provides the HTTP routes of the coordination gateway.

This file contains the wallet routes: top-up, transfer, and the paginated
transaction history. Payment processing itself lives in the backend; the
gateway only validates shape and forwards.
*/
package handler

import (
	"net/http"
	"strconv"

	"pandacare/internal/app/backend"
	"pandacare/internal/pkg/errs"
	"pandacare/internal/pkg/req"
	"pandacare/internal/pkg/resp"
)

const (
	defaultTransactionPageSize = 10
	maxTransactionPageSize     = 100
)

// HandleTopUp forwards a wallet top-up.
func HandleTopUp(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		var request backend.TopUpRequest
		if bindErr := req.BindJSON(w, r, &request); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}
		if request.Amount <= 0 || request.Method == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		result, err := deps.Backend.TopUp(r.Context(), token, request)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, result)
	}
}

// HandleTransfer forwards a wallet transfer.
func HandleTransfer(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		var request backend.TransferRequest
		if bindErr := req.BindJSON(w, r, &request); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}
		if request.Amount <= 0 || request.ReceiverEmail == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		result, err := deps.Backend.Transfer(r.Context(), token, request)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, result)
	}
}

// HandleTransactions fetches one page of the wallet ledger.
func HandleTransactions(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}

		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		if size < 1 {
			size = defaultTransactionPageSize
		}
		if size > maxTransactionPageSize {
			size = maxTransactionPageSize
		}

		transactions, err := deps.Backend.GetTransactions(r.Context(), token, page, size)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, transactions)
	}
}
