package api

import (
	"net/http"

	"ledger-engine/internal/service"
)

func NewRouter(operations service.OperationRepository, accounts service.WalletAccountRepository) *http.ServeMux {
	handler := NewLedgerHandler(operations, accounts)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/operations", handler.ListOperations)
	mux.HandleFunc("GET /api/v1/operations/{id}", handler.GetOperation)
	mux.HandleFunc("GET /api/v1/wallet-accounts/{id}", handler.GetWalletAccount)
	return mux
}
