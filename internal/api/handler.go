package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"ledger-engine/internal/models"
	"ledger-engine/internal/repository"
	"ledger-engine/internal/service"
)

// LedgerHandler exposes the query repository for reporting. Read-only: every
// mutation goes through the event-driven use cases, never through HTTP.
type LedgerHandler struct {
	operations service.OperationRepository
	accounts   service.WalletAccountRepository
}

func NewLedgerHandler(operations service.OperationRepository, accounts service.WalletAccountRepository) *LedgerHandler {
	return &LedgerHandler{
		operations: operations,
		accounts:   accounts,
	}
}

func (h *LedgerHandler) ListOperations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.OperationFilter{
		State:           models.OperationState(q.Get("state")),
		AnalysisTag:     models.AnalysisTag(q.Get("tag")),
		WalletAccountID: q.Get("walletAccountId"),
		CurrencyID:      q.Get("currencyId"),
	}
	req := models.PageRequest{
		Page:     intQuery(q.Get("page"), 1),
		PageSize: intQuery(q.Get("pageSize"), 50),
		Sort:     q.Get("sort"),
		Order:    models.SortOrder(q.Get("order")),
	}

	page, err := h.operations.List(r.Context(), filter, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

func (h *LedgerHandler) GetOperation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid operation ID", http.StatusBadRequest)
		return
	}

	operation, err := h.operations.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOperationNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, operation)
}

func (h *LedgerHandler) GetWalletAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid wallet account ID", http.StatusBadRequest)
		return
	}

	account, err := h.accounts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWalletAccountNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, account)
}

func intQuery(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
