package models

import (
	"time"

	"github.com/google/uuid"
)

type WalletAccountState string

const (
	WalletAccountStateActive   WalletAccountState = "ACTIVE"
	WalletAccountStateInactive WalletAccountState = "INACTIVE"
)

// WalletAccount holds the settled balance, the pending reservation and, for
// asset-typed currencies, the weighted average acquisition cost of one
// (wallet, currency) pair. All amounts are fixed-point integers in the
// currency's minor unit.
type WalletAccount struct {
	ID            uuid.UUID          `json:"id"`
	WalletID      uuid.UUID          `json:"walletId"`
	CurrencyID    uuid.UUID          `json:"currencyId"`
	Balance       int64              `json:"balance"`
	PendingAmount int64              `json:"pendingAmount"`
	AveragePrice  int64              `json:"averagePrice"`
	State         WalletAccountState `json:"state"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Version       int                `json:"version"`
}

func (a *WalletAccount) IsActive() bool {
	return a.State == WalletAccountStateActive
}

// Available returns the settled funds not covered by open reservations.
func (a *WalletAccount) Available() int64 {
	return a.Balance - a.PendingAmount
}

// CheckConservation reports whether the account satisfies the ledger's core
// conservation law (balance and pending amount both non-negative). Callers
// must verify this before committing any mutation.
func (a *WalletAccount) CheckConservation() bool {
	return a.Balance >= 0 && a.PendingAmount >= 0
}
