package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type OperationState string

const (
	OperationStatePending  OperationState = "PENDING"
	OperationStateAccepted OperationState = "ACCEPTED"
	OperationStateReverted OperationState = "REVERTED"
)

// AnalysisTag marks a rolling window whose limit-tracker charge has not yet
// been released by the interval reconciler.
type AnalysisTag string

const (
	TagDailyIntervalLimitIncluded   AnalysisTag = "DAILY_INTERVAL_LIMIT_INCLUDED"
	TagMonthlyIntervalLimitIncluded AnalysisTag = "MONTHLY_INTERVAL_LIMIT_INCLUDED"
	TagAnnualIntervalLimitIncluded  AnalysisTag = "ANNUAL_INTERVAL_LIMIT_INCLUDED"
	TagNightlyIntervalLimitIncluded AnalysisTag = "NIGHTLY_INTERVAL_LIMIT_INCLUDED"
)

var (
	ErrValueNegative       = errors.New("operation value must not be negative")
	ErrFeeExceedsRawValue  = errors.New("fee must not exceed raw value")
	ErrNoSidePopulated     = errors.New("operation requires an owner or a beneficiary side")
	ErrMissingCurrency     = errors.New("operation requires a currency")
	ErrInvalidTransition   = errors.New("invalid operation state transition")
	ErrMissingTransactType = errors.New("operation requires a transaction type")
)

// Operation is the atomic double-entry record of a value movement between
// zero, one, or two wallet accounts. Value, RawValue and Fee are fixed-point
// integers in the currency's minor unit and never change after creation; only
// State and AnalysisTags mutate over the record's lifetime.
type Operation struct {
	ID                         uuid.UUID      `json:"id"`
	Value                      int64          `json:"value"`
	RawValue                   int64          `json:"rawValue"`
	Fee                        int64          `json:"fee"`
	State                      OperationState `json:"state"`
	OwnerID                    *uuid.UUID     `json:"ownerId,omitempty"`
	OwnerWalletAccountID       *uuid.UUID     `json:"ownerWalletAccountId,omitempty"`
	BeneficiaryID              *uuid.UUID     `json:"beneficiaryId,omitempty"`
	BeneficiaryWalletAccountID *uuid.UUID     `json:"beneficiaryWalletAccountId,omitempty"`
	CurrencyID                 uuid.UUID      `json:"currencyId"`
	TransactionTypeID          uuid.UUID      `json:"transactionTypeId"`
	OperationRefID             *uuid.UUID     `json:"operationRefId,omitempty"`
	UserLimitTrackerID         *uuid.UUID     `json:"userLimitTrackerId,omitempty"`
	AnalysisTags               []AnalysisTag  `json:"analysisTags"`
	CreatedAt                  time.Time      `json:"createdAt"`
	UpdatedAt                  time.Time      `json:"updatedAt"`
	Version                    int            `json:"version"`
}

// NewOperationInput carries the caller-supplied fields for CreateOperation.
// Value is derived as RawValue - Fee, never accepted from the caller.
type NewOperationInput struct {
	RawValue                   int64
	Fee                        int64
	OwnerID                    *uuid.UUID
	OwnerWalletAccountID       *uuid.UUID
	BeneficiaryID              *uuid.UUID
	BeneficiaryWalletAccountID *uuid.UUID
	CurrencyID                 uuid.UUID
	TransactionTypeID          uuid.UUID
	OperationRefID             *uuid.UUID
	UserLimitTrackerID         *uuid.UUID
	AnalysisTags               []AnalysisTag
}

func NewOperation(id uuid.UUID, in NewOperationInput) (*Operation, error) {
	if in.RawValue < 0 || in.Fee < 0 {
		return nil, ErrValueNegative
	}
	if in.Fee > in.RawValue {
		return nil, ErrFeeExceedsRawValue
	}
	if in.OwnerWalletAccountID == nil && in.BeneficiaryWalletAccountID == nil {
		return nil, ErrNoSidePopulated
	}
	if in.CurrencyID == uuid.Nil {
		return nil, ErrMissingCurrency
	}
	if in.TransactionTypeID == uuid.Nil {
		return nil, ErrMissingTransactType
	}
	now := time.Now().UTC()
	return &Operation{
		ID:                         id,
		Value:                      in.RawValue - in.Fee,
		RawValue:                   in.RawValue,
		Fee:                        in.Fee,
		State:                      OperationStatePending,
		OwnerID:                    in.OwnerID,
		OwnerWalletAccountID:       in.OwnerWalletAccountID,
		BeneficiaryID:              in.BeneficiaryID,
		BeneficiaryWalletAccountID: in.BeneficiaryWalletAccountID,
		CurrencyID:                 in.CurrencyID,
		TransactionTypeID:          in.TransactionTypeID,
		OperationRefID:             in.OperationRefID,
		UserLimitTrackerID:         in.UserLimitTrackerID,
		AnalysisTags:               in.AnalysisTags,
		CreatedAt:                  now,
		UpdatedAt:                  now,
		Version:                    1,
	}, nil
}

// IsTerminal reports whether no further transition is defined out of the
// current state. Revert is the only path out of ACCEPTED and is handled by
// the revert use case, not by CanTransitionTo.
func (o *Operation) IsTerminal() bool {
	return o.State == OperationStateAccepted || o.State == OperationStateReverted
}

func (o *Operation) CanTransitionTo(target OperationState) bool {
	if o.State == OperationStatePending {
		return target == OperationStateAccepted || target == OperationStateReverted
	}
	// ACCEPTED -> REVERTED is reserved for the revert use case.
	return o.State == OperationStateAccepted && target == OperationStateReverted
}

// Accept transitions PENDING -> ACCEPTED.
func (o *Operation) Accept() error {
	if o.State != OperationStatePending {
		return ErrInvalidTransition
	}
	o.State = OperationStateAccepted
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Revert transitions PENDING or ACCEPTED -> REVERTED. Reverting an already
// reverted operation is a no-op so that revert requests tolerate at-least-once
// delivery.
func (o *Operation) Revert() error {
	if o.State == OperationStateReverted {
		return nil
	}
	if !o.CanTransitionTo(OperationStateReverted) {
		return ErrInvalidTransition
	}
	o.State = OperationStateReverted
	o.UpdatedAt = time.Now().UTC()
	return nil
}

func (o *Operation) HasTag(tag AnalysisTag) bool {
	for _, t := range o.AnalysisTags {
		if t == tag {
			return true
		}
	}
	return false
}

// RemoveTag deletes tag from the operation's analysis tags. Removing an
// absent tag is a no-op, which is what makes the reconciler's sweep
// idempotent per operation.
func (o *Operation) RemoveTag(tag AnalysisTag) {
	tags := o.AnalysisTags[:0]
	for _, t := range o.AnalysisTags {
		if t != tag {
			tags = append(tags, t)
		}
	}
	o.AnalysisTags = tags
	o.UpdatedAt = time.Now().UTC()
}
