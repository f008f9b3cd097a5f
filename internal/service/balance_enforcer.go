package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ledger-engine/internal/models"
)

var (
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrWalletAccountInactive = errors.New("wallet account is inactive")
)

// ReservePolicy reports whether the owner-side reservation must be covered by
// available balance. The rule is currency/transaction-type dependent and is
// supplied by the calling workflow.
type ReservePolicy func(op *models.Operation, account *models.WalletAccount) bool

// RequireCover is the default policy: owner-side reservations must always be
// backed by available funds.
func RequireCover(*models.Operation, *models.WalletAccount) bool { return true }

// BalanceEnforcer applies an operation's effects onto wallet account balances.
// All three calls run inside a caller-owned transaction in which the
// operation's current state has already been re-read under lock, so each is
// applied exactly once per operation per state transition.
type BalanceEnforcer struct {
	accounts WalletAccountRepository
	policy   ReservePolicy
	log      *slog.Logger
}

func NewBalanceEnforcer(accounts WalletAccountRepository, policy ReservePolicy, log *slog.Logger) *BalanceEnforcer {
	if policy == nil {
		policy = RequireCover
	}
	return &BalanceEnforcer{
		accounts: accounts,
		policy:   policy,
		log:      log,
	}
}

// Reserve increments the pending amount on each side the operation
// references. On the owner (debit) side the reservation fails with
// ErrInsufficientFunds when the policy requires available balance to cover it.
func (e *BalanceEnforcer) Reserve(ctx context.Context, tx *sql.Tx, op *models.Operation) error {
	op2 := "service.BalanceEnforcer.Reserve"
	log := e.log.With(slog.String("op", op2), slog.String("operation_id", op.ID.String()))

	if op.OwnerWalletAccountID != nil {
		account, err := e.accounts.GetByIDForUpdate(ctx, tx, *op.OwnerWalletAccountID)
		if err != nil {
			return fmt.Errorf("failed to lock owner account: %w", err)
		}
		if !account.IsActive() {
			return ErrWalletAccountInactive
		}
		if e.policy(op, account) && account.Available() < op.Value {
			log.Warn("reservation rejected", slog.Int64("available", account.Available()), slog.Int64("value", op.Value))
			return ErrInsufficientFunds
		}
		account.PendingAmount += op.Value
		if _, err := e.accounts.UpdateBalances(ctx, tx, account); err != nil {
			return fmt.Errorf("failed to reserve on owner account: %w", err)
		}
	}

	if op.BeneficiaryWalletAccountID != nil {
		account, err := e.accounts.GetByIDForUpdate(ctx, tx, *op.BeneficiaryWalletAccountID)
		if err != nil {
			return fmt.Errorf("failed to lock beneficiary account: %w", err)
		}
		if !account.IsActive() {
			return ErrWalletAccountInactive
		}
		account.PendingAmount += op.Value
		if _, err := e.accounts.UpdateBalances(ctx, tx, account); err != nil {
			return fmt.Errorf("failed to reserve on beneficiary account: %w", err)
		}
	}

	log.Info("reservation applied", slog.Int64("value", op.Value))
	return nil
}

// Settle moves the reserved amount out of pendingAmount: the owner side loses
// both balance and reservation, the beneficiary side gains balance and drops
// its reservation.
func (e *BalanceEnforcer) Settle(ctx context.Context, tx *sql.Tx, op *models.Operation) error {
	op2 := "service.BalanceEnforcer.Settle"
	log := e.log.With(slog.String("op", op2), slog.String("operation_id", op.ID.String()))

	if op.OwnerWalletAccountID != nil {
		if err := e.adjust(ctx, tx, *op.OwnerWalletAccountID, -op.Value, -op.Value); err != nil {
			return fmt.Errorf("failed to settle owner account: %w", err)
		}
	}
	if op.BeneficiaryWalletAccountID != nil {
		if err := e.adjust(ctx, tx, *op.BeneficiaryWalletAccountID, op.Value, -op.Value); err != nil {
			return fmt.Errorf("failed to settle beneficiary account: %w", err)
		}
	}

	log.Info("settlement applied", slog.Int64("value", op.Value))
	return nil
}

// Release backs an operation's effects out during a revert. A still-pending
// operation only gives back its reservation; an already-accepted one instead
// refunds settled balance to the owner and takes the credited amount back
// from the beneficiary.
func (e *BalanceEnforcer) Release(ctx context.Context, tx *sql.Tx, op *models.Operation, wasAccepted bool) error {
	op2 := "service.BalanceEnforcer.Release"
	log := e.log.With(slog.String("op", op2), slog.String("operation_id", op.ID.String()))

	if op.OwnerWalletAccountID != nil {
		deltaBalance, deltaPending := int64(0), -op.Value
		if wasAccepted {
			deltaBalance, deltaPending = op.Value, 0
		}
		if err := e.adjust(ctx, tx, *op.OwnerWalletAccountID, deltaBalance, deltaPending); err != nil {
			return fmt.Errorf("failed to release owner account: %w", err)
		}
	}
	if op.BeneficiaryWalletAccountID != nil {
		deltaBalance, deltaPending := int64(0), -op.Value
		if wasAccepted {
			deltaBalance, deltaPending = -op.Value, 0
		}
		if err := e.adjust(ctx, tx, *op.BeneficiaryWalletAccountID, deltaBalance, deltaPending); err != nil {
			return fmt.Errorf("failed to release beneficiary account: %w", err)
		}
	}

	log.Info("release applied", slog.Int64("value", op.Value), slog.Bool("was_accepted", wasAccepted))
	return nil
}

func (e *BalanceEnforcer) adjust(ctx context.Context, tx *sql.Tx, accountID uuid.UUID, deltaBalance, deltaPending int64) error {
	account, err := e.accounts.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return err
	}
	account.Balance += deltaBalance
	account.PendingAmount += deltaPending
	_, err = e.accounts.UpdateBalances(ctx, tx, account)
	return err
}
