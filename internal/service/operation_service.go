package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ledger-engine/internal/models"
	"ledger-engine/internal/repository"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidStateTransition = errors.New("invalid operation state transition")
)

const (
	maxRetries     = 5
	initialBackoff = 10 * time.Millisecond
)

// OperationService owns the operation lifecycle: creation with reservation
// and limit charge, acceptance with settlement, and the compensating revert.
type OperationService struct {
	tx         TxManager
	operations OperationRepository
	accounts   WalletAccountRepository
	trackers   LimitTrackerRepository
	enforcer   *BalanceEnforcer
	publisher  EventPublisher
	currencies CurrencyService
	log        *slog.Logger
}

func NewOperationService(
	tx TxManager,
	operations OperationRepository,
	accounts WalletAccountRepository,
	trackers LimitTrackerRepository,
	enforcer *BalanceEnforcer,
	publisher EventPublisher,
	currencies CurrencyService,
	log *slog.Logger,
) *OperationService {
	return &OperationService{
		tx:         tx,
		operations: operations,
		accounts:   accounts,
		trackers:   trackers,
		enforcer:   enforcer,
		publisher:  publisher,
		currencies: currencies,
		log:        log,
	}
}

// CreateOperation validates the input, charges the user's limit tracker,
// persists the PENDING record and reserves its value on every referenced
// wallet account, all within one unit of work.
func (s *OperationService) CreateOperation(ctx context.Context, in models.NewOperationInput) (*models.Operation, error) {
	op := "service.CreateOperation"
	log := s.log.With(slog.String("op", op))

	id, err := uuid.NewRandom()
	if err != nil {
		log.Error("failed to generate operation ID", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate operation ID: %w", err)
	}

	if in.UserLimitTrackerID != nil && len(in.AnalysisTags) == 0 {
		in.AnalysisTags = defaultAnalysisTags(time.Now().UTC())
	}

	operation, err := models.NewOperation(id, in)
	if err != nil {
		log.Warn("invalid operation input", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var created *models.Operation
	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		if operation.UserLimitTrackerID != nil {
			tracker, err := s.trackers.GetByIDForUpdate(ctx, tx, *operation.UserLimitTrackerID)
			if err != nil {
				return fmt.Errorf("failed to lock limit tracker: %w", err)
			}
			for _, tag := range operation.AnalysisTags {
				tracker.Charge(windowForTag(tag), operation.Value)
			}
			if _, err := s.trackers.UpdateUsed(ctx, tx, tracker); err != nil {
				return fmt.Errorf("failed to charge limit tracker: %w", err)
			}
		}

		created, err = s.operations.Create(ctx, tx, operation)
		if err != nil {
			return fmt.Errorf("failed to create operation: %w", err)
		}
		return s.enforcer.Reserve(ctx, tx, created)
	})
	if err != nil {
		log.Error("failed to create operation", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("operation created",
		slog.String("operation_id", created.ID.String()),
		slog.Int64("value", created.Value))
	return created, nil
}

// AcceptOperation transitions a PENDING operation to ACCEPTED and settles its
// reservation. Accepting an already-accepted operation is a no-op; accepting
// a reverted one is a state fault. After commit, beneficiary-side credits of
// asset-typed currencies trigger an average-cost recalculation.
func (s *OperationService) AcceptOperation(ctx context.Context, id uuid.UUID) (*models.Operation, error) {
	op := "service.AcceptOperation"
	log := s.log.With(slog.String("op", op), slog.String("operation_id", id.String()))

	var (
		accepted *models.Operation
		settled  bool
	)
	err := s.withConflictRetry(ctx, func() error {
		settled = false
		return s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
			operation, err := s.operations.GetByIDForUpdate(ctx, tx, id)
			if err != nil {
				return err
			}
			switch operation.State {
			case models.OperationStateAccepted:
				accepted = operation
				return nil
			case models.OperationStateReverted:
				return fmt.Errorf("%w: cannot accept reverted operation", ErrInvalidStateTransition)
			}

			if err := s.enforcer.Settle(ctx, tx, operation); err != nil {
				return err
			}
			if err := operation.Accept(); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidStateTransition, err)
			}
			accepted, err = s.operations.Update(ctx, tx, operation)
			if err != nil {
				return fmt.Errorf("failed to persist accepted state: %w", err)
			}
			settled = true
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrOperationNotFound) {
			log.Warn("operation not found")
			return nil, err
		}
		log.Error("failed to accept operation", slog.String("error", err.Error()))
		return nil, err
	}

	if !settled {
		log.Info("operation already accepted, no-op")
		return accepted, nil
	}

	log.Info("operation accepted")
	if err := s.triggerRecalculation(ctx, accepted); err != nil {
		log.Error("failed to publish recalculation trigger", slog.String("error", err.Error()))
		return accepted, err
	}
	return accepted, nil
}

// RevertOperation is the compensating transaction: it releases each present
// side's effects through the balance enforcer, marks the operation REVERTED
// and emits the Reverted event. Reverting an already-reverted operation
// returns the existing record unchanged.
func (s *OperationService) RevertOperation(ctx context.Context, id uuid.UUID) (*models.Operation, error) {
	op := "service.RevertOperation"
	log := s.log.With(slog.String("op", op), slog.String("operation_id", id.String()))

	var (
		reverted *models.Operation
		released bool
	)
	err := s.withConflictRetry(ctx, func() error {
		released = false
		return s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
			operation, err := s.operations.GetByIDForUpdate(ctx, tx, id)
			if err != nil {
				return err
			}
			if operation.State == models.OperationStateReverted {
				reverted = operation
				return nil
			}

			wasAccepted := operation.State == models.OperationStateAccepted
			if err := s.enforcer.Release(ctx, tx, operation, wasAccepted); err != nil {
				return err
			}
			if err := operation.Revert(); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidStateTransition, err)
			}
			reverted, err = s.operations.Update(ctx, tx, operation)
			if err != nil {
				return fmt.Errorf("failed to persist reverted state: %w", err)
			}
			released = true
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrOperationNotFound) {
			log.Warn("operation not found")
			return nil, err
		}
		log.Error("failed to revert operation", slog.String("error", err.Error()))
		return nil, err
	}

	if !released {
		log.Info("operation already reverted, no-op")
		return reverted, nil
	}

	var ownerSnapshot, beneficiarySnapshot *models.Operation
	if reverted.OwnerWalletAccountID != nil {
		ownerSnapshot = reverted
	}
	if reverted.BeneficiaryWalletAccountID != nil {
		beneficiarySnapshot = reverted
	}
	if err := s.publisher.PublishReverted(ctx, ownerSnapshot, beneficiarySnapshot); err != nil {
		log.Error("failed to publish reverted event", slog.String("error", err.Error()))
		return reverted, err
	}

	log.Info("operation reverted")
	return reverted, nil
}

// triggerRecalculation queues an average-cost recalculation for accepted
// beneficiary-side credits of asset-typed currencies. The paired reference
// operation, when present, rides along as the owner-side snapshot so the
// conversion price rule can use it.
func (s *OperationService) triggerRecalculation(ctx context.Context, operation *models.Operation) error {
	if operation.BeneficiaryWalletAccountID == nil {
		return nil
	}
	currency, err := s.currencies.GetByID(ctx, operation.CurrencyID)
	if err != nil {
		return fmt.Errorf("failed to resolve currency: %w", err)
	}
	if !currency.IsAsset() {
		return nil
	}

	var refOperation *models.Operation
	if operation.OperationRefID != nil {
		refOperation, err = s.operations.GetByID(ctx, *operation.OperationRefID)
		if err != nil {
			return fmt.Errorf("failed to resolve reference operation: %w", err)
		}
	}
	return s.publisher.PublishRecalculation(ctx, operation, refOperation)
}

// withConflictRetry re-runs fn with exponential backoff while it fails on a
// version conflict. Any other error aborts immediately.
func (s *OperationService) withConflictRetry(ctx context.Context, fn func() error) error {
	backoff := initialBackoff
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		lastErr = fn()
		if lastErr == nil || !errors.Is(lastErr, repository.ErrConcurrentModification) {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("failed after multiple retries: %w", lastErr)
}

// defaultAnalysisTags marks the windows an operation is charged against at
// creation time. The nightly window only applies to operations created inside
// the night interval.
func defaultAnalysisTags(now time.Time) []models.AnalysisTag {
	tags := []models.AnalysisTag{
		models.TagDailyIntervalLimitIncluded,
		models.TagMonthlyIntervalLimitIncluded,
		models.TagAnnualIntervalLimitIncluded,
	}
	if hour := now.Hour(); hour >= 20 || hour < 6 {
		tags = append(tags, models.TagNightlyIntervalLimitIncluded)
	}
	return tags
}

func windowForTag(tag models.AnalysisTag) models.LimitWindow {
	switch tag {
	case models.TagDailyIntervalLimitIncluded:
		return models.LimitWindowDaily
	case models.TagMonthlyIntervalLimitIncluded:
		return models.LimitWindowMonthly
	case models.TagAnnualIntervalLimitIncluded:
		return models.LimitWindowAnnual
	case models.TagNightlyIntervalLimitIncluded:
		return models.LimitWindowNightly
	}
	return ""
}
