package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ledger-engine/internal/models"
	"ledger-engine/internal/repository"
)

// sweepWindow pairs a limit window with the age an accepted operation must
// reach before its charge is released.
type sweepWindow struct {
	window   models.LimitWindow
	boundary func(now time.Time) time.Time
}

var sweepWindows = []sweepWindow{
	{models.LimitWindowDaily, func(now time.Time) time.Time { return now.Add(-24 * time.Hour) }},
	{models.LimitWindowNightly, func(now time.Time) time.Time { return now.Add(-12 * time.Hour) }},
	{models.LimitWindowMonthly, func(now time.Time) time.Time { return now.AddDate(0, -1, 0) }},
	{models.LimitWindowAnnual, func(now time.Time) time.Time { return now.AddDate(-1, 0, 0) }},
}

// ReconcilerService is the corrective background sweep that releases expired
// limit-tracker charges. Each window kind is swept independently; a fault in
// one kind aborts that kind's sweep but not the others.
type ReconcilerService struct {
	tx         TxManager
	operations OperationRepository
	trackers   LimitTrackerRepository
	pageSize   int
	now        func() time.Time
	log        *slog.Logger
}

func NewReconcilerService(
	tx TxManager,
	operations OperationRepository,
	trackers LimitTrackerRepository,
	pageSize int,
	log *slog.Logger,
) *ReconcilerService {
	if pageSize < 1 {
		pageSize = 100
	}
	return &ReconcilerService{
		tx:         tx,
		operations: operations,
		trackers:   trackers,
		pageSize:   pageSize,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

// ReconcileIntervalLimits runs one sweep pass over every window kind. The
// pass is safe to re-run at any time: released operations lose their tag and
// are not selected again.
func (s *ReconcilerService) ReconcileIntervalLimits(ctx context.Context) error {
	op := "service.ReconcileIntervalLimits"
	log := s.log.With(slog.String("op", op))

	var errs []error
	for _, w := range sweepWindows {
		released, err := s.sweep(ctx, w)
		if err != nil {
			log.Error("window sweep aborted",
				slog.String("window", string(w.window)),
				slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s sweep: %w", w.window, err))
			continue
		}
		log.Info("window sweep finished",
			slog.String("window", string(w.window)),
			slog.Int("released", released))
	}
	return errors.Join(errs...)
}

// sweep pages through tag-bearing accepted operations older than the window
// boundary and releases each one's charge. No transaction spans the whole
// sweep; interruption between pages leaves valid partial progress.
func (s *ReconcilerService) sweep(ctx context.Context, w sweepWindow) (int, error) {
	tag := w.window.Tag()
	filter := models.OperationFilter{
		State:         models.OperationStateAccepted,
		AnalysisTag:   tag,
		CreatedBefore: w.boundary(s.now()),
	}
	// Released operations drop out of the filter, so the scan always asks for
	// the first page until it comes back empty.
	req := models.PageRequest{Page: 1, PageSize: s.pageSize, Sort: "created_at", Order: models.OrderAsc}

	released := 0
	for {
		if err := ctx.Err(); err != nil {
			return released, err
		}
		page, err := s.operations.List(ctx, filter, req)
		if err != nil {
			return released, fmt.Errorf("failed to list operations: %w", err)
		}
		if len(page.Data) == 0 {
			return released, nil
		}
		for i := range page.Data {
			if err := s.releaseCharge(ctx, w.window, tag, &page.Data[i]); err != nil {
				return released, err
			}
			released++
		}
	}
}

// releaseCharge is one idempotent unit of work per operation: decrement the
// tracker's counter (floored at zero) and clear the operation's tag in a
// single transaction. A missing tracker is a data-integrity fault, never
// skipped.
func (s *ReconcilerService) releaseCharge(ctx context.Context, window models.LimitWindow, tag models.AnalysisTag, scanned *models.Operation) error {
	return s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		operation, err := s.operations.GetByIDForUpdate(ctx, tx, scanned.ID)
		if err != nil {
			return err
		}
		if !operation.HasTag(tag) {
			// Already released by a concurrent or earlier pass.
			return nil
		}
		if operation.UserLimitTrackerID == nil {
			return fmt.Errorf("operation %s carries %s without a limit tracker: %w",
				operation.ID, tag, repository.ErrLimitTrackerNotFound)
		}

		tracker, err := s.trackers.GetByIDForUpdate(ctx, tx, *operation.UserLimitTrackerID)
		if err != nil {
			return err
		}
		tracker.Release(window, operation.Value)
		if _, err := s.trackers.UpdateUsed(ctx, tx, tracker); err != nil {
			return fmt.Errorf("failed to release tracker charge: %w", err)
		}

		operation.RemoveTag(tag)
		if _, err := s.operations.Update(ctx, tx, operation); err != nil {
			return fmt.Errorf("failed to clear analysis tag: %w", err)
		}
		return nil
	})
}
