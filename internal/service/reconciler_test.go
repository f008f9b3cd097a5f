package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockrepository "ledger-engine/internal/mock/mock_repository"
	"ledger-engine/internal/models"
	"ledger-engine/internal/repository"
)

func newReconcilerFixture(t *testing.T, ctrl *gomock.Controller, operations *operationStore, trackers *trackerStore, now time.Time) *ReconcilerService {
	t.Helper()

	mockTx := mockrepository.NewMockTxManager(ctrl)
	passthroughTx(mockTx)

	mockOperations := mockrepository.NewMockOperationRepository(ctrl)
	operations.bind(t, mockOperations)
	mockTrackers := mockrepository.NewMockLimitTrackerRepository(ctrl)
	trackers.bind(t, mockTrackers)

	svc := NewReconcilerService(mockTx, mockOperations, mockTrackers, 10, slog.Default())
	svc.now = func() time.Time { return now }
	return svc
}

func expiredOperation(value int64, createdAgo time.Duration, now time.Time, trackerID *uuid.UUID, tags ...models.AnalysisTag) *models.Operation {
	ownerID := uuid.New()
	return &models.Operation{
		ID:                   uuid.New(),
		Value:                value,
		RawValue:             value,
		State:                models.OperationStateAccepted,
		OwnerWalletAccountID: &ownerID,
		CurrencyID:           uuid.New(),
		UserLimitTrackerID:   trackerID,
		AnalysisTags:         tags,
		CreatedAt:            now.Add(-createdAgo),
	}
}

func TestReconcilerService_ReconcileIntervalLimits(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("releases expired charges and floors the counter at zero", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		trackerID := uuid.New()
		trackers := newTrackerStore(&models.UserLimitTracker{ID: trackerID, UsedDailyLimit: 100})

		expired := expiredOperation(1000, 48*time.Hour, now, &trackerID, models.TagDailyIntervalLimitIncluded)
		recent := expiredOperation(500, time.Hour, now, &trackerID, models.TagDailyIntervalLimitIncluded)
		operations := newOperationStore(expired, recent)

		svc := newReconcilerFixture(t, ctrl, operations, trackers, now)
		require.NoError(t, svc.ReconcileIntervalLimits(context.Background()))

		// The release is larger than the counter, so the floor applies.
		assert.Equal(t, int64(0), trackers.get(trackerID).UsedDailyLimit)
		assert.False(t, operations.get(expired.ID).HasTag(models.TagDailyIntervalLimitIncluded))

		// Operations still inside the window keep their charge.
		assert.True(t, operations.get(recent.ID).HasTag(models.TagDailyIntervalLimitIncluded))
	})

	t.Run("a second pass performs no further mutations", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		trackerID := uuid.New()
		trackers := newTrackerStore(&models.UserLimitTracker{ID: trackerID, UsedDailyLimit: 1000, UsedMonthlyLimit: 1000})

		expired := expiredOperation(300, 40*24*time.Hour, now, &trackerID,
			models.TagDailyIntervalLimitIncluded, models.TagMonthlyIntervalLimitIncluded)
		operations := newOperationStore(expired)

		svc := newReconcilerFixture(t, ctrl, operations, trackers, now)
		require.NoError(t, svc.ReconcileIntervalLimits(context.Background()))

		assert.Equal(t, int64(700), trackers.get(trackerID).UsedDailyLimit)
		assert.Equal(t, int64(700), trackers.get(trackerID).UsedMonthlyLimit)
		opWrites, trackerWrites := operations.writes, trackers.writes

		require.NoError(t, svc.ReconcileIntervalLimits(context.Background()))
		assert.Equal(t, opWrites, operations.writes)
		assert.Equal(t, trackerWrites, trackers.writes)
	})

	t.Run("each window expires on its own boundary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		trackerID := uuid.New()
		trackers := newTrackerStore(&models.UserLimitTracker{
			ID:               trackerID,
			UsedDailyLimit:   500,
			UsedMonthlyLimit: 500,
			UsedAnnualLimit:  500,
			UsedNightlyLimit: 500,
		})

		// Two days old: past the daily and nightly boundaries, inside the
		// monthly and annual ones.
		op := expiredOperation(200, 48*time.Hour, now, &trackerID,
			models.TagDailyIntervalLimitIncluded,
			models.TagNightlyIntervalLimitIncluded,
			models.TagMonthlyIntervalLimitIncluded,
			models.TagAnnualIntervalLimitIncluded)
		operations := newOperationStore(op)

		svc := newReconcilerFixture(t, ctrl, operations, trackers, now)
		require.NoError(t, svc.ReconcileIntervalLimits(context.Background()))

		tracker := trackers.get(trackerID)
		assert.Equal(t, int64(300), tracker.UsedDailyLimit)
		assert.Equal(t, int64(300), tracker.UsedNightlyLimit)
		assert.Equal(t, int64(500), tracker.UsedMonthlyLimit)
		assert.Equal(t, int64(500), tracker.UsedAnnualLimit)

		stored := operations.get(op.ID)
		assert.False(t, stored.HasTag(models.TagDailyIntervalLimitIncluded))
		assert.False(t, stored.HasTag(models.TagNightlyIntervalLimitIncluded))
		assert.True(t, stored.HasTag(models.TagMonthlyIntervalLimitIncluded))
		assert.True(t, stored.HasTag(models.TagAnnualIntervalLimitIncluded))
	})

	t.Run("missing tracker aborts its window but not the others", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		trackerID := uuid.New()
		trackers := newTrackerStore(&models.UserLimitTracker{ID: trackerID, UsedMonthlyLimit: 400})

		// Accepted charge-bearing operation with no tracker reference is a
		// data-integrity fault, not something to skip over.
		orphan := expiredOperation(100, 48*time.Hour, now, nil, models.TagDailyIntervalLimitIncluded)
		monthly := expiredOperation(400, 40*24*time.Hour, now, &trackerID, models.TagMonthlyIntervalLimitIncluded)
		operations := newOperationStore(orphan, monthly)

		svc := newReconcilerFixture(t, ctrl, operations, trackers, now)
		err := svc.ReconcileIntervalLimits(context.Background())

		assert.ErrorIs(t, err, repository.ErrLimitTrackerNotFound)

		// The orphan keeps its tag for a later corrected pass.
		assert.True(t, operations.get(orphan.ID).HasTag(models.TagDailyIntervalLimitIncluded))

		// The monthly window still swept to completion.
		assert.Equal(t, int64(0), trackers.get(trackerID).UsedMonthlyLimit)
		assert.False(t, operations.get(monthly.ID).HasTag(models.TagMonthlyIntervalLimitIncluded))
	})

	t.Run("cancelled context stops the sweep", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		trackerID := uuid.New()
		trackers := newTrackerStore(&models.UserLimitTracker{ID: trackerID, UsedDailyLimit: 100})
		op := expiredOperation(100, 48*time.Hour, now, &trackerID, models.TagDailyIntervalLimitIncluded)
		operations := newOperationStore(op)

		svc := newReconcilerFixture(t, ctrl, operations, trackers, now)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := svc.ReconcileIntervalLimits(ctx)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, int64(100), trackers.get(trackerID).UsedDailyLimit)
	})
}
