package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"ledger-engine/internal/models"
)

const limitTrackerColumns = `id, user_id, used_daily_limit, used_monthly_limit, used_annual_limit,
	used_nightly_limit, period_start, created_at, updated_at, version`

type LimitTrackerRepository struct {
	db *sql.DB
}

func NewLimitTrackerRepository(db *sql.DB) *LimitTrackerRepository {
	return &LimitTrackerRepository{db: db}
}

func (r *LimitTrackerRepository) Create(ctx context.Context, tracker *models.UserLimitTracker) (*models.UserLimitTracker, error) {
	query := `INSERT INTO user_limit_trackers (` + limitTrackerColumns + `)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				 RETURNING ` + limitTrackerColumns

	return scanLimitTracker(r.db.QueryRowContext(
		ctx,
		query,
		tracker.ID,
		tracker.UserID,
		tracker.UsedDailyLimit,
		tracker.UsedMonthlyLimit,
		tracker.UsedAnnualLimit,
		tracker.UsedNightlyLimit,
		tracker.PeriodStart,
		tracker.CreatedAt,
		tracker.UpdatedAt,
		tracker.Version,
	))
}

func (r *LimitTrackerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserLimitTracker, error) {
	query := `SELECT ` + limitTrackerColumns + ` FROM user_limit_trackers WHERE id = $1`
	tracker, err := scanLimitTracker(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLimitTrackerNotFound
		}
		return nil, err
	}
	return tracker, nil
}

func (r *LimitTrackerRepository) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*models.UserLimitTracker, error) {
	query := `SELECT ` + limitTrackerColumns + ` FROM user_limit_trackers WHERE id = $1 FOR UPDATE`
	tracker, err := scanLimitTracker(on(r.db, tx).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLimitTrackerNotFound
		}
		return nil, err
	}
	return tracker, nil
}

// UpdateUsed persists the four window counters under the tracker's version
// guard.
func (r *LimitTrackerRepository) UpdateUsed(ctx context.Context, tx *sql.Tx, tracker *models.UserLimitTracker) (*models.UserLimitTracker, error) {
	query := `UPDATE user_limit_trackers SET used_daily_limit = $1, used_monthly_limit = $2,
	used_annual_limit = $3, used_nightly_limit = $4, updated_at = $5, version = version + 1
	WHERE id = $6 AND version = $7
	RETURNING ` + limitTrackerColumns

	updated, err := scanLimitTracker(on(r.db, tx).QueryRowContext(
		ctx,
		query,
		tracker.UsedDailyLimit,
		tracker.UsedMonthlyLimit,
		tracker.UsedAnnualLimit,
		tracker.UsedNightlyLimit,
		time.Now().UTC(),
		tracker.ID,
		tracker.Version,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConcurrentModification
		}
		return nil, err
	}
	return updated, nil
}

func scanLimitTracker(row rowScanner) (*models.UserLimitTracker, error) {
	tracker := &models.UserLimitTracker{}
	err := row.Scan(
		&tracker.ID,
		&tracker.UserID,
		&tracker.UsedDailyLimit,
		&tracker.UsedMonthlyLimit,
		&tracker.UsedAnnualLimit,
		&tracker.UsedNightlyLimit,
		&tracker.PeriodStart,
		&tracker.CreatedAt,
		&tracker.UpdatedAt,
		&tracker.Version,
	)
	if err != nil {
		return nil, err
	}
	return tracker, nil
}

func (r *LimitTrackerRepository) CreateTableIfNotExists(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS user_limit_trackers (
					id UUID PRIMARY KEY,
					user_id UUID NOT NULL,
					used_daily_limit BIGINT NOT NULL DEFAULT 0,
					used_monthly_limit BIGINT NOT NULL DEFAULT 0,
					used_annual_limit BIGINT NOT NULL DEFAULT 0,
					used_nightly_limit BIGINT NOT NULL DEFAULT 0,
					period_start TEXT NOT NULL DEFAULT 'ROLLING',
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL,
					version INTEGER NOT NULL DEFAULT 1
				)`
	_, err := r.db.ExecContext(ctx, query)
	return err
}
