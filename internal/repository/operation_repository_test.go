package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger-engine/internal/models"
)

var operationRowColumns = []string{
	"id", "value", "raw_value", "fee", "state", "owner_id", "owner_wallet_account_id",
	"beneficiary_id", "beneficiary_wallet_account_id", "currency_id", "transaction_type_id",
	"operation_ref_id", "user_limit_tracker_id", "analysis_tags", "created_at", "updated_at", "version",
}

func pendingOperation(t *testing.T) *models.Operation {
	t.Helper()
	owner := uuid.New()
	ownerAccount := uuid.New()
	op, err := models.NewOperation(uuid.New(), models.NewOperationInput{
		RawValue:             1000,
		Fee:                  100,
		OwnerID:              &owner,
		OwnerWalletAccountID: &ownerAccount,
		CurrencyID:           uuid.New(),
		TransactionTypeID:    uuid.New(),
		AnalysisTags:         []models.AnalysisTag{models.TagDailyIntervalLimitIncluded},
	})
	require.NoError(t, err)
	return op
}

func operationRow(op *models.Operation) *sqlmock.Rows {
	return sqlmock.NewRows(operationRowColumns).AddRow(
		op.ID, op.Value, op.RawValue, op.Fee, string(op.State),
		op.OwnerID, op.OwnerWalletAccountID, nil, nil,
		op.CurrencyID, op.TransactionTypeID, nil, nil,
		"{DAILY_INTERVAL_LIMIT_INCLUDED}", op.CreatedAt, op.UpdatedAt, op.Version,
	)
}

func TestOperationRepository_Create_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOperationRepository(db)
	op := pendingOperation(t)

	mock.ExpectQuery(`^INSERT INTO operations`).
		WithArgs(
			op.ID, op.Value, op.RawValue, op.Fee, string(op.State),
			op.OwnerID, op.OwnerWalletAccountID, nil, nil,
			op.CurrencyID, op.TransactionTypeID, nil, nil,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), op.Version,
		).
		WillReturnRows(operationRow(op))

	created, err := repo.Create(context.Background(), nil, op)

	require.NoError(t, err)
	assert.Equal(t, op.ID, created.ID)
	assert.Equal(t, int64(900), created.Value)
	assert.Equal(t, models.OperationStatePending, created.State)
	assert.Equal(t, []models.AnalysisTag{models.TagDailyIntervalLimitIncluded}, created.AnalysisTags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOperationRepository(db)
	testID := uuid.New()

	mock.ExpectQuery(`^SELECT`).
		WithArgs(testID).
		WillReturnError(sql.ErrNoRows)

	op, err := repo.GetByID(context.Background(), testID)

	require.ErrorIs(t, err, ErrOperationNotFound)
	assert.Nil(t, op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationRepository_GetByIDForUpdate_LocksRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOperationRepository(db)
	op := pendingOperation(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE$`).
		WithArgs(op.ID).
		WillReturnRows(operationRow(op))

	tx, err := db.Begin()
	require.NoError(t, err)

	locked, err := repo.GetByIDForUpdate(context.Background(), tx, op.ID)

	require.NoError(t, err)
	assert.Equal(t, op.ID, locked.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationRepository_Update_Conflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOperationRepository(db)
	op := pendingOperation(t)

	mock.ExpectQuery(`^UPDATE operations`).
		WillReturnError(sql.ErrNoRows)

	updated, err := repo.Update(context.Background(), nil, op)

	require.ErrorIs(t, err, ErrConcurrentModification)
	assert.Nil(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationRepository_List_FiltersAndPaginates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOperationRepository(db)
	boundary := time.Now().UTC().Add(-24 * time.Hour)

	first := pendingOperation(t)
	second := pendingOperation(t)

	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM operations WHERE`).
		WithArgs("ACCEPTED", "DAILY_INTERVAL_LIMIT_INCLUDED", boundary).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := operationRow(first).AddRow(
		second.ID, second.Value, second.RawValue, second.Fee, string(second.State),
		second.OwnerID, second.OwnerWalletAccountID, nil, nil,
		second.CurrencyID, second.TransactionTypeID, nil, nil,
		"{DAILY_INTERVAL_LIMIT_INCLUDED}", second.CreatedAt, second.UpdatedAt, second.Version,
	)
	mock.ExpectQuery(`ORDER BY created_at ASC LIMIT`).
		WithArgs("ACCEPTED", "DAILY_INTERVAL_LIMIT_INCLUDED", boundary, 10, 0).
		WillReturnRows(rows)

	page, err := repo.List(context.Background(), models.OperationFilter{
		State:         models.OperationStateAccepted,
		AnalysisTag:   models.TagDailyIntervalLimitIncluded,
		CreatedBefore: boundary,
	}, models.PageRequest{Page: 1, PageSize: 10})

	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 2, page.PageTotal)
	assert.Equal(t, first.ID, page.Data[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
