package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"ledger-engine/internal/models"
)

var (
	ErrOperationNotFound      = errors.New("operation not found")
	ErrWalletAccountNotFound  = errors.New("wallet account not found")
	ErrLimitTrackerNotFound   = errors.New("user limit tracker not found")
	ErrConcurrentModification = errors.New("concurrent modification detected")
	ErrNegativeBalance        = errors.New("negative balance or pending amount")
)

const operationColumns = `id, value, raw_value, fee, state, owner_id, owner_wallet_account_id,
	beneficiary_id, beneficiary_wallet_account_id, currency_id, transaction_type_id,
	operation_ref_id, user_limit_tracker_id, analysis_tags, created_at, updated_at, version`

type OperationRepository struct {
	db *sql.DB
}

func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

func (r *OperationRepository) Create(ctx context.Context, tx *sql.Tx, op *models.Operation) (*models.Operation, error) {
	query := `INSERT INTO operations (` + operationColumns + `)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
				 RETURNING ` + operationColumns

	row := on(r.db, tx).QueryRowContext(
		ctx,
		query,
		op.ID,
		op.Value,
		op.RawValue,
		op.Fee,
		op.State,
		op.OwnerID,
		op.OwnerWalletAccountID,
		op.BeneficiaryID,
		op.BeneficiaryWalletAccountID,
		op.CurrencyID,
		op.TransactionTypeID,
		op.OperationRefID,
		op.UserLimitTrackerID,
		pq.Array(tagStrings(op.AnalysisTags)),
		op.CreatedAt,
		op.UpdatedAt,
		op.Version,
	)
	return scanOperation(row)
}

func (r *OperationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE id = $1`
	op, err := scanOperation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOperationNotFound
		}
		return nil, err
	}
	return op, nil
}

// GetByIDForUpdate row-locks the operation inside the caller's transaction.
// Every mutation path re-reads state through this method before acting.
func (r *OperationRepository) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*models.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE id = $1 FOR UPDATE`
	op, err := scanOperation(on(r.db, tx).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOperationNotFound
		}
		return nil, err
	}
	return op, nil
}

// Update persists the operation's mutable fields. Value, raw value and fee
// are deliberately absent from the statement; they never change after
// creation.
func (r *OperationRepository) Update(ctx context.Context, tx *sql.Tx, op *models.Operation) (*models.Operation, error) {
	query := `UPDATE operations SET state = $1, analysis_tags = $2, updated_at = $3, version = version + 1
	WHERE id = $4 AND version = $5
	RETURNING ` + operationColumns

	updated, err := scanOperation(on(r.db, tx).QueryRowContext(
		ctx,
		query,
		op.State,
		pq.Array(tagStrings(op.AnalysisTags)),
		time.Now().UTC(),
		op.ID,
		op.Version,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConcurrentModification
		}
		return nil, err
	}
	return updated, nil
}

// List pages through operations matching the filter, ordered by creation
// time. It backs both the reporting surface and the reconciler's scan.
func (r *OperationRepository) List(ctx context.Context, filter models.OperationFilter, req models.PageRequest) (models.Page[models.Operation], error) {
	req = req.Normalize()

	var (
		conds []string
		args  []any
	)
	addCond := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.State != "" {
		addCond("state = $%d", filter.State)
	}
	if filter.AnalysisTag != "" {
		addCond("$%d = ANY(analysis_tags)", string(filter.AnalysisTag))
	}
	if filter.WalletAccountID != "" {
		addCond("(owner_wallet_account_id = $%d OR beneficiary_wallet_account_id = $%[1]d)", filter.WalletAccountID)
	}
	if filter.CurrencyID != "" {
		addCond("currency_id = $%d", filter.CurrencyID)
	}
	if !filter.CreatedBefore.IsZero() {
		addCond("created_at < $%d", filter.CreatedBefore)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM operations` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return models.Page[models.Operation]{}, err
	}

	order := "ASC"
	if req.Order == models.OrderDesc {
		order = "DESC"
	}
	sort := sortColumn(req.Sort)
	query := fmt.Sprintf(`SELECT %s FROM operations%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		operationColumns, where, sort, order, len(args)+1, len(args)+2)
	args = append(args, req.PageSize, req.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.Page[models.Operation]{}, err
	}
	defer rows.Close()

	var data []models.Operation
	for rows.Next() {
		op, err := scanOperationRows(rows)
		if err != nil {
			return models.Page[models.Operation]{}, err
		}
		data = append(data, *op)
	}
	if err := rows.Err(); err != nil {
		return models.Page[models.Operation]{}, err
	}

	return models.NewPage(data, req, total), nil
}

// sortColumn whitelists sortable columns; anything unknown falls back to
// created_at so the ORDER BY clause never carries caller input.
func sortColumn(sort string) string {
	switch sort {
	case "created_at", "updated_at", "value", "state":
		return sort
	default:
		return "created_at"
	}
}

func tagStrings(tags []models.AnalysisTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOperation(row *sql.Row) (*models.Operation, error) {
	return scanOperationRows(row)
}

func scanOperationRows(row rowScanner) (*models.Operation, error) {
	var (
		op   models.Operation
		tags pq.StringArray

		owner, ownerAccount, beneficiary   uuid.NullUUID
		beneficiaryAccount, opRef, tracker uuid.NullUUID
	)
	err := row.Scan(
		&op.ID,
		&op.Value,
		&op.RawValue,
		&op.Fee,
		&op.State,
		&owner,
		&ownerAccount,
		&beneficiary,
		&beneficiaryAccount,
		&op.CurrencyID,
		&op.TransactionTypeID,
		&opRef,
		&tracker,
		&tags,
		&op.CreatedAt,
		&op.UpdatedAt,
		&op.Version,
	)
	if err != nil {
		return nil, err
	}
	op.OwnerID = nullableID(owner)
	op.OwnerWalletAccountID = nullableID(ownerAccount)
	op.BeneficiaryID = nullableID(beneficiary)
	op.BeneficiaryWalletAccountID = nullableID(beneficiaryAccount)
	op.OperationRefID = nullableID(opRef)
	op.UserLimitTrackerID = nullableID(tracker)
	op.AnalysisTags = make([]models.AnalysisTag, len(tags))
	for i, t := range tags {
		op.AnalysisTags[i] = models.AnalysisTag(t)
	}
	return &op, nil
}

func nullableID(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}

func (r *OperationRepository) CreateTableIfNotExists(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS operations (
					id UUID PRIMARY KEY,
					value BIGINT NOT NULL,
					raw_value BIGINT NOT NULL,
					fee BIGINT NOT NULL DEFAULT 0,
					state TEXT NOT NULL,
					owner_id UUID,
					owner_wallet_account_id UUID,
					beneficiary_id UUID,
					beneficiary_wallet_account_id UUID,
					currency_id UUID NOT NULL,
					transaction_type_id UUID NOT NULL,
					operation_ref_id UUID,
					user_limit_tracker_id UUID,
					analysis_tags TEXT[] NOT NULL DEFAULT '{}',
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL,
					version INTEGER NOT NULL DEFAULT 1
				)`
	_, err := r.db.ExecContext(ctx, query)
	return err
}
