package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"ledger-engine/internal/models"
)

var (
	ErrCurrencyNotFound        = errors.New("currency not found")
	ErrTransactionTypeNotFound = errors.New("transaction type not found")
)

// CurrencyRepository serves the currency and transaction-type metadata the
// operations table references by foreign key.
type CurrencyRepository struct {
	db *sql.DB
}

func NewCurrencyRepository(db *sql.DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Currency, error) {
	query := `SELECT id, code, type, decimal_precision FROM currencies WHERE id = $1`
	currency := &models.Currency{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&currency.ID,
		&currency.Code,
		&currency.Type,
		&currency.DecimalPrecision,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCurrencyNotFound
		}
		return nil, err
	}
	return currency, nil
}

func (r *CurrencyRepository) CreateTableIfNotExists(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS currencies (
					id UUID PRIMARY KEY,
					code TEXT NOT NULL UNIQUE,
					type TEXT NOT NULL,
					decimal_precision INTEGER NOT NULL DEFAULT 2
				)`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// TransactionTypeRepository resolves transaction-type metadata by id for the
// recalculator's price-rule dispatch.
type TransactionTypeRepository struct {
	db *sql.DB
}

func NewTransactionTypeRepository(db *sql.DB) *TransactionTypeRepository {
	return &TransactionTypeRepository{db: db}
}

func (r *TransactionTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TransactionType, error) {
	query := `SELECT id, tag, price_class FROM transaction_types WHERE id = $1`
	txType := &models.TransactionType{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&txType.ID,
		&txType.Tag,
		&txType.PriceClass,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionTypeNotFound
		}
		return nil, err
	}
	return txType, nil
}

func (r *TransactionTypeRepository) CreateTableIfNotExists(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS transaction_types (
					id UUID PRIMARY KEY,
					tag TEXT NOT NULL UNIQUE,
					price_class TEXT NOT NULL DEFAULT 'NONE'
				)`
	_, err := r.db.ExecContext(ctx, query)
	return err
}
