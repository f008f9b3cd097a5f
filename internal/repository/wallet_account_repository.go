package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"ledger-engine/internal/models"
)

const walletAccountColumns = `id, wallet_id, currency_id, balance, pending_amount, average_price,
	state, created_at, updated_at, version`

type WalletAccountRepository struct {
	db *sql.DB
}

func NewWalletAccountRepository(db *sql.DB) *WalletAccountRepository {
	return &WalletAccountRepository{db: db}
}

func (r *WalletAccountRepository) Create(ctx context.Context, account *models.WalletAccount) (*models.WalletAccount, error) {
	query := `INSERT INTO wallet_accounts (` + walletAccountColumns + `)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				 RETURNING ` + walletAccountColumns

	return scanWalletAccount(r.db.QueryRowContext(
		ctx,
		query,
		account.ID,
		account.WalletID,
		account.CurrencyID,
		account.Balance,
		account.PendingAmount,
		account.AveragePrice,
		account.State,
		account.CreatedAt,
		account.UpdatedAt,
		account.Version,
	))
}

func (r *WalletAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WalletAccount, error) {
	query := `SELECT ` + walletAccountColumns + ` FROM wallet_accounts WHERE id = $1`
	account, err := scanWalletAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetByIDForUpdate row-locks the account inside the caller's transaction.
// Balance, pending amount and average price are read-modify-write fields;
// no mutation path may read them outside a lock.
func (r *WalletAccountRepository) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*models.WalletAccount, error) {
	query := `SELECT ` + walletAccountColumns + ` FROM wallet_accounts WHERE id = $1 FOR UPDATE`
	account, err := scanWalletAccount(on(r.db, tx).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// UpdateBalances persists balance, pending amount and average price under the
// account's version guard. A computed negative balance or pending amount is a
// conservation fault and is rejected before anything reaches the database.
func (r *WalletAccountRepository) UpdateBalances(ctx context.Context, tx *sql.Tx, account *models.WalletAccount) (*models.WalletAccount, error) {
	if !account.CheckConservation() {
		return nil, ErrNegativeBalance
	}

	query := `UPDATE wallet_accounts SET balance = $1, pending_amount = $2, average_price = $3,
	updated_at = $4, version = version + 1
	WHERE id = $5 AND version = $6
	RETURNING ` + walletAccountColumns

	updated, err := scanWalletAccount(on(r.db, tx).QueryRowContext(
		ctx,
		query,
		account.Balance,
		account.PendingAmount,
		account.AveragePrice,
		time.Now().UTC(),
		account.ID,
		account.Version,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConcurrentModification
		}
		return nil, err
	}
	return updated, nil
}

func scanWalletAccount(row rowScanner) (*models.WalletAccount, error) {
	account := &models.WalletAccount{}
	err := row.Scan(
		&account.ID,
		&account.WalletID,
		&account.CurrencyID,
		&account.Balance,
		&account.PendingAmount,
		&account.AveragePrice,
		&account.State,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.Version,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *WalletAccountRepository) CreateTableIfNotExists(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS wallet_accounts (
					id UUID PRIMARY KEY,
					wallet_id UUID NOT NULL,
					currency_id UUID NOT NULL,
					balance BIGINT NOT NULL DEFAULT 0,
					pending_amount BIGINT NOT NULL DEFAULT 0,
					average_price BIGINT NOT NULL DEFAULT 0,
					state TEXT NOT NULL DEFAULT 'ACTIVE',
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NOT NULL,
					version INTEGER NOT NULL DEFAULT 1,
					CONSTRAINT balance_non_negative CHECK (balance >= 0),
					CONSTRAINT pending_non_negative CHECK (pending_amount >= 0)
				)`
	_, err := r.db.ExecContext(ctx, query)
	return err
}
