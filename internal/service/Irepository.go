package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-engine/internal/models"
)

type OperationRepository interface {
	Create(ctx context.Context, tx *sql.Tx, op *models.Operation) (*models.Operation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Operation, error)
	GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*models.Operation, error)
	Update(ctx context.Context, tx *sql.Tx, op *models.Operation) (*models.Operation, error)
	List(ctx context.Context, filter models.OperationFilter, req models.PageRequest) (models.Page[models.Operation], error)
}

type WalletAccountRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.WalletAccount, error)
	GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*models.WalletAccount, error)
	UpdateBalances(ctx context.Context, tx *sql.Tx, account *models.WalletAccount) (*models.WalletAccount, error)
}

type LimitTrackerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserLimitTracker, error)
	GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*models.UserLimitTracker, error)
	UpdateUsed(ctx context.Context, tx *sql.Tx, tracker *models.UserLimitTracker) (*models.UserLimitTracker, error)
}

// TxManager delimits a unit of work. Repository methods that accept a *sql.Tx
// participate in the transaction passed to fn.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// EventPublisher hands completed mutations off to asynchronous collaborators.
type EventPublisher interface {
	PublishReverted(ctx context.Context, owner, beneficiary *models.Operation) error
	PublishRecalculation(ctx context.Context, beneficiary, owner *models.Operation) error
}

type CurrencyService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Currency, error)
}

type TransactionTypeService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.TransactionType, error)
}

type QuoteService interface {
	QuoteAt(ctx context.Context, currencyID uuid.UUID, at time.Time) (*models.Quote, error)
}

// PriceService resolves the settlement-currency price of one whole asset unit
// at a point in time.
type PriceService interface {
	PriceAt(ctx context.Context, currencyID uuid.UUID, at time.Time) (decimal.Decimal, error)
}
