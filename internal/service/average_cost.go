package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"ledger-engine/internal/models"
)

// PriceContext is the reference data a price rule may consult. Beneficiary is
// the accepted credit being priced; Owner is the paired reference operation
// (present for conversion-class transactions); Currency is the asset currency
// of the credit.
type PriceContext struct {
	Beneficiary *models.Operation
	Owner       *models.Operation
	Currency    *models.Currency
}

// PriceRule derives the acquisition price of one whole asset unit, in the
// settlement currency's fixed-point representation. The boolean result is
// false when no price applies, in which case the average price must be left
// untouched rather than fabricated.
type PriceRule func(ctx context.Context, pc PriceContext) (decimal.Decimal, bool, error)

// AverageCostService keeps WalletAccount.AveragePrice equal to the running
// weighted average acquisition cost of an asset-typed balance. It is invoked
// once per accepted beneficiary-side credit; debit-side operations never
// change the cost basis.
type AverageCostService struct {
	tx         TxManager
	accounts   WalletAccountRepository
	currencies CurrencyService
	txTypes    TransactionTypeService
	rules      map[models.PriceClass]PriceRule
	log        *slog.Logger
}

func NewAverageCostService(
	tx TxManager,
	accounts WalletAccountRepository,
	currencies CurrencyService,
	txTypes TransactionTypeService,
	quotes QuoteService,
	prices PriceService,
	log *slog.Logger,
) *AverageCostService {
	return &AverageCostService{
		tx:         tx,
		accounts:   accounts,
		currencies: currencies,
		txTypes:    txTypes,
		rules: map[models.PriceClass]PriceRule{
			models.PriceClassConversion:   conversionPriceRule,
			models.PriceClassCashback:     cashbackPriceRule(quotes),
			models.PriceClassPeerTransfer: peerTransferPriceRule(prices),
		},
		log: log,
	}
}

// Recalculate folds one accepted credit into the beneficiary account's
// weighted average price:
//
//	newAverage = (previousBalance*previousAverage + amount*unitPrice) / currentBalance
//
// where previousBalance is read as currentBalance - amount inside the same
// transaction that locks the account row, so concurrent recalculations for
// one account cannot interleave.
func (s *AverageCostService) Recalculate(ctx context.Context, beneficiary, owner *models.Operation) error {
	op := "service.RecalculateAverageCost"
	if beneficiary == nil || beneficiary.BeneficiaryWalletAccountID == nil {
		return fmt.Errorf("%w: beneficiary operation with a beneficiary account is required", ErrInvalidInput)
	}
	log := s.log.With(slog.String("op", op), slog.String("operation_id", beneficiary.ID.String()))

	currency, err := s.currencies.GetByID(ctx, beneficiary.CurrencyID)
	if err != nil {
		return fmt.Errorf("failed to resolve currency: %w", err)
	}
	if !currency.IsAsset() {
		log.Info("currency is not asset-typed, skipping")
		return nil
	}

	txType, err := s.txTypes.GetByID(ctx, beneficiary.TransactionTypeID)
	if err != nil {
		return fmt.Errorf("failed to resolve transaction type: %w", err)
	}
	rule, ok := s.rules[txType.PriceClass]
	if !ok {
		log.Info("no price rule for transaction type", slog.String("price_class", string(txType.PriceClass)))
		return nil
	}

	unitPrice, ok, err := rule(ctx, PriceContext{Beneficiary: beneficiary, Owner: owner, Currency: currency})
	if err != nil {
		return fmt.Errorf("price rule failed: %w", err)
	}
	if !ok {
		log.Info("price rule produced no price, average unchanged")
		return nil
	}

	return s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		account, err := s.accounts.GetByIDForUpdate(ctx, tx, *beneficiary.BeneficiaryWalletAccountID)
		if err != nil {
			return fmt.Errorf("failed to lock beneficiary account: %w", err)
		}
		if account.Balance == 0 {
			// Nothing to average over; never divide by zero.
			log.Warn("beneficiary balance is zero after credit, average unchanged")
			return nil
		}

		amount := beneficiary.Value
		previousBalance := account.Balance - amount
		if previousBalance < 0 {
			previousBalance = 0
			amount = account.Balance
		}

		weighted := decimal.NewFromInt(previousBalance).
			Mul(decimal.NewFromInt(account.AveragePrice)).
			Add(decimal.NewFromInt(amount).Mul(unitPrice))
		newAverage := weighted.Div(decimal.NewFromInt(account.Balance)).Round(0).IntPart()

		log.Info("average price recalculated",
			slog.Int64("previous_average", account.AveragePrice),
			slog.Int64("new_average", newAverage))

		account.AveragePrice = newAverage
		_, err = s.accounts.UpdateBalances(ctx, tx, account)
		return err
	})
}

// conversionPriceRule derives the unit price from the paired reference
// operation: the fiat value paid divided by the asset amount received, scaled
// to a per-whole-unit price.
func conversionPriceRule(_ context.Context, pc PriceContext) (decimal.Decimal, bool, error) {
	if pc.Owner == nil || pc.Beneficiary.Value == 0 {
		return decimal.Zero, false, nil
	}
	scale := decimal.New(1, pc.Currency.DecimalPrecision)
	price := decimal.NewFromInt(pc.Owner.Value).
		Mul(scale).
		Div(decimal.NewFromInt(pc.Beneficiary.Value))
	return price, true, nil
}

// cashbackPriceRule prices the credit from an external quotation valid at
// operation time, converted into the settlement currency when the quote
// currency differs.
func cashbackPriceRule(quotes QuoteService) PriceRule {
	return func(ctx context.Context, pc PriceContext) (decimal.Decimal, bool, error) {
		quote, err := quotes.QuoteAt(ctx, pc.Beneficiary.CurrencyID, pc.Beneficiary.CreatedAt)
		if err != nil {
			return decimal.Zero, false, err
		}
		if quote == nil || quote.Price.IsZero() {
			return decimal.Zero, false, nil
		}
		return quote.Price.Mul(quote.FxRate), true, nil
	}
}

// peerTransferPriceRule prices the credit from a point-in-time price lookup
// for the currency at the operation's date.
func peerTransferPriceRule(prices PriceService) PriceRule {
	return func(ctx context.Context, pc PriceContext) (decimal.Decimal, bool, error) {
		price, err := prices.PriceAt(ctx, pc.Beneficiary.CurrencyID, pc.Beneficiary.CreatedAt)
		if err != nil {
			return decimal.Zero, false, err
		}
		if price.IsZero() {
			return decimal.Zero, false, nil
		}
		return price, true, nil
	}
}
