package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CurrencyType string

const (
	CurrencyTypeFiat  CurrencyType = "FIAT"
	CurrencyTypeAsset CurrencyType = "ASSET"
)

// Currency classifies an operation's denomination. DecimalPrecision is the
// number of minor-unit digits the fixed-point integer amounts carry.
type Currency struct {
	ID               uuid.UUID    `json:"id"`
	Code             string       `json:"code"`
	Type             CurrencyType `json:"type"`
	DecimalPrecision int32        `json:"decimalPrecision"`
}

func (c *Currency) IsAsset() bool {
	return c.Type == CurrencyTypeAsset
}

// PriceClass selects the unit-price rule the average-cost recalculator
// applies for a transaction type.
type PriceClass string

const (
	PriceClassConversion   PriceClass = "CONVERSION"
	PriceClassCashback     PriceClass = "CASHBACK"
	PriceClassPeerTransfer PriceClass = "PEER_TRANSFER"
	PriceClassNone         PriceClass = "NONE"
)

// TransactionType classifies operations for limit aggregation and for the
// recalculator's price-rule dispatch.
type TransactionType struct {
	ID         uuid.UUID  `json:"id"`
	Tag        string     `json:"tag"`
	PriceClass PriceClass `json:"priceClass"`
}

// Quote is a point-in-time quotation for one whole asset unit. Price is
// denominated in the quote currency's minor unit; FxRate converts it into the
// settlement currency and is one when both currencies match.
type Quote struct {
	Price  decimal.Decimal `json:"price"`
	FxRate decimal.Decimal `json:"fxRate"`
}
