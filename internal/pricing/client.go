// Package pricing is the HTTP client for the external price/quote provider
// the average-cost recalculator consults.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-engine/internal/models"
)

// Client fetches point-in-time prices and quotations by currency and date.
// It implements both service.QuoteService and service.PriceService.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type quoteResponse struct {
	Price  decimal.Decimal `json:"price"`
	FxRate decimal.Decimal `json:"fxRate"`
}

// QuoteAt returns the quotation valid at the given time, with the FX rate to
// the settlement currency (one when no conversion applies).
func (c *Client) QuoteAt(ctx context.Context, currencyID uuid.UUID, at time.Time) (*models.Quote, error) {
	var resp quoteResponse
	if err := c.get(ctx, fmt.Sprintf("/quotes/%s", currencyID), at, &resp); err != nil {
		return nil, err
	}
	if resp.FxRate.IsZero() {
		resp.FxRate = decimal.NewFromInt(1)
	}
	return &models.Quote{Price: resp.Price, FxRate: resp.FxRate}, nil
}

type priceResponse struct {
	Price decimal.Decimal `json:"price"`
}

// PriceAt returns the settlement-currency price of one whole unit of the
// currency at the given time.
func (c *Client) PriceAt(ctx context.Context, currencyID uuid.UUID, at time.Time) (decimal.Decimal, error) {
	var resp priceResponse
	if err := c.get(ctx, fmt.Sprintf("/prices/%s", currencyID), at, &resp); err != nil {
		return decimal.Zero, err
	}
	return resp.Price, nil
}

func (c *Client) get(ctx context.Context, path string, at time.Time, out any) error {
	u := fmt.Sprintf("%s%s?at=%s", c.baseURL, path, url.QueryEscape(at.UTC().Format(time.RFC3339)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("price provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("price provider returned %s for %s", resp.Status, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode price provider response: %w", err)
	}
	return nil
}
