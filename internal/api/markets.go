package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Ping checks that the API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	var resp PingResponse
	if err := c.get(ctx, "/ping", nil, &resp); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// GetCoinMarkets fetches one page of ranked coins.
func (c *Client) GetCoinMarkets(ctx context.Context, opts CoinMarketsOptions) ([]APICoin, error) {
	query := url.Values{}

	currency := opts.VsCurrency
	if currency == "" {
		currency = "usd"
	}
	query.Set("vs_currency", currency)

	order := opts.Order
	if order == "" {
		order = OrderMarketCapDesc
	}
	query.Set("order", order)

	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("sparkline", strconv.FormatBool(opts.Sparkline))

	var coins []APICoin
	if err := c.get(ctx, "/coins/markets", query, &coins); err != nil {
		return nil, fmt.Errorf("get coin markets: %w", err)
	}

	return coins, nil
}
