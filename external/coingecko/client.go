// Package coingecko wraps the keyless CoinGecko v3 API for crypto spot
// prices and coin search.
package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leyuan/sportdesk/internal/domain/finance"
	"github.com/leyuan/sportdesk/internal/platform/httpx"
	"github.com/leyuan/sportdesk/internal/platform/logging"
	"github.com/leyuan/sportdesk/internal/platform/resilience"
)

const maxSearchResults = 10

// Config carries the settings for the CoinGecko client.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	HTTPClient     *http.Client
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads crypto quotes from the CoinGecko v3 API.
type Client struct {
	http *httpx.Client
	now  func() time.Time
}

func NewClient(cfg Config) *Client {
	return &Client{
		http: httpx.New(httpx.Config{
			Name:           "coingecko",
			HTTPClient:     cfg.HTTPClient,
			BaseURL:        cfg.BaseURL,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			Logger:         cfg.Logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		now: time.Now,
	}
}

type simplePrice struct {
	USD       float64  `json:"usd"`
	USDChange *float64 `json:"usd_24h_change"`
}

// FetchPrices returns quotes for the given coin ids, e.g. "bitcoin".
// The 24h change comes back as a percentage; the absolute change is
// derived from it.
func (c *Client) FetchPrices(ctx context.Context, ids []string) ([]finance.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", "usd")
	query.Set("include_24hr_change", "true")
	query.Set("include_24hr_vol", "false")

	var payload map[string]simplePrice
	if _, err := c.http.GetJSON(ctx, "/simple/price", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch coingecko prices: %w", err)
	}

	updatedAt := c.now().UTC()
	items := make([]finance.Item, 0, len(ids))
	// Iterate the request order, the response map has no stable order.
	for _, id := range ids {
		info, ok := payload[id]
		if !ok {
			continue
		}
		var change, changePercent float64
		if info.USDChange != nil {
			changePercent = *info.USDChange
			change = info.USD * changePercent / 100
		}
		items = append(items, finance.Item{
			ID:            "crypto_" + id,
			Type:          finance.AssetCrypto,
			Symbol:        strings.ToUpper(id),
			Name:          id,
			Price:         info.USD,
			Change:        change,
			ChangePercent: changePercent,
			Currency:      "USD",
			UpdatedAt:     updatedAt,
		})
	}
	return items, nil
}

type searchResponse struct {
	Coins []struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
		Thumb  string `json:"thumb"`
	} `json:"coins"`
}

// Search returns up to ten coins matching the query.
func (c *Client) Search(ctx context.Context, query string) ([]finance.SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)

	var payload searchResponse
	if _, err := c.http.GetJSON(ctx, "/search", params, &payload); err != nil {
		return nil, fmt.Errorf("search coingecko: %w", err)
	}

	results := make([]finance.SearchResult, 0, maxSearchResults)
	for _, coin := range payload.Coins {
		if len(results) == maxSearchResults {
			break
		}
		results = append(results, finance.SearchResult{
			ID:     "crypto_" + coin.ID,
			Type:   finance.AssetCrypto,
			Symbol: strings.ToUpper(coin.Symbol),
			Name:   coin.Name,
			Thumb:  coin.Thumb,
		})
	}
	return results, nil
}

type contractResponse struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	MarketData *struct {
		CurrentPrice struct {
			USD float64 `json:"usd"`
		} `json:"current_price"`
		PriceChange24h           float64 `json:"price_change_24h"`
		PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	} `json:"market_data"`
}

// FetchByContract resolves a token by chain platform and contract address.
func (c *Client) FetchByContract(ctx context.Context, platform, address string) (finance.Item, error) {
	var payload contractResponse
	path := "/coins/" + url.PathEscape(platform) + "/contract/" + url.PathEscape(address)
	if _, err := c.http.GetJSON(ctx, path, nil, &payload); err != nil {
		return finance.Item{}, fmt.Errorf("fetch coingecko contract: %w", err)
	}

	item := finance.Item{
		ID:        "crypto_" + payload.ID,
		Type:      finance.AssetCrypto,
		Symbol:    strings.ToUpper(payload.Symbol),
		Name:      payload.Name,
		Currency:  "USD",
		UpdatedAt: c.now().UTC(),
	}
	if md := payload.MarketData; md != nil {
		item.Price = md.CurrentPrice.USD
		item.Change = md.PriceChange24h
		item.ChangePercent = md.PriceChangePercentage24h
	}
	return item, nil
}
