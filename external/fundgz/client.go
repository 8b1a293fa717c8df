// Package fundgz reads CN mutual fund estimates from the
// fundgz.1234567.com.cn JSONP endpoint. One request per fund code; the
// payload is a jsonpgz(...) wrapper around plain JSON.
package fundgz

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/leyuan/sportdesk/internal/domain/finance"
	"github.com/leyuan/sportdesk/internal/platform/httpx"
	"github.com/leyuan/sportdesk/internal/platform/logging"
	"github.com/leyuan/sportdesk/internal/platform/resilience"
)

var jsonpPattern = regexp.MustCompile(`jsonpgz\((.+)\)`)

// Config carries the settings for the fund estimate client.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	HTTPClient     *http.Client
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads intraday fund value estimates.
type Client struct {
	http   *httpx.Client
	logger *logging.Logger
	now    func() time.Time
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		http: httpx.New(httpx.Config{
			Name:           "fundgz",
			HTTPClient:     cfg.HTTPClient,
			BaseURL:        cfg.BaseURL,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		logger: logger,
		now:    time.Now,
	}
}

type fundPayload struct {
	FundCode string `json:"fundcode"`
	Name     string `json:"name"`
	DWJZ     string `json:"dwjz"`  // last confirmed net value
	GSZ      string `json:"gsz"`   // intraday estimate
	GSZZL    string `json:"gszzl"` // estimated change percent
}

// FetchFunds returns estimates for the given fund codes. Codes are
// fetched one by one since the endpoint has no batch form; a failing
// code is skipped so one delisted fund cannot empty the watchlist.
func (c *Client) FetchFunds(ctx context.Context, codes []string) ([]finance.Item, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	updatedAt := c.now().UTC()
	items := make([]finance.Item, 0, len(codes))
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		item, err := c.fetchFund(ctx, code, updatedAt)
		if err != nil {
			c.logger.WarnContext(ctx, "fund estimate fetch failed", "code", code, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Client) fetchFund(ctx context.Context, code string, updatedAt time.Time) (finance.Item, error) {
	query := url.Values{}
	query.Set("rt", strconv.FormatInt(c.now().UnixMilli(), 10))

	raw, err := c.http.Get(ctx, "/js/"+url.PathEscape(code)+".js", query)
	if err != nil {
		return finance.Item{}, err
	}

	m := jsonpPattern.FindSubmatch(raw)
	if m == nil {
		return finance.Item{}, fmt.Errorf("unexpected fundgz payload for %s", code)
	}
	var payload fundPayload
	if err := sonic.Unmarshal(m[1], &payload); err != nil {
		return finance.Item{}, fmt.Errorf("decode fundgz payload: %w", err)
	}

	price := parseFloat(payload.GSZ)
	if price == 0 {
		price = parseFloat(payload.DWJZ)
	}
	prev := parseFloat(payload.DWJZ)
	changePercent := parseFloat(payload.GSZZL)

	return finance.Item{
		ID:            "fund_" + code,
		Type:          finance.AssetFund,
		Symbol:        code,
		Name:          payload.Name,
		Price:         price,
		Change:        prev * changePercent / 100,
		ChangePercent: changePercent,
		Currency:      "CNY",
		UpdatedAt:     updatedAt,
	}, nil
}

func parseFloat(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
