// Package sina reads quotes from the hq.sinajs.cn ticker endpoint. The
// endpoint answers a JS snippet per code ("var hq_str_sh600519=...")
// rather than JSON, and rejects requests without a finance.sina.com.cn
// Referer. It serves spot gold and silver plus CN and US equities in one
// batched call.
package sina

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/leyuan/sportdesk/internal/domain/finance"
	"github.com/leyuan/sportdesk/internal/platform/logging"
	"github.com/leyuan/sportdesk/internal/platform/resilience"
)

var errSinaTransient = crerr.New("sina transient failure")

var hqLinePattern = regexp.MustCompile(`var hq_str_(\w+)="(.*)";?`)

var nonDigits = regexp.MustCompile(`\D`)

// Config carries the settings for the ticker client.
type Config struct {
	BaseURL        string
	Referer        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client batches quote lookups against the ticker endpoint.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	referer        string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	now            func() time.Time
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	referer := cfg.Referer
	if referer == "" {
		referer = "https://finance.sina.com.cn"
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		referer:        referer,
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		now:            time.Now,
	}
}

type hqEntry struct {
	code   string
	fields []string
}

// fetchList requests /list=<codes> and parses the per-code JS variables.
func (c *Client) fetchList(ctx context.Context, codes []string) ([]hqEntry, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return nil, crerr.Wrap(err, "sina circuit breaker open")
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString("/list=")
	for i, code := range codes {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		_, _ = buf.WriteString(code)
	}
	fullURL := buf.String()

	body, err := c.execute(ctx, fullURL)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errSinaTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return nil, err
	}
	return parseHqText(body), nil
}

func (c *Client) execute(ctx context.Context, fullURL string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		req.SetRequestURI(fullURL)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set("Referer", c.referer)

		err := c.httpClient.DoTimeout(req, resp, c.timeout)
		status := resp.StatusCode()
		body := string(resp.Body())
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)

		switch {
		case err != nil:
			lastErr = crerr.Wrap(errSinaTransient, err.Error())
		case status >= 200 && status < 300:
			return body, nil
		case status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError:
			lastErr = crerr.Wrapf(errSinaTransient, "sina status=%d", status)
		default:
			return "", crerr.Newf("sina status=%d", status)
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * time.Second)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "sina request failed", "url", fullURL, "error", lastErr)
	return "", lastErr
}

func parseHqText(text string) []hqEntry {
	var entries []hqEntry
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		m := hqLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entries = append(entries, hqEntry{code: m[1], fields: strings.Split(m[2], ",")})
	}
	return entries
}

// FetchGoldSilver returns spot gold and silver from the hf_GC and hf_SI
// futures codes, quoted in USD.
func (c *Client) FetchGoldSilver(ctx context.Context) ([]finance.Item, error) {
	entries, err := c.fetchList(ctx, []string{"hf_GC", "hf_SI"})
	if err != nil {
		return nil, err
	}

	updatedAt := c.now().UTC()
	items := make([]finance.Item, 0, 2)
	for _, entry := range entries {
		if len(entry.fields) < 14 {
			continue
		}
		isGold := entry.code == "hf_GC"
		price := parseFloat(entry.fields[0])
		prevClose := parseFloat(entry.fields[7])
		change := price - prevClose
		var changePercent float64
		if prevClose > 0 {
			changePercent = change / prevClose * 100
		}

		item := finance.Item{
			Type:          finance.AssetGold,
			Price:         price,
			Change:        change,
			ChangePercent: changePercent,
			Currency:      "USD",
			UpdatedAt:     updatedAt,
		}
		if isGold {
			item.ID, item.Symbol, item.Name = "gold_XAU", "XAU", "黄金"
		} else {
			item.ID, item.Symbol, item.Name = "gold_XAG", "XAG", "白银"
		}
		items = append(items, item)
	}
	return items, nil
}

// FetchStockCN returns A-share quotes. Input codes may carry exchange
// prefixes; the bare number decides the exchange, 6xxxxx and 5xxxxx
// trade in Shanghai and everything else in Shenzhen.
func (c *Client) FetchStockCN(ctx context.Context, codes []string) ([]finance.Item, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	sinaCodes := make([]string, 0, len(codes))
	for _, code := range codes {
		num := nonDigits.ReplaceAllString(code, "")
		if num == "" {
			continue
		}
		if strings.HasPrefix(num, "6") || strings.HasPrefix(num, "5") {
			sinaCodes = append(sinaCodes, "sh"+num)
		} else {
			sinaCodes = append(sinaCodes, "sz"+num)
		}
	}

	entries, err := c.fetchList(ctx, sinaCodes)
	if err != nil {
		return nil, err
	}

	updatedAt := c.now().UTC()
	items := make([]finance.Item, 0, len(entries))
	for _, entry := range entries {
		if len(entry.fields) < 32 {
			continue
		}
		code := strings.TrimPrefix(strings.TrimPrefix(entry.code, "sh"), "sz")
		price := parseFloat(entry.fields[3])
		prevClose := parseFloat(entry.fields[2])
		change := price - prevClose
		var changePercent float64
		if prevClose > 0 {
			changePercent = change / prevClose * 100
		}
		items = append(items, finance.Item{
			ID:            "stock_cn_" + code,
			Type:          finance.AssetStockCN,
			Symbol:        code,
			Name:          entry.fields[0],
			Price:         price,
			Change:        change,
			ChangePercent: changePercent,
			Currency:      "CNY",
			UpdatedAt:     updatedAt,
		})
	}
	return items, nil
}

// FetchStockUS returns US equity quotes via the gb_ code family. Unlike
// the A-share lines, these carry change and percent directly.
func (c *Client) FetchStockUS(ctx context.Context, symbols []string) ([]finance.Item, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	sinaCodes := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		sinaCodes = append(sinaCodes, "gb_"+strings.ToLower(symbol))
	}

	entries, err := c.fetchList(ctx, sinaCodes)
	if err != nil {
		return nil, err
	}

	updatedAt := c.now().UTC()
	items := make([]finance.Item, 0, len(entries))
	for _, entry := range entries {
		if len(entry.fields) < 26 {
			continue
		}
		symbol := strings.ToUpper(strings.TrimPrefix(entry.code, "gb_"))
		items = append(items, finance.Item{
			ID:            "stock_us_" + symbol,
			Type:          finance.AssetStockUS,
			Symbol:        symbol,
			Name:          entry.fields[0],
			Price:         parseFloat(entry.fields[1]),
			Change:        parseFloat(entry.fields[4]),
			ChangePercent: parseFloat(entry.fields[2]),
			Currency:      "USD",
			UpdatedAt:     updatedAt,
		})
	}
	return items, nil
}

func parseFloat(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}

// Transient reports whether err was a retryable upstream failure.
func Transient(err error) bool {
	return crerr.Is(err, errSinaTransient)
}
