package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/leyuan/sportdesk/internal/domain/finance"
	"github.com/leyuan/sportdesk/internal/platform/logging"
)

type cryptoSource interface {
	FetchPrices(ctx context.Context, ids []string) ([]finance.Item, error)
	Search(ctx context.Context, query string) ([]finance.SearchResult, error)
}

type quoteSource interface {
	FetchGoldSilver(ctx context.Context) ([]finance.Item, error)
	FetchStockCN(ctx context.Context, codes []string) ([]finance.Item, error)
	FetchStockUS(ctx context.Context, symbols []string) ([]finance.Item, error)
}

type fundSource interface {
	FetchFunds(ctx context.Context, codes []string) ([]finance.Item, error)
}

type FinanceService struct {
	watchlistRepo finance.WatchlistRepository
	crypto        cryptoSource
	quotes        quoteSource
	funds         fundSource
	logger        *logging.Logger
	now           func() time.Time
}

func NewFinanceService(
	watchlistRepo finance.WatchlistRepository,
	crypto cryptoSource,
	quotes quoteSource,
	funds fundSource,
	logger *logging.Logger,
) *FinanceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FinanceService{
		watchlistRepo: watchlistRepo,
		crypto:        crypto,
		quotes:        quotes,
		funds:         funds,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *FinanceService) Watchlist(ctx context.Context) ([]finance.WatchItem, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.Watchlist")
	defer span.End()

	items, err := s.watchlistRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	return items, nil
}

func (s *FinanceService) AddToWatchlist(ctx context.Context, item finance.WatchItem) (finance.WatchItem, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.AddToWatchlist")
	defer span.End()

	item.ID = strings.TrimSpace(item.ID)
	item.Symbol = strings.TrimSpace(item.Symbol)
	if item.ID == "" {
		return finance.WatchItem{}, fmt.Errorf("%w: watch item id is required", ErrInvalidInput)
	}
	if item.Symbol == "" {
		return finance.WatchItem{}, fmt.Errorf("%w: watch item symbol is required", ErrInvalidInput)
	}
	if _, ok := finance.ParseAssetType(string(item.Type)); !ok {
		return finance.WatchItem{}, fmt.Errorf("%w: unknown asset type %q", ErrInvalidInput, item.Type)
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = s.now()
	}

	if err := s.watchlistRepo.Add(ctx, item); err != nil {
		return finance.WatchItem{}, fmt.Errorf("add watch item: %w", err)
	}
	return item, nil
}

func (s *FinanceService) RemoveFromWatchlist(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.RemoveFromWatchlist")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: watch item id is required", ErrInvalidInput)
	}
	if err := s.watchlistRepo.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove watch item: %w", err)
	}
	return nil
}

// RefreshWatchlist quotes every watched instrument, fanning out one task
// per venue. Venue failures degrade to missing quotes; the result keeps
// watchlist order and only carries instruments that produced a quote.
func (s *FinanceService) RefreshWatchlist(ctx context.Context) ([]finance.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.RefreshWatchlist")
	defer span.End()

	watched, err := s.watchlistRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	if len(watched) == 0 {
		return []finance.Item{}, nil
	}

	grouped := make(map[finance.AssetType][]string)
	for _, item := range watched {
		grouped[item.Type] = append(grouped[item.Type], item.Symbol)
	}

	p := pool.NewWithResults[[]finance.Item]()
	if ids := grouped[finance.AssetCrypto]; len(ids) > 0 && s.crypto != nil {
		p.Go(func() []finance.Item {
			items, err := s.crypto.FetchPrices(ctx, ids)
			if err != nil {
				s.logger.WarnContext(ctx, "crypto quotes failed", "error", err)
				return nil
			}
			return items
		})
	}
	if len(grouped[finance.AssetGold]) > 0 && s.quotes != nil {
		p.Go(func() []finance.Item {
			items, err := s.quotes.FetchGoldSilver(ctx)
			if err != nil {
				s.logger.WarnContext(ctx, "metal quotes failed", "error", err)
				return nil
			}
			return items
		})
	}
	if codes := grouped[finance.AssetStockCN]; len(codes) > 0 && s.quotes != nil {
		p.Go(func() []finance.Item {
			items, err := s.quotes.FetchStockCN(ctx, codes)
			if err != nil {
				s.logger.WarnContext(ctx, "cn equity quotes failed", "error", err)
				return nil
			}
			return items
		})
	}
	if symbols := grouped[finance.AssetStockUS]; len(symbols) > 0 && s.quotes != nil {
		p.Go(func() []finance.Item {
			items, err := s.quotes.FetchStockUS(ctx, symbols)
			if err != nil {
				s.logger.WarnContext(ctx, "us equity quotes failed", "error", err)
				return nil
			}
			return items
		})
	}
	if codes := grouped[finance.AssetFund]; len(codes) > 0 && s.funds != nil {
		p.Go(func() []finance.Item {
			items, err := s.funds.FetchFunds(ctx, codes)
			if err != nil {
				s.logger.WarnContext(ctx, "fund estimates failed", "error", err)
				return nil
			}
			return items
		})
	}

	quoted := make(map[string]finance.Item)
	for _, batch := range p.Wait() {
		for _, item := range batch {
			quoted[item.ID] = item
		}
	}

	out := make([]finance.Item, 0, len(watched))
	for _, item := range watched {
		if quote, ok := quoted[item.ID]; ok {
			out = append(out, quote)
		}
	}
	return out, nil
}

// Search looks up watchlist candidates on one venue. Everything except
// crypto quotes the query directly, so an unknown code simply yields no
// results.
func (s *FinanceService) Search(ctx context.Context, assetType finance.AssetType, query string) ([]finance.SearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}

	switch assetType {
	case finance.AssetCrypto:
		if s.crypto == nil {
			return nil, fmt.Errorf("%w: crypto venue not configured", ErrDependencyUnavailable)
		}
		results, err := s.crypto.Search(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("search crypto: %w", err)
		}
		return results, nil
	case finance.AssetGold:
		return []finance.SearchResult{
			{ID: "gold_XAU", Type: finance.AssetGold, Symbol: "XAU", Name: "黄金"},
			{ID: "gold_XAG", Type: finance.AssetGold, Symbol: "XAG", Name: "白银"},
		}, nil
	case finance.AssetStockCN:
		if s.quotes == nil {
			return nil, fmt.Errorf("%w: equity venue not configured", ErrDependencyUnavailable)
		}
		items, err := s.quotes.FetchStockCN(ctx, []string{query})
		if err != nil {
			return nil, fmt.Errorf("search cn equity: %w", err)
		}
		return searchResultsFromItems(items), nil
	case finance.AssetStockUS:
		if s.quotes == nil {
			return nil, fmt.Errorf("%w: equity venue not configured", ErrDependencyUnavailable)
		}
		items, err := s.quotes.FetchStockUS(ctx, []string{query})
		if err != nil {
			return nil, fmt.Errorf("search us equity: %w", err)
		}
		return searchResultsFromItems(items), nil
	case finance.AssetFund:
		if s.funds == nil {
			return nil, fmt.Errorf("%w: fund venue not configured", ErrDependencyUnavailable)
		}
		items, err := s.funds.FetchFunds(ctx, []string{query})
		if err != nil {
			return nil, fmt.Errorf("search fund: %w", err)
		}
		return searchResultsFromItems(items), nil
	default:
		return nil, fmt.Errorf("%w: unknown asset type %q", ErrInvalidInput, assetType)
	}
}

func searchResultsFromItems(items []finance.Item) []finance.SearchResult {
	out := make([]finance.SearchResult, 0, len(items))
	for _, item := range items {
		out = append(out, finance.SearchResult{
			ID:     item.ID,
			Type:   item.Type,
			Symbol: item.Symbol,
			Name:   item.Name,
		})
	}
	return out
}
