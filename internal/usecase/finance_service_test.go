package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/leyuan/sportdesk/internal/domain/finance"
	"github.com/leyuan/sportdesk/internal/infrastructure/repository/memory"
)

type stubCryptoSource struct {
	prices  []finance.Item
	results []finance.SearchResult
	err     error
	lastIDs []string
}

func (s *stubCryptoSource) FetchPrices(_ context.Context, ids []string) ([]finance.Item, error) {
	s.lastIDs = ids
	return s.prices, s.err
}

func (s *stubCryptoSource) Search(_ context.Context, _ string) ([]finance.SearchResult, error) {
	return s.results, s.err
}

type stubQuoteSource struct {
	metals []finance.Item
	cn     []finance.Item
	us     []finance.Item
	err    error
}

func (s *stubQuoteSource) FetchGoldSilver(_ context.Context) ([]finance.Item, error) {
	return s.metals, s.err
}

func (s *stubQuoteSource) FetchStockCN(_ context.Context, _ []string) ([]finance.Item, error) {
	return s.cn, s.err
}

func (s *stubQuoteSource) FetchStockUS(_ context.Context, _ []string) ([]finance.Item, error) {
	return s.us, s.err
}

type stubFundSource struct {
	items []finance.Item
	err   error
}

func (s *stubFundSource) FetchFunds(_ context.Context, _ []string) ([]finance.Item, error) {
	return s.items, s.err
}

func watchlistWith(t *testing.T, items ...finance.WatchItem) finance.WatchlistRepository {
	t.Helper()
	repo := memory.NewWatchlistRepository()
	for _, item := range items {
		if err := repo.Add(context.Background(), item); err != nil {
			t.Fatalf("seed watchlist: %v", err)
		}
	}
	return repo
}

func TestFinanceService_RefreshWatchlistKeepsOrder(t *testing.T) {
	repo := watchlistWith(t,
		finance.WatchItem{ID: "crypto_bitcoin", Type: finance.AssetCrypto, Symbol: "bitcoin"},
		finance.WatchItem{ID: "gold_XAU", Type: finance.AssetGold, Symbol: "XAU"},
		finance.WatchItem{ID: "fund_110011", Type: finance.AssetFund, Symbol: "110011"},
	)

	crypto := &stubCryptoSource{prices: []finance.Item{{ID: "crypto_bitcoin", Type: finance.AssetCrypto, Price: 60000}}}
	quotes := &stubQuoteSource{metals: []finance.Item{
		{ID: "gold_XAU", Type: finance.AssetGold, Price: 2400},
		{ID: "gold_XAG", Type: finance.AssetGold, Price: 29},
	}}
	funds := &stubFundSource{items: []finance.Item{{ID: "fund_110011", Type: finance.AssetFund, Price: 1.23}}}

	svc := NewFinanceService(repo, crypto, quotes, funds, nil)
	items, err := svc.RefreshWatchlist(t.Context())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("expected three quotes, got %d", len(items))
	}
	// Watchlist order, and the unwatched silver quote is dropped.
	if items[0].ID != "crypto_bitcoin" || items[1].ID != "gold_XAU" || items[2].ID != "fund_110011" {
		t.Fatalf("unexpected order: %s, %s, %s", items[0].ID, items[1].ID, items[2].ID)
	}
	if len(crypto.lastIDs) != 1 || crypto.lastIDs[0] != "bitcoin" {
		t.Fatalf("expected symbols passed to crypto venue, got %v", crypto.lastIDs)
	}
}

func TestFinanceService_RefreshDegradesPerVenue(t *testing.T) {
	repo := watchlistWith(t,
		finance.WatchItem{ID: "crypto_bitcoin", Type: finance.AssetCrypto, Symbol: "bitcoin"},
		finance.WatchItem{ID: "stock_cn_600519", Type: finance.AssetStockCN, Symbol: "600519"},
	)

	crypto := &stubCryptoSource{err: errors.New("rate limited")}
	quotes := &stubQuoteSource{cn: []finance.Item{{ID: "stock_cn_600519", Type: finance.AssetStockCN, Price: 1500}}}

	svc := NewFinanceService(repo, crypto, quotes, &stubFundSource{}, nil)
	items, err := svc.RefreshWatchlist(t.Context())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "stock_cn_600519" {
		t.Fatalf("expected surviving venue only, got %+v", items)
	}
}

func TestFinanceService_RefreshEmptyWatchlist(t *testing.T) {
	svc := NewFinanceService(memory.NewWatchlistRepository(), &stubCryptoSource{}, &stubQuoteSource{}, &stubFundSource{}, nil)
	items, err := svc.RefreshWatchlist(t.Context())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", items)
	}
}

func TestFinanceService_AddToWatchlistValidation(t *testing.T) {
	svc := NewFinanceService(memory.NewWatchlistRepository(), &stubCryptoSource{}, &stubQuoteSource{}, &stubFundSource{}, nil)

	if _, err := svc.AddToWatchlist(t.Context(), finance.WatchItem{Type: finance.AssetCrypto, Symbol: "btc"}); err == nil {
		t.Fatal("expected error for missing id")
	}
	if _, err := svc.AddToWatchlist(t.Context(), finance.WatchItem{ID: "x", Type: "bond", Symbol: "x"}); err == nil {
		t.Fatal("expected error for unknown asset type")
	}

	item, err := svc.AddToWatchlist(t.Context(), finance.WatchItem{ID: "crypto_bitcoin", Type: finance.AssetCrypto, Symbol: "bitcoin"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if item.AddedAt.IsZero() {
		t.Fatal("expected AddedAt to be stamped")
	}
}

func TestFinanceService_Search(t *testing.T) {
	crypto := &stubCryptoSource{results: []finance.SearchResult{{ID: "crypto_bitcoin", Type: finance.AssetCrypto, Symbol: "BTC", Name: "Bitcoin"}}}
	quotes := &stubQuoteSource{us: []finance.Item{{ID: "stock_us_AAPL", Type: finance.AssetStockUS, Symbol: "AAPL", Name: "苹果公司"}}}
	svc := NewFinanceService(memory.NewWatchlistRepository(), crypto, quotes, &stubFundSource{}, nil)

	t.Run("crypto", func(t *testing.T) {
		results, err := svc.Search(t.Context(), finance.AssetCrypto, "bitcoin")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(results) != 1 || results[0].ID != "crypto_bitcoin" {
			t.Fatalf("unexpected results: %+v", results)
		}
	})

	t.Run("gold is static", func(t *testing.T) {
		results, err := svc.Search(t.Context(), finance.AssetGold, "gold")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(results) != 2 || results[0].ID != "gold_XAU" || results[1].ID != "gold_XAG" {
			t.Fatalf("unexpected results: %+v", results)
		}
	})

	t.Run("us equity quotes the query", func(t *testing.T) {
		results, err := svc.Search(t.Context(), finance.AssetStockUS, "AAPL")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(results) != 1 || results[0].Symbol != "AAPL" {
			t.Fatalf("unexpected results: %+v", results)
		}
	})

	t.Run("empty query rejected", func(t *testing.T) {
		if _, err := svc.Search(t.Context(), finance.AssetCrypto, "  "); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		if _, err := svc.Search(t.Context(), "bond", "x"); err == nil {
			t.Fatal("expected validation error")
		}
	})
}
