package finance

import (
	"strings"
	"time"
)

// AssetType identifies the venue class an instrument is quoted on.
type AssetType string

const (
	AssetCrypto  AssetType = "crypto"
	AssetGold    AssetType = "gold"
	AssetStockCN AssetType = "stock_cn"
	AssetStockUS AssetType = "stock_us"
	AssetFund    AssetType = "fund"
)

func ParseAssetType(v string) (AssetType, bool) {
	switch AssetType(strings.ToLower(strings.TrimSpace(v))) {
	case AssetCrypto:
		return AssetCrypto, true
	case AssetGold:
		return AssetGold, true
	case AssetStockCN:
		return AssetStockCN, true
	case AssetStockUS:
		return AssetStockUS, true
	case AssetFund:
		return AssetFund, true
	default:
		return "", false
	}
}

// Item is a live quote. ID carries a type prefix: crypto_<id>, gold_XAU,
// stock_cn_<code>, stock_us_<symbol>, fund_<code>.
type Item struct {
	ID            string    `json:"id"`
	Type          AssetType `json:"type"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Currency      string    `json:"currency"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// WatchItem is a persisted watchlist entry. It survives independently of
// live quotes: a refresh may fail and leave the entry with no Item.
type WatchItem struct {
	ID      string    `json:"id"`
	Type    AssetType `json:"type"`
	Symbol  string    `json:"symbol"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"addedAt"`
}

// SearchResult is one candidate from a venue search, confirmed by the user
// before becoming a WatchItem.
type SearchResult struct {
	ID     string    `json:"id"`
	Type   AssetType `json:"type"`
	Symbol string    `json:"symbol"`
	Name   string    `json:"name"`
	Thumb  string    `json:"thumb,omitempty"`
}
