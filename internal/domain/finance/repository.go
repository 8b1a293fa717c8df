package finance

import "context"

// WatchlistRepository stores the finance watchlist. Add is idempotent by
// ID; Remove of a missing entry is a no-op.
type WatchlistRepository interface {
	List(ctx context.Context) ([]WatchItem, error)
	Add(ctx context.Context, item WatchItem) error
	Remove(ctx context.Context, id string) error
}
