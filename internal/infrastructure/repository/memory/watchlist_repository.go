package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/leyuan/sportdesk/internal/domain/finance"
)

// WatchlistRepository stores the finance watchlist keyed by item id.
type WatchlistRepository struct {
	mu    sync.RWMutex
	items map[string]finance.WatchItem
}

func NewWatchlistRepository() *WatchlistRepository {
	return &WatchlistRepository{items: make(map[string]finance.WatchItem)}
}

func (r *WatchlistRepository) List(_ context.Context) ([]finance.WatchItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]finance.WatchItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *WatchlistRepository) Add(_ context.Context, item finance.WatchItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return nil
	}
	r.items[item.ID] = item
	return nil
}

func (r *WatchlistRepository) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}
