package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/leyuan/sportdesk/internal/domain/favorite"
	"github.com/leyuan/sportdesk/internal/domain/match"
)

type favoriteKey struct {
	id    string
	sport match.SportType
}

// FavoriteRepository stores favorites keyed by (id, sport), so adding
// the same favorite twice is a no-op.
type FavoriteRepository struct {
	mu    sync.RWMutex
	items map[favoriteKey]favorite.Item
}

func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{items: make(map[favoriteKey]favorite.Item)}
}

func (r *FavoriteRepository) List(_ context.Context) ([]favorite.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(favorite.Item) bool { return true }), nil
}

func (r *FavoriteRepository) ListBySport(_ context.Context, sport match.SportType) ([]favorite.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(item favorite.Item) bool { return item.SportType == sport }), nil
}

func (r *FavoriteRepository) Add(_ context.Context, item favorite.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, sport := item.Key()
	key := favoriteKey{id: id, sport: sport}
	if _, exists := r.items[key]; exists {
		return nil
	}
	r.items[key] = item
	return nil
}

func (r *FavoriteRepository) Remove(_ context.Context, id string, sport match.SportType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, favoriteKey{id: id, sport: sport})
	return nil
}

// collect returns matching favorites ordered oldest first. Callers hold
// the read lock.
func (r *FavoriteRepository) collect(keep func(favorite.Item) bool) []favorite.Item {
	out := make([]favorite.Item, 0, len(r.items))
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
