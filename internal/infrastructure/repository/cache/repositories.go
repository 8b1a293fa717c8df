package cache

import (
	"context"

	"github.com/leyuan/sportdesk/internal/domain/favorite"
	"github.com/leyuan/sportdesk/internal/domain/finance"
	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/domain/settings"
	basecache "github.com/leyuan/sportdesk/internal/platform/cache"
)

type SnapshotRepository struct {
	next  match.SnapshotRepository
	cache *basecache.Store
}

func NewSnapshotRepository(next match.SnapshotRepository, cache *basecache.Store) *SnapshotRepository {
	return &SnapshotRepository{next: next, cache: cache}
}

func (r *SnapshotRepository) GetSnapshot(ctx context.Context, sport match.SportType) (match.Snapshot, bool, error) {
	key := snapshotKey(sport)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		snapshot, exists, err := r.next.GetSnapshot(ctx, sport)
		if err != nil {
			return nil, err
		}
		return cachedSnapshot{value: cloneSnapshot(snapshot), exists: exists}, nil
	})
	if err != nil {
		return match.Snapshot{}, false, err
	}

	cached, _ := v.(cachedSnapshot)
	return cloneSnapshot(cached.value), cached.exists, nil
}

func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot match.Snapshot) error {
	if err := r.next.SaveSnapshot(ctx, snapshot); err != nil {
		return err
	}
	r.cache.Delete(ctx, snapshotKey(snapshot.Sport))
	return nil
}

type cachedSnapshot struct {
	value  match.Snapshot
	exists bool
}

func cloneSnapshot(snapshot match.Snapshot) match.Snapshot {
	out := snapshot
	out.Matches = append([]match.Match(nil), snapshot.Matches...)
	return out
}

func snapshotKey(sport match.SportType) string {
	return "snapshot:sport:" + string(sport)
}

type FavoriteRepository struct {
	next  favorite.Repository
	cache *basecache.Store
}

func NewFavoriteRepository(next favorite.Repository, cache *basecache.Store) *FavoriteRepository {
	return &FavoriteRepository{next: next, cache: cache}
}

func (r *FavoriteRepository) List(ctx context.Context) ([]favorite.Item, error) {
	v, err := r.cache.GetOrLoad(ctx, favoriteListPrefix+"all", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]favorite.Item(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]favorite.Item)
	return append([]favorite.Item(nil), items...), nil
}

func (r *FavoriteRepository) ListBySport(ctx context.Context, sport match.SportType) ([]favorite.Item, error) {
	key := favoriteListPrefix + "sport:" + string(sport)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySport(ctx, sport)
		if err != nil {
			return nil, err
		}
		return append([]favorite.Item(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]favorite.Item)
	return append([]favorite.Item(nil), items...), nil
}

func (r *FavoriteRepository) Add(ctx context.Context, item favorite.Item) error {
	if err := r.next.Add(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, favoriteListPrefix)
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, id string, sport match.SportType) error {
	if err := r.next.Remove(ctx, id, sport); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, favoriteListPrefix)
	return nil
}

const favoriteListPrefix = "favorite:list:"

type WatchlistRepository struct {
	next  finance.WatchlistRepository
	cache *basecache.Store
}

func NewWatchlistRepository(next finance.WatchlistRepository, cache *basecache.Store) *WatchlistRepository {
	return &WatchlistRepository{next: next, cache: cache}
}

func (r *WatchlistRepository) List(ctx context.Context) ([]finance.WatchItem, error) {
	v, err := r.cache.GetOrLoad(ctx, watchlistListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]finance.WatchItem(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]finance.WatchItem)
	return append([]finance.WatchItem(nil), items...), nil
}

func (r *WatchlistRepository) Add(ctx context.Context, item finance.WatchItem) error {
	if err := r.next.Add(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, watchlistListKey)
	return nil
}

func (r *WatchlistRepository) Remove(ctx context.Context, id string) error {
	if err := r.next.Remove(ctx, id); err != nil {
		return err
	}
	r.cache.Delete(ctx, watchlistListKey)
	return nil
}

const watchlistListKey = "watchlist:list"

type SettingsRepository struct {
	next  settings.Repository
	cache *basecache.Store
}

func NewSettingsRepository(next settings.Repository, cache *basecache.Store) *SettingsRepository {
	return &SettingsRepository{next: next, cache: cache}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	v, err := r.cache.GetOrLoad(ctx, settingsKey, func(ctx context.Context) (any, error) {
		s, err := r.next.Get(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
	if err != nil {
		return settings.Settings{}, err
	}

	s, _ := v.(settings.Settings)
	return s, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	if err := r.next.Save(ctx, s); err != nil {
		return err
	}
	r.cache.Delete(ctx, settingsKey)
	return nil
}

const settingsKey = "settings:current"
