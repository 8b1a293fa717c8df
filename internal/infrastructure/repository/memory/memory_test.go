package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leyuan/sportdesk/internal/domain/favorite"
	"github.com/leyuan/sportdesk/internal/domain/finance"
	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/domain/settings"
)

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	repo := NewSnapshotRepository()
	ctx := context.Background()

	_, found, err := repo.GetSnapshot(ctx, match.SportNBA)
	require.NoError(t, err)
	assert.False(t, found)

	snapshot := match.Snapshot{
		Sport:     match.SportNBA,
		Matches:   []match.Match{{ID: "nba-1", SportType: match.SportNBA}},
		FetchedAt: time.Now(),
	}
	require.NoError(t, repo.SaveSnapshot(ctx, snapshot))

	got, found, err := repo.GetSnapshot(ctx, match.SportNBA)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, got.Matches, 1)

	got.Matches[0].ID = "mutated"
	again, _, err := repo.GetSnapshot(ctx, match.SportNBA)
	require.NoError(t, err)
	assert.Equal(t, "nba-1", again.Matches[0].ID, "returned snapshots must be copies")
}

func TestSnapshotRepository_SaveReplacesWholesale(t *testing.T) {
	repo := NewSnapshotRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, match.Snapshot{
		Sport:   match.SportNBA,
		Matches: []match.Match{{ID: "a"}, {ID: "b"}},
	}))
	require.NoError(t, repo.SaveSnapshot(ctx, match.Snapshot{
		Sport:   match.SportNBA,
		Matches: []match.Match{{ID: "c"}},
	}))

	got, _, err := repo.GetSnapshot(ctx, match.SportNBA)
	require.NoError(t, err)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "c", got.Matches[0].ID)
}

func TestFavoriteRepository_AddIsIdempotent(t *testing.T) {
	repo := NewFavoriteRepository()
	ctx := context.Background()
	base := time.Now()

	item := favorite.Item{ID: "team-lakers", Type: favorite.TypeTeam, SportType: match.SportNBA, Name: "Lakers", AddedAt: base}
	require.NoError(t, repo.Add(ctx, item))

	dup := item
	dup.Name = "Los Angeles Lakers"
	dup.AddedAt = base.Add(time.Hour)
	require.NoError(t, repo.Add(ctx, dup))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lakers", items[0].Name, "first entry wins on duplicate keys")
}

func TestFavoriteRepository_ListBySportAndRemove(t *testing.T) {
	repo := NewFavoriteRepository()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, repo.Add(ctx, favorite.Item{ID: "f1", Type: favorite.TypeTeam, SportType: match.SportNBA, Name: "Lakers", AddedAt: base}))
	require.NoError(t, repo.Add(ctx, favorite.Item{ID: "f2", Type: favorite.TypeTeam, SportType: match.SportFootball, Name: "Arsenal", AddedAt: base.Add(time.Second)}))

	nba, err := repo.ListBySport(ctx, match.SportNBA)
	require.NoError(t, err)
	require.Len(t, nba, 1)
	assert.Equal(t, "f1", nba[0].ID)

	require.NoError(t, repo.Remove(ctx, "f1", match.SportNBA))
	require.NoError(t, repo.Remove(ctx, "f1", match.SportNBA), "removing a missing favorite is a no-op")

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "f2", all[0].ID)
}

func TestWatchlistRepository(t *testing.T) {
	repo := NewWatchlistRepository()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, repo.Add(ctx, finance.WatchItem{ID: "crypto_bitcoin", Type: finance.AssetCrypto, Symbol: "bitcoin", AddedAt: base}))
	require.NoError(t, repo.Add(ctx, finance.WatchItem{ID: "crypto_bitcoin", Type: finance.AssetCrypto, Symbol: "bitcoin", AddedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Add(ctx, finance.WatchItem{ID: "fund_110011", Type: finance.AssetFund, Symbol: "110011", AddedAt: base.Add(time.Second)}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "crypto_bitcoin", items[0].ID)
	assert.Equal(t, "fund_110011", items[1].ID)

	require.NoError(t, repo.Remove(ctx, "crypto_bitcoin"))
	require.NoError(t, repo.Remove(ctx, "missing"))
	items, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSettingsRepository_DefaultsUntilSaved(t *testing.T) {
	repo := NewSettingsRepository()
	ctx := context.Background()

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), got)

	custom := settings.Default()
	custom.RefreshInterval = 30
	custom.Theme = "light"
	require.NoError(t, repo.Save(ctx, custom))

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, got.RefreshInterval)
	assert.Equal(t, "light", got.Theme)
}

func TestFallbackDatasets(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)

	nba := Fallback(match.SportNBA, now)
	require.Len(t, nba, 4)
	assert.Equal(t, "nba-fallback-1", nba[0].ID)
	assert.Equal(t, match.StatusFinished, nba[0].Status)
	assert.Len(t, nba[0].HomePlayers, 5)
	assert.Equal(t, match.StatusLive, nba[2].Status)
	for _, m := range nba {
		assert.Equal(t, match.SportNBA, m.SportType)
		assert.NotEmpty(t, m.HomeLogo)
	}

	football := Fallback(match.SportFootball, now)
	require.Len(t, football, 4)
	assert.Equal(t, "Premier League", football[0].League)

	esports := Fallback(match.SportEsports, now)
	require.Len(t, esports, 9)
	games := map[string]bool{}
	for _, m := range esports {
		games[m.Extra["game"].(string)] = true
	}
	assert.True(t, games["csgo"] && games["lol"] && games["valorant"] && games["dota2"])

	assert.Nil(t, Fallback(match.SportType("curling"), now))
}
