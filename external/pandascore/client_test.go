package pandascore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leyuan/sportdesk/internal/domain/match"
)

const runningFixture = `[
  {
    "id": 88001,
    "begin_at": "2026-04-02T10:00:00Z",
    "status": "running",
    "tournament": {"name": "Group Stage"},
    "league": {"name": "LCK", "image_url": "https://cdn.pandascore.co/lck.png"},
    "opponents": [
      {"opponent": {"id": 1, "name": "T1", "image_url": "https://cdn.pandascore.co/t1.png"}},
      {"opponent": {"id": 2, "name": "Gen.G", "image_url": "https://cdn.pandascore.co/geng.png"}}
    ],
    "results": [
      {"team_id": 1, "score": 1},
      {"team_id": 2, "score": 2}
    ],
    "videogame": {"slug": "league-of-legends", "name": "League of Legends"},
    "number_of_games": 5
  },
  {
    "id": 88002,
    "begin_at": "2026-04-02T11:00:00Z",
    "status": "running",
    "opponents": [
      {"opponent": {"id": 9, "name": "TBD"}}
    ],
    "videogame": {"slug": "cs-2", "name": "Counter-Strike 2"}
  }
]`

func TestFetchRunningMatches_MapsOpponentsAndScores(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/matches/running", r.URL.Path)
		require.Equal(t, "20", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(runningFixture))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "ps-token", Timeout: 2 * time.Second})
	matches, err := client.FetchRunningMatches(context.Background(), "all")
	require.NoError(t, err)

	assert.Equal(t, "Bearer ps-token", gotAuth)
	require.Len(t, matches, 1, "matches without two opponents are dropped")

	got := matches[0]
	assert.Equal(t, "esports-88001", got.ID)
	assert.Equal(t, match.SportEsports, got.SportType)
	assert.Equal(t, match.StatusLive, got.Status)
	assert.Equal(t, "T1", got.HomeTeam)
	assert.Equal(t, "Gen.G", got.AwayTeam)
	require.NotNil(t, got.HomeScore)
	require.NotNil(t, got.AwayScore)
	assert.Equal(t, 1, *got.HomeScore)
	assert.Equal(t, 2, *got.AwayScore)
	assert.Equal(t, "LCK", got.League)
	assert.Equal(t, "lol", got.Extra["game"])
	assert.Equal(t, "LOL", got.Extra["gameName"])
	assert.Equal(t, "BO5", got.Extra["bestOf"])
}

func TestFetchRunningMatches_GameFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(runningFixture))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	matches, err := client.FetchRunningMatches(context.Background(), "csgo")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFetchTeamPlayers_FallsBackThroughLookups(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?"+r.URL.RawQuery)
		require.Equal(t, "/lol/teams", r.URL.Path)
		if r.URL.Query().Get("search[name]") == "Weibo Gaming" {
			_, _ = w.Write([]byte(`[
  {
    "id": 501,
    "name": "Weibo Gaming",
    "acronym": "WBG",
    "players": [
      {"id": 9001, "name": "TheShy", "slug": "theshy", "role": "top", "nationality": "KR"},
      {"id": 9002, "name": "", "first_name": "Li", "last_name": "Hua", "role": "", "nationality": ""}
    ]
  }
]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	players, err := client.FetchTeamPlayers(context.Background(), "Weibo Gaming", "lol")
	require.NoError(t, err)

	require.Len(t, paths, 3, "acronym filter, name filter, then search")
	require.Len(t, players, 2)

	assert.Equal(t, "esports-9001", players[0].ID)
	assert.Equal(t, "TheShy", players[0].Name)
	assert.Equal(t, "Weibo Gaming", players[0].Team)
	assert.Equal(t, "top", players[0].Stats["位置"])
	assert.Equal(t, "KR", players[0].Stats["国籍"])
	assert.Equal(t, "theshy", players[0].Stats["ID"])

	assert.Equal(t, "Li Hua", players[1].Name)
	assert.Equal(t, "-", players[1].Stats["位置"])
	assert.Equal(t, "-", players[1].Stats["国籍"])
}

func TestFetchTeamPlayers_PrefersExactAcronym(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
  {"id": 1, "name": "Alpha Legion", "acronym": "ALG", "players": [{"id": 1, "name": "alpha"}]},
  {"id": 2, "name": "Anyone's Legend", "acronym": "AL", "players": [{"id": 2, "name": "legend"}]}
]`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	players, err := client.FetchTeamPlayers(context.Background(), "AL", "lol")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Anyone's Legend", players[0].Team)
}

func TestFetchTeamPlayers_UnknownGame(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://unused", Timeout: time.Second})
	players, err := client.FetchTeamPlayers(context.Background(), "NAVI", "starcraft")
	require.NoError(t, err)
	assert.Nil(t, players)
}
