package footballdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leyuan/sportdesk/internal/domain/match"
)

func matchEntry(id int, code, status string) string {
	return fmt.Sprintf(`{
  "id": %d,
  "utcDate": "2026-03-01T15:00:00Z",
  "status": %q,
  "matchday": 28,
  "homeTeam": {"id": 65, "name": "Manchester City FC", "shortName": "Man City", "crest": "https://crests.football-data.org/65.png"},
  "awayTeam": {"id": 64, "name": "Liverpool FC", "shortName": "Liverpool", "crest": "https://crests.football-data.org/64.png"},
  "score": {"fullTime": {"home": 2, "away": 1}, "halfTime": {"home": 1, "away": 0}},
  "competition": {"id": 2021, "name": "Premier League", "code": %q}
}`, id, status, code)
}

func TestFetchMatches_MapsAndFilters(t *testing.T) {
	var gotToken, gotFrom, gotTo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Auth-Token")
		gotFrom = r.URL.Query().Get("dateFrom")
		gotTo = r.URL.Query().Get("dateTo")
		body := fmt.Sprintf(`{"matches": [%s, %s]}`,
			matchEntry(1001, "PL", "FINISHED"),
			matchEntry(1002, "ELC", "FINISHED"))
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "secret-token", Timeout: 2 * time.Second})
	matches, err := client.FetchMatches(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "secret-token", gotToken)
	assert.NotEmpty(t, gotFrom)
	assert.NotEmpty(t, gotTo)

	require.Len(t, matches, 1, "untracked competition codes are dropped")
	got := matches[0]
	assert.Equal(t, "football-1001", got.ID)
	assert.Equal(t, match.SportFootball, got.SportType)
	assert.Equal(t, match.StatusFinished, got.Status)
	assert.Equal(t, "Man City", got.HomeTeam)
	assert.Equal(t, "Liverpool", got.AwayTeam)
	require.NotNil(t, got.HomeScore)
	assert.Equal(t, 2, *got.HomeScore)
	assert.Equal(t, "Premier League", got.League)
	assert.Equal(t, "Matchday 28", got.Extra["matchday"])
	assert.Equal(t, "HT 1-0", got.Extra["halfTimeScore"])
}

func TestFetchMatches_CapsAtTwenty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entries := make([]string, 0, 30)
		for i := 0; i < 30; i++ {
			entries = append(entries, matchEntry(2000+i, "PL", "TIMED"))
		}
		_, _ = w.Write([]byte(`{"matches": [` + strings.Join(entries, ",") + `]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	matches, err := client.FetchMatches(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, maxMatches)
	assert.Equal(t, match.StatusUpcoming, matches[0].Status)
}

func TestParseStatus(t *testing.T) {
	cases := map[string]match.Status{
		"IN_PLAY":          match.StatusLive,
		"PAUSED":           match.StatusLive,
		"PENALTY_SHOOTOUT": match.StatusLive,
		"FINISHED":         match.StatusFinished,
		"AWARDED":          match.StatusFinished,
		"TIMED":            match.StatusUpcoming,
		"SCHEDULED":        match.StatusUpcoming,
	}
	for status, want := range cases {
		assert.Equal(t, want, parseStatus(status), status)
	}
}
