package espn

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leyuan/sportdesk/internal/domain/match"
)

func scoreboardBody(eventID, dateISO, statusName string, completed bool, homeScore, awayScore string) string {
	return fmt.Sprintf(`{
  "events": [
    {
      "id": %q,
      "date": %q,
      "name": "Arsenal at Chelsea",
      "competitions": [
        {
          "status": {"type": {"name": %q, "description": "Second Half", "completed": %t}, "displayClock": "67'"},
          "competitors": [
            {"homeAway": "home", "score": %q, "team": {"id": "363", "displayName": "Chelsea", "shortDisplayName": "Chelsea", "logo": "https://a.espncdn.com/363.png"}},
            {"homeAway": "away", "score": %q, "team": {"id": "359", "displayName": "Arsenal", "shortDisplayName": "Arsenal", "logo": "https://a.espncdn.com/359.png"}}
          ],
          "venue": {"fullName": "Stamford Bridge", "city": "London"}
        }
      ]
    }
  ]
}`, eventID, dateISO, statusName, completed, homeScore, awayScore)
}

func TestFetchMatches_MapsLiveEvent(t *testing.T) {
	future := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/eng.1/scoreboard" {
			if r.URL.Query().Get("dates") == "" {
				t.Error("missing dates query parameter")
			}
			_, _ = w.Write([]byte(scoreboardBody("606123", future, "STATUS_SECOND_HALF", false, "2", "1")))
			return
		}
		_, _ = w.Write([]byte(`{"events": []}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	matches, err := client.FetchMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 1)

	got := matches[0]
	assert.Equal(t, "football-espn-606123", got.ID)
	assert.Equal(t, match.SportFootball, got.SportType)
	assert.Equal(t, match.StatusLive, got.Status)
	assert.Equal(t, "Chelsea", got.HomeTeam)
	assert.Equal(t, "Arsenal", got.AwayTeam)
	require.NotNil(t, got.HomeScore)
	assert.Equal(t, 2, *got.HomeScore)
	assert.Equal(t, "Premier League", got.League)
	assert.Equal(t, "Stamford Bridge", got.Venue)
	assert.Equal(t, "eng.1", got.Extra["espnLeagueSlug"])
	assert.Equal(t, "606123", got.Extra["espnEventId"])
	assert.Equal(t, "Second Half", got.Extra["statusText"])
	assert.Equal(t, "67'", got.Extra["displayClock"])
}

func TestFetchMatches_UpcomingHasNoScores(t *testing.T) {
	future := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/esp.1/scoreboard" {
			_, _ = w.Write([]byte(scoreboardBody("700001", future, "STATUS_SCHEDULED", false, "0", "0")))
			return
		}
		_, _ = w.Write([]byte(`{"events": []}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	matches, err := client.FetchMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, match.StatusUpcoming, matches[0].Status)
	assert.Nil(t, matches[0].HomeScore)
	assert.Nil(t, matches[0].AwayScore)
	_, hasClock := matches[0].Extra["displayClock"]
	assert.False(t, hasClock)
}

func TestFetchMatches_DropsFinishedBeforeToday(t *testing.T) {
	yesterday := time.Now().UTC().Add(-36 * time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ger.1/scoreboard" {
			_, _ = w.Write([]byte(scoreboardBody("700002", yesterday, "STATUS_FULL_TIME", true, "3", "0")))
			return
		}
		_, _ = w.Write([]byte(`{"events": []}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	_, err := client.FetchMatches(context.Background())
	require.Error(t, err, "stale finished fixtures should leave an empty result")
}

func TestFetchMatches_ErrorsWhenAllLeaguesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second})
	_, err := client.FetchMatches(context.Background())
	require.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		name      string
		completed bool
		want      match.Status
	}{
		{"STATUS_SCHEDULED", false, match.StatusUpcoming},
		{"STATUS_HALFTIME", false, match.StatusLive},
		{"STATUS_PENALTY_SHOOTOUT", false, match.StatusLive},
		{"STATUS_FULL_TIME", false, match.StatusFinished},
		{"STATUS_POSTPONED", false, match.StatusFinished},
		{"STATUS_SCHEDULED", true, match.StatusFinished},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseStatus(tc.name, tc.completed), tc.name)
	}
}

func TestFetchMatchRoster_OrdersStartersFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/eng.1/summary", r.URL.Path)
		require.Equal(t, "606123", r.URL.Query().Get("event"))
		_, _ = w.Write([]byte(`{
  "rosters": [
    {
      "team": {"id": "363", "displayName": "Chelsea"},
      "roster": [
        {
          "athlete": {"id": "p2", "displayName": "Super Sub"},
          "jersey": "21",
          "position": {"abbreviation": "M", "displayName": "Midfielder"},
          "starter": false,
          "stats": [{"abbreviation": "G", "displayValue": "1"}, {"abbreviation": "YC", "displayValue": "0"}]
        },
        {
          "athlete": {"id": "p1", "displayName": "Main Striker", "headshot": {"href": "https://a.espncdn.com/p1.png"}},
          "jersey": "9",
          "position": {"abbreviation": "F", "displayName": "Forward"},
          "starter": true,
          "stats": [{"abbreviation": "G", "displayValue": "2"}, {"abbreviation": "SH", "displayValue": "5"}]
        }
      ]
    },
    {
      "team": {"id": "359", "displayName": "Arsenal"},
      "roster": [
        {
          "athlete": {"id": "p3", "displayName": "Late Addition"},
          "jersey": "4",
          "starter": true,
          "stats": []
        }
      ]
    }
  ]
}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	home, away, err := client.FetchMatchRoster(context.Background(), "eng.1", "606123", "Chelsea", "Arsenal")
	require.NoError(t, err)

	require.Len(t, home, 2)
	assert.Equal(t, "Main Striker", home[0].Name)
	assert.Equal(t, "2", home[0].Stats["进球"])
	assert.Equal(t, "5", home[0].Stats["射门"])
	assert.Equal(t, "9", home[0].Stats["#"])
	assert.Equal(t, "https://a.espncdn.com/p1.png", home[0].Avatar)
	assert.Equal(t, "Super Sub", home[1].Name)

	require.Len(t, away, 1)
	assert.Equal(t, "是", away[0].Stats["首发"])
}

func TestFetchTeamSquad_SortsByPositionThenJersey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/eng.1/teams/363/roster", r.URL.Path)
		_, _ = w.Write([]byte(`{
  "athletes": [
    {"id": "a1", "displayName": "Wing Forward", "jersey": "11", "age": 24, "citizenship": "Brazil", "position": {"abbreviation": "F", "displayName": "Forward"}},
    {"id": "a2", "displayName": "First Keeper", "jersey": "1", "age": 29, "position": {"abbreviation": "G", "displayName": "Goalkeeper"}, "flag": {"alt": "Spain"}},
    {"id": "a3", "displayName": "Centre Back", "jersey": "5", "age": 27, "citizenship": "France", "position": {"abbreviation": "D", "displayName": "Defender"}},
    {"id": "a4", "displayName": "Second Keeper", "jersey": "13", "age": 22, "citizenship": "England", "position": {"abbreviation": "G", "displayName": "Goalkeeper"}}
  ]
}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	squad, err := client.FetchTeamSquad(context.Background(), "eng.1", "363", "Chelsea")
	require.NoError(t, err)
	require.Len(t, squad, 4)

	assert.Equal(t, "First Keeper", squad[0].Name)
	assert.Equal(t, "Second Keeper", squad[1].Name)
	assert.Equal(t, "Centre Back", squad[2].Name)
	assert.Equal(t, "Wing Forward", squad[3].Name)

	assert.Equal(t, "Spain", squad[0].Stats["国籍"])
	assert.Equal(t, "Goalkeeper", squad[0].Stats["位置"])
	assert.Equal(t, "29", squad[0].Stats["年龄"])
	assert.Equal(t, "Chelsea", squad[0].Team)
}
