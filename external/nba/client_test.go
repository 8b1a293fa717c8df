package nba

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

const scoreboardFixture = `{
  "scoreboard": {
    "gameDate": "2026-02-10",
    "games": [
      {
        "gameId": "0022500713",
        "gameStatus": 2,
        "gameStatusText": "Q3 4:12",
        "gameTimeUTC": "2026-02-10T02:30:00Z",
        "homeTeam": {"teamId": 1610612747, "teamName": "Lakers", "teamTricode": "LAL", "score": 78},
        "awayTeam": {"teamId": 1610612738, "teamName": "Celtics", "teamTricode": "BOS", "score": 81},
        "gameLeaders": {
          "homeLeaders": {"name": "LeBron James", "points": 24, "rebounds": 6, "assists": 8},
          "awayLeaders": {"name": "Jayson Tatum", "points": 27, "rebounds": 5, "assists": 4}
        }
      },
      {
        "gameId": "0022500714",
        "gameStatus": 1,
        "gameStatusText": "7:00 pm ET",
        "gameTimeUTC": "2026-02-11T00:00:00Z",
        "homeTeam": {"teamId": 1610612744, "teamName": "Warriors", "teamTricode": "GSW", "score": 0},
        "awayTeam": {"teamId": 1610612743, "teamName": "Nuggets", "teamTricode": "DEN", "score": 0}
      }
    ]
  }
}`

const boxscoreFixture = `{
  "game": {
    "homeTeam": {
      "teamName": "Lakers",
      "players": [
        {
          "personId": 2544,
          "firstName": "LeBron",
          "familyName": "James",
          "position": "SF",
          "played": "1",
          "statistics": {"points": 24, "reboundsTotal": 6, "assists": 8, "steals": 1, "blocks": 1, "minutes": "PT28M33.00S"}
        },
        {
          "personId": 1627936,
          "firstName": "Deep",
          "familyName": "Bench",
          "position": "",
          "played": "1",
          "statistics": {"points": 0, "reboundsTotal": 0, "assists": 0, "steals": 0, "blocks": 0, "minutes": "PT00M00.00S"}
        },
        {
          "personId": 1627937,
          "firstName": "Never",
          "familyName": "Dressed",
          "position": "C",
          "played": "0",
          "statistics": {"points": 0, "reboundsTotal": 0, "assists": 0, "steals": 0, "blocks": 0, "minutes": ""}
        }
      ]
    },
    "awayTeam": {
      "teamName": "Celtics",
      "players": [
        {
          "personId": 1628369,
          "firstName": "Jayson",
          "familyName": "Tatum",
          "position": "",
          "played": "1",
          "statistics": {"points": 27, "reboundsTotal": 5, "assists": 4, "steals": 2, "blocks": 0, "minutes": "PT31M05.00S"}
        }
      ]
    }
  }
}`

func newFixtureServer(t *testing.T, boxscoreStatus int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case scoreboardPath:
			if r.Header.Get("Referer") != "https://www.nba.com/" {
				t.Errorf("missing Referer header, got %q", r.Header.Get("Referer"))
			}
			_, _ = w.Write([]byte(scoreboardFixture))
		case "/static/json/liveData/boxscore/boxscore_0022500713.json":
			if boxscoreStatus != http.StatusOK {
				w.WriteHeader(boxscoreStatus)
				return
			}
			_, _ = w.Write([]byte(boxscoreFixture))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchMatches_MapsScoreboard(t *testing.T) {
	srv := newFixtureServer(t, http.StatusOK)
	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})

	matches, err := client.FetchMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 2)

	live := matches[0]
	assert.Equal(t, "nba-0022500713", live.ID)
	assert.Equal(t, match.SportNBA, live.SportType)
	assert.Equal(t, match.StatusLive, live.Status)
	assert.Equal(t, "Lakers", live.HomeTeam)
	assert.Equal(t, "Celtics", live.AwayTeam)
	require.NotNil(t, live.HomeScore)
	assert.Equal(t, 78, *live.HomeScore)
	assert.Equal(t, "https://cdn.nba.com/logos/nba/1610612747/global/L/logo.svg", live.HomeLogo)
	assert.Equal(t, "NBA", live.League)
	assert.Equal(t, "Q3 4:12", live.Extra["statusText"])
	assert.Equal(t, "LeBron James", live.Extra["homeLeaderName"])
	assert.Equal(t, "24分 6板 8助", live.Extra["homeLeaderStats"])
	assert.Equal(t, "Jayson Tatum 27分 5板 4助", live.Extra["awayLeader"])

	upcoming := matches[1]
	assert.Equal(t, match.StatusUpcoming, upcoming.Status)
	assert.Empty(t, upcoming.HomePlayers)
	_, hasLeader := upcoming.Extra["homeLeaderName"]
	assert.False(t, hasLeader)
}

func TestFetchMatches_HydratesBoxscoreForStartedGames(t *testing.T) {
	srv := newFixtureServer(t, http.StatusOK)
	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})

	matches, err := client.FetchMatches(context.Background())
	require.NoError(t, err)

	require.Len(t, matches[0].HomePlayers, 1)
	player := matches[0].HomePlayers[0]
	assert.Equal(t, "2544", player.ID)
	assert.Equal(t, "LeBron James", player.Name)
	assert.Equal(t, "Lakers", player.Team)
	assert.Equal(t, "SF", player.Position)
	assert.Equal(t, "28:33", player.Stats["时间"])
	assert.EqualValues(t, 24.0, player.Stats["得分"])

	require.Len(t, matches[0].AwayPlayers, 1)
	assert.Equal(t, "N/A", matches[0].AwayPlayers[0].Position)
}

func TestFetchMatches_BoxscoreFailureIsNotFatal(t *testing.T) {
	srv := newFixtureServer(t, http.StatusNotFound)
	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})

	matches, err := client.FetchMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Empty(t, matches[0].HomePlayers)
	assert.Empty(t, matches[0].AwayPlayers)
}

func TestFormatMinutes(t *testing.T) {
	cases := map[string]string{
		"PT36M45.00S": "36:45",
		"PT05M09.00S": "05:09",
		"PT00M12.00S": "00:12",
	}
	for input, want := range cases {
		assert.Equal(t, want, formatMinutes(input))
	}
}
