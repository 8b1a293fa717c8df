// Package nba fetches today's scoreboard and boxscores from the public
// cdn.nba.com live data feed. No authentication is required, but the CDN
// expects browser-like Referer/Origin headers.
package nba

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/platform/httpx"
	"github.com/leyuan/sportdesk/internal/platform/logging"
	"github.com/leyuan/sportdesk/internal/platform/resilience"
)

const (
	scoreboardPath = "/static/json/liveData/scoreboard/todaysScoreboard_00.json"
	boxscorePath   = "/static/json/liveData/boxscore/boxscore_%s.json"

	defaultBoxscoreWorkers = 4

	// Players who never left the bench report this minutes value.
	zeroMinutes = "PT00M00.00S"
)

// TeamIDs maps team tricodes to the numeric ids the CDN uses for logo assets.
var TeamIDs = map[string]int64{
	"ATL": 1610612737, "BOS": 1610612738, "BKN": 1610612751, "CHA": 1610612766,
	"CHI": 1610612741, "CLE": 1610612739, "DAL": 1610612742, "DEN": 1610612743,
	"DET": 1610612765, "GSW": 1610612744, "HOU": 1610612745, "IND": 1610612754,
	"LAC": 1610612746, "LAL": 1610612747, "MEM": 1610612763, "MIA": 1610612748,
	"MIL": 1610612749, "MIN": 1610612750, "NOP": 1610612740, "NYK": 1610612752,
	"OKC": 1610612760, "ORL": 1610612753, "PHI": 1610612755, "PHX": 1610612756,
	"POR": 1610612757, "SAC": 1610612758, "SAS": 1610612759, "TOR": 1610612761,
	"UTA": 1610612762, "WAS": 1610612764,
}

// LogoURL returns the CDN logo asset for a numeric team id.
func LogoURL(teamID int64) string {
	return fmt.Sprintf("https://cdn.nba.com/logos/nba/%d/global/L/logo.svg", teamID)
}

// Config carries the settings for the scoreboard client.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      int
	HTTPClient      *http.Client
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
	BoxscoreWorkers int
}

// Client reads live NBA data from the CDN scoreboard feed.
type Client struct {
	http            *httpx.Client
	logger          *logging.Logger
	boxscoreWorkers int
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.BoxscoreWorkers
	if workers <= 0 {
		workers = defaultBoxscoreWorkers
	}
	return &Client{
		http: httpx.New(httpx.Config{
			Name:       "nba",
			HTTPClient: cfg.HTTPClient,
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			Headers: map[string]string{
				"Referer": "https://www.nba.com/",
				"Origin":  "https://www.nba.com",
			},
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		logger:          logger,
		boxscoreWorkers: workers,
	}
}

type scoreboardResponse struct {
	Scoreboard struct {
		GameDate string    `json:"gameDate"`
		Games    []apiGame `json:"games"`
	} `json:"scoreboard"`
}

type apiGame struct {
	GameID         string      `json:"gameId"`
	GameStatus     int         `json:"gameStatus"`
	GameStatusText string      `json:"gameStatusText"`
	GameTimeUTC    time.Time   `json:"gameTimeUTC"`
	HomeTeam       apiTeamSide `json:"homeTeam"`
	AwayTeam       apiTeamSide `json:"awayTeam"`
	GameLeaders    *struct {
		HomeLeaders *apiLeader `json:"homeLeaders"`
		AwayLeaders *apiLeader `json:"awayLeaders"`
	} `json:"gameLeaders"`
}

type apiTeamSide struct {
	TeamID      int64  `json:"teamId"`
	TeamName    string `json:"teamName"`
	TeamTricode string `json:"teamTricode"`
	Score       int    `json:"score"`
}

type apiLeader struct {
	Name     string  `json:"name"`
	Points   float64 `json:"points"`
	Rebounds float64 `json:"rebounds"`
	Assists  float64 `json:"assists"`
}

type boxscoreResponse struct {
	Game struct {
		HomeTeam apiBoxscoreTeam `json:"homeTeam"`
		AwayTeam apiBoxscoreTeam `json:"awayTeam"`
	} `json:"game"`
}

type apiBoxscoreTeam struct {
	TeamName string      `json:"teamName"`
	Players  []apiPlayer `json:"players"`
}

type apiPlayer struct {
	PersonID   any    `json:"personId"`
	FirstName  string `json:"firstName"`
	FamilyName string `json:"familyName"`
	Position   string `json:"position"`
	Played     string `json:"played"`
	Statistics struct {
		Points        float64 `json:"points"`
		ReboundsTotal float64 `json:"reboundsTotal"`
		Assists       float64 `json:"assists"`
		Steals        float64 `json:"steals"`
		Blocks        float64 `json:"blocks"`
		Minutes       string  `json:"minutes"`
	} `json:"statistics"`
}

// FetchMatches returns today's games. Boxscores for started games are
// hydrated in parallel; a failed boxscore leaves that game without player
// rows instead of failing the whole fetch.
func (c *Client) FetchMatches(ctx context.Context) ([]match.Match, error) {
	var payload scoreboardResponse
	if _, err := c.http.GetJSON(ctx, scoreboardPath, nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch nba scoreboard: %w", err)
	}

	games := payload.Scoreboard.Games
	matches := make([]match.Match, len(games))
	for i, game := range games {
		matches[i] = mapGame(game)
	}

	c.hydrateBoxscores(ctx, games, matches)
	return matches, nil
}

func mapGame(game apiGame) match.Match {
	homeScore := game.HomeTeam.Score
	awayScore := game.AwayTeam.Score

	extra := map[string]any{"statusText": game.GameStatusText}
	if game.GameLeaders != nil {
		if l := game.GameLeaders.HomeLeaders; l != nil && l.Name != "" {
			extra["homeLeaderName"] = l.Name
			extra["homeLeaderStats"] = formatLeaderStats(*l)
			extra["homeLeader"] = l.Name + " " + formatLeaderStats(*l)
		}
		if l := game.GameLeaders.AwayLeaders; l != nil && l.Name != "" {
			extra["awayLeaderName"] = l.Name
			extra["awayLeaderStats"] = formatLeaderStats(*l)
			extra["awayLeader"] = l.Name + " " + formatLeaderStats(*l)
		}
	}

	return match.Match{
		ID:        "nba-" + game.GameID,
		SportType: match.SportNBA,
		HomeTeam:  game.HomeTeam.TeamName,
		AwayTeam:  game.AwayTeam.TeamName,
		HomeScore: &homeScore,
		AwayScore: &awayScore,
		HomeLogo:  LogoURL(game.HomeTeam.TeamID),
		AwayLogo:  LogoURL(game.AwayTeam.TeamID),
		Status:    parseGameStatus(game.GameStatus),
		StartTime: game.GameTimeUTC,
		League:    "NBA",
		Extra:     extra,
	}
}

func (c *Client) hydrateBoxscores(ctx context.Context, games []apiGame, matches []match.Match) {
	var started []int
	for i, game := range games {
		if game.GameStatus == 2 || game.GameStatus == 3 {
			started = append(started, i)
		}
	}
	if len(started) == 0 {
		return
	}

	pool, err := ants.NewPool(c.boxscoreWorkers)
	if err != nil {
		c.logger.WarnContext(ctx, "nba boxscore worker pool unavailable", "error", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, idx := range started {
		idx := idx
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			home, away, ok := c.fetchBoxscore(ctx, games[idx].GameID)
			if ok {
				matches[idx].HomePlayers = home
				matches[idx].AwayPlayers = away
			}
		}); err != nil {
			wg.Done()
			c.logger.WarnContext(ctx, "nba boxscore task rejected", "game_id", games[idx].GameID, "error", err)
		}
	}
	wg.Wait()
}

func (c *Client) fetchBoxscore(ctx context.Context, gameID string) ([]match.PlayerStat, []match.PlayerStat, bool) {
	var payload boxscoreResponse
	if _, err := c.http.GetJSON(ctx, fmt.Sprintf(boxscorePath, gameID), nil, &payload); err != nil {
		c.logger.WarnContext(ctx, "nba boxscore fetch failed", "game_id", gameID, "error", err)
		return nil, nil, false
	}

	home := payload.Game.HomeTeam
	away := payload.Game.AwayTeam
	if len(home.Players) == 0 || len(away.Players) == 0 {
		return nil, nil, false
	}
	return mapPlayers(home), mapPlayers(away), true
}

func mapPlayers(team apiBoxscoreTeam) []match.PlayerStat {
	players := make([]match.PlayerStat, 0, len(team.Players))
	for _, p := range team.Players {
		if p.Played != "1" || p.Statistics.Minutes == zeroMinutes {
			continue
		}
		position := p.Position
		if position == "" {
			position = "N/A"
		}
		players = append(players, match.PlayerStat{
			ID:       fmt.Sprint(p.PersonID),
			Name:     strings.TrimSpace(p.FirstName + " " + p.FamilyName),
			Team:     team.TeamName,
			Position: position,
			Stats: map[string]any{
				"得分": p.Statistics.Points,
				"篮板": p.Statistics.ReboundsTotal,
				"助攻": p.Statistics.Assists,
				"抢断": p.Statistics.Steals,
				"盖帽": p.Statistics.Blocks,
				"时间": formatMinutes(p.Statistics.Minutes),
			},
		})
	}
	return players
}

func formatLeaderStats(l apiLeader) string {
	return fmt.Sprintf("%s分 %s板 %s助", trimFloat(l.Points), trimFloat(l.Rebounds), trimFloat(l.Assists))
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.1f", v), "0"), ".")
}

// formatMinutes converts the feed's duration literal, e.g. PT36M45.00S,
// into the mm:ss form used in stat rows.
func formatMinutes(raw string) string {
	out := strings.TrimPrefix(raw, "PT")
	out = strings.Replace(out, "M", ":", 1)
	return strings.TrimSuffix(out, ".00S")
}

func parseGameStatus(status int) match.Status {
	switch status {
	case 1:
		return match.StatusUpcoming
	case 2:
		return match.StatusLive
	default:
		return match.StatusFinished
	}
}
