// Package pandascore wraps the api.pandascore.co esports API, used for
// running-match data when the market feed is empty and for team rosters.
// The free tier allows 1000 requests per hour with a bearer token.
package pandascore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/platform/httpx"
	"github.com/leyuan/sportdesk/internal/platform/logging"
	"github.com/leyuan/sportdesk/internal/platform/resilience"
)

const (
	runningPerPage = 20
	teamsPerPage   = 5
	maxPlayers     = 10
)

// gameSlugs maps internal game identifiers to PandaScore videogame slugs.
var gameSlugs = map[string]string{
	"csgo":     "cs-go",
	"lol":      "lol",
	"valorant": "valorant",
	"dota2":    "dota-2",
}

// videogameSlugs maps the slugs PandaScore reports back to internal ids.
var videogameSlugs = map[string]string{
	"cs-2":              "csgo",
	"cs-go":             "csgo",
	"csgo":              "csgo",
	"lol":               "lol",
	"league-of-legends": "lol",
	"valorant":          "valorant",
	"dota2":             "dota2",
	"dota-2":            "dota2",
}

var gameDisplayNames = map[string]string{
	"csgo":     "CS2",
	"lol":      "LOL",
	"valorant": "VALORANT",
	"dota2":    "DOTA2",
}

// Config carries the settings for the PandaScore client.
type Config struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	HTTPClient     *http.Client
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads running matches and team rosters from PandaScore.
type Client struct {
	http *httpx.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		http: httpx.New(httpx.Config{
			Name:       "pandascore",
			HTTPClient: cfg.HTTPClient,
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			Headers: map[string]string{
				"Authorization": "Bearer " + cfg.Token,
			},
			Redact:         []string{cfg.Token},
			Logger:         cfg.Logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
	}
}

type apiMatch struct {
	ID         int64      `json:"id"`
	BeginAt    *time.Time `json:"begin_at"`
	Status     string     `json:"status"`
	Tournament *struct {
		Name string `json:"name"`
	} `json:"tournament"`
	League *struct {
		Name     string `json:"name"`
		ImageURL string `json:"image_url"`
	} `json:"league"`
	Opponents []struct {
		Opponent struct {
			ID       int64  `json:"id"`
			Name     string `json:"name"`
			ImageURL string `json:"image_url"`
		} `json:"opponent"`
	} `json:"opponents"`
	Results []struct {
		TeamID int64 `json:"team_id"`
		Score  int   `json:"score"`
	} `json:"results"`
	Videogame *struct {
		Slug string `json:"slug"`
		Name string `json:"name"`
	} `json:"videogame"`
	NumberOfGames int `json:"number_of_games"`
}

// FetchRunningMatches returns matches currently in play. Entries without
// two resolved opponents are dropped; gameFilter narrows to one title.
func (c *Client) FetchRunningMatches(ctx context.Context, gameFilter string) ([]match.Match, error) {
	query := url.Values{}
	query.Set("per_page", fmt.Sprint(runningPerPage))

	var payload []apiMatch
	if _, err := c.http.GetJSON(ctx, "/matches/running", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch pandascore running matches: %w", err)
	}

	matches := make([]match.Match, 0, len(payload))
	for _, m := range payload {
		if len(m.Opponents) < 2 {
			continue
		}
		mapped := mapMatch(m)
		if gameFilter != "" && gameFilter != "all" && mapped.Extra["game"] != gameFilter {
			continue
		}
		matches = append(matches, mapped)
	}
	return matches, nil
}

func mapMatch(m apiMatch) match.Match {
	game := "csgo"
	if m.Videogame != nil {
		if mapped, ok := videogameSlugs[m.Videogame.Slug]; ok {
			game = mapped
		}
	}

	home := m.Opponents[0].Opponent
	away := m.Opponents[1].Opponent

	out := match.Match{
		ID:        fmt.Sprintf("esports-%d", m.ID),
		SportType: match.SportEsports,
		HomeTeam:  home.Name,
		AwayTeam:  away.Name,
		HomeLogo:  home.ImageURL,
		AwayLogo:  away.ImageURL,
		Status:    parseStatus(m.Status),
		League:    leagueName(m),
		Extra: map[string]any{
			"game":     game,
			"gameName": gameDisplayNames[game],
		},
	}
	if m.BeginAt != nil {
		out.StartTime = *m.BeginAt
	}
	if m.NumberOfGames > 0 {
		out.Extra["bestOf"] = fmt.Sprintf("BO%d", m.NumberOfGames)
	} else {
		out.Extra["bestOf"] = ""
	}
	for _, result := range m.Results {
		score := result.Score
		switch result.TeamID {
		case home.ID:
			out.HomeScore = &score
		case away.ID:
			out.AwayScore = &score
		}
	}
	return out
}

func leagueName(m apiMatch) string {
	if m.League != nil && m.League.Name != "" {
		return m.League.Name
	}
	if m.Tournament != nil && m.Tournament.Name != "" {
		return m.Tournament.Name
	}
	return "Unknown"
}

func parseStatus(status string) match.Status {
	switch status {
	case "running":
		return match.StatusLive
	case "finished", "canceled":
		return match.StatusFinished
	default:
		return match.StatusUpcoming
	}
}

type apiTeam struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Acronym string      `json:"acronym"`
	Players []apiPlayer `json:"players"`
}

type apiPlayer struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	Nationality string `json:"nationality"`
}

// FetchTeamPlayers looks up a team by name and returns its roster. Team
// names coming off market titles are loose, so the lookup goes exact
// acronym, then exact name, then fuzzy search. Rosters cap at 10 players.
func (c *Client) FetchTeamPlayers(ctx context.Context, teamName, game string) ([]match.PlayerStat, error) {
	gameSlug, ok := gameSlugs[game]
	if !ok {
		return nil, nil
	}

	teams, err := c.lookupTeams(ctx, gameSlug, "filter[acronym]", teamName)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		if teams, err = c.lookupTeams(ctx, gameSlug, "filter[name]", teamName); err != nil {
			return nil, err
		}
	}
	if len(teams) == 0 {
		if teams, err = c.lookupTeams(ctx, gameSlug, "search[name]", teamName); err != nil {
			return nil, err
		}
	}
	if len(teams) == 0 {
		return nil, nil
	}

	team := pickTeam(teams, teamName)
	players := make([]match.PlayerStat, 0, maxPlayers)
	for _, p := range team.Players {
		if len(players) == maxPlayers {
			break
		}
		name := p.Name
		if name == "" {
			name = strings.TrimSpace(p.FirstName + " " + p.LastName)
		}
		role := p.Role
		if role == "" {
			role = "-"
		}
		nationality := p.Nationality
		if nationality == "" {
			nationality = "-"
		}
		slug := p.Slug
		if slug == "" {
			slug = "-"
		}
		players = append(players, match.PlayerStat{
			ID:       fmt.Sprintf("esports-%d", p.ID),
			Name:     name,
			Team:     team.Name,
			Position: p.Role,
			Stats: map[string]any{
				"位置": role,
				"国籍": nationality,
				"ID": slug,
			},
		})
	}
	return players, nil
}

func (c *Client) lookupTeams(ctx context.Context, gameSlug, param, value string) ([]apiTeam, error) {
	query := url.Values{}
	query.Set(param, value)
	query.Set("per_page", fmt.Sprint(teamsPerPage))

	var teams []apiTeam
	if _, err := c.http.GetJSON(ctx, "/"+gameSlug+"/teams", query, &teams); err != nil {
		return nil, fmt.Errorf("lookup pandascore teams: %w", err)
	}
	return teams, nil
}

// pickTeam prefers an exact name or acronym hit over the first result.
func pickTeam(teams []apiTeam, teamName string) apiTeam {
	needle := strings.ToLower(teamName)
	for _, t := range teams {
		if strings.ToLower(t.Name) == needle || strings.ToLower(t.Acronym) == needle {
			return t
		}
	}
	return teams[0]
}
