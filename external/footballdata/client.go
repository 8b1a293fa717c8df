// Package footballdata talks to the football-data.org v4 API. It is the
// second football source, used when the scoreboard scrape comes back
// empty, and it requires an auth token.
package footballdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/platform/httpx"
	"github.com/leyuan/sportdesk/internal/platform/logging"
	"github.com/leyuan/sportdesk/internal/platform/resilience"
)

// maxMatches caps the slice returned per fetch, the free tier returns
// everything in the window.
const maxMatches = 20

// competitionNames maps the tracked competition codes to display names.
// Codes outside this map are dropped.
var competitionNames = map[string]string{
	"PL":  "Premier League",
	"PD":  "La Liga",
	"BL1": "Bundesliga",
	"SA":  "Serie A",
	"FL1": "Ligue 1",
	"CL":  "Champions League",
	"WC":  "World Cup",
	"EC":  "Euro",
	"NL":  "Nations League",
}

var liveStatuses = map[string]struct{}{
	"IN_PLAY":          {},
	"PAUSED":           {},
	"HALFTIME":         {},
	"EXTRA_TIME":       {},
	"PENALTY_SHOOTOUT": {},
}

var finishedStatuses = map[string]struct{}{
	"FINISHED":  {},
	"AWARDED":   {},
	"CANCELLED": {},
}

// Config carries the settings for the v4 API client.
type Config struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	HTTPClient     *http.Client
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// WindowDays bounds the fixture date range, default 7.
	WindowDays int
}

// Client reads fixtures from the football-data.org v4 API.
type Client struct {
	http       *httpx.Client
	windowDays int
}

func NewClient(cfg Config) *Client {
	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = 7
	}
	return &Client{
		http: httpx.New(httpx.Config{
			Name:       "football-data",
			HTTPClient: cfg.HTTPClient,
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			Headers: map[string]string{
				"X-Auth-Token": cfg.Token,
			},
			Redact:         []string{cfg.Token},
			Logger:         cfg.Logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		windowDays: windowDays,
	}
}

type matchesResponse struct {
	Matches []apiMatch `json:"matches"`
}

type apiMatch struct {
	ID       int64     `json:"id"`
	UTCDate  time.Time `json:"utcDate"`
	Status   string    `json:"status"`
	Matchday int       `json:"matchday"`
	HomeTeam apiTeam   `json:"homeTeam"`
	AwayTeam apiTeam   `json:"awayTeam"`
	Score    struct {
		FullTime apiScorePair `json:"fullTime"`
		HalfTime apiScorePair `json:"halfTime"`
	} `json:"score"`
	Competition struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Code string `json:"code"`
	} `json:"competition"`
}

type apiTeam struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Crest     string `json:"crest"`
}

type apiScorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// FetchMatches returns fixtures for the coming window across the tracked
// competitions, at most 20 of them.
func (c *Client) FetchMatches(ctx context.Context) ([]match.Match, error) {
	now := time.Now().UTC()
	query := url.Values{}
	query.Set("dateFrom", now.Format("2006-01-02"))
	query.Set("dateTo", now.AddDate(0, 0, c.windowDays).Format("2006-01-02"))

	var payload matchesResponse
	if _, err := c.http.GetJSON(ctx, "/v4/matches", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch football-data matches: %w", err)
	}

	matches := make([]match.Match, 0, maxMatches)
	for _, m := range payload.Matches {
		leagueName, tracked := competitionNames[m.Competition.Code]
		if !tracked {
			continue
		}
		matches = append(matches, mapMatch(m, leagueName))
		if len(matches) == maxMatches {
			break
		}
	}
	return matches, nil
}

func mapMatch(m apiMatch, leagueName string) match.Match {
	extra := map[string]any{}
	if m.Matchday > 0 {
		extra["matchday"] = fmt.Sprintf("Matchday %d", m.Matchday)
	}
	if m.Score.HalfTime.Home != nil && m.Score.HalfTime.Away != nil {
		extra["halfTimeScore"] = fmt.Sprintf("HT %d-%d", *m.Score.HalfTime.Home, *m.Score.HalfTime.Away)
	}

	return match.Match{
		ID:        fmt.Sprintf("football-%d", m.ID),
		SportType: match.SportFootball,
		HomeTeam:  teamName(m.HomeTeam),
		AwayTeam:  teamName(m.AwayTeam),
		HomeScore: m.Score.FullTime.Home,
		AwayScore: m.Score.FullTime.Away,
		HomeLogo:  m.HomeTeam.Crest,
		AwayLogo:  m.AwayTeam.Crest,
		Status:    parseStatus(m.Status),
		StartTime: m.UTCDate,
		League:    leagueName,
		Extra:     extra,
	}
}

func teamName(t apiTeam) string {
	if t.ShortName != "" {
		return t.ShortName
	}
	return t.Name
}

func parseStatus(status string) match.Status {
	if _, ok := liveStatuses[status]; ok {
		return match.StatusLive
	}
	if _, ok := finishedStatuses[status]; ok {
		return match.StatusFinished
	}
	return match.StatusUpcoming
}
