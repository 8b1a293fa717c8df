// Package polymarket derives esports schedules from the Polymarket Gamma
// events API. Betting markets on pro matches are public and keyless, so
// they double as a surprisingly current match feed; team names are parsed
// out of market titles like "LoL: Weibo Gaming (BO3) vs. Top Esports".
package polymarket

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/platform/httpx"
	"github.com/leyuan/sportdesk/internal/platform/logging"
	"github.com/leyuan/sportdesk/internal/platform/resilience"
)

const (
	esportsTagID = "64"
	maxMatches   = 20

	activeLimit = 30
	closedLimit = 20
)

// Supported game identifiers, also used as the esports filter values.
const (
	GameCSGO     = "csgo"
	GameLOL      = "lol"
	GameValorant = "valorant"
	GameDota2    = "dota2"
)

var gameDisplayNames = map[string]string{
	GameCSGO:     "CS2",
	GameLOL:      "LOL",
	GameValorant: "VALORANT",
	GameDota2:    "DOTA2",
}

// GameDisplayName returns the label shown for a game identifier.
func GameDisplayName(game string) string {
	if name, ok := gameDisplayNames[game]; ok {
		return name
	}
	return game
}

var (
	versusPattern     = regexp.MustCompile(`(?i)\bvs\.?\b`)
	versusSplit       = regexp.MustCompile(`(?i)\s+vs\.?\s+`)
	gamePrefixPattern = regexp.MustCompile(`(?i)^(?:LoL|League of Legends|CS2|CSGO|CS:GO|Counter-Strike|Valorant|Dota\s*2?|DOTA\s*2?):\s*`)
	dashSuffixPattern = regexp.MustCompile(`\s+-\s+.+$`)
	bestOfSuffix      = regexp.MustCompile(`(?i)\s*\(BO\d+\)\s*$`)
	bestOfPattern     = regexp.MustCompile(`(?i)\(BO(\d+)\)`)
	tiPattern         = regexp.MustCompile(`\bti\d*\b`)
)

// Config carries the settings for the Gamma API client.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	HTTPClient     *http.Client
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// LiveCutoff is how long after start an event still counts as in
	// progress, default 8h. Pro series rarely outlast a BO5.
	LiveCutoff time.Duration
	// MaxAge discards events older than this, default 7 days.
	MaxAge time.Duration
}

// Client reads esports events from the Gamma API.
type Client struct {
	http       *httpx.Client
	logger     *logging.Logger
	liveCutoff time.Duration
	maxAge     time.Duration
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	liveCutoff := cfg.LiveCutoff
	if liveCutoff <= 0 {
		liveCutoff = 8 * time.Hour
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	return &Client{
		http: httpx.New(httpx.Config{
			Name:           "polymarket",
			HTTPClient:     cfg.HTTPClient,
			BaseURL:        cfg.BaseURL,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		logger:     logger,
		liveCutoff: liveCutoff,
		maxAge:     maxAge,
	}
}

type gammaEvent struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
	Volume      float64       `json:"volume"`
	Markets     []gammaMarket `json:"markets"`
}

type gammaMarket struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
	Closed bool   `json:"closed"`
}

// FetchMatches combines the highest-volume open and recently closed
// events into a deduplicated match list, newest markets first. Events
// whose title is not a team-versus-team market are skipped.
func (c *Client) FetchMatches(ctx context.Context, gameFilter string) ([]match.Match, error) {
	active, activeErr := c.fetchEvents(ctx, url.Values{
		"tag_id": {esportsTagID}, "active": {"true"}, "closed": {"false"},
		"limit": {fmt.Sprint(activeLimit)}, "offset": {"0"},
		"order": {"volume"}, "ascending": {"false"},
	})
	closed, closedErr := c.fetchEvents(ctx, url.Values{
		"tag_id": {esportsTagID}, "closed": {"true"},
		"limit": {fmt.Sprint(closedLimit)}, "offset": {"0"},
		"order": {"volume"}, "ascending": {"false"},
	})
	if activeErr != nil && closedErr != nil {
		return nil, fmt.Errorf("fetch polymarket events: %w", activeErr)
	}
	if activeErr != nil {
		c.logger.WarnContext(ctx, "polymarket active events fetch failed", "error", activeErr)
	}
	if closedErr != nil {
		c.logger.WarnContext(ctx, "polymarket closed events fetch failed", "error", closedErr)
	}

	seen := map[string]struct{}{}
	now := time.Now().UTC()
	matches := make([]match.Match, 0, maxMatches)
	for _, event := range append(active, closed...) {
		if _, dup := seen[event.ID]; dup {
			continue
		}
		seen[event.ID] = struct{}{}

		m, ok := c.mapEvent(event, now, gameFilter)
		if !ok {
			continue
		}
		matches = append(matches, m)
		if len(matches) == maxMatches {
			break
		}
	}
	return matches, nil
}

func (c *Client) fetchEvents(ctx context.Context, query url.Values) ([]gammaEvent, error) {
	var events []gammaEvent
	if _, err := c.http.GetJSON(ctx, "/events", query, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) mapEvent(event gammaEvent, now time.Time, gameFilter string) (match.Match, bool) {
	if !versusPattern.MatchString(event.Title) {
		return match.Match{}, false
	}
	homeTeam, awayTeam, ok := parseTeams(event.Title)
	if !ok {
		return match.Match{}, false
	}

	eventDate := event.StartDate
	if eventDate == nil {
		eventDate = event.EndDate
	}
	if eventDate != nil && now.Sub(*eventDate) > c.maxAge {
		return match.Match{}, false
	}

	game := detectGame(event.Title, event.Description)
	if gameFilter != "" && gameFilter != "all" && game != gameFilter {
		return match.Match{}, false
	}

	league, region := extractLeagueAndRegion(event.Title, event.Description, game)

	extra := map[string]any{
		"game":          game,
		"gameName":      GameDisplayName(game),
		"bestOf":        parseBestOf(event.Title),
		"volume":        fmt.Sprintf("$%.1fk", event.Volume/1000),
		"polymarketUrl": "https://polymarket.com/event/" + event.Slug,
	}
	if region != "" {
		extra["region"] = region
	}

	var startTime time.Time
	if eventDate != nil {
		startTime = *eventDate
	}
	return match.Match{
		ID:        "esports-poly-" + event.ID,
		SportType: match.SportEsports,
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		Status:    c.determineStatus(event, now),
		StartTime: startTime,
		League:    league,
		Extra:     extra,
	}, true
}

// determineStatus infers the match state from market lifecycle and start
// time. Once every market settles the series is over; markets on long
// past events sometimes linger open, hence the elapsed-time cutoff.
func (c *Client) determineStatus(event gammaEvent, now time.Time) match.Status {
	hasActive := false
	allClosed := len(event.Markets) > 0
	for _, m := range event.Markets {
		if m.Active && !m.Closed {
			hasActive = true
		}
		if !m.Closed {
			allClosed = false
		}
	}
	if allClosed {
		return match.StatusFinished
	}

	if event.StartDate != nil {
		if now.Sub(*event.StartDate) > c.liveCutoff {
			return match.StatusFinished
		}
		if hasActive {
			if !event.StartDate.After(now) {
				return match.StatusLive
			}
			return match.StatusUpcoming
		}
	}
	return match.StatusUpcoming
}

func parseTeams(title string) (string, string, bool) {
	parts := versusSplit.Split(title, 2)
	if len(parts) < 2 {
		return "", "", false
	}
	home := cleanTeamName(parts[0])
	away := cleanTeamName(parts[1])
	if home == "" || away == "" {
		return "", "", false
	}
	return home, away, true
}

// cleanTeamName strips the game prefix and tournament decorations, e.g.
// "LoL: Weibo Gaming (BO3) - LPL Group Ascend" becomes "Weibo Gaming".
func cleanTeamName(raw string) string {
	name := gamePrefixPattern.ReplaceAllString(strings.TrimSpace(raw), "")
	name = strings.TrimSpace(dashSuffixPattern.ReplaceAllString(name, ""))
	name = strings.TrimSpace(bestOfSuffix.ReplaceAllString(name, ""))
	return name
}

func parseBestOf(title string) string {
	if m := bestOfPattern.FindStringSubmatch(title); m != nil {
		return "BO" + m[1]
	}
	return ""
}

func detectGame(title, description string) string {
	text := strings.ToLower(title + " " + description)
	switch {
	case containsAny(text, "counter-strike", "cs:go", "cs2", "csgo"):
		return GameCSGO
	case containsAny(text, "league of legends", "lol", "worlds", "lck", "lpl"):
		return GameLOL
	case containsAny(text, "valorant", "vct"):
		return GameValorant
	case containsAny(text, "dota"):
		return GameDota2
	default:
		return GameCSGO
	}
}

func extractLeagueAndRegion(title, description, game string) (string, string) {
	text := strings.ToLower(title + " " + description)

	switch game {
	case GameCSGO:
		switch {
		case containsAny(text, "iem", "intel extreme masters"):
			return "IEM", ""
		case strings.Contains(text, "blast"):
			return "BLAST Premier", ""
		case containsAny(text, "esl", "pro league"):
			return "ESL Pro League", ""
		case strings.Contains(text, "major"):
			return "CS Major", ""
		}
		return "CS2", ""
	case GameLOL:
		switch {
		case containsAny(text, "worlds", "world championship"):
			return "Worlds", "Global"
		case strings.Contains(text, "msi"):
			return "MSI", "Global"
		case strings.Contains(text, "lck"):
			return "LCK", "LCK"
		case strings.Contains(text, "lpl"):
			return "LPL", "LPL"
		case strings.Contains(text, "lec"):
			return "LEC", "LEC"
		case strings.Contains(text, "lcs"):
			return "LCS", "LCS"
		case strings.Contains(text, "pcs"):
			return "PCS", "PCS"
		case strings.Contains(text, "ljl"):
			return "LJL", "LJL"
		case strings.Contains(text, "cblol"):
			return "CBLOL", "CBLOL"
		}
		return "LOL", ""
	case GameValorant:
		switch {
		case strings.Contains(text, "champions"):
			return "VCT Champions", "Global"
		case strings.Contains(text, "masters"):
			return "VCT Masters", "Global"
		case strings.Contains(text, "americas"):
			return "VCT Americas", "Americas"
		case strings.Contains(text, "pacific"):
			return "VCT Pacific", "Pacific"
		case strings.Contains(text, "emea"):
			return "VCT EMEA", "EMEA"
		case strings.Contains(text, "china"):
			return "VCT China", "China"
		}
		return "VALORANT", ""
	case GameDota2:
		switch {
		case tiPattern.MatchString(text) || strings.Contains(text, "the international"):
			return "The International", ""
		case containsAny(text, "dpc", "pro circuit"):
			return "DPC", ""
		case strings.Contains(text, "major"):
			return "Dota Major", ""
		}
		return "DOTA2", ""
	}
	return GameDisplayName(game), ""
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
