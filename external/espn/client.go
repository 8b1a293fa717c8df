// Package espn scrapes the public site.api.espn.com soccer scoreboards.
// The endpoint needs no key, which makes it the primary football source;
// it also serves match rosters and team squads for the roster view.
package espn

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/platform/httpx"
	"github.com/leyuan/sportdesk/internal/platform/logging"
	"github.com/leyuan/sportdesk/internal/platform/resilience"
)

// League pairs an ESPN competition slug with its display name.
type League struct {
	Slug string
	Name string
}

// Leagues lists the tracked competitions: the big five domestic leagues
// plus the major cup and national-team tournaments.
var Leagues = []League{
	{Slug: "eng.1", Name: "Premier League"},
	{Slug: "esp.1", Name: "La Liga"},
	{Slug: "ger.1", Name: "Bundesliga"},
	{Slug: "ita.1", Name: "Serie A"},
	{Slug: "fra.1", Name: "Ligue 1"},
	{Slug: "uefa.champions", Name: "Champions League"},
	{Slug: "fifa.world", Name: "World Cup"},
	{Slug: "uefa.euro", Name: "Euro"},
	{Slug: "uefa.nations", Name: "Nations League"},
}

var liveStatuses = map[string]struct{}{
	"STATUS_IN_PROGRESS":      {},
	"STATUS_HALFTIME":         {},
	"STATUS_FIRST_HALF":       {},
	"STATUS_SECOND_HALF":      {},
	"STATUS_EXTRA_TIME":       {},
	"STATUS_OVERTIME":         {},
	"STATUS_PENALTY_SHOOTOUT": {},
}

var finishedStatuses = map[string]struct{}{
	"STATUS_FULL_TIME": {},
	"STATUS_FINAL":     {},
	"STATUS_FINAL_AET": {},
	"STATUS_FINAL_PEN": {},
	"STATUS_AWARDED":   {},
	"STATUS_CANCELLED": {},
	"STATUS_POSTPONED": {},
	"STATUS_ABANDONED": {},
}

// matchStatKeys maps ESPN stat abbreviations to the labels shown in the
// roster table, in display order.
var matchStatKeys = []struct {
	Abbrev string
	Label  string
}{
	{"G", "进球"},
	{"A", "助攻"},
	{"SH", "射门"},
	{"ST", "射正"},
	{"FC", "犯规"},
	{"YC", "黄牌"},
	{"RC", "红牌"},
	{"SV", "扑救"},
}

// Config carries the settings for the scoreboard client.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	HTTPClient     *http.Client
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// WindowDays bounds the scoreboard date range, default 7.
	WindowDays int
}

// Client reads soccer scoreboards, match summaries and team rosters.
type Client struct {
	http       *httpx.Client
	logger     *logging.Logger
	windowDays int
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = 7
	}
	return &Client{
		http: httpx.New(httpx.Config{
			Name:           "espn",
			HTTPClient:     cfg.HTTPClient,
			BaseURL:        cfg.BaseURL,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		logger:     logger,
		windowDays: windowDays,
	}
}

type scoreboardResponse struct {
	Events []apiEvent `json:"events"`
}

type apiEvent struct {
	ID           string           `json:"id"`
	Date         time.Time        `json:"date"`
	Name         string           `json:"name"`
	Competitions []apiCompetition `json:"competitions"`
}

type apiCompetition struct {
	Status struct {
		Type struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Completed   bool   `json:"completed"`
		} `json:"type"`
		DisplayClock string `json:"displayClock"`
	} `json:"status"`
	Competitors []apiCompetitor `json:"competitors"`
	Venue       *struct {
		FullName string `json:"fullName"`
		City     string `json:"city"`
	} `json:"venue"`
}

type apiCompetitor struct {
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Team     struct {
		ID               string `json:"id"`
		DisplayName      string `json:"displayName"`
		ShortDisplayName string `json:"shortDisplayName"`
		Logo             string `json:"logo"`
	} `json:"team"`
}

// FetchMatches fans out over all tracked leagues for the configured date
// window. A failed league yields zero matches rather than failing the
// whole fetch; the aggregate errors only when every league failed.
func (c *Client) FetchMatches(ctx context.Context) ([]match.Match, error) {
	now := time.Now().UTC()
	dateRange := formatDate(now) + "-" + formatDate(now.AddDate(0, 0, c.windowDays))

	p := pool.NewWithResults[[]match.Match]().WithContext(ctx)
	for _, league := range Leagues {
		league := league
		p.Go(func(ctx context.Context) ([]match.Match, error) {
			matches, err := c.fetchLeague(ctx, league, dateRange)
			if err != nil {
				c.logger.WarnContext(ctx, "espn league fetch failed", "league", league.Slug, "error", err)
				return nil, nil
			}
			return matches, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	var all []match.Match
	for _, batch := range results {
		all = append(all, batch...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("espn scoreboard yielded no matches across %d leagues", len(Leagues))
	}

	all = dropStaleFinished(all, now)
	match.Sort(all)
	return all, nil
}

func (c *Client) fetchLeague(ctx context.Context, league League, dateRange string) ([]match.Match, error) {
	query := url.Values{}
	query.Set("dates", dateRange)

	var payload scoreboardResponse
	if _, err := c.http.GetJSON(ctx, "/"+league.Slug+"/scoreboard", query, &payload); err != nil {
		return nil, err
	}

	matches := make([]match.Match, 0, len(payload.Events))
	for _, event := range payload.Events {
		if m, ok := mapEvent(event, league); ok {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

func mapEvent(event apiEvent, league League) (match.Match, bool) {
	if len(event.Competitions) == 0 {
		return match.Match{}, false
	}
	comp := event.Competitions[0]

	var home, away *apiCompetitor
	for i := range comp.Competitors {
		switch comp.Competitors[i].HomeAway {
		case "home":
			home = &comp.Competitors[i]
		case "away":
			away = &comp.Competitors[i]
		}
	}
	if home == nil || away == nil {
		return match.Match{}, false
	}

	status := parseStatus(comp.Status.Type.Name, comp.Status.Type.Completed)

	extra := map[string]any{
		"espnEventId":    event.ID,
		"espnLeagueSlug": league.Slug,
		"espnHomeTeamId": home.Team.ID,
		"espnAwayTeamId": away.Team.ID,
	}
	if status == match.StatusLive {
		extra["statusText"] = comp.Status.Type.Description
		if comp.Status.DisplayClock != "" {
			extra["displayClock"] = comp.Status.DisplayClock
		}
	}

	out := match.Match{
		ID:        "football-espn-" + event.ID,
		SportType: match.SportFootball,
		HomeTeam:  home.Team.DisplayName,
		AwayTeam:  away.Team.DisplayName,
		HomeLogo:  home.Team.Logo,
		AwayLogo:  away.Team.Logo,
		Status:    status,
		StartTime: event.Date,
		League:    league.Name,
		Extra:     extra,
	}
	if comp.Venue != nil {
		out.Venue = comp.Venue.FullName
	}
	// Scores on upcoming fixtures are placeholder zeros, leave them unset.
	if status != match.StatusUpcoming {
		if v, err := strconv.Atoi(home.Score); err == nil {
			out.HomeScore = &v
		}
		if v, err := strconv.Atoi(away.Score); err == nil {
			out.AwayScore = &v
		}
	}
	return out, true
}

// dropStaleFinished removes finished fixtures from before today so the
// week window shows today's results plus upcoming matches.
func dropStaleFinished(matches []match.Match, now time.Time) []match.Match {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	kept := matches[:0]
	for _, m := range matches {
		if match.IsFinishedStatus(m.Status) && m.StartTime.Before(todayStart) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

func parseStatus(name string, completed bool) match.Status {
	if completed {
		return match.StatusFinished
	}
	if _, ok := liveStatuses[name]; ok {
		return match.StatusLive
	}
	if _, ok := finishedStatuses[name]; ok {
		return match.StatusFinished
	}
	return match.StatusUpcoming
}

func formatDate(t time.Time) string {
	return t.Format("20060102")
}

type summaryResponse struct {
	Rosters []apiRoster `json:"rosters"`
}

type apiRoster struct {
	Team struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"team"`
	Roster []apiRosterEntry `json:"roster"`
}

type apiRosterEntry struct {
	Athlete struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Headshot    *struct {
			Href string `json:"href"`
		} `json:"headshot"`
	} `json:"athlete"`
	Jersey   string `json:"jersey"`
	Position *struct {
		Abbreviation string `json:"abbreviation"`
		DisplayName  string `json:"displayName"`
	} `json:"position"`
	Starter bool `json:"starter"`
	Stats   []struct {
		Abbreviation string `json:"abbreviation"`
		DisplayValue string `json:"displayValue"`
	} `json:"stats"`
}

// FetchMatchRoster returns in-game player rows for both sides of a live or
// finished match. Sides are matched to the summary rosters by team name.
func (c *Client) FetchMatchRoster(ctx context.Context, leagueSlug, eventID, homeTeam, awayTeam string) ([]match.PlayerStat, []match.PlayerStat, error) {
	query := url.Values{}
	query.Set("event", eventID)

	var payload summaryResponse
	if _, err := c.http.GetJSON(ctx, "/"+leagueSlug+"/summary", query, &payload); err != nil {
		return nil, nil, fmt.Errorf("fetch espn summary: %w", err)
	}
	if len(payload.Rosters) < 2 {
		return nil, nil, nil
	}

	var home, away []match.PlayerStat
	for _, roster := range payload.Rosters {
		switch roster.Team.DisplayName {
		case homeTeam:
			home = mapMatchRoster(roster.Roster, homeTeam)
		case awayTeam:
			away = mapMatchRoster(roster.Roster, awayTeam)
		}
	}
	return home, away, nil
}

func mapMatchRoster(entries []apiRosterEntry, teamName string) []match.PlayerStat {
	sorted := make([]apiRosterEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Starter && !sorted[j].Starter
	})

	players := make([]match.PlayerStat, 0, len(sorted))
	for _, entry := range sorted {
		stats := map[string]any{}
		if entry.Jersey != "" {
			stats["#"] = entry.Jersey
		}
		for _, key := range matchStatKeys {
			for _, s := range entry.Stats {
				if s.Abbreviation == key.Abbrev {
					stats[key.Label] = s.DisplayValue
					break
				}
			}
		}
		// Pre-kickoff summaries carry no stat rows, show the lineup role.
		if len(entry.Stats) == 0 {
			if entry.Jersey == "" {
				stats["#"] = "-"
			}
			if entry.Starter {
				stats["首发"] = "是"
			} else {
				stats["首发"] = "否"
			}
		}

		player := match.PlayerStat{
			ID:    entry.Athlete.ID,
			Name:  entry.Athlete.DisplayName,
			Team:  teamName,
			Stats: stats,
		}
		if entry.Position != nil {
			player.Position = entry.Position.Abbreviation
		}
		if entry.Athlete.Headshot != nil {
			player.Avatar = entry.Athlete.Headshot.Href
		}
		players = append(players, player)
	}
	return players
}

type squadResponse struct {
	Athletes []apiSquadPlayer `json:"athletes"`
}

type apiSquadPlayer struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Jersey      string `json:"jersey"`
	Age         int    `json:"age"`
	Citizenship string `json:"citizenship"`
	Position    *struct {
		Abbreviation string `json:"abbreviation"`
		DisplayName  string `json:"displayName"`
	} `json:"position"`
	Flag *struct {
		Alt string `json:"alt"`
	} `json:"flag"`
}

// FetchTeamSquad returns the full squad list, used before kickoff when no
// match roster exists yet. Players are ordered keeper to forward, then by
// jersey number.
func (c *Client) FetchTeamSquad(ctx context.Context, leagueSlug, teamID, teamName string) ([]match.PlayerStat, error) {
	var payload squadResponse
	if _, err := c.http.GetJSON(ctx, "/"+leagueSlug+"/teams/"+teamID+"/roster", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch espn squad: %w", err)
	}

	sorted := make([]apiSquadPlayer, len(payload.Athletes))
	copy(sorted, payload.Athletes)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, oj := squadPositionOrder(sorted[i]), squadPositionOrder(sorted[j])
		if oi != oj {
			return oi < oj
		}
		return jerseyNumber(sorted[i].Jersey) < jerseyNumber(sorted[j].Jersey)
	})

	players := make([]match.PlayerStat, 0, len(sorted))
	for _, p := range sorted {
		jersey := p.Jersey
		if jersey == "" {
			jersey = "-"
		}
		position, positionName := "", "-"
		if p.Position != nil {
			position = p.Position.Abbreviation
			if p.Position.DisplayName != "" {
				positionName = p.Position.DisplayName
			}
		}
		age := "-"
		if p.Age > 0 {
			age = strconv.Itoa(p.Age)
		}
		citizenship := p.Citizenship
		if citizenship == "" && p.Flag != nil {
			citizenship = p.Flag.Alt
		}
		if citizenship == "" {
			citizenship = "-"
		}
		players = append(players, match.PlayerStat{
			ID:       p.ID,
			Name:     p.DisplayName,
			Team:     teamName,
			Position: position,
			Stats: map[string]any{
				"#":  jersey,
				"位置": positionName,
				"年龄": age,
				"国籍": citizenship,
			},
		})
	}
	return players, nil
}

func squadPositionOrder(p apiSquadPlayer) int {
	if p.Position == nil || p.Position.Abbreviation == "" {
		return 9
	}
	switch p.Position.Abbreviation[0] {
	case 'G':
		return 0
	case 'D':
		return 1
	case 'M':
		return 2
	case 'F':
		return 3
	default:
		return 9
	}
}

func jerseyNumber(jersey string) int {
	n, err := strconv.Atoi(jersey)
	if err != nil {
		return 99
	}
	return n
}
