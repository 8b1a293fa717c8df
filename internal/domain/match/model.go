package match

import (
	"sort"
	"strings"
	"time"
)

// SportType identifies the vertical a match belongs to.
type SportType string

const (
	SportNBA      SportType = "nba"
	SportFootball SportType = "football"
	SportEsports  SportType = "esports"
)

// AllSports lists the supported verticals in refresh order.
var AllSports = []SportType{SportNBA, SportFootball, SportEsports}

func ParseSportType(v string) (SportType, bool) {
	switch SportType(strings.ToLower(strings.TrimSpace(v))) {
	case SportNBA:
		return SportNBA, true
	case SportFootball:
		return SportFootball, true
	case SportEsports:
		return SportEsports, true
	default:
		return "", false
	}
}

// Status is the canonical lifecycle state of a match.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusFinished Status = "finished"
)

// NormalizeStatus maps free-form status text to a canonical Status.
// Unknown values fall back to upcoming: treating an unrecognized state as
// finished would hide the match, treating it as live would show a stale
// in-progress banner.
func NormalizeStatus(v string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(v))) {
	case StatusLive:
		return StatusLive
	case StatusFinished:
		return StatusFinished
	default:
		return StatusUpcoming
	}
}

func IsLiveStatus(s Status) bool {
	return s == StatusLive
}

func IsFinishedStatus(s Status) bool {
	return s == StatusFinished
}

// StatusRank orders matches for display: live first, then upcoming, then finished.
func StatusRank(s Status) int {
	switch s {
	case StatusLive:
		return 0
	case StatusUpcoming:
		return 1
	case StatusFinished:
		return 2
	default:
		return 1
	}
}

// PlayerStat is one row of a roster table. Stats maps a display label to a
// numeric or pre-formatted string value; the key set varies by sport and
// provider and drives the visible column set directly.
type PlayerStat struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Team     string         `json:"team"`
	Position string         `json:"position,omitempty"`
	Avatar   string         `json:"avatar,omitempty"`
	Stats    map[string]any `json:"stats"`
}

// Match is the canonical sporting-event record shared by every provider.
// ID is provider-prefixed and stable across fetches of the same event.
type Match struct {
	ID          string         `json:"id"`
	SportType   SportType      `json:"sportType"`
	HomeTeam    string         `json:"homeTeam"`
	AwayTeam    string         `json:"awayTeam"`
	HomeScore   *int           `json:"homeScore,omitempty"`
	AwayScore   *int           `json:"awayScore,omitempty"`
	HomeLogo    string         `json:"homeLogo,omitempty"`
	AwayLogo    string         `json:"awayLogo,omitempty"`
	Status      Status         `json:"status"`
	StartTime   time.Time      `json:"startTime"`
	League      string         `json:"league"`
	Venue       string         `json:"venue,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
	HomePlayers []PlayerStat   `json:"homePlayers,omitempty"`
	AwayPlayers []PlayerStat   `json:"awayPlayers,omitempty"`
}

// HasPlayers reports whether roster data is already attached.
func (m Match) HasPlayers() bool {
	return len(m.HomePlayers) > 0 || len(m.AwayPlayers) > 0
}

// Sort orders matches by status rank, then start time, then ID for
// deterministic output.
func Sort(items []Match) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := StatusRank(items[i].Status), StatusRank(items[j].Status)
		if ri != rj {
			return ri < rj
		}
		if !items[i].StartTime.Equal(items[j].StartTime) {
			return items[i].StartTime.Before(items[j].StartTime)
		}
		return items[i].ID < items[j].ID
	})
}

// Snapshot is the persisted per-sport fetch result. It is overwritten
// wholesale on every successful fetch; FetchedAt feeds the freshness gate.
type Snapshot struct {
	Sport     SportType `json:"sport"`
	Matches   []Match   `json:"matches"`
	FetchedAt time.Time `json:"fetchedAt"`
}
