package favorite

import (
	"time"

	"github.com/leyuan/sportdesk/internal/domain/match"
)

// Type classifies what a favorite points at.
type Type string

const (
	TypeTeam   Type = "team"
	TypePlayer Type = "player"
	TypeMatch  Type = "match"
)

// Item is a pinned entity. Extra holds denormalized attributes frozen at
// favorite time so display survives the source entity disappearing from a
// later fetch; MatchData is a full snapshot for match-type favorites.
type Item struct {
	ID        string          `json:"id"`
	Type      Type            `json:"type"`
	SportType match.SportType `json:"sportType"`
	Name      string          `json:"name"`
	Logo      string          `json:"logo,omitempty"`
	Extra     map[string]any  `json:"extra,omitempty"`
	MatchData *match.Match    `json:"matchData,omitempty"`
	AddedAt   time.Time       `json:"addedAt"`
}

// Key is the uniqueness identity of a favorite within the list.
func (i Item) Key() (string, match.SportType) {
	return i.ID, i.SportType
}
