package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leyuan/sportdesk/internal/domain/match"
)

func TestTeamName(t *testing.T) {
	assert.Equal(t, "湖人", TeamName(LocaleZH, match.SportNBA, "Lakers"))
	assert.Equal(t, "开拓者", TeamName(LocaleZH, match.SportNBA, "Trail Blazers"))
	assert.Equal(t, "Lakers", TeamName(LocaleEN, match.SportNBA, "Lakers"))
	assert.Equal(t, "Arsenal", TeamName(LocaleZH, match.SportFootball, "Arsenal"))
	assert.Equal(t, "Expansion FC", TeamName(LocaleZH, match.SportNBA, "Expansion FC"))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "进行中", StatusLabel(LocaleZH, match.StatusLive))
	assert.Equal(t, "已结束", StatusLabel(LocaleZH, match.StatusFinished))
	assert.Equal(t, "live", StatusLabel(LocaleEN, match.StatusLive))
}

func TestLocalizeMatch_DoesNotMutateInput(t *testing.T) {
	original := match.Match{
		SportType: match.SportNBA,
		HomeTeam:  "Lakers",
		AwayTeam:  "Celtics",
		HomePlayers: []match.PlayerStat{
			{Name: "LeBron James", Team: "Lakers"},
		},
	}

	localized := LocalizeMatch(LocaleZH, original)

	assert.Equal(t, "湖人", localized.HomeTeam)
	assert.Equal(t, "凯尔特人", localized.AwayTeam)
	assert.Equal(t, "湖人", localized.HomePlayers[0].Team)

	assert.Equal(t, "Lakers", original.HomeTeam)
	assert.Equal(t, "Lakers", original.HomePlayers[0].Team)
}

func TestLocalizeMatches_NonZhPassthrough(t *testing.T) {
	in := []match.Match{{SportType: match.SportNBA, HomeTeam: "Lakers"}}
	out := LocalizeMatches(LocaleEN, in)
	assert.Equal(t, "Lakers", out[0].HomeTeam)
}
