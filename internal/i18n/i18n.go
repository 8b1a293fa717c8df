// Package i18n localizes display names at the presentation edge. Sources
// emit provider-native English names; translation happens per request
// based on the stored language preference, so switching language never
// requires a refetch.
package i18n

import "github.com/leyuan/sportdesk/internal/domain/match"

const (
	LocaleZH = "zh"
	LocaleEN = "en"
)

// nbaTeamZH maps NBA franchise names to their common Chinese names.
var nbaTeamZH = map[string]string{
	"Lakers": "湖人", "Celtics": "凯尔特人", "Warriors": "勇士", "Nets": "篮网",
	"Knicks": "尼克斯", "76ers": "76人", "Bucks": "雄鹿", "Heat": "热火",
	"Nuggets": "掘金", "Suns": "太阳", "Mavericks": "独行侠", "Thunder": "雷霆",
	"Clippers": "快船", "Kings": "国王", "Timberwolves": "森林狼", "Pelicans": "鹈鹕",
	"Grizzlies": "灰熊", "Spurs": "马刺", "Rockets": "火箭", "Cavaliers": "骑士",
	"Hawks": "老鹰", "Bulls": "公牛", "Pacers": "步行者", "Magic": "魔术",
	"Raptors": "猛龙", "Hornets": "黄蜂", "Pistons": "活塞", "Wizards": "奇才",
	"Trail Blazers": "开拓者", "Jazz": "爵士",
}

var statusZH = map[match.Status]string{
	match.StatusLive:     "进行中",
	match.StatusUpcoming: "未开始",
	match.StatusFinished: "已结束",
}

// TeamName translates a team name for the locale. Names without a known
// translation pass through unchanged.
func TeamName(locale string, sport match.SportType, name string) string {
	if locale != LocaleZH || sport != match.SportNBA {
		return name
	}
	if zh, ok := nbaTeamZH[name]; ok {
		return zh
	}
	return name
}

// StatusLabel returns the display label for a match status.
func StatusLabel(locale string, s match.Status) string {
	if locale == LocaleZH {
		if label, ok := statusZH[s]; ok {
			return label
		}
	}
	return string(s)
}

// LocalizeMatch returns a copy of m with team names translated, player
// team columns included. The input is left untouched since snapshots are
// shared between requests.
func LocalizeMatch(locale string, m match.Match) match.Match {
	if locale != LocaleZH || m.SportType != match.SportNBA {
		return m
	}
	m.HomeTeam = TeamName(locale, m.SportType, m.HomeTeam)
	m.AwayTeam = TeamName(locale, m.SportType, m.AwayTeam)
	m.HomePlayers = localizePlayers(locale, m.SportType, m.HomePlayers)
	m.AwayPlayers = localizePlayers(locale, m.SportType, m.AwayPlayers)
	return m
}

// LocalizeMatches maps LocalizeMatch over a slice.
func LocalizeMatches(locale string, matches []match.Match) []match.Match {
	if locale != LocaleZH {
		return matches
	}
	out := make([]match.Match, len(matches))
	for i, m := range matches {
		out[i] = LocalizeMatch(locale, m)
	}
	return out
}

func localizePlayers(locale string, sport match.SportType, players []match.PlayerStat) []match.PlayerStat {
	if len(players) == 0 {
		return players
	}
	out := make([]match.PlayerStat, len(players))
	for i, p := range players {
		p.Team = TeamName(locale, sport, p.Team)
		out[i] = p
	}
	return out
}
