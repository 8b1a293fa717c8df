package memory

import (
	"fmt"
	"time"

	"github.com/leyuan/sportdesk/internal/domain/match"
)

// Fallback returns the static dataset served when every live source for
// a sport fails. Start times are pinned relative to now so the data
// always looks current.
func Fallback(sport match.SportType, now time.Time) []match.Match {
	today := now.UTC().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)

	switch sport {
	case match.SportNBA:
		return fallbackNBA(today, tomorrow)
	case match.SportFootball:
		return fallbackFootball(today, tomorrow)
	case match.SportEsports:
		return fallbackEsports(today, tomorrow)
	default:
		return nil
	}
}

func intp(v int) *int { return &v }

func nbaLogo(teamID int64) string {
	return fmt.Sprintf("https://cdn.nba.com/logos/nba/%d/global/L/logo.svg", teamID)
}

func nbaStats(points, rebounds, assists, steals, blocks int, minutes string) map[string]any {
	return map[string]any{
		"得分": points, "篮板": rebounds, "助攻": assists,
		"抢断": steals, "盖帽": blocks, "时间": minutes,
	}
}

func fallbackNBA(today, tomorrow time.Time) []match.Match {
	return []match.Match{
		{
			ID:        "nba-fallback-1",
			SportType: match.SportNBA,
			HomeTeam:  "Lakers",
			AwayTeam:  "Celtics",
			HomeScore: intp(108),
			AwayScore: intp(112),
			HomeLogo:  nbaLogo(1610612747),
			AwayLogo:  nbaLogo(1610612738),
			Status:    match.StatusFinished,
			StartTime: today.Add(2*time.Hour + 30*time.Minute),
			League:    "NBA",
			Extra: map[string]any{
				"statusText": "Final",
				"homeLeader": "LeBron James 28分 8板 9助",
				"awayLeader": "Jayson Tatum 32分 7板 5助",
			},
			HomePlayers: []match.PlayerStat{
				{ID: "lbj-23", Name: "LeBron James", Team: "Lakers", Position: "SF", Stats: nbaStats(28, 8, 9, 2, 1, "36:45")},
				{ID: "ad-3", Name: "Anthony Davis", Team: "Lakers", Position: "PF", Stats: nbaStats(24, 12, 3, 1, 3, "35:20")},
				{ID: "ar-15", Name: "Austin Reaves", Team: "Lakers", Position: "SG", Stats: nbaStats(18, 4, 6, 1, 0, "33:10")},
				{ID: "dr-1", Name: "D'Angelo Russell", Team: "Lakers", Position: "PG", Stats: nbaStats(15, 2, 7, 1, 0, "30:55")},
				{ID: "rh-8", Name: "Rui Hachimura", Team: "Lakers", Position: "PF", Stats: nbaStats(12, 5, 1, 0, 0, "26:30")},
			},
			AwayPlayers: []match.PlayerStat{
				{ID: "jt-0", Name: "Jayson Tatum", Team: "Celtics", Position: "SF", Stats: nbaStats(32, 7, 5, 1, 0, "37:15")},
				{ID: "jb-7", Name: "Jaylen Brown", Team: "Celtics", Position: "SG", Stats: nbaStats(26, 6, 3, 2, 1, "35:40")},
				{ID: "kp-8", Name: "Kristaps Porzingis", Team: "Celtics", Position: "C", Stats: nbaStats(22, 9, 2, 0, 2, "32:00")},
				{ID: "dw-4", Name: "Derrick White", Team: "Celtics", Position: "PG", Stats: nbaStats(16, 3, 5, 2, 1, "34:20")},
				{ID: "ah-42", Name: "Al Horford", Team: "Celtics", Position: "C", Stats: nbaStats(8, 6, 4, 1, 1, "24:15")},
			},
		},
		{
			ID:        "nba-fallback-2",
			SportType: match.SportNBA,
			HomeTeam:  "Warriors",
			AwayTeam:  "Nuggets",
			HomeScore: intp(0),
			AwayScore: intp(0),
			HomeLogo:  nbaLogo(1610612744),
			AwayLogo:  nbaLogo(1610612743),
			Status:    match.StatusUpcoming,
			StartTime: today.Add(3 * time.Hour),
			League:    "NBA",
			Extra:     map[string]any{"statusText": "Scheduled"},
		},
		{
			ID:        "nba-fallback-3",
			SportType: match.SportNBA,
			HomeTeam:  "Mavericks",
			AwayTeam:  "Thunder",
			HomeScore: intp(95),
			AwayScore: intp(102),
			HomeLogo:  nbaLogo(1610612742),
			AwayLogo:  nbaLogo(1610612760),
			Status:    match.StatusLive,
			StartTime: today.Add(time.Hour),
			League:    "NBA",
			Extra:     map[string]any{"statusText": "Q4 5:32"},
			HomePlayers: []match.PlayerStat{
				{ID: "ld-77", Name: "Luka Doncic", Team: "Mavericks", Position: "PG", Stats: nbaStats(35, 9, 12, 1, 0, "35:28")},
				{ID: "ki-11", Name: "Kyrie Irving", Team: "Mavericks", Position: "SG", Stats: nbaStats(22, 3, 5, 1, 0, "33:15")},
				{ID: "pjw-25", Name: "PJ Washington", Team: "Mavericks", Position: "PF", Stats: nbaStats(14, 7, 2, 0, 1, "30:40")},
				{ID: "dj-36", Name: "Dereck Lively II", Team: "Mavericks", Position: "C", Stats: nbaStats(10, 8, 1, 0, 2, "28:00")},
			},
			AwayPlayers: []match.PlayerStat{
				{ID: "sga-2", Name: "Shai Gilgeous-Alexander", Team: "Thunder", Position: "SG", Stats: nbaStats(38, 5, 6, 2, 1, "36:10")},
				{ID: "jw-12", Name: "Jalen Williams", Team: "Thunder", Position: "SF", Stats: nbaStats(24, 6, 4, 1, 0, "34:20")},
				{ID: "ch-7", Name: "Chet Holmgren", Team: "Thunder", Position: "C", Stats: nbaStats(18, 10, 2, 0, 3, "32:45")},
				{ID: "ld-5", Name: "Luguentz Dort", Team: "Thunder", Position: "SG", Stats: nbaStats(12, 3, 2, 2, 0, "30:00")},
			},
		},
		{
			ID:        "nba-fallback-4",
			SportType: match.SportNBA,
			HomeTeam:  "Bucks",
			AwayTeam:  "76ers",
			HomeScore: intp(0),
			AwayScore: intp(0),
			HomeLogo:  nbaLogo(1610612749),
			AwayLogo:  nbaLogo(1610612755),
			Status:    match.StatusUpcoming,
			StartTime: tomorrow,
			League:    "NBA",
			Extra:     map[string]any{"statusText": "Scheduled"},
		},
	}
}

func footballStats(goals, assists, shots, passes int, rating string) map[string]any {
	return map[string]any{
		"Goals": goals, "Assists": assists, "Shots": shots,
		"Passes": passes, "Rating": rating,
	}
}

func fallbackFootball(today, tomorrow time.Time) []match.Match {
	return []match.Match{
		{
			ID:        "fb-1",
			SportType: match.SportFootball,
			HomeTeam:  "Manchester City",
			AwayTeam:  "Liverpool",
			HomeScore: intp(2),
			AwayScore: intp(1),
			Status:    match.StatusFinished,
			StartTime: today.Add(12*time.Hour + 30*time.Minute),
			League:    "Premier League",
			Extra:     map[string]any{"matchday": "Matchday 28", "halfTimeScore": "HT 1-0"},
			HomePlayers: []match.PlayerStat{
				{ID: "fb-haaland", Name: "Erling Haaland", Team: "Manchester City", Position: "ST", Stats: footballStats(1, 0, 4, 18, "7.8")},
				{ID: "fb-kdb", Name: "Kevin De Bruyne", Team: "Manchester City", Position: "MF", Stats: footballStats(1, 1, 2, 62, "8.5")},
				{ID: "fb-rodri", Name: "Rodri", Team: "Manchester City", Position: "MF", Stats: footballStats(0, 0, 1, 78, "7.2")},
				{ID: "fb-foden", Name: "Phil Foden", Team: "Manchester City", Position: "MF", Stats: footballStats(0, 1, 3, 45, "7.5")},
			},
			AwayPlayers: []match.PlayerStat{
				{ID: "fb-salah", Name: "Mohamed Salah", Team: "Liverpool", Position: "RW", Stats: footballStats(1, 0, 5, 30, "7.6")},
				{ID: "fb-nunez", Name: "Darwin Nunez", Team: "Liverpool", Position: "ST", Stats: footballStats(0, 0, 3, 15, "6.2")},
				{ID: "fb-mac", Name: "Alexis Mac Allister", Team: "Liverpool", Position: "MF", Stats: footballStats(0, 1, 1, 55, "7.0")},
				{ID: "fb-vvd", Name: "Virgil van Dijk", Team: "Liverpool", Position: "CB", Stats: footballStats(0, 0, 0, 68, "6.8")},
			},
		},
		{
			ID:        "fb-2",
			SportType: match.SportFootball,
			HomeTeam:  "Real Madrid",
			AwayTeam:  "Barcelona",
			HomeScore: intp(0),
			AwayScore: intp(0),
			Status:    match.StatusUpcoming,
			StartTime: tomorrow.Add(12 * time.Hour),
			League:    "La Liga",
			Extra:     map[string]any{"matchday": "Matchday 26"},
		},
		{
			ID:        "fb-3",
			SportType: match.SportFootball,
			HomeTeam:  "Bayern Munich",
			AwayTeam:  "Borussia Dortmund",
			HomeScore: intp(3),
			AwayScore: intp(2),
			Status:    match.StatusLive,
			StartTime: today.Add(11*time.Hour + 30*time.Minute),
			League:    "Bundesliga",
			Extra:     map[string]any{"matchday": "Matchday 24", "halfTimeScore": "HT 2-1"},
			HomePlayers: []match.PlayerStat{
				{ID: "fb-kane", Name: "Harry Kane", Team: "Bayern Munich", Position: "ST", Stats: footballStats(2, 0, 5, 25, "8.9")},
				{ID: "fb-musiala", Name: "Jamal Musiala", Team: "Bayern Munich", Position: "AM", Stats: footballStats(1, 1, 3, 48, "8.2")},
				{ID: "fb-kimmich", Name: "Joshua Kimmich", Team: "Bayern Munich", Position: "DM", Stats: footballStats(0, 1, 1, 82, "7.5")},
			},
			AwayPlayers: []match.PlayerStat{
				{ID: "fb-adeyemi", Name: "Karim Adeyemi", Team: "Borussia Dortmund", Position: "LW", Stats: footballStats(1, 0, 4, 22, "7.3")},
				{ID: "fb-brandt", Name: "Julian Brandt", Team: "Borussia Dortmund", Position: "AM", Stats: footballStats(1, 0, 2, 45, "7.1")},
				{ID: "fb-hummels", Name: "Mats Hummels", Team: "Borussia Dortmund", Position: "CB", Stats: footballStats(0, 0, 0, 65, "6.5")},
			},
		},
		{
			ID:        "fb-4",
			SportType: match.SportFootball,
			HomeTeam:  "AC Milan",
			AwayTeam:  "Inter Milan",
			HomeScore: intp(1),
			AwayScore: intp(1),
			Status:    match.StatusFinished,
			StartTime: today.Add(11*time.Hour + 45*time.Minute),
			League:    "Serie A",
			Extra:     map[string]any{"matchday": "Matchday 27", "halfTimeScore": "HT 0-1"},
			HomePlayers: []match.PlayerStat{
				{ID: "fb-leao", Name: "Rafael Leão", Team: "AC Milan", Position: "LW", Stats: footballStats(1, 0, 3, 28, "7.8")},
				{ID: "fb-pulisic", Name: "Christian Pulisic", Team: "AC Milan", Position: "RW", Stats: footballStats(0, 1, 2, 32, "7.2")},
				{ID: "fb-tonali", Name: "Sandro Tonali", Team: "AC Milan", Position: "CM", Stats: footballStats(0, 0, 1, 58, "6.9")},
			},
			AwayPlayers: []match.PlayerStat{
				{ID: "fb-lautaro", Name: "Lautaro Martínez", Team: "Inter Milan", Position: "ST", Stats: footballStats(1, 0, 4, 20, "7.5")},
				{ID: "fb-barella", Name: "Nicolò Barella", Team: "Inter Milan", Position: "CM", Stats: footballStats(0, 1, 2, 62, "7.3")},
				{ID: "fb-bastoni", Name: "Alessandro Bastoni", Team: "Inter Milan", Position: "CB", Stats: footballStats(0, 0, 0, 72, "7.0")},
			},
		},
	}
}

func esportsExtra(game, gameName, bestOf, region string) map[string]any {
	extra := map[string]any{"game": game, "gameName": gameName, "bestOf": bestOf}
	if region != "" {
		extra["region"] = region
	}
	return extra
}

func fallbackEsports(today, tomorrow time.Time) []match.Match {
	return []match.Match{
		{
			ID:        "es-cs-1",
			SportType: match.SportEsports,
			HomeTeam:  "NAVI",
			AwayTeam:  "FaZe Clan",
			HomeScore: intp(2),
			AwayScore: intp(1),
			Status:    match.StatusFinished,
			StartTime: today.Add(9 * time.Hour),
			League:    "IEM Katowice 2026",
			Extra:     esportsExtra("csgo", "CS2", "BO3", ""),
			HomePlayers: []match.PlayerStat{
				{ID: "es-s1mple", Name: "s1mple", Team: "NAVI", Stats: map[string]any{"KD": "1.35", "Rating": "1.42", "ADR": "88.5", "击杀": 65, "死亡": 48}},
				{ID: "es-b1t", Name: "b1t", Team: "NAVI", Stats: map[string]any{"KD": "1.18", "Rating": "1.22", "ADR": "76.3", "击杀": 55, "死亡": 47}},
				{ID: "es-jl", Name: "jL", Team: "NAVI", Stats: map[string]any{"KD": "1.05", "Rating": "1.10", "ADR": "72.1", "击杀": 50, "死亡": 48}},
			},
			AwayPlayers: []match.PlayerStat{
				{ID: "es-ropz", Name: "ropz", Team: "FaZe Clan", Stats: map[string]any{"KD": "1.22", "Rating": "1.28", "ADR": "80.2", "击杀": 58, "死亡": 48}},
				{ID: "es-rain", Name: "rain", Team: "FaZe Clan", Stats: map[string]any{"KD": "0.95", "Rating": "1.02", "ADR": "68.5", "击杀": 45, "死亡": 47}},
				{ID: "es-frozen", Name: "frozen", Team: "FaZe Clan", Stats: map[string]any{"KD": "1.10", "Rating": "1.15", "ADR": "74.8", "击杀": 52, "死亡": 47}},
			},
		},
		{
			ID:        "es-cs-2",
			SportType: match.SportEsports,
			HomeTeam:  "Team Vitality",
			AwayTeam:  "G2 Esports",
			HomeScore: intp(0),
			AwayScore: intp(0),
			Status:    match.StatusUpcoming,
			StartTime: tomorrow.Add(10 * time.Hour),
			League:    "BLAST Premier",
			Extra:     esportsExtra("csgo", "CS2", "BO3", ""),
		},
		{
			ID:        "es-cs-3",
			SportType: match.SportEsports,
			HomeTeam:  "Team Liquid",
			AwayTeam:  "Cloud9",
			HomeScore: intp(1),
			AwayScore: intp(0),
			Status:    match.StatusLive,
			StartTime: today.Add(11 * time.Hour),
			League:    "ESL Pro League S21",
			Extra:     esportsExtra("csgo", "CS2", "BO3", ""),
			HomePlayers: []match.PlayerStat{
				{ID: "es-twistzz", Name: "Twistzz", Team: "Team Liquid", Stats: map[string]any{"KD": "1.28", "Rating": "1.35", "ADR": "85.2", "击杀": 42, "死亡": 33}},
				{ID: "es-yekindar", Name: "YEKINDAR", Team: "Team Liquid", Stats: map[string]any{"KD": "1.15", "Rating": "1.18", "ADR": "78.5", "击杀": 38, "死亡": 33}},
				{ID: "es-naf", Name: "NAF", Team: "Team Liquid", Stats: map[string]any{"KD": "1.05", "Rating": "1.08", "ADR": "70.3", "击杀": 35, "死亡": 33}},
			},
			AwayPlayers: []match.PlayerStat{
				{ID: "es-ax1le", Name: "Ax1Le", Team: "Cloud9", Stats: map[string]any{"KD": "1.12", "Rating": "1.15", "ADR": "75.8", "击杀": 37, "死亡": 33}},
				{ID: "es-hobbit", Name: "HObbit", Team: "Cloud9", Stats: map[string]any{"KD": "0.97", "Rating": "1.00", "ADR": "68.2", "击杀": 32, "死亡": 33}},
				{ID: "es-sh1ro", Name: "sh1ro", Team: "Cloud9", Stats: map[string]any{"KD": "1.00", "Rating": "1.05", "ADR": "72.5", "击杀": 33, "死亡": 33}},
			},
		},
		{
			ID:        "es-lol-1",
			SportType: match.SportEsports,
			HomeTeam:  "T1",
			AwayTeam:  "Gen.G",
			HomeScore: intp(2),
			AwayScore: intp(0),
			Status:    match.StatusFinished,
			StartTime: today.Add(9 * time.Hour),
			League:    "LCK Spring 2026",
			Extra:     esportsExtra("lol", "LOL", "BO3", "LCK"),
			HomePlayers: []match.PlayerStat{
				{ID: "es-faker", Name: "Faker", Team: "T1", Position: "MID", Stats: map[string]any{"KDA": "8/1/6", "CS": 245, "伤害": "28.5k", "参团率": "78%"}},
				{ID: "es-gumayusi", Name: "Gumayusi", Team: "T1", Position: "ADC", Stats: map[string]any{"KDA": "6/2/8", "CS": 268, "伤害": "32.1k", "参团率": "82%"}},
				{ID: "es-keria", Name: "Keria", Team: "T1", Position: "SUP", Stats: map[string]any{"KDA": "1/1/14", "CS": 32, "伤害": "8.2k", "参团率": "90%"}},
				{ID: "es-zeus", Name: "Zeus", Team: "T1", Position: "TOP", Stats: map[string]any{"KDA": "4/2/5", "CS": 220, "伤害": "22.3k", "参团率": "60%"}},
				{ID: "es-oner", Name: "Oner", Team: "T1", Position: "JG", Stats: map[string]any{"KDA": "3/1/10", "CS": 180, "伤害": "15.8k", "参团率": "85%"}},
			},
			AwayPlayers: []match.PlayerStat{
				{ID: "es-chovy", Name: "Chovy", Team: "Gen.G", Position: "MID", Stats: map[string]any{"KDA": "2/3/3", "CS": 230, "伤害": "24.1k", "参团率": "65%"}},
				{ID: "es-peyz", Name: "Peyz", Team: "Gen.G", Position: "ADC", Stats: map[string]any{"KDA": "3/4/2", "CS": 255, "伤害": "26.8k", "参团率": "58%"}},
				{ID: "es-lehends", Name: "Lehends", Team: "Gen.G", Position: "SUP", Stats: map[string]any{"KDA": "0/3/5", "CS": 28, "伤害": "5.5k", "参团率": "62%"}},
			},
		},
		{
			ID:        "es-lol-2",
			SportType: match.SportEsports,
			HomeTeam:  "BLG",
			AwayTeam:  "JDG",
			HomeScore: intp(0),
			AwayScore: intp(0),
			Status:    match.StatusUpcoming,
			StartTime: tomorrow.Add(9 * time.Hour),
			League:    "LPL Spring 2026",
			Extra:     esportsExtra("lol", "LOL", "BO3", "LPL"),
		},
		{
			ID:        "es-lol-3",
			SportType: match.SportEsports,
			HomeTeam:  "WBG",
			AwayTeam:  "TES",
			HomeScore: intp(1),
			AwayScore: intp(1),
			Status:    match.StatusLive,
			StartTime: today.Add(10 * time.Hour),
			League:    "LPL Spring 2026",
			Extra:     esportsExtra("lol", "LOL", "BO3", "LPL"),
			HomePlayers: []match.PlayerStat{
				{ID: "es-theshy", Name: "TheShy", Team: "WBG", Position: "TOP", Stats: map[string]any{"KDA": "5/3/4", "CS": 235, "伤害": "26.8k", "参团率": "68%"}},
				{ID: "es-weiwei", Name: "Weiwei", Team: "WBG", Position: "JG", Stats: map[string]any{"KDA": "2/2/8", "CS": 165, "伤害": "12.5k", "参团率": "80%"}},
				{ID: "es-xiaohu", Name: "Xiaohu", Team: "WBG", Position: "MID", Stats: map[string]any{"KDA": "4/2/5", "CS": 248, "伤害": "24.2k", "参团率": "72%"}},
				{ID: "es-light", Name: "Light", Team: "WBG", Position: "ADC", Stats: map[string]any{"KDA": "6/1/6", "CS": 272, "伤害": "31.5k", "参团率": "75%"}},
			},
			AwayPlayers: []match.PlayerStat{
				{ID: "es-wayward", Name: "Wayward", Team: "TES", Position: "TOP", Stats: map[string]any{"KDA": "3/4/5", "CS": 228, "伤害": "22.1k", "参团率": "65%"}},
				{ID: "es-tian", Name: "Tian", Team: "TES", Position: "JG", Stats: map[string]any{"KDA": "1/3/7", "CS": 158, "伤害": "10.8k", "参团率": "70%"}},
				{ID: "es-knight", Name: "Knight", Team: "TES", Position: "MID", Stats: map[string]any{"KDA": "4/3/4", "CS": 255, "伤害": "27.3k", "参团率": "68%"}},
				{ID: "es-jackeylove", Name: "JackeyLove", Team: "TES", Position: "ADC", Stats: map[string]any{"KDA": "5/2/5", "CS": 268, "伤害": "29.8k", "参团率": "73%"}},
			},
		},
		{
			ID:        "es-val-1",
			SportType: match.SportEsports,
			HomeTeam:  "Sentinels",
			AwayTeam:  "100 Thieves",
			HomeScore: intp(2),
			AwayScore: intp(1),
			Status:    match.StatusFinished,
			StartTime: today.Add(2 * time.Hour),
			League:    "VCT Americas",
			Extra:     esportsExtra("valorant", "VALORANT", "BO3", ""),
			HomePlayers: []match.PlayerStat{
				{ID: "es-tenz", Name: "TenZ", Team: "Sentinels", Stats: map[string]any{"ACS": 285, "KD": "1.42", "击杀": 68, "死亡": 48, "首杀": 12}},
				{ID: "es-zekken", Name: "zekken", Team: "Sentinels", Stats: map[string]any{"ACS": 268, "KD": "1.35", "击杀": 65, "死亡": 48, "首杀": 10}},
				{ID: "es-sacy", Name: "Sacy", Team: "Sentinels", Stats: map[string]any{"ACS": 198, "KD": "1.08", "击杀": 52, "死亡": 48, "首杀": 8}},
			},
			AwayPlayers: []match.PlayerStat{
				{ID: "es-asuna", Name: "Asuna", Team: "100 Thieves", Stats: map[string]any{"ACS": 245, "KD": "1.18", "击杀": 57, "死亡": 48, "首杀": 9}},
				{ID: "es-cryo", Name: "Cryo", Team: "100 Thieves", Stats: map[string]any{"ACS": 232, "KD": "1.12", "击杀": 54, "死亡": 48, "首杀": 7}},
				{ID: "es-bang", Name: "bang", Team: "100 Thieves", Stats: map[string]any{"ACS": 188, "KD": "0.95", "击杀": 46, "死亡": 48, "首杀": 5}},
			},
		},
		{
			ID:        "es-val-2",
			SportType: match.SportEsports,
			HomeTeam:  "EDG",
			AwayTeam:  "DRX",
			HomeScore: intp(0),
			AwayScore: intp(0),
			Status:    match.StatusUpcoming,
			StartTime: tomorrow.Add(6 * time.Hour),
			League:    "VCT Pacific",
			Extra:     esportsExtra("valorant", "VALORANT", "BO3", ""),
		},
		{
			ID:        "es-dota-1",
			SportType: match.SportEsports,
			HomeTeam:  "Team Spirit",
			AwayTeam:  "Gaimin Gladiators",
			HomeScore: intp(1),
			AwayScore: intp(2),
			Status:    match.StatusFinished,
			StartTime: today.Add(8 * time.Hour),
			League:    "DPC Tour 2026",
			Extra:     esportsExtra("dota2", "DOTA2", "BO3", ""),
			HomePlayers: []match.PlayerStat{
				{ID: "es-yatoro", Name: "Yatoro", Team: "Team Spirit", Stats: map[string]any{"KDA": "8/5/12", "GPM": 685, "XPM": 745, "伤害": "42.5k", "英雄": "Phantom Assassin"}},
				{ID: "es-collapse", Name: "Collapse", Team: "Team Spirit", Stats: map[string]any{"KDA": "5/6/15", "GPM": 512, "XPM": 625, "伤害": "28.3k", "英雄": "Mars"}},
				{ID: "es-toronto", Name: "TorontoTokyo", Team: "Team Spirit", Stats: map[string]any{"KDA": "6/7/14", "GPM": 558, "XPM": 682, "伤害": "35.8k", "英雄": "Puck"}},
			},
			AwayPlayers: []match.PlayerStat{
				{ID: "es-quinn", Name: "Quinn", Team: "Gaimin Gladiators", Stats: map[string]any{"KDA": "10/4/18", "GPM": 725, "XPM": 785, "伤害": "48.2k", "英雄": "Morphling"}},
				{ID: "es-ace", Name: "Ace", Team: "Gaimin Gladiators", Stats: map[string]any{"KDA": "7/5/20", "GPM": 485, "XPM": 598, "伤害": "22.5k", "英雄": "Earthshaker"}},
				{ID: "es-dyrachyo", Name: "dyrachyo", Team: "Gaimin Gladiators", Stats: map[string]any{"KDA": "8/6/16", "GPM": 642, "XPM": 712, "伤害": "38.7k", "英雄": "Invoker"}},
			},
		},
	}
}
