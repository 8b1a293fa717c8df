package settings

// Settings are the user preferences that drive refresh cadence and
// client-side filtering. Persisted as one object, defaults merged on read.
type Settings struct {
	RefreshInterval      int    `json:"refreshInterval"`
	EnableNotifications  bool   `json:"enableNotifications"`
	Theme                string `json:"theme"`
	Language             string `json:"language"`
	ActiveTab            string `json:"activeTab"`
	EsportsGameFilter    string `json:"esportsGameFilter"`
	FootballLeagueFilter string `json:"footballLeagueFilter"`
}

// RefreshIntervals are the selectable cadences, in minutes.
var RefreshIntervals = []int{1, 5, 10, 30, 60}

func Default() Settings {
	return Settings{
		RefreshInterval:      10,
		EnableNotifications:  true,
		Theme:                "dark",
		Language:             "zh",
		ActiveTab:            "nba",
		EsportsGameFilter:    "all",
		FootballLeagueFilter: "all",
	}
}

// Normalize fills zero values with defaults so partially stored settings
// from older versions stay usable.
func (s Settings) Normalize() Settings {
	defaults := Default()
	if s.RefreshInterval <= 0 {
		s.RefreshInterval = defaults.RefreshInterval
	}
	if s.Theme == "" {
		s.Theme = defaults.Theme
	}
	if s.Language == "" {
		s.Language = defaults.Language
	}
	if s.ActiveTab == "" {
		s.ActiveTab = defaults.ActiveTab
	}
	if s.EsportsGameFilter == "" {
		s.EsportsGameFilter = defaults.EsportsGameFilter
	}
	if s.FootballLeagueFilter == "" {
		s.FootballLeagueFilter = defaults.FootballLeagueFilter
	}
	return s
}

// ValidRefreshInterval reports whether minutes is one of the selectable cadences.
func ValidRefreshInterval(minutes int) bool {
	for _, v := range RefreshIntervals {
		if v == minutes {
			return true
		}
	}
	return false
}
