package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/platform/logging"
)

// RosterToken cancels an in-flight roster load. A view that navigates
// away cancels its token so a late upstream response is never published.
type RosterToken struct {
	cancelled atomic.Bool
}

func NewRosterToken() *RosterToken {
	return &RosterToken{}
}

func (t *RosterToken) Cancel() {
	if t == nil {
		return
	}
	t.cancelled.Store(true)
}

func (t *RosterToken) Cancelled() bool {
	if t == nil {
		return false
	}
	return t.cancelled.Load()
}

type footballRosterSource interface {
	FetchMatchRoster(ctx context.Context, leagueSlug, eventID, homeTeam, awayTeam string) ([]match.PlayerStat, []match.PlayerStat, error)
	FetchTeamSquad(ctx context.Context, leagueSlug, teamID, teamName string) ([]match.PlayerStat, error)
}

type esportsRosterSource interface {
	FetchTeamPlayers(ctx context.Context, teamName, game string) ([]match.PlayerStat, error)
}

type RosterService struct {
	snapshotRepo match.SnapshotRepository
	football     footballRosterSource
	esports      esportsRosterSource
	logger       *logging.Logger
}

func NewRosterService(
	snapshotRepo match.SnapshotRepository,
	football footballRosterSource,
	esports esportsRosterSource,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		snapshotRepo: snapshotRepo,
		football:     football,
		esports:      esports,
		logger:       logger,
	}
}

// LoadRoster attaches player lists to the identified match. Matches that
// already carry players are returned untouched. Upstream failures
// degrade to an empty roster rather than an error; a cancelled token
// suppresses the snapshot write so a stale load never lands.
func (s *RosterService) LoadRoster(ctx context.Context, matchID string, token *RosterToken) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.LoadRoster")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, sport, found, err := s.findMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if m.HasPlayers() || token.Cancelled() {
		return m, nil
	}

	switch sport {
	case match.SportFootball:
		m = s.loadFootballRoster(ctx, m)
	case match.SportEsports:
		m = s.loadEsportsRoster(ctx, m)
	default:
		// NBA rosters arrive with the box-score hydration at fetch time.
		return m, nil
	}

	if token.Cancelled() {
		return m, nil
	}
	s.publishRoster(ctx, sport, m)
	return m, nil
}

func (s *RosterService) findMatch(ctx context.Context, matchID string) (match.Match, match.SportType, bool, error) {
	for _, sport := range match.AllSports {
		snapshot, exists, err := s.snapshotRepo.GetSnapshot(ctx, sport)
		if err != nil {
			return match.Match{}, "", false, fmt.Errorf("read snapshot sport=%s: %w", sport, err)
		}
		if !exists {
			continue
		}
		for _, m := range snapshot.Matches {
			if m.ID == matchID {
				return m, sport, true, nil
			}
		}
	}
	return match.Match{}, "", false, nil
}

func (s *RosterService) loadFootballRoster(ctx context.Context, m match.Match) match.Match {
	if s.football == nil {
		return m
	}
	leagueSlug, _ := m.Extra["espnLeagueSlug"].(string)
	eventID, _ := m.Extra["espnEventId"].(string)
	if leagueSlug == "" || eventID == "" {
		// Matches from the schedule API or the static dataset have no
		// roster source.
		return m
	}

	if m.Status == match.StatusLive || m.Status == match.StatusFinished {
		home, away, err := s.football.FetchMatchRoster(ctx, leagueSlug, eventID, m.HomeTeam, m.AwayTeam)
		if err != nil {
			s.logger.WarnContext(ctx, "match roster fetch failed", "match", m.ID, "error", err)
		} else if len(home) > 0 || len(away) > 0 {
			m.HomePlayers = home
			m.AwayPlayers = away
			return m
		}
	}

	homeTeamID, _ := m.Extra["espnHomeTeamId"].(string)
	awayTeamID, _ := m.Extra["espnAwayTeamId"].(string)
	if homeTeamID == "" && awayTeamID == "" {
		return m
	}

	if homeTeamID != "" {
		squad, err := s.football.FetchTeamSquad(ctx, leagueSlug, homeTeamID, m.HomeTeam)
		if err != nil {
			s.logger.WarnContext(ctx, "home squad fetch failed", "match", m.ID, "error", err)
		} else {
			m.HomePlayers = squad
		}
	}
	if awayTeamID != "" {
		squad, err := s.football.FetchTeamSquad(ctx, leagueSlug, awayTeamID, m.AwayTeam)
		if err != nil {
			s.logger.WarnContext(ctx, "away squad fetch failed", "match", m.ID, "error", err)
		} else {
			m.AwayPlayers = squad
		}
	}

	if m.HasPlayers() {
		extra := make(map[string]any, len(m.Extra)+1)
		for k, v := range m.Extra {
			extra[k] = v
		}
		extra["isSquad"] = true
		m.Extra = extra
	}
	return m
}

func (s *RosterService) loadEsportsRoster(ctx context.Context, m match.Match) match.Match {
	if s.esports == nil {
		return m
	}
	game, _ := m.Extra["game"].(string)
	if game == "" {
		return m
	}

	home, err := s.esports.FetchTeamPlayers(ctx, m.HomeTeam, game)
	if err != nil {
		s.logger.WarnContext(ctx, "home team players fetch failed", "match", m.ID, "error", err)
	} else {
		m.HomePlayers = home
	}
	away, err := s.esports.FetchTeamPlayers(ctx, m.AwayTeam, game)
	if err != nil {
		s.logger.WarnContext(ctx, "away team players fetch failed", "match", m.ID, "error", err)
	} else {
		m.AwayPlayers = away
	}
	return m
}

// publishRoster writes the hydrated match back into its snapshot so a
// later view reuses the roster instead of refetching it.
func (s *RosterService) publishRoster(ctx context.Context, sport match.SportType, hydrated match.Match) {
	if !hydrated.HasPlayers() {
		return
	}
	snapshot, exists, err := s.snapshotRepo.GetSnapshot(ctx, sport)
	if err != nil || !exists {
		return
	}
	for i, m := range snapshot.Matches {
		if m.ID == hydrated.ID {
			snapshot.Matches[i] = hydrated
			if err := s.snapshotRepo.SaveSnapshot(ctx, snapshot); err != nil {
				s.logger.WarnContext(ctx, "persist roster failed", "match", hydrated.ID, "error", err)
			}
			return
		}
	}
}
