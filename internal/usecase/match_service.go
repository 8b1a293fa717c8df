package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/domain/settings"
	"github.com/leyuan/sportdesk/internal/platform/logging"
)

type nbaSource interface {
	FetchMatches(ctx context.Context) ([]match.Match, error)
}

type scheduleSource interface {
	FetchMatches(ctx context.Context) ([]match.Match, error)
}

type marketSource interface {
	FetchMatches(ctx context.Context, gameFilter string) ([]match.Match, error)
}

type runningSource interface {
	FetchRunningMatches(ctx context.Context, gameFilter string) ([]match.Match, error)
}

// MatchSources are the upstream adapters per sport, in cascade order.
// A nil source means the tier is not configured and is skipped.
type MatchSources struct {
	NBA          nbaSource
	ESPN         scheduleSource
	FootballData scheduleSource
	Polymarket   marketSource
	PandaScore   runningSource
}

// FallbackFunc returns the static dataset for a sport, pinned to now.
type FallbackFunc func(sport match.SportType, now time.Time) []match.Match

type MatchService struct {
	snapshotRepo match.SnapshotRepository
	settingsRepo settings.Repository
	sources      MatchSources
	fallback     FallbackFunc
	logger       *logging.Logger
	now          func() time.Time
}

func NewMatchService(
	snapshotRepo match.SnapshotRepository,
	settingsRepo settings.Repository,
	sources MatchSources,
	fallback FallbackFunc,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		snapshotRepo: snapshotRepo,
		settingsRepo: settingsRepo,
		sources:      sources,
		fallback:     fallback,
		logger:       logger,
		now:          time.Now,
	}
}

// FetchMatches returns the current snapshot for one sport. A fresh
// non-empty snapshot is served as-is; otherwise the source cascade runs
// and the snapshot is overwritten wholesale, even when the new result is
// smaller. force bypasses the freshness gate.
func (s *MatchService) FetchMatches(ctx context.Context, sport match.SportType, force bool) (match.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.FetchMatches")
	defer span.End()

	if _, ok := match.ParseSportType(string(sport)); !ok {
		return match.Snapshot{}, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}

	prefs, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "load settings failed, using defaults", "error", err)
		prefs = settings.Default()
	}
	interval := time.Duration(prefs.RefreshInterval) * time.Minute

	snapshot, exists, err := s.snapshotRepo.GetSnapshot(ctx, sport)
	if err != nil {
		s.logger.WarnContext(ctx, "read snapshot failed, refreshing", "sport", sport, "error", err)
		exists = false
	}
	if exists && !force && !s.shouldRefresh(snapshot.FetchedAt, interval) && len(snapshot.Matches) > 0 {
		return snapshot, nil
	}

	matches := s.fetchSport(ctx, sport, prefs)
	if matches == nil {
		matches = []match.Match{}
	}
	match.Sort(matches)

	snapshot = match.Snapshot{
		Sport:     sport,
		Matches:   matches,
		FetchedAt: s.now(),
	}
	if err := s.snapshotRepo.SaveSnapshot(ctx, snapshot); err != nil {
		s.logger.ErrorContext(ctx, "save snapshot failed", "sport", sport, "error", err)
	}

	return snapshot, nil
}

// FetchAll refreshes every sport on a worker pool. Failures are
// per-sport; one sport failing never blocks the others.
func (s *MatchService) FetchAll(ctx context.Context, force bool) (map[match.SportType]match.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.FetchAll")
	defer span.End()

	pool, err := ants.NewPool(len(match.AllSports))
	if err != nil {
		return nil, fmt.Errorf("create refresh pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	out := make(map[match.SportType]match.Snapshot, len(match.AllSports))
	failed := 0

	var workers sync.WaitGroup
	for _, sport := range match.AllSports {
		sport := sport
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			snapshot, fetchErr := s.FetchMatches(ctx, sport, force)
			mu.Lock()
			defer mu.Unlock()
			if fetchErr != nil {
				s.logger.WarnContext(ctx, "sport refresh failed", "sport", sport, "error", fetchErr)
				failed++
				return
			}
			out[sport] = snapshot
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit refresh task: %w", err)
		}
	}
	workers.Wait()

	if failed == len(match.AllSports) {
		return nil, fmt.Errorf("%w: every sport refresh failed", ErrDependencyUnavailable)
	}
	return out, nil
}

// shouldRefresh is the freshness gate: no recorded fetch means refresh,
// and so does an elapsed interval.
func (s *MatchService) shouldRefresh(fetchedAt time.Time, interval time.Duration) bool {
	if fetchedAt.IsZero() {
		return true
	}
	return s.now().Sub(fetchedAt) > interval
}

func (s *MatchService) fetchSport(ctx context.Context, sport match.SportType, prefs settings.Settings) []match.Match {
	switch sport {
	case match.SportNBA:
		return s.fetchNBA(ctx)
	case match.SportFootball:
		return s.fetchFootball(ctx)
	case match.SportEsports:
		return s.fetchEsports(ctx, prefs)
	default:
		return nil
	}
}

func (s *MatchService) fetchNBA(ctx context.Context) []match.Match {
	if s.sources.NBA != nil {
		items, err := s.sources.NBA.FetchMatches(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "nba scoreboard failed", "error", err)
		} else if len(items) > 0 {
			return items
		}
	}
	return s.staticFallback(match.SportNBA)
}

func (s *MatchService) fetchFootball(ctx context.Context) []match.Match {
	if s.sources.ESPN != nil {
		items, err := s.sources.ESPN.FetchMatches(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "football scrape failed", "error", err)
		} else if len(items) > 0 {
			return items
		}
	}

	if s.sources.FootballData != nil {
		items, err := s.sources.FootballData.FetchMatches(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "football schedule api failed", "error", err)
		} else if len(items) > 0 {
			return items
		}
	}

	// The static football fixtures carry finished results that would read
	// as stale; only upcoming and live entries are worth showing.
	out := make([]match.Match, 0)
	for _, m := range s.staticFallback(match.SportFootball) {
		if m.Status == match.StatusUpcoming || m.Status == match.StatusLive {
			out = append(out, m)
		}
	}
	return out
}

func (s *MatchService) fetchEsports(ctx context.Context, prefs settings.Settings) []match.Match {
	gameFilter := normalizeGameFilter(prefs.EsportsGameFilter)

	if s.sources.Polymarket != nil {
		items, err := s.sources.Polymarket.FetchMatches(ctx, gameFilter)
		if err != nil {
			s.logger.WarnContext(ctx, "esports market scan failed", "error", err)
		} else if len(items) > 0 {
			return items
		}
	}

	if s.sources.PandaScore != nil {
		items, err := s.sources.PandaScore.FetchRunningMatches(ctx, gameFilter)
		if err != nil {
			s.logger.WarnContext(ctx, "esports running matches failed", "error", err)
		} else if len(items) > 0 {
			return items
		}
	}

	out := make([]match.Match, 0)
	for _, m := range s.staticFallback(match.SportEsports) {
		if gameFilter != "" {
			game, _ := m.Extra["game"].(string)
			if game != gameFilter {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

func (s *MatchService) staticFallback(sport match.SportType) []match.Match {
	if s.fallback == nil {
		return nil
	}
	return s.fallback(sport, s.now())
}

func normalizeGameFilter(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "all" {
		return ""
	}
	return v
}
