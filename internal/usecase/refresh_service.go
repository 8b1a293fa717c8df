package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/leyuan/sportdesk/internal/domain/finance"
	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/platform/logging"
)

type matchRefresher interface {
	FetchAll(ctx context.Context, force bool) (map[match.SportType]match.Snapshot, error)
}

type watchlistRefresher interface {
	RefreshWatchlist(ctx context.Context) ([]finance.Item, error)
}

// RefreshService drives the background refresh cadence: one immediate
// run at startup, then a ticker at the configured interval. Settings
// updates retime the ticker through UpdateInterval.
type RefreshService struct {
	matches  matchRefresher
	finance  watchlistRefresher
	logger   *logging.Logger
	updates  chan time.Duration
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	interval time.Duration
	started  bool
}

func NewRefreshService(matches matchRefresher, finance watchlistRefresher, interval time.Duration, logger *logging.Logger) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &RefreshService{
		matches:  matches,
		finance:  finance,
		logger:   logger,
		interval: interval,
		updates:  make(chan time.Duration, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *RefreshService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	interval := s.interval
	s.mu.Unlock()

	go s.loop(ctx, interval)
}

func (s *RefreshService) loop(ctx context.Context, interval time.Duration) {
	defer close(s.done)

	s.run(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case d := <-s.updates:
			ticker.Reset(d)
			s.logger.Info("refresh interval updated", "interval", d.String())
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

// RefreshNow runs one refresh cycle synchronously.
func (s *RefreshService) RefreshNow(ctx context.Context) {
	s.run(ctx)
}

// UpdateInterval retimes the scheduler. Setting the current interval
// again is a no-op.
func (s *RefreshService) UpdateInterval(d time.Duration) {
	if d <= 0 {
		return
	}

	s.mu.Lock()
	if d == s.interval {
		s.mu.Unlock()
		return
	}
	s.interval = d
	started := s.started
	s.mu.Unlock()

	if !started {
		return
	}

	// Only the latest pending update matters.
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- d:
	default:
	}
}

func (s *RefreshService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})

	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.done
	}
}

func (s *RefreshService) run(ctx context.Context) {
	started := time.Now()
	if _, err := s.matches.FetchAll(ctx, true); err != nil {
		s.logger.WarnContext(ctx, "scheduled sports refresh failed", "error", err)
	}
	if s.finance != nil {
		if _, err := s.finance.RefreshWatchlist(ctx); err != nil {
			s.logger.WarnContext(ctx, "scheduled watchlist refresh failed", "error", err)
		}
	}
	s.logger.DebugContext(ctx, "refresh cycle finished", "duration_ms", time.Since(started).Milliseconds())
}
