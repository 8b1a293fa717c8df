package memory

import (
	"context"
	"sync"

	"github.com/leyuan/sportdesk/internal/domain/match"
)

// SnapshotRepository keeps the latest snapshot per sport in process
// memory. This is the default store when no database is configured.
type SnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[match.SportType]match.Snapshot
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{snapshots: make(map[match.SportType]match.Snapshot)}
}

func (r *SnapshotRepository) GetSnapshot(_ context.Context, sport match.SportType) (match.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.snapshots[sport]
	if !ok {
		return match.Snapshot{}, false, nil
	}
	out := snapshot
	out.Matches = make([]match.Match, len(snapshot.Matches))
	copy(out.Matches, snapshot.Matches)
	return out, true, nil
}

// SaveSnapshot replaces the stored snapshot for the sport wholesale.
func (r *SnapshotRepository) SaveSnapshot(_ context.Context, snapshot match.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := snapshot
	stored.Matches = make([]match.Match, len(snapshot.Matches))
	copy(stored.Matches, snapshot.Matches)
	r.snapshots[snapshot.Sport] = stored
	return nil
}
