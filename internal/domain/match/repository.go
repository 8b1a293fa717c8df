package match

import "context"

// SnapshotRepository persists the last successful fetch result per sport.
type SnapshotRepository interface {
	GetSnapshot(ctx context.Context, sport SportType) (Snapshot, bool, error)
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
}
