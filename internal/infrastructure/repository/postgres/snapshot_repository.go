package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/leyuan/sportdesk/internal/domain/match"
	qb "github.com/leyuan/sportdesk/internal/platform/querybuilder"
)

// SnapshotRepository persists one row per sport. SaveSnapshot overwrites
// the row wholesale; the match list travels as a jsonb document because
// callers always read and write it as a unit.
type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) GetSnapshot(ctx context.Context, sport match.SportType) (match.Snapshot, bool, error) {
	query, args, err := qb.Select("sport", "matches", "fetched_at", "updated_at").
		From("match_snapshots").
		Where(qb.Eq("sport", string(sport))).
		ToSQL()
	if err != nil {
		return match.Snapshot{}, false, fmt.Errorf("build get snapshot query: %w", err)
	}

	var row snapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Snapshot{}, false, nil
		}
		return match.Snapshot{}, false, fmt.Errorf("get snapshot sport=%s: %w", sport, err)
	}

	var matches []match.Match
	if err := sonic.Unmarshal([]byte(row.Matches), &matches); err != nil {
		return match.Snapshot{}, false, fmt.Errorf("decode snapshot matches sport=%s: %w", sport, err)
	}

	return match.Snapshot{
		Sport:     match.SportType(row.Sport),
		Matches:   matches,
		FetchedAt: row.FetchedAt,
	}, true, nil
}

func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot match.Snapshot) error {
	matches := snapshot.Matches
	if matches == nil {
		matches = []match.Match{}
	}
	encoded, err := sonic.Marshal(matches)
	if err != nil {
		return fmt.Errorf("encode snapshot matches sport=%s: %w", snapshot.Sport, err)
	}

	insertModel := snapshotInsertModel{
		Sport:     string(snapshot.Sport),
		Matches:   string(encoded),
		FetchedAt: snapshot.FetchedAt,
	}

	query, args, err := qb.InsertModel("match_snapshots", insertModel, `ON CONFLICT (sport)
DO UPDATE SET
    matches = EXCLUDED.matches,
    fetched_at = EXCLUDED.fetched_at,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build save snapshot query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot sport=%s: %w", snapshot.Sport, err)
	}
	return nil
}
