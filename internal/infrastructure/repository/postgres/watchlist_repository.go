package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/leyuan/sportdesk/internal/domain/finance"
	qb "github.com/leyuan/sportdesk/internal/platform/querybuilder"
)

// WatchlistRepository stores the finance watchlist keyed by public_id.
type WatchlistRepository struct {
	db *sqlx.DB
}

func NewWatchlistRepository(db *sqlx.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

func (r *WatchlistRepository) List(ctx context.Context) ([]finance.WatchItem, error) {
	query, args, err := qb.Select("public_id", "asset_type", "symbol", "name", "added_at", "deleted_at").
		From("finance_watchlist").
		Where(qb.IsNull("deleted_at")).
		OrderBy("added_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list watchlist query: %w", err)
	}

	var rows []watchlistTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	out := make([]finance.WatchItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, finance.WatchItem{
			ID:      row.ID,
			Type:    finance.AssetType(row.AssetType),
			Symbol:  row.Symbol,
			Name:    row.Name,
			AddedAt: row.AddedAt,
		})
	}
	return out, nil
}

// Add inserts the entry, leaving an existing live row untouched. A
// soft-deleted row with the same id is restored with the new payload.
func (r *WatchlistRepository) Add(ctx context.Context, item finance.WatchItem) error {
	insertModel := watchlistInsertModel{
		ID:        item.ID,
		AssetType: string(item.Type),
		Symbol:    item.Symbol,
		Name:      item.Name,
		AddedAt:   item.AddedAt,
	}

	query, args, err := qb.InsertModel("finance_watchlist", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    asset_type = EXCLUDED.asset_type,
    symbol = EXCLUDED.symbol,
    name = EXCLUDED.name,
    added_at = EXCLUDED.added_at,
    deleted_at = NULL
WHERE finance_watchlist.deleted_at IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("build add watchlist item query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add watchlist item id=%s: %w", item.ID, err)
	}
	return nil
}

func (r *WatchlistRepository) Remove(ctx context.Context, id string) error {
	query, args, err := qb.Update("finance_watchlist").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build remove watchlist item query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove watchlist item id=%s: %w", id, err)
	}
	return nil
}
