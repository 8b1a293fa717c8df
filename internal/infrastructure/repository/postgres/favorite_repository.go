package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/leyuan/sportdesk/internal/domain/favorite"
	"github.com/leyuan/sportdesk/internal/domain/match"
	qb "github.com/leyuan/sportdesk/internal/platform/querybuilder"
)

// FavoriteRepository stores pinned entities keyed by (public_id, sport_type).
// Rows are soft deleted so a re-added favorite restores in place.
type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) List(ctx context.Context) ([]favorite.Item, error) {
	query, args, err := favoriteBaseSelectBuilder().
		Where(qb.IsNull("deleted_at")).
		OrderBy("added_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list favorites query: %w", err)
	}

	return r.selectItems(ctx, query, args)
}

func (r *FavoriteRepository) ListBySport(ctx context.Context, sport match.SportType) ([]favorite.Item, error) {
	query, args, err := favoriteBaseSelectBuilder().
		Where(
			qb.Eq("sport_type", string(sport)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("added_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list favorites by sport query: %w", err)
	}

	return r.selectItems(ctx, query, args)
}

// Add inserts the favorite, leaving an existing live row untouched. A
// soft-deleted row with the same key is restored with the new payload.
func (r *FavoriteRepository) Add(ctx context.Context, item favorite.Item) error {
	matchData, err := encodeFavoriteMatchData(item.MatchData)
	if err != nil {
		return fmt.Errorf("encode favorite match data id=%s: %w", item.ID, err)
	}

	insertModel := favoriteInsertModel{
		ID:        item.ID,
		SportType: string(item.SportType),
		ItemType:  string(item.Type),
		Name:      item.Name,
		Logo:      item.Logo,
		Extra:     encodeJSONMap(item.Extra),
		MatchData: matchData,
		AddedAt:   item.AddedAt,
	}

	query, args, err := qb.InsertModel("favorites", insertModel, `ON CONFLICT (public_id, sport_type)
DO UPDATE SET
    item_type = EXCLUDED.item_type,
    name = EXCLUDED.name,
    logo = EXCLUDED.logo,
    extra = EXCLUDED.extra,
    match_data = EXCLUDED.match_data,
    added_at = EXCLUDED.added_at,
    deleted_at = NULL
WHERE favorites.deleted_at IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("build add favorite query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add favorite id=%s: %w", item.ID, err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, id string, sport match.SportType) error {
	query, args, err := qb.Update("favorites").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.Eq("sport_type", string(sport)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build remove favorite query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove favorite id=%s: %w", id, err)
	}
	return nil
}

func (r *FavoriteRepository) selectItems(ctx context.Context, query string, args []any) ([]favorite.Item, error) {
	var rows []favoriteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	out := make([]favorite.Item, 0, len(rows))
	for _, row := range rows {
		item, err := favoriteFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func favoriteFromRow(row favoriteTableModel) (favorite.Item, error) {
	item := favorite.Item{
		ID:        row.ID,
		Type:      favorite.Type(row.ItemType),
		SportType: match.SportType(row.SportType),
		Name:      row.Name,
		Logo:      row.Logo,
		Extra:     decodeJSONMap(row.Extra),
		AddedAt:   row.AddedAt,
	}

	if row.MatchData != nil && *row.MatchData != "" {
		var m match.Match
		if err := sonic.Unmarshal([]byte(*row.MatchData), &m); err != nil {
			return favorite.Item{}, fmt.Errorf("decode favorite match data id=%s: %w", row.ID, err)
		}
		item.MatchData = &m
	}
	return item, nil
}

func encodeFavoriteMatchData(m *match.Match) (*string, error) {
	if m == nil {
		return nil, nil
	}
	encoded, err := sonic.Marshal(m)
	if err != nil {
		return nil, err
	}
	out := string(encoded)
	return &out, nil
}

func favoriteBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("public_id", "sport_type", "item_type", "name", "logo", "extra", "match_data", "added_at", "deleted_at").
		From("favorites")
}
