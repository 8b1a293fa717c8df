package favorite

import (
	"context"

	"github.com/leyuan/sportdesk/internal/domain/match"
)

// Repository stores the favorites list. Add is idempotent on
// (ID, SportType); Remove of a missing entry is a no-op.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	ListBySport(ctx context.Context, sport match.SportType) ([]Item, error)
	Add(ctx context.Context, item Item) error
	Remove(ctx context.Context, id string, sport match.SportType) error
}
