package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/leyuan/sportdesk/internal/domain/settings"
	qb "github.com/leyuan/sportdesk/internal/platform/querybuilder"
)

// SettingsRepository persists the single settings document as one jsonb
// row. Reads before the first save return the defaults.
type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	query, args, err := qb.Select("payload").
		From("app_settings").
		Where(qb.Eq("id", 1)).
		ToSQL()
	if err != nil {
		return settings.Settings{}, fmt.Errorf("build get settings query: %w", err)
	}

	var payload string
	if err := r.db.GetContext(ctx, &payload, query, args...); err != nil {
		if isNotFound(err) {
			return settings.Default(), nil
		}
		return settings.Settings{}, fmt.Errorf("get settings: %w", err)
	}

	var stored settings.Settings
	if err := sonic.Unmarshal([]byte(payload), &stored); err != nil {
		return settings.Settings{}, fmt.Errorf("decode settings payload: %w", err)
	}
	return stored.Normalize(), nil
}

func (r *SettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	encoded, err := sonic.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings payload: %w", err)
	}

	insertModel := settingsInsertModel{ID: 1, Payload: string(encoded)}
	query, args, err := qb.InsertModel("app_settings", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    payload = EXCLUDED.payload,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build save settings query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

type settingsInsertModel struct {
	ID      int    `db:"id"`
	Payload string `db:"payload"`
}
