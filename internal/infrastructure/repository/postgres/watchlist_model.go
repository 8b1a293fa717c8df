package postgres

import "time"

type watchlistTableModel struct {
	ID        string     `db:"public_id"`
	AssetType string     `db:"asset_type"`
	Symbol    string     `db:"symbol"`
	Name      string     `db:"name"`
	AddedAt   time.Time  `db:"added_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type watchlistInsertModel struct {
	ID        string    `db:"public_id"`
	AssetType string    `db:"asset_type"`
	Symbol    string    `db:"symbol"`
	Name      string    `db:"name"`
	AddedAt   time.Time `db:"added_at"`
}
