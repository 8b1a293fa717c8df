package postgres

import "time"

type snapshotTableModel struct {
	Sport     string    `db:"sport"`
	Matches   string    `db:"matches"`
	FetchedAt time.Time `db:"fetched_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type snapshotInsertModel struct {
	Sport     string    `db:"sport"`
	Matches   string    `db:"matches"`
	FetchedAt time.Time `db:"fetched_at"`
}
