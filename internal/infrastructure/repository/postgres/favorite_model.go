package postgres

import "time"

type favoriteTableModel struct {
	ID        string     `db:"public_id"`
	SportType string     `db:"sport_type"`
	ItemType  string     `db:"item_type"`
	Name      string     `db:"name"`
	Logo      string     `db:"logo"`
	Extra     string     `db:"extra"`
	MatchData *string    `db:"match_data"`
	AddedAt   time.Time  `db:"added_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type favoriteInsertModel struct {
	ID        string    `db:"public_id"`
	SportType string    `db:"sport_type"`
	ItemType  string    `db:"item_type"`
	Name      string    `db:"name"`
	Logo      string    `db:"logo"`
	Extra     string    `db:"extra"`
	MatchData *string   `db:"match_data"`
	AddedAt   time.Time `db:"added_at"`
}
