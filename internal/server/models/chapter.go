package models

import "database/sql"

// Chapter groups questions. Its identity during data sync is its 1-based
// position (SortOrder), not its title.
type Chapter struct {
	ID          int64
	Title       string
	Description sql.NullString
	SortOrder   sql.NullInt64
}
