package models

import "time"

// Table is a banquet table. TableNo is the display key guests are assigned
// by; renames must cascade to every guest pointing at the old value. Seats of
// zero means unlimited capacity.
type Table struct {
	ID         int       `json:"id"`
	TableNo    string    `json:"table_no"`
	Nickname   string    `json:"nickname"`
	Seats      int       `json:"seats"`
	Preference string    `json:"preference"`
	UpdatedAt  time.Time `json:"updated_at"`
}
