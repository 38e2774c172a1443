package models

import "time"

// Guest is a single RSVP record. Phone is the natural de-duplication key for
// self-service RSVP; ID is the stable identity once created. TableNo joins
// against Table.TableNo by display value, not by id.
type Guest struct {
	ID        int               `json:"id"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone"`
	Attending bool              `json:"attending"`
	Responses map[string]string `json:"responses"`
	TableNo   string            `json:"table_no"`
	UpdatedAt time.Time         `json:"updated_at"`
}
