package models

import "time"

// Checkin records on-site attendance for one guest. At most one row exists
// per GuestID; a second check-in overwrites ActualAttendees and refreshes
// CheckedInAt.
type Checkin struct {
	ID              int       `json:"id"`
	GuestID         int       `json:"guest_id"`
	ActualAttendees int       `json:"actual_attendees"`
	CheckedInAt     time.Time `json:"checked_in_at"`
}
