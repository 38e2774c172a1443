package store

import (
	"wedding-manager/internal/models"
)

// Collection names, used both as persistence keys and as counter keys.
const (
	ColAdmins             = "admins"
	ColInvitationSections = "invitation_sections"
	ColInvitationFields   = "invitation_fields"
	ColGuests             = "guests"
	ColTables             = "tables"
	ColCheckins           = "checkins"
	ColPrizes             = "prizes"
	ColWinners            = "winners"
	ColLedger             = "ledger"
	ColSettings           = "settings"
	ColCounters           = "counters"
)

// Store is the whole application state as one aggregate document. Every
// mutating request loads it, transforms it in memory and saves it back.
type Store struct {
	Admins             []models.Admin             `json:"admins"`
	InvitationSections []models.InvitationSection `json:"invitation_sections"`
	InvitationFields   []models.InvitationField   `json:"invitation_fields"`
	Guests             []models.Guest             `json:"guests"`
	Tables             []models.Table             `json:"tables"`
	Checkins           []models.Checkin           `json:"checkins"`
	Prizes             []models.Prize             `json:"prizes"`
	Winners            []models.Winner            `json:"winners"`
	Ledger             []models.LedgerEntry       `json:"ledger"`
	Settings           models.Settings            `json:"settings"`
	Counters           map[string]int             `json:"counters"`
}

// New returns an empty store with initialized collections.
func New() *Store {
	return &Store{
		Admins:             []models.Admin{},
		InvitationSections: []models.InvitationSection{},
		InvitationFields:   []models.InvitationField{},
		Guests:             []models.Guest{},
		Tables:             []models.Table{},
		Checkins:           []models.Checkin{},
		Prizes:             []models.Prize{},
		Winners:            []models.Winner{},
		Ledger:             []models.LedgerEntry{},
		Counters:           map[string]int{},
	}
}

// NextID increments and returns the id counter for a collection. The counter
// lives inside the document, so it is persisted in the same save as the rows
// it produced: a crash after issue but before save leaks a gap, never a
// collision.
func (s *Store) NextID(collection string) int {
	if s.Counters == nil {
		s.Counters = map[string]int{}
	}
	next := s.Counters[collection] + 1
	s.Counters[collection] = next
	return next
}

// GuestByID returns a pointer into Guests, or nil.
func (s *Store) GuestByID(id int) *models.Guest {
	for i := range s.Guests {
		if s.Guests[i].ID == id {
			return &s.Guests[i]
		}
	}
	return nil
}

// CheckinByGuest returns the guest's check-in row, or nil.
func (s *Store) CheckinByGuest(guestID int) *models.Checkin {
	for i := range s.Checkins {
		if s.Checkins[i].GuestID == guestID {
			return &s.Checkins[i]
		}
	}
	return nil
}

// PrizeByID returns a pointer into Prizes, or nil.
func (s *Store) PrizeByID(id int) *models.Prize {
	for i := range s.Prizes {
		if s.Prizes[i].ID == id {
			return &s.Prizes[i]
		}
	}
	return nil
}
