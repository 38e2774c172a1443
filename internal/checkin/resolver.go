// Package checkin resolves on-site lookups to guests and maintains check-in
// records. A lookup that finds no guest or several guests is an outcome for
// the desk staff to act on, not an error.
package checkin

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"wedding-manager/internal/models"
	"wedding-manager/internal/registry"
	"wedding-manager/internal/store"
	"wedding-manager/internal/tables"
)

var (
	// ErrEmptyLookup rejects a lookup with no name or phone.
	ErrEmptyLookup = errors.New("lookup string is required")
	// ErrNotConfirmed rejects a check-in without the attendance confirmation.
	ErrNotConfirmed = errors.New("attendance must be confirmed before check-in")
)

// Lookup outcome statuses.
const (
	StatusCheckedIn = "checked_in"
	StatusNotFound  = "not_found"
	StatusAmbiguous = "ambiguous"
)

// UnassignedTable is the label shown when a checked-in guest has no table.
const UnassignedTable = "未分配"

var phonePattern = regexp.MustCompile(`^\d{6,}$`)

// Candidate summarizes one ambiguous match for the desk staff.
type Candidate struct {
	GuestID int    `json:"guest_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	TableNo string `json:"table_no"`
}

// Result is the outcome of a lookup or check-in. Status is always set;
// the guest fields are filled only for StatusCheckedIn.
type Result struct {
	Status          string      `json:"status"`
	Message         string      `json:"message"`
	GuestID         int         `json:"guest_id,omitempty"`
	Name            string      `json:"name,omitempty"`
	TableNo         string      `json:"table_no,omitempty"`
	ActualAttendees int         `json:"actual_attendees,omitempty"`
	CheckedInAt     time.Time   `json:"checked_in_at,omitzero"`
	Candidates      []Candidate `json:"candidates,omitempty"`
}

// Resolve matches a lookup string (name or phone) against the guest list and
// checks the guest in when the match is unique. The confirm flag is the
// "I am attending" checkbox on the desk form and must be set.
func Resolve(st *store.Store, lookup string, confirm bool, actualAttendees int) (*Result, error) {
	raw := strings.TrimSpace(lookup)
	if raw == "" {
		return nil, ErrEmptyLookup
	}
	if !confirm {
		return nil, ErrNotConfirmed
	}

	normalized := stripWhitespace(raw)
	phoneLike := phonePattern.MatchString(normalized)

	matches := findCandidates(st, raw, normalized)
	switch len(matches) {
	case 0:
		return &Result{
			Status:  StatusNotFound,
			Message: "未在登记名单中找到该来宾，可重新输入或登记新来宾",
		}, nil
	case 1:
		g := matches[0]
		// The lookup value refreshes the record: a phone lookup updates the
		// stored phone, a name lookup the stored name.
		if phoneLike {
			g.Phone = normalized
		} else {
			g.Name = raw
		}
		g.Attending = true
		g.UpdatedAt = time.Now()
		c := upsert(st, g.ID, actualAttendees)
		return checkedInResult(g, c), nil
	default:
		candidates := make([]Candidate, 0, len(matches))
		for _, g := range matches {
			candidates = append(candidates, Candidate{
				GuestID: g.ID,
				Name:    g.Name,
				Phone:   g.Phone,
				TableNo: g.TableNo,
			})
		}
		return &Result{
			Status:     StatusAmbiguous,
			Message:    "找到多位同名来宾，请改用手机号或登记新来宾",
			Candidates: candidates,
		}, nil
	}
}

// ForceCreate is the "start new guest" exit of a not-found or ambiguous
// lookup: a fresh record keyed by phone, immediately checked in.
func ForceCreate(st *store.Store, name, phone string, actualAttendees int) (*Result, error) {
	g, err := registry.UpsertByPhone(st, registry.RSVPInput{
		Name:      name,
		Phone:     phone,
		Attending: true,
		Responses: existingResponses(st, phone),
	})
	if err != nil {
		return nil, err
	}
	c := upsert(st, g.ID, actualAttendees)
	return checkedInResult(g, c), nil
}

// Manual is the admin check-in path: match by phone first, then exact name,
// otherwise create. Attendance is always forced on. A submitted table goes
// through the same capacity validation as any assignment; an over-capacity
// table rejects the whole check-in.
func Manual(st *store.Store, name, phone, tableNo string, actualAttendees int) (*Result, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	tableNo = strings.TrimSpace(tableNo)
	if name == "" {
		return nil, registry.ErrMissingFields
	}

	var g *models.Guest
	if phone != "" {
		g = registry.FindByPhone(st, phone)
	}
	if g == nil {
		if byName := registry.FindByName(st, name); len(byName) > 0 {
			g = byName[0]
		}
	}

	partySize := 1
	excludeID := 0
	if g != nil {
		partySize = registry.PartySize(*g)
		excludeID = g.ID
	}
	normalized, err := tables.ValidateAssignment(st, tableNo, partySize, excludeID)
	if err != nil {
		return nil, err
	}

	if g == nil {
		// Phone is optional here; the desk may only know the name.
		st.Guests = append(st.Guests, models.Guest{
			ID:        st.NextID(store.ColGuests),
			Name:      name,
			Phone:     phone,
			Attending: true,
			Responses: map[string]string{},
			UpdatedAt: time.Now(),
		})
		g = &st.Guests[len(st.Guests)-1]
	}

	g.Attending = true
	if tableNo != "" {
		// An unknown table number normalizes to unassigned.
		g.TableNo = normalized
	}
	g.UpdatedAt = time.Now()
	c := upsert(st, g.ID, actualAttendees)
	return checkedInResult(g, c), nil
}

// UpdateActual overwrites the attendee count of an existing check-in.
func UpdateActual(st *store.Store, guestID, actualAttendees int) (*models.Checkin, error) {
	c := st.CheckinByGuest(guestID)
	if c == nil {
		return nil, registry.ErrGuestNotFound
	}
	if actualAttendees < 1 {
		actualAttendees = 1
	}
	c.ActualAttendees = actualAttendees
	c.CheckedInAt = time.Now()
	return c, nil
}

// Cancel returns a guest to the not-checked-in state.
func Cancel(st *store.Store, guestID int) error {
	checkins := st.Checkins[:0]
	found := false
	for _, c := range st.Checkins {
		if c.GuestID == guestID {
			found = true
			continue
		}
		checkins = append(checkins, c)
	}
	st.Checkins = checkins
	if !found {
		return registry.ErrGuestNotFound
	}
	return nil
}

// upsert keeps at most one check-in row per guest: a second check-in
// overwrites the attendee count and refreshes the timestamp.
func upsert(st *store.Store, guestID, actualAttendees int) *models.Checkin {
	if actualAttendees < 1 {
		actualAttendees = 1
	}
	if c := st.CheckinByGuest(guestID); c != nil {
		c.ActualAttendees = actualAttendees
		c.CheckedInAt = time.Now()
		return c
	}
	st.Checkins = append(st.Checkins, models.Checkin{
		ID:              st.NextID(store.ColCheckins),
		GuestID:         guestID,
		ActualAttendees: actualAttendees,
		CheckedInAt:     time.Now(),
	})
	return &st.Checkins[len(st.Checkins)-1]
}

// findCandidates unions phone-equal and exact-name-equal matches, deduped by
// guest id.
func findCandidates(st *store.Store, raw, normalized string) []*models.Guest {
	seen := map[int]bool{}
	var out []*models.Guest
	for i := range st.Guests {
		g := &st.Guests[i]
		if g.Phone == normalized || g.Name == raw {
			if !seen[g.ID] {
				seen[g.ID] = true
				out = append(out, g)
			}
		}
	}
	return out
}

func existingResponses(st *store.Store, phone string) map[string]string {
	if g := registry.FindByPhone(st, strings.TrimSpace(phone)); g != nil {
		return g.Responses
	}
	return nil
}

func checkedInResult(g *models.Guest, c *models.Checkin) *Result {
	tableNo := g.TableNo
	if tableNo == "" {
		tableNo = UnassignedTable
	}
	return &Result{
		Status:          StatusCheckedIn,
		Message:         "签到成功",
		GuestID:         g.ID,
		Name:            g.Name,
		TableNo:         tableNo,
		ActualAttendees: c.ActualAttendees,
		CheckedInAt:     c.CheckedInAt,
	}
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
