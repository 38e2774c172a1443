// Package registry maintains guest records. Phone number is the natural key:
// a second RSVP with the same phone mutates the existing record instead of
// creating a duplicate.
package registry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wedding-manager/internal/models"
	"wedding-manager/internal/store"
)

var (
	// ErrMissingFields rejects writes without both name and phone.
	ErrMissingFields = errors.New("guest name and phone are required")
	// ErrGuestNotFound reports an id that matches no guest.
	ErrGuestNotFound = errors.New("guest not found")
)

// AttendeesKey is the response field driving party-size accounting.
const AttendeesKey = "attendees"

// RSVPInput is one guest write, from the public RSVP form or the admin list.
type RSVPInput struct {
	Name      string
	Phone     string
	Attending bool
	Responses map[string]string
	// TableNo is applied only when HasTableNo is set; the public RSVP form
	// never submits a table.
	TableNo    string
	HasTableNo bool
}

// UpsertByPhone merges a write into the guest with the same phone, or appends
// a new guest. Name, attending and responses are always overwritten on merge.
func UpsertByPhone(st *store.Store, in RSVPInput) (*models.Guest, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" {
		return nil, ErrMissingFields
	}

	responses := in.Responses
	if responses == nil {
		responses = map[string]string{}
	}

	if g := FindByPhone(st, phone); g != nil {
		g.Name = name
		g.Attending = in.Attending
		g.Responses = responses
		if in.HasTableNo {
			g.TableNo = in.TableNo
		}
		g.UpdatedAt = time.Now()
		return g, nil
	}

	st.Guests = append(st.Guests, models.Guest{
		ID:        st.NextID(store.ColGuests),
		Name:      name,
		Phone:     phone,
		Attending: in.Attending,
		Responses: responses,
		TableNo:   in.TableNo,
		UpdatedAt: time.Now(),
	})
	return &st.Guests[len(st.Guests)-1], nil
}

// UpdateInput carries an admin edit of an existing guest. Empty name or phone
// keeps the current value, matching the admin form's partial submits.
type UpdateInput struct {
	Name      string
	Phone     string
	Attending bool
	Responses map[string]string
	TableNo   string
}

// Update applies an admin edit by id.
func Update(st *store.Store, id int, in UpdateInput) (*models.Guest, error) {
	g := st.GuestByID(id)
	if g == nil {
		return nil, ErrGuestNotFound
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		g.Name = name
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		g.Phone = phone
	}
	g.Attending = in.Attending
	if in.Responses != nil {
		g.Responses = in.Responses
	}
	g.TableNo = in.TableNo
	g.UpdatedAt = time.Now()
	return g, nil
}

// Delete removes a guest and its check-in record. Winner rows are kept; the
// lottery summary renders a placeholder for guests that no longer exist.
func Delete(st *store.Store, id int) error {
	if st.GuestByID(id) == nil {
		return ErrGuestNotFound
	}

	guests := st.Guests[:0]
	for _, g := range st.Guests {
		if g.ID != id {
			guests = append(guests, g)
		}
	}
	st.Guests = guests

	checkins := st.Checkins[:0]
	for _, c := range st.Checkins {
		if c.GuestID != id {
			checkins = append(checkins, c)
		}
	}
	st.Checkins = checkins
	return nil
}

// FindByPhone returns the guest with this exact phone, or nil.
func FindByPhone(st *store.Store, phone string) *models.Guest {
	for i := range st.Guests {
		if st.Guests[i].Phone == phone {
			return &st.Guests[i]
		}
	}
	return nil
}

// FindByName returns every guest whose name matches exactly.
func FindByName(st *store.Store, name string) []*models.Guest {
	var out []*models.Guest
	for i := range st.Guests {
		if st.Guests[i].Name == name {
			out = append(out, &st.Guests[i])
		}
	}
	return out
}

// PartySize derives how many people a guest record represents from the
// attendees response. Total over any input: "3" -> 3, "4+" -> 4, missing,
// garbage, zero and negatives all fall back to 1.
func PartySize(g models.Guest) int {
	raw := strings.TrimSpace(g.Responses[AttendeesKey])
	digits := raw
	for i, r := range raw {
		if r < '0' || r > '9' {
			digits = raw[:i]
			break
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// DisplayName renders the guest-list label: the bare name for a party of one,
// "携亲朋N位" appended otherwise.
func DisplayName(g models.Guest) string {
	if size := PartySize(g); size >= 2 {
		return fmt.Sprintf("%s 携亲朋%d位", g.Name, size)
	}
	return g.Name
}

// CollectResponses reads submitted form values into a response map using the
// invitation-field schema. Unknown keys in the submission are ignored;
// missing keys become empty strings. Required is a rendering hint and is not
// enforced here.
func CollectResponses(fields []models.InvitationField, form map[string]string) map[string]string {
	responses := make(map[string]string, len(fields))
	for _, f := range fields {
		responses[f.FieldKey] = form[f.FieldKey]
	}
	return responses
}
