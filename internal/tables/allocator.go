// Package tables manages banquet tables and seat-capacity accounting. Guests
// reference tables by the display number (table_no), not by id, so renames
// and deletions cascade through the guest list.
package tables

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"wedding-manager/internal/models"
	"wedding-manager/internal/registry"
	"wedding-manager/internal/store"
)

var (
	// ErrTableNotFound reports an id that matches no table.
	ErrTableNotFound = errors.New("table not found")
	// ErrMissingTableNo rejects a table write without a table number.
	ErrMissingTableNo = errors.New("table number is required")
)

// CapacityError rejects an assignment that would overflow a table.
type CapacityError struct {
	TableNo string
	Seats   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s号桌共%d个座位，安排后将超员", e.TableNo, e.Seats)
}

// ByTableNo resolves a display number to its table, or nil.
func ByTableNo(st *store.Store, tableNo string) *models.Table {
	for i := range st.Tables {
		if st.Tables[i].TableNo == tableNo {
			return &st.Tables[i]
		}
	}
	return nil
}

// ValidateAssignment checks a proposed party against a table's seat count and
// returns the normalized table number. A number matching no table means
// "unassigned" and normalizes to empty, never an error. Tables with zero
// seats are unlimited. excludeGuestID removes the guest being edited from the
// occupancy sum; pass 0 for new guests.
func ValidateAssignment(st *store.Store, tableNo string, partySize int, excludeGuestID int) (string, error) {
	tableNo = strings.TrimSpace(tableNo)
	if tableNo == "" {
		return "", nil
	}
	table := ByTableNo(st, tableNo)
	if table == nil {
		return "", nil
	}
	if table.Seats <= 0 {
		return table.TableNo, nil
	}

	occupied := 0
	for _, g := range st.Guests {
		if g.TableNo == table.TableNo && g.ID != excludeGuestID {
			occupied += registry.PartySize(g)
		}
	}
	if occupied+partySize > table.Seats {
		return "", &CapacityError{TableNo: table.TableNo, Seats: table.Seats}
	}
	return table.TableNo, nil
}

// Upsert creates or updates a table keyed by its display number: the same
// table_no string updates the existing table's other fields.
func Upsert(st *store.Store, tableNo, nickname string, seats int, preference string) (*models.Table, error) {
	tableNo = strings.TrimSpace(tableNo)
	if tableNo == "" {
		return nil, ErrMissingTableNo
	}
	if seats < 0 {
		seats = 0
	}

	if t := ByTableNo(st, tableNo); t != nil {
		t.Nickname = nickname
		t.Seats = seats
		t.Preference = preference
		t.UpdatedAt = time.Now()
		return t, nil
	}

	st.Tables = append(st.Tables, models.Table{
		ID:         st.NextID(store.ColTables),
		TableNo:    tableNo,
		Nickname:   nickname,
		Seats:      seats,
		Preference: preference,
		UpdatedAt:  time.Now(),
	})
	return &st.Tables[len(st.Tables)-1], nil
}

// Rename changes a table's display number and re-points every guest assigned
// to the old value.
func Rename(st *store.Store, id int, newTableNo string) (*models.Table, error) {
	newTableNo = strings.TrimSpace(newTableNo)
	if newTableNo == "" {
		return nil, ErrMissingTableNo
	}

	var table *models.Table
	for i := range st.Tables {
		if st.Tables[i].ID == id {
			table = &st.Tables[i]
			break
		}
	}
	if table == nil {
		return nil, ErrTableNotFound
	}

	old := table.TableNo
	table.TableNo = newTableNo
	table.UpdatedAt = time.Now()
	if old != newTableNo {
		for i := range st.Guests {
			if st.Guests[i].TableNo == old {
				st.Guests[i].TableNo = newTableNo
			}
		}
	}
	return table, nil
}

// Remove deletes a table and clears the assignment of every guest pointing
// at it.
func Remove(st *store.Store, id int) error {
	idx := -1
	for i := range st.Tables {
		if st.Tables[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrTableNotFound
	}

	old := st.Tables[idx].TableNo
	st.Tables = append(st.Tables[:idx], st.Tables[idx+1:]...)
	for i := range st.Guests {
		if st.Guests[i].TableNo == old {
			st.Guests[i].TableNo = ""
		}
	}
	return nil
}

var tableCollator = collate.New(language.Chinese, collate.Numeric)

// Sorted returns the tables in locale-aware natural order of table_no, so
// "2" sorts before "10".
func Sorted(ts []models.Table) []models.Table {
	out := make([]models.Table, len(ts))
	copy(out, ts)
	sort.SliceStable(out, func(i, j int) bool {
		return tableCollator.CompareString(out[i].TableNo, out[j].TableNo) < 0
	})
	return out
}

// Occupancy sums the party sizes currently assigned to a table number.
func Occupancy(st *store.Store, tableNo string) int {
	total := 0
	for _, g := range st.Guests {
		if g.TableNo == tableNo {
			total += registry.PartySize(g)
		}
	}
	return total
}
