package store

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wedding-manager/internal/models"
)

func testAccessor(t *testing.T) *Accessor {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&Row{}); err != nil {
		t.Fatalf("failed to auto migrate: %v", err)
	}
	return NewAccessor(db, SeedConfig{AdminUsername: "admin", AdminPasswordHash: "salt:hash"})
}

func TestLoad_SeedsDefaults(t *testing.T) {
	a := testAccessor(t)

	st, err := a.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(st.Admins) != 1 || st.Admins[0].Username != "admin" {
		t.Errorf("expected seeded admin, got %+v", st.Admins)
	}
	if len(st.InvitationSections) != 3 {
		t.Errorf("expected 3 seeded sections, got %d", len(st.InvitationSections))
	}
	for _, s := range st.InvitationSections {
		if s.ImageURL == "" {
			t.Errorf("expected section %q seeded with an image", s.Title)
		}
	}
	if len(st.InvitationFields) != 2 || st.InvitationFields[0].FieldKey != "attendees" {
		t.Errorf("expected seeded fields, got %+v", st.InvitationFields)
	}
	if st.Settings.CoupleName == "" {
		t.Error("expected seeded settings")
	}

	// The seed is persisted: a second load must not issue new ids.
	again, err := a.Load()
	if err != nil {
		t.Fatalf("second Load returned error: %v", err)
	}
	if again.Counters[ColAdmins] != st.Counters[ColAdmins] {
		t.Errorf("expected counters unchanged, got %d vs %d", again.Counters[ColAdmins], st.Counters[ColAdmins])
	}
	if len(again.InvitationSections) != 3 {
		t.Errorf("expected sections not re-seeded, got %d", len(again.InvitationSections))
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	a := testAccessor(t)
	st, err := a.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	st.Guests = append(st.Guests, models.Guest{
		ID:        st.NextID(ColGuests),
		Name:      "王小明",
		Phone:     "13800000000",
		Attending: true,
		Responses: map[string]string{"attendees": "3"},
	})
	st.Tables = append(st.Tables, models.Table{ID: st.NextID(ColTables), TableNo: "1", Seats: 10})
	if err := a.Save(st); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := a.Load()
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}
	if len(loaded.Guests) != 1 {
		t.Fatalf("expected 1 guest after reload, got %d", len(loaded.Guests))
	}
	if loaded.Guests[0].Name != "王小明" || loaded.Guests[0].Responses["attendees"] != "3" {
		t.Errorf("guest did not survive round trip: %+v", loaded.Guests[0])
	}
	if loaded.Counters[ColGuests] != st.Counters[ColGuests] {
		t.Errorf("expected counter persisted with its rows, got %d", loaded.Counters[ColGuests])
	}
}

func TestNextID_MonotonicPerCollection(t *testing.T) {
	st := New()

	if got := st.NextID(ColGuests); got != 1 {
		t.Errorf("expected first id 1, got %d", got)
	}
	if got := st.NextID(ColGuests); got != 2 {
		t.Errorf("expected second id 2, got %d", got)
	}
	// Counters are per collection.
	if got := st.NextID(ColPrizes); got != 1 {
		t.Errorf("expected independent prize counter, got %d", got)
	}
}

func TestSave_OverwritesPriorDocument(t *testing.T) {
	a := testAccessor(t)
	st, _ := a.Load()

	st.Guests = append(st.Guests, models.Guest{ID: st.NextID(ColGuests), Name: "张三", Phone: "1"})
	a.Save(st)

	st.Guests = st.Guests[:0]
	if err := a.Save(st); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, _ := a.Load()
	if len(loaded.Guests) != 0 {
		t.Errorf("expected guests cleared after overwrite, got %d", len(loaded.Guests))
	}
}
