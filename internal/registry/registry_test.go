package registry

import (
	"testing"

	"wedding-manager/internal/models"
	"wedding-manager/internal/store"
)

func TestUpsertByPhone_DeduplicatesByPhone(t *testing.T) {
	st := store.New()

	first, err := UpsertByPhone(st, RSVPInput{
		Name:      "王小明",
		Phone:     "13800000000",
		Attending: true,
		Responses: map[string]string{"attendees": "3"},
	})
	if err != nil {
		t.Fatalf("first upsert returned error: %v", err)
	}

	second, err := UpsertByPhone(st, RSVPInput{
		Name:      "王明",
		Phone:     "13800000000",
		Attending: false,
		Responses: map[string]string{"attendees": "2"},
	})
	if err != nil {
		t.Fatalf("second upsert returned error: %v", err)
	}

	if len(st.Guests) != 1 {
		t.Fatalf("expected 1 guest, got %d", len(st.Guests))
	}
	if second.ID != first.ID {
		t.Errorf("expected same guest id, got %d and %d", first.ID, second.ID)
	}
	if st.Guests[0].Name != "王明" {
		t.Errorf("expected overwritten name '王明', got '%s'", st.Guests[0].Name)
	}
	if st.Guests[0].Attending {
		t.Error("expected attending to be overwritten to false")
	}
	if st.Guests[0].Responses["attendees"] != "2" {
		t.Errorf("expected responses overwritten, got '%s'", st.Guests[0].Responses["attendees"])
	}
}

func TestUpsertByPhone_RejectsMissingFields(t *testing.T) {
	st := store.New()

	if _, err := UpsertByPhone(st, RSVPInput{Name: "", Phone: "13800000000"}); err != ErrMissingFields {
		t.Errorf("expected ErrMissingFields for empty name, got %v", err)
	}
	if _, err := UpsertByPhone(st, RSVPInput{Name: "王小明", Phone: "  "}); err != ErrMissingFields {
		t.Errorf("expected ErrMissingFields for blank phone, got %v", err)
	}
	if len(st.Guests) != 0 {
		t.Errorf("expected no guests created, got %d", len(st.Guests))
	}
}

func TestUpsertByPhone_KeepsTableUnlessProvided(t *testing.T) {
	st := store.New()

	UpsertByPhone(st, RSVPInput{Name: "李雷", Phone: "100001", TableNo: "3", HasTableNo: true})
	g, err := UpsertByPhone(st, RSVPInput{Name: "李雷", Phone: "100001", Attending: true})
	if err != nil {
		t.Fatalf("upsert returned error: %v", err)
	}
	if g.TableNo != "3" {
		t.Errorf("expected table assignment kept on RSVP re-submit, got '%s'", g.TableNo)
	}
}

func TestPartySize_Total(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{"4+", 4},
		{"1", 1},
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-1", 1},
		{" 2 ", 2},
	}
	for _, tc := range cases {
		g := models.Guest{Responses: map[string]string{AttendeesKey: tc.raw}}
		if got := PartySize(g); got != tc.want {
			t.Errorf("PartySize(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}

	if got := PartySize(models.Guest{}); got != 1 {
		t.Errorf("PartySize with nil responses = %d, want 1", got)
	}
}

func TestDisplayName(t *testing.T) {
	g := models.Guest{Name: "王小明", Responses: map[string]string{AttendeesKey: "3"}}
	if got := DisplayName(g); got != "王小明 携亲朋3位" {
		t.Errorf("expected '王小明 携亲朋3位', got '%s'", got)
	}

	solo := models.Guest{Name: "张三", Responses: map[string]string{AttendeesKey: "1"}}
	if got := DisplayName(solo); got != "张三" {
		t.Errorf("expected bare name for party of one, got '%s'", got)
	}
}

func TestDelete_CascadesCheckin(t *testing.T) {
	st := store.New()
	g, _ := UpsertByPhone(st, RSVPInput{Name: "张三", Phone: "100000"})
	st.Checkins = append(st.Checkins, models.Checkin{ID: st.NextID(store.ColCheckins), GuestID: g.ID, ActualAttendees: 2})

	if err := Delete(st, g.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(st.Guests) != 0 {
		t.Errorf("expected guest removed, got %d", len(st.Guests))
	}
	if len(st.Checkins) != 0 {
		t.Errorf("expected check-in cascade-removed, got %d", len(st.Checkins))
	}

	if err := Delete(st, 999); err != ErrGuestNotFound {
		t.Errorf("expected ErrGuestNotFound, got %v", err)
	}
}

func TestCollectResponses_IgnoresUnknownKeys(t *testing.T) {
	fields := []models.InvitationField{
		{FieldKey: "attendees"},
		{FieldKey: "dietary"},
	}
	got := CollectResponses(fields, map[string]string{
		"attendees": "2",
		"malicious": "x",
	})
	if got["attendees"] != "2" {
		t.Errorf("expected attendees collected, got '%s'", got["attendees"])
	}
	if got["dietary"] != "" {
		t.Errorf("expected missing key to be empty, got '%s'", got["dietary"])
	}
	if _, ok := got["malicious"]; ok {
		t.Error("expected unknown key to be dropped")
	}
}
