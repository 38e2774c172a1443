package handlers

import (
	"context"
	"testing"

	"wedding-manager/internal/checkin"
)

func (env *testEnv) addGuest(t *testing.T, name, phone string, attendees string) int {
	t.Helper()
	req := &UpsertGuestRequest{}
	req.Cookie = env.cookie
	req.Body.Name = name
	req.Body.Phone = phone
	req.Body.Attending = true
	if attendees != "" {
		req.Body.Responses = map[string]string{"attendees": attendees}
	}
	resp, err := env.guest.HandleUpsertGuest(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleUpsertGuest(%s) returned error: %v", name, err)
	}
	return resp.Body.Guest.ID
}

func TestHandleLookup_PhoneMatch(t *testing.T) {
	env := newTestEnv(t)
	id := env.addGuest(t, "王小明", "13800000000", "2")

	req := &LookupRequest{}
	req.Cookie = env.cookie
	req.Body.Lookup = "13800000000"
	req.Body.Confirm = true
	req.Body.ActualAttendees = 2
	resp, err := env.checkin.HandleLookup(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleLookup returned error: %v", err)
	}
	if resp.Body.Status != checkin.StatusCheckedIn {
		t.Fatalf("expected status %s, got %s", checkin.StatusCheckedIn, resp.Body.Status)
	}
	if resp.Body.GuestID != id {
		t.Errorf("expected guest %d, got %d", id, resp.Body.GuestID)
	}

	st, err := env.accessor.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	c := st.CheckinByGuest(id)
	if c == nil {
		t.Fatal("expected check-in persisted")
	}
	if c.ActualAttendees != 2 {
		t.Errorf("expected 2 actual attendees, got %d", c.ActualAttendees)
	}
}

func TestHandleLookup_NotFoundIsNotPersisted(t *testing.T) {
	env := newTestEnv(t)

	req := &LookupRequest{}
	req.Cookie = env.cookie
	req.Body.Lookup = "不存在的人"
	req.Body.Confirm = true
	req.Body.ActualAttendees = 1
	resp, err := env.checkin.HandleLookup(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleLookup returned error: %v", err)
	}
	if resp.Body.Status != checkin.StatusNotFound {
		t.Fatalf("expected status %s, got %s", checkin.StatusNotFound, resp.Body.Status)
	}

	st, _ := env.accessor.Load()
	if len(st.Checkins) != 0 {
		t.Errorf("expected no check-ins persisted, got %d", len(st.Checkins))
	}
}

func TestHandleLookup_Ambiguous(t *testing.T) {
	env := newTestEnv(t)
	env.addGuest(t, "李四", "13800000001", "")
	env.addGuest(t, "李四", "13800000002", "")

	req := &LookupRequest{}
	req.Cookie = env.cookie
	req.Body.Lookup = "李四"
	req.Body.Confirm = true
	req.Body.ActualAttendees = 1
	resp, err := env.checkin.HandleLookup(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleLookup returned error: %v", err)
	}
	if resp.Body.Status != checkin.StatusAmbiguous {
		t.Fatalf("expected status %s, got %s", checkin.StatusAmbiguous, resp.Body.Status)
	}
	if len(resp.Body.Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(resp.Body.Candidates))
	}
}

func TestHandleLookup_RequiresConfirm(t *testing.T) {
	env := newTestEnv(t)
	env.addGuest(t, "王小明", "13800000000", "")

	req := &LookupRequest{}
	req.Cookie = env.cookie
	req.Body.Lookup = "13800000000"
	req.Body.ActualAttendees = 1
	if _, err := env.checkin.HandleLookup(context.Background(), req); err == nil {
		t.Fatal("expected confirmation error, got nil")
	}
}

func TestHandleNewGuest(t *testing.T) {
	env := newTestEnv(t)

	req := &NewGuestCheckinRequest{}
	req.Cookie = env.cookie
	req.Body.Name = "临时来宾"
	req.Body.Phone = "13900000000"
	req.Body.Confirm = true
	req.Body.ActualAttendees = 1
	resp, err := env.checkin.HandleNewGuest(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleNewGuest returned error: %v", err)
	}
	if resp.Body.Status != checkin.StatusCheckedIn {
		t.Fatalf("expected status %s, got %s", checkin.StatusCheckedIn, resp.Body.Status)
	}

	st, _ := env.accessor.Load()
	if len(st.Guests) != 1 || len(st.Checkins) != 1 {
		t.Errorf("expected 1 guest and 1 check-in, got %d and %d", len(st.Guests), len(st.Checkins))
	}
}

func TestHandleManual_NamelessPhoneOptional(t *testing.T) {
	env := newTestEnv(t)

	tReq := &UpsertTableRequest{}
	tReq.Cookie = env.cookie
	tReq.Body.TableNo = "3"
	tReq.Body.Seats = 8
	if _, err := env.table.HandleUpsertTable(context.Background(), tReq); err != nil {
		t.Fatalf("HandleUpsertTable returned error: %v", err)
	}

	req := &ManualCheckinRequest{}
	req.Cookie = env.cookie
	req.Body.Name = "张三"
	req.Body.TableNo = "3"
	req.Body.ActualAttendees = 2
	resp, err := env.checkin.HandleManual(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleManual returned error: %v", err)
	}
	if resp.Body.TableNo != "3" {
		t.Errorf("expected table '3', got '%s'", resp.Body.TableNo)
	}
}

func TestHandleManual_FullTableConflict(t *testing.T) {
	env := newTestEnv(t)

	tReq := &UpsertTableRequest{}
	tReq.Cookie = env.cookie
	tReq.Body.TableNo = "1"
	tReq.Body.Seats = 2
	if _, err := env.table.HandleUpsertTable(context.Background(), tReq); err != nil {
		t.Fatalf("HandleUpsertTable returned error: %v", err)
	}

	gReq := &UpsertGuestRequest{}
	gReq.Cookie = env.cookie
	gReq.Body.Name = "王小明"
	gReq.Body.Phone = "13800000000"
	gReq.Body.TableNo = "1"
	gReq.Body.Responses = map[string]string{"attendees": "2"}
	if _, err := env.guest.HandleUpsertGuest(context.Background(), gReq); err != nil {
		t.Fatalf("HandleUpsertGuest returned error: %v", err)
	}

	req := &ManualCheckinRequest{}
	req.Cookie = env.cookie
	req.Body.Name = "乙"
	req.Body.Phone = "13800000002"
	req.Body.TableNo = "1"
	req.Body.ActualAttendees = 1
	if _, err := env.checkin.HandleManual(context.Background(), req); err == nil {
		t.Fatal("expected capacity conflict, got nil")
	}

	st, _ := env.accessor.Load()
	if len(st.Checkins) != 0 {
		t.Errorf("expected no check-in persisted, got %d", len(st.Checkins))
	}
}

func TestHandleUpdateAndCancel(t *testing.T) {
	env := newTestEnv(t)
	id := env.addGuest(t, "王小明", "13800000000", "")

	lReq := &LookupRequest{}
	lReq.Cookie = env.cookie
	lReq.Body.Lookup = "13800000000"
	lReq.Body.Confirm = true
	lReq.Body.ActualAttendees = 1
	if _, err := env.checkin.HandleLookup(context.Background(), lReq); err != nil {
		t.Fatalf("HandleLookup returned error: %v", err)
	}

	uReq := &UpdateCheckinRequest{GuestID: id}
	uReq.Cookie = env.cookie
	uReq.Body.ActualAttendees = 3
	uResp, err := env.checkin.HandleUpdate(context.Background(), uReq)
	if err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}
	if uResp.Body.ActualAttendees != 3 {
		t.Errorf("expected 3 actual attendees, got %d", uResp.Body.ActualAttendees)
	}

	cReq := &CancelCheckinRequest{GuestID: id}
	cReq.Cookie = env.cookie
	if _, err := env.checkin.HandleCancel(context.Background(), cReq); err != nil {
		t.Fatalf("HandleCancel returned error: %v", err)
	}

	st, _ := env.accessor.Load()
	if st.CheckinByGuest(id) != nil {
		t.Error("expected check-in removed")
	}
	if _, err := env.checkin.HandleCancel(context.Background(), cReq); err == nil {
		t.Fatal("expected not found after cancel, got nil")
	}
}
