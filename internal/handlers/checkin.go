package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"wedding-manager/internal/auth"
	"wedding-manager/internal/checkin"
	"wedding-manager/internal/notifier"
	"wedding-manager/internal/registry"
	"wedding-manager/internal/store"
	"wedding-manager/internal/tables"
)

type CheckinHandler struct {
	store       *store.Accessor
	authHandler *auth.AuthHandler
	notifier    notifier.Notifier
}

func NewCheckinHandler(accessor *store.Accessor, authHandler *auth.AuthHandler, n notifier.Notifier) *CheckinHandler {
	return &CheckinHandler{store: accessor, authHandler: authHandler, notifier: n}
}

type LookupRequest struct {
	auth.AuthInput
	Body struct {
		Lookup          string `json:"lookup" doc:"Guest name or phone number" required:"true"`
		Confirm         bool   `json:"confirm" doc:"Attendance confirmation checkbox"`
		ActualAttendees int    `json:"actual_attendees" doc:"People actually present" minimum:"1"`
	}
}

type CheckinResponse struct {
	Body checkin.Result
}

// HandleLookup resolves a desk lookup. A no-match or multi-match outcome is
// a 200 with the status field set; the desk retries or starts a new guest.
func (h *CheckinHandler) HandleLookup(ctx context.Context, input *LookupRequest) (*CheckinResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	result, err := checkin.Resolve(st, input.Body.Lookup, input.Body.Confirm, input.Body.ActualAttendees)
	if err != nil {
		if errors.Is(err, checkin.ErrEmptyLookup) {
			return nil, huma.Error422UnprocessableEntity("请输入姓名或手机号")
		}
		if errors.Is(err, checkin.ErrNotConfirmed) {
			return nil, huma.Error422UnprocessableEntity("请先确认出席")
		}
		return nil, huma.Error500InternalServerError("Failed to resolve lookup: " + err.Error())
	}

	if result.Status == checkin.StatusCheckedIn {
		if err := h.store.Save(st); err != nil {
			return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
		}
		h.notifyCheckin(st, result.GuestID)
	}

	return &CheckinResponse{Body: *result}, nil
}

type NewGuestCheckinRequest struct {
	auth.AuthInput
	Body struct {
		Name            string `json:"name" doc:"Guest name" required:"true"`
		Phone           string `json:"phone" doc:"Guest phone number" required:"true"`
		Confirm         bool   `json:"confirm" doc:"Attendance confirmation checkbox"`
		ActualAttendees int    `json:"actual_attendees" minimum:"1"`
	}
}

// HandleNewGuest is the "register new guest" exit of a failed lookup.
func (h *CheckinHandler) HandleNewGuest(ctx context.Context, input *NewGuestCheckinRequest) (*CheckinResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	if !input.Body.Confirm {
		return nil, huma.Error422UnprocessableEntity("请先确认出席")
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	result, err := checkin.ForceCreate(st, input.Body.Name, input.Body.Phone, input.Body.ActualAttendees)
	if err != nil {
		if errors.Is(err, registry.ErrMissingFields) {
			return nil, huma.Error422UnprocessableEntity("请填写姓名和手机号")
		}
		return nil, huma.Error500InternalServerError("Failed to check in: " + err.Error())
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}
	h.notifyCheckin(st, result.GuestID)

	return &CheckinResponse{Body: *result}, nil
}

type ManualCheckinRequest struct {
	auth.AuthInput
	Body struct {
		Name            string `json:"name" doc:"Guest name" required:"true"`
		Phone           string `json:"phone,omitempty"`
		TableNo         string `json:"table_no,omitempty"`
		ActualAttendees int    `json:"actual_attendees" minimum:"1"`
	}
}

// HandleManual is the admin-side check-in: phone match first, then exact
// name, else a new guest.
func (h *CheckinHandler) HandleManual(ctx context.Context, input *ManualCheckinRequest) (*CheckinResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	result, err := checkin.Manual(st, input.Body.Name, input.Body.Phone, input.Body.TableNo, input.Body.ActualAttendees)
	if err != nil {
		if errors.Is(err, registry.ErrMissingFields) {
			return nil, huma.Error422UnprocessableEntity("请填写姓名")
		}
		var capErr *tables.CapacityError
		if errors.As(err, &capErr) {
			return nil, huma.Error409Conflict(capErr.Error())
		}
		return nil, huma.Error500InternalServerError("Failed to check in: " + err.Error())
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}
	h.notifyCheckin(st, result.GuestID)

	return &CheckinResponse{Body: *result}, nil
}

type UpdateCheckinRequest struct {
	auth.AuthInput
	GuestID int `path:"guestId"`
	Body    struct {
		ActualAttendees int `json:"actual_attendees" minimum:"1"`
	}
}

type UpdateCheckinResponse struct {
	Body struct {
		GuestID         int `json:"guest_id"`
		ActualAttendees int `json:"actual_attendees"`
	}
}

func (h *CheckinHandler) HandleUpdate(ctx context.Context, input *UpdateCheckinRequest) (*UpdateCheckinResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	c, err := checkin.UpdateActual(st, input.GuestID, input.Body.ActualAttendees)
	if err != nil {
		return nil, huma.Error404NotFound("Check-in not found")
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &UpdateCheckinResponse{}
	res.Body.GuestID = c.GuestID
	res.Body.ActualAttendees = c.ActualAttendees
	return res, nil
}

type CancelCheckinRequest struct {
	auth.AuthInput
	GuestID int `path:"guestId"`
}

func (h *CheckinHandler) HandleCancel(ctx context.Context, input *CancelCheckinRequest) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	if err := checkin.Cancel(st, input.GuestID); err != nil {
		return nil, huma.Error404NotFound("Check-in not found")
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}
	return nil, nil
}

func (h *CheckinHandler) notifyCheckin(st *store.Store, guestID int) {
	if h.notifier == nil {
		return
	}
	g := st.GuestByID(guestID)
	c := st.CheckinByGuest(guestID)
	if g == nil || c == nil {
		return
	}
	if err := h.notifier.NotifyCheckin(*g, *c); err != nil {
		log.Warn().Err(err).Msg("Failed to send check-in notification")
	}
}
