package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"wedding-manager/internal/auth"
	"wedding-manager/internal/models"
	"wedding-manager/internal/notifier"
	"wedding-manager/internal/registry"
	"wedding-manager/internal/store"
	"wedding-manager/internal/tables"
)

type GuestHandler struct {
	store       *store.Accessor
	authHandler *auth.AuthHandler
	notifier    notifier.Notifier
}

func NewGuestHandler(accessor *store.Accessor, authHandler *auth.AuthHandler, n notifier.Notifier) *GuestHandler {
	return &GuestHandler{store: accessor, authHandler: authHandler, notifier: n}
}

// GuestView is one guest-list row with the derived display fields resolved.
type GuestView struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Phone       string            `json:"phone"`
	Attending   bool              `json:"attending"`
	Responses   map[string]string `json:"responses"`
	TableNo     string            `json:"table_no"`
	PartySize   int               `json:"party_size"`
	CheckedIn   bool              `json:"checked_in"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func guestView(st *store.Store, g models.Guest) GuestView {
	responses := g.Responses
	if responses == nil {
		responses = map[string]string{}
	}
	return GuestView{
		ID:          g.ID,
		Name:        g.Name,
		DisplayName: registry.DisplayName(g),
		Phone:       g.Phone,
		Attending:   g.Attending,
		Responses:   responses,
		TableNo:     g.TableNo,
		PartySize:   registry.PartySize(g),
		CheckedIn:   st.CheckinByGuest(g.ID) != nil,
		UpdatedAt:   g.UpdatedAt,
	}
}

type RSVPRequest struct {
	Body struct {
		Name      string            `json:"name" doc:"Guest name" required:"true"`
		Phone     string            `json:"phone" doc:"Guest phone number" required:"true"`
		Attending bool              `json:"attending" doc:"Whether the guest will attend"`
		Responses map[string]string `json:"responses,omitempty" doc:"Answers to the invitation fields"`
	}
}

type RSVPResponse struct {
	Body struct {
		Message string    `json:"message"`
		Guest   GuestView `json:"guest"`
	}
}

// HandleRSVP is the public invitation submit. A repeat submit with the same
// phone updates the earlier record.
func (h *GuestHandler) HandleRSVP(ctx context.Context, input *RSVPRequest) (*RSVPResponse, error) {
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	responses := registry.CollectResponses(st.InvitationFields, input.Body.Responses)
	guest, err := registry.UpsertByPhone(st, registry.RSVPInput{
		Name:      input.Body.Name,
		Phone:     input.Body.Phone,
		Attending: input.Body.Attending,
		Responses: responses,
	})
	if err != nil {
		if errors.Is(err, registry.ErrMissingFields) {
			return nil, huma.Error422UnprocessableEntity("请填写姓名和手机号")
		}
		return nil, huma.Error500InternalServerError("Failed to save RSVP: " + err.Error())
	}

	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyRSVP(*guest, registry.PartySize(*guest)); err != nil {
			log.Warn().Err(err).Msg("Failed to send RSVP notification")
		}
	}

	res := &RSVPResponse{}
	res.Body.Message = "感谢回复，期待与你相见"
	res.Body.Guest = guestView(st, *guest)
	return res, nil
}

type ListGuestsRequest struct {
	auth.AuthInput
}

type ListGuestsResponse struct {
	Body struct {
		Guests []GuestView              `json:"guests"`
		Fields []models.InvitationField `json:"fields"`
	}
}

func (h *GuestHandler) HandleListGuests(ctx context.Context, input *ListGuestsRequest) (*ListGuestsResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	res := &ListGuestsResponse{}
	res.Body.Guests = make([]GuestView, 0, len(st.Guests))
	for _, g := range st.Guests {
		res.Body.Guests = append(res.Body.Guests, guestView(st, g))
	}
	res.Body.Fields = st.InvitationFields
	return res, nil
}

type UpsertGuestRequest struct {
	auth.AuthInput
	Body struct {
		Name      string            `json:"name" doc:"Guest name" required:"true"`
		Phone     string            `json:"phone" doc:"Guest phone number" required:"true"`
		Attending bool              `json:"attending"`
		TableNo   string            `json:"table_no,omitempty" doc:"Assigned table number"`
		Responses map[string]string `json:"responses,omitempty"`
	}
}

type GuestResponse struct {
	Body struct {
		Guest GuestView `json:"guest"`
	}
}

// HandleUpsertGuest is the admin quick-add, keyed by phone like the public
// RSVP but allowed to assign a table.
func (h *GuestHandler) HandleUpsertGuest(ctx context.Context, input *UpsertGuestRequest) (*GuestResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	responses := registry.CollectResponses(st.InvitationFields, input.Body.Responses)
	partySize := registry.PartySize(models.Guest{Responses: responses})

	excludeID := 0
	if existing := registry.FindByPhone(st, input.Body.Phone); existing != nil {
		excludeID = existing.ID
	}
	tableNo, err := tables.ValidateAssignment(st, input.Body.TableNo, partySize, excludeID)
	if err != nil {
		return nil, capacityConflict(err)
	}

	guest, err := registry.UpsertByPhone(st, registry.RSVPInput{
		Name:       input.Body.Name,
		Phone:      input.Body.Phone,
		Attending:  input.Body.Attending,
		Responses:  responses,
		TableNo:    tableNo,
		HasTableNo: true,
	})
	if err != nil {
		if errors.Is(err, registry.ErrMissingFields) {
			return nil, huma.Error422UnprocessableEntity("请填写姓名和手机号")
		}
		return nil, huma.Error500InternalServerError("Failed to save guest: " + err.Error())
	}

	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &GuestResponse{}
	res.Body.Guest = guestView(st, *guest)
	return res, nil
}

type UpdateGuestRequest struct {
	auth.AuthInput
	ID   int `path:"id"`
	Body struct {
		Name      string            `json:"name,omitempty"`
		Phone     string            `json:"phone,omitempty"`
		Attending bool              `json:"attending"`
		TableNo   string            `json:"table_no,omitempty"`
		Responses map[string]string `json:"responses,omitempty"`
	}
}

func (h *GuestHandler) HandleUpdateGuest(ctx context.Context, input *UpdateGuestRequest) (*GuestResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	if st.GuestByID(input.ID) == nil {
		return nil, huma.Error404NotFound("Guest not found")
	}

	responses := registry.CollectResponses(st.InvitationFields, input.Body.Responses)
	partySize := registry.PartySize(models.Guest{Responses: responses})

	tableNo, err := tables.ValidateAssignment(st, input.Body.TableNo, partySize, input.ID)
	if err != nil {
		return nil, capacityConflict(err)
	}

	guest, err := registry.Update(st, input.ID, registry.UpdateInput{
		Name:      input.Body.Name,
		Phone:     input.Body.Phone,
		Attending: input.Body.Attending,
		Responses: responses,
		TableNo:   tableNo,
	})
	if err != nil {
		return nil, huma.Error404NotFound("Guest not found")
	}

	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &GuestResponse{}
	res.Body.Guest = guestView(st, *guest)
	return res, nil
}

type DeleteGuestRequest struct {
	auth.AuthInput
	ID int `path:"id"`
}

func (h *GuestHandler) HandleDeleteGuest(ctx context.Context, input *DeleteGuestRequest) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	if err := registry.Delete(st, input.ID); err != nil {
		return nil, huma.Error404NotFound("Guest not found")
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}
	return nil, nil
}

type SeatCardsRequest struct {
	auth.AuthInput
}

// SeatCard is one printable place card.
type SeatCard struct {
	DisplayName string `json:"display_name"`
	TableNo     string `json:"table_no"`
}

type SeatCardsResponse struct {
	Body struct {
		Cards []SeatCard `json:"cards"`
	}
}

// HandleSeatCards lists the attending guests as printable cards.
func (h *GuestHandler) HandleSeatCards(ctx context.Context, input *SeatCardsRequest) (*SeatCardsResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	res := &SeatCardsResponse{}
	res.Body.Cards = []SeatCard{}
	for _, g := range st.Guests {
		if !g.Attending {
			continue
		}
		card := SeatCard{DisplayName: registry.DisplayName(g), TableNo: g.TableNo}
		if card.TableNo == "" {
			card.TableNo = "未分配"
		}
		res.Body.Cards = append(res.Body.Cards, card)
	}
	return res, nil
}

// capacityConflict maps a table CapacityError to a 409; anything else from
// assignment validation is unexpected.
func capacityConflict(err error) error {
	var capErr *tables.CapacityError
	if errors.As(err, &capErr) {
		return huma.Error409Conflict(capErr.Error())
	}
	return huma.Error500InternalServerError("Failed to validate table assignment: " + err.Error())
}
