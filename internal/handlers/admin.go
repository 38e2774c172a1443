package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"wedding-manager/internal/auth"
	"wedding-manager/internal/models"
	"wedding-manager/internal/store"
)

type AdminHandler struct {
	store       *store.Accessor
	authHandler *auth.AuthHandler
}

func NewAdminHandler(accessor *store.Accessor, authHandler *auth.AuthHandler) *AdminHandler {
	return &AdminHandler{store: accessor, authHandler: authHandler}
}

type SummaryRequest struct {
	auth.AuthInput
}

type SummaryResponse struct {
	Body struct {
		GuestCount     int `json:"guest_count"`
		AttendingCount int `json:"attending_count"`
		CheckedInCount int `json:"checked_in_count"`
		TableCount     int `json:"table_count"`
		PrizeCount     int `json:"prize_count"`
		WinnerCount    int `json:"winner_count"`
	}
}

// HandleSummary serves the dashboard counters.
func (h *AdminHandler) HandleSummary(ctx context.Context, input *SummaryRequest) (*SummaryResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	res := &SummaryResponse{}
	res.Body.GuestCount = len(st.Guests)
	for _, g := range st.Guests {
		if g.Attending {
			res.Body.AttendingCount++
		}
	}
	res.Body.CheckedInCount = len(st.Checkins)
	res.Body.TableCount = len(st.Tables)
	res.Body.PrizeCount = len(st.Prizes)
	res.Body.WinnerCount = len(st.Winners)
	return res, nil
}

// AdminView is an admin account without the password hash.
type AdminView struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type ListAdminsRequest struct {
	auth.AuthInput
}

type ListAdminsResponse struct {
	Body struct {
		Admins []AdminView `json:"admins"`
	}
}

func (h *AdminHandler) HandleListAdmins(ctx context.Context, input *ListAdminsRequest) (*ListAdminsResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	res := &ListAdminsResponse{}
	res.Body.Admins = make([]AdminView, 0, len(st.Admins))
	for _, a := range st.Admins {
		res.Body.Admins = append(res.Body.Admins, AdminView{ID: a.ID, Username: a.Username, CreatedAt: a.CreatedAt})
	}
	return res, nil
}

type AddAdminRequest struct {
	auth.AuthInput
	Body struct {
		Username string `json:"username" required:"true"`
		Password string `json:"password" required:"true"`
	}
}

type AddAdminResponse struct {
	Body struct {
		Admin AdminView `json:"admin"`
	}
}

func (h *AdminHandler) HandleAddAdmin(ctx context.Context, input *AddAdminRequest) (*AddAdminResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(input.Body.Username)
	if username == "" || input.Body.Password == "" {
		return nil, huma.Error422UnprocessableEntity("username and password are required")
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	for _, a := range st.Admins {
		if a.Username == username {
			return nil, huma.Error409Conflict("Username already exists")
		}
	}

	admin := models.Admin{
		ID:           st.NextID(store.ColAdmins),
		Username:     username,
		PasswordHash: auth.HashPassword(input.Body.Password),
		CreatedAt:    time.Now(),
	}
	st.Admins = append(st.Admins, admin)
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &AddAdminResponse{}
	res.Body.Admin = AdminView{ID: admin.ID, Username: admin.Username, CreatedAt: admin.CreatedAt}
	return res, nil
}
