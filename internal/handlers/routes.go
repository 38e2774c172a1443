package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"wedding-manager/internal/auth"
)

// Handlers bundles everything RegisterRoutes wires up.
type Handlers struct {
	Auth       *auth.AuthHandler
	Admin      *AdminHandler
	Invitation *InvitationHandler
	Guest      *GuestHandler
	Table      *TableHandler
	Checkin    *CheckinHandler
	Lottery    *LotteryHandler
	Ledger     *LedgerHandler
}

func RegisterRoutes(r *chi.Mux, h Handlers) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Wedding Manager API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	cookieAuth := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	// Public surface
	huma.Post(api, "/auth/login", h.Auth.HandleLogin)
	huma.Post(api, "/auth/logout", h.Auth.HandleLogout)
	huma.Get(api, "/invite", h.Invitation.HandleInvite)
	huma.Post(api, "/invite/rsvp", h.Guest.HandleRSVP)
	huma.Get(api, "/lottery", h.Lottery.HandleOverview)

	// Admin console
	huma.Get(api, "/admin/summary", h.Admin.HandleSummary, cookieAuth)
	huma.Get(api, "/admin/admins", h.Admin.HandleListAdmins, cookieAuth)
	huma.Post(api, "/admin/admins", h.Admin.HandleAddAdmin, cookieAuth)

	huma.Put(api, "/admin/invitation/settings", h.Invitation.HandleUpdateSettings, cookieAuth)
	huma.Post(api, "/admin/invitation/sections", h.Invitation.HandleAddSection, cookieAuth)
	huma.Delete(api, "/admin/invitation/sections/{id}", h.Invitation.HandleDeleteSection, cookieAuth)
	huma.Post(api, "/admin/invitation/fields", h.Invitation.HandleAddField, cookieAuth)
	huma.Delete(api, "/admin/invitation/fields/{id}", h.Invitation.HandleDeleteField, cookieAuth)

	huma.Get(api, "/admin/guests", h.Guest.HandleListGuests, cookieAuth)
	huma.Post(api, "/admin/guests", h.Guest.HandleUpsertGuest, cookieAuth)
	huma.Put(api, "/admin/guests/{id}", h.Guest.HandleUpdateGuest, cookieAuth)
	huma.Delete(api, "/admin/guests/{id}", h.Guest.HandleDeleteGuest, cookieAuth)
	huma.Get(api, "/admin/seat-cards", h.Guest.HandleSeatCards, cookieAuth)

	huma.Get(api, "/admin/tables", h.Table.HandleListTables, cookieAuth)
	huma.Post(api, "/admin/tables", h.Table.HandleUpsertTable, cookieAuth)
	huma.Put(api, "/admin/tables/{id}", h.Table.HandleUpdateTable, cookieAuth)
	huma.Delete(api, "/admin/tables/{id}", h.Table.HandleDeleteTable, cookieAuth)

	huma.Post(api, "/checkin/lookup", h.Checkin.HandleLookup, cookieAuth)
	huma.Post(api, "/checkin/new", h.Checkin.HandleNewGuest, cookieAuth)
	huma.Post(api, "/checkin/manual", h.Checkin.HandleManual, cookieAuth)
	huma.Put(api, "/admin/checkins/{guestId}", h.Checkin.HandleUpdate, cookieAuth)
	huma.Delete(api, "/admin/checkins/{guestId}", h.Checkin.HandleCancel, cookieAuth)

	huma.Get(api, "/admin/lottery", h.Lottery.HandleAdminOverview, cookieAuth)
	huma.Post(api, "/admin/lottery/prizes", h.Lottery.HandleAddPrize, cookieAuth)
	huma.Delete(api, "/admin/lottery/prizes/{id}", h.Lottery.HandleDeletePrize, cookieAuth)
	huma.Post(api, "/admin/lottery/draw", h.Lottery.HandleDraw, cookieAuth)
	huma.Post(api, "/admin/lottery/reset", h.Lottery.HandleReset, cookieAuth)

	huma.Get(api, "/admin/ledger", h.Ledger.HandleList, cookieAuth)
	huma.Post(api, "/admin/ledger", h.Ledger.HandleAdd, cookieAuth)
	huma.Put(api, "/admin/ledger/{id}", h.Ledger.HandleUpdate, cookieAuth)
	huma.Delete(api, "/admin/ledger/{id}", h.Ledger.HandleDelete, cookieAuth)
}
