package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"wedding-manager/internal/auth"
	"wedding-manager/internal/ledger"
	"wedding-manager/internal/models"
	"wedding-manager/internal/store"
)

type LedgerHandler struct {
	store       *store.Accessor
	authHandler *auth.AuthHandler
}

func NewLedgerHandler(accessor *store.Accessor, authHandler *auth.AuthHandler) *LedgerHandler {
	return &LedgerHandler{store: accessor, authHandler: authHandler}
}

type ListLedgerRequest struct {
	auth.AuthInput
}

type ListLedgerResponse struct {
	Body struct {
		Entries    []models.LedgerEntry `json:"entries"`
		Totals     ledger.Summary       `json:"totals"`
		Categories []string             `json:"categories"`
	}
}

func (h *LedgerHandler) HandleList(ctx context.Context, input *ListLedgerRequest) (*ListLedgerResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	res := &ListLedgerResponse{}
	res.Body.Entries = st.Ledger
	res.Body.Totals = ledger.Totals(st)
	res.Body.Categories = models.LedgerCategories
	return res, nil
}

type LedgerEntryBody struct {
	Amount     float64 `json:"amount" doc:"Positive amount" required:"true"`
	Direction  string  `json:"direction" enum:"income,expense" required:"true"`
	Category   string  `json:"category" required:"true"`
	Purpose    string  `json:"purpose" required:"true"`
	Payer      string  `json:"payer" required:"true"`
	Payee      string  `json:"payee,omitempty"`
	Method     string  `json:"method,omitempty"`
	Note       string  `json:"note,omitempty"`
	OccurredAt string  `json:"occurred_at,omitempty" doc:"Date the money moved, YYYY-MM-DD"`
}

func (b LedgerEntryBody) input() ledger.Input {
	return ledger.Input{
		Amount:     b.Amount,
		Direction:  b.Direction,
		Category:   b.Category,
		Purpose:    b.Purpose,
		Payer:      b.Payer,
		Payee:      b.Payee,
		Method:     b.Method,
		Note:       b.Note,
		OccurredAt: b.OccurredAt,
	}
}

type AddLedgerRequest struct {
	auth.AuthInput
	Body LedgerEntryBody
}

type LedgerEntryResponse struct {
	Body struct {
		Entry models.LedgerEntry `json:"entry"`
	}
}

func (h *LedgerHandler) HandleAdd(ctx context.Context, input *AddLedgerRequest) (*LedgerEntryResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	entry, err := ledger.Add(st, input.Body.input())
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &LedgerEntryResponse{}
	res.Body.Entry = *entry
	return res, nil
}

type UpdateLedgerRequest struct {
	auth.AuthInput
	ID   int `path:"id"`
	Body LedgerEntryBody
}

func (h *LedgerHandler) HandleUpdate(ctx context.Context, input *UpdateLedgerRequest) (*LedgerEntryResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	entry, err := ledger.Update(st, input.ID, input.Body.input())
	if err != nil {
		if errors.Is(err, ledger.ErrEntryNotFound) {
			return nil, huma.Error404NotFound("Ledger entry not found")
		}
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &LedgerEntryResponse{}
	res.Body.Entry = *entry
	return res, nil
}

type DeleteLedgerRequest struct {
	auth.AuthInput
	ID int `path:"id"`
}

func (h *LedgerHandler) HandleDelete(ctx context.Context, input *DeleteLedgerRequest) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	if err := ledger.Remove(st, input.ID); err != nil {
		return nil, huma.Error404NotFound("Ledger entry not found")
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}
	return nil, nil
}
