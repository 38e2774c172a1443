package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"wedding-manager/internal/auth"
	"wedding-manager/internal/models"
	"wedding-manager/internal/store"
	"wedding-manager/internal/tables"
)

type TableHandler struct {
	store       *store.Accessor
	authHandler *auth.AuthHandler
}

func NewTableHandler(accessor *store.Accessor, authHandler *auth.AuthHandler) *TableHandler {
	return &TableHandler{store: accessor, authHandler: authHandler}
}

// TableView is one table row with its current occupancy resolved.
type TableView struct {
	ID         int       `json:"id"`
	TableNo    string    `json:"table_no"`
	Nickname   string    `json:"nickname"`
	Seats      int       `json:"seats"`
	Preference string    `json:"preference"`
	Occupied   int       `json:"occupied"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListTablesRequest struct {
	auth.AuthInput
}

type ListTablesResponse struct {
	Body struct {
		Tables []TableView `json:"tables"`
	}
}

// HandleListTables returns the tables in natural display order with seat
// occupancy.
func (h *TableHandler) HandleListTables(ctx context.Context, input *ListTablesRequest) (*ListTablesResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	res := &ListTablesResponse{}
	res.Body.Tables = []TableView{}
	for _, t := range tables.Sorted(st.Tables) {
		res.Body.Tables = append(res.Body.Tables, TableView{
			ID:         t.ID,
			TableNo:    t.TableNo,
			Nickname:   t.Nickname,
			Seats:      t.Seats,
			Preference: t.Preference,
			Occupied:   tables.Occupancy(st, t.TableNo),
			UpdatedAt:  t.UpdatedAt,
		})
	}
	return res, nil
}

type UpsertTableRequest struct {
	auth.AuthInput
	Body struct {
		TableNo    string `json:"table_no" doc:"Display number, the assignment key" required:"true"`
		Nickname   string `json:"nickname,omitempty"`
		Seats      int    `json:"seats" doc:"Seat capacity, 0 for unlimited" minimum:"0"`
		Preference string `json:"preference,omitempty"`
	}
}

type TableResponse struct {
	Body struct {
		Table models.Table `json:"table"`
	}
}

func (h *TableHandler) HandleUpsertTable(ctx context.Context, input *UpsertTableRequest) (*TableResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	table, err := tables.Upsert(st, input.Body.TableNo, input.Body.Nickname, input.Body.Seats, input.Body.Preference)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("请填写桌号")
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &TableResponse{}
	res.Body.Table = *table
	return res, nil
}

type UpdateTableRequest struct {
	auth.AuthInput
	ID   int `path:"id"`
	Body struct {
		TableNo    string `json:"table_no" doc:"New display number; guests follow the rename" required:"true"`
		Nickname   string `json:"nickname,omitempty"`
		Seats      int    `json:"seats" minimum:"0"`
		Preference string `json:"preference,omitempty"`
	}
}

// HandleUpdateTable renames a table and re-points its guests, then updates
// the remaining fields.
func (h *TableHandler) HandleUpdateTable(ctx context.Context, input *UpdateTableRequest) (*TableResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	table, err := tables.Rename(st, input.ID, input.Body.TableNo)
	if err != nil {
		if errors.Is(err, tables.ErrTableNotFound) {
			return nil, huma.Error404NotFound("Table not found")
		}
		return nil, huma.Error422UnprocessableEntity("请填写桌号")
	}
	table.Nickname = input.Body.Nickname
	if input.Body.Seats >= 0 {
		table.Seats = input.Body.Seats
	}
	table.Preference = input.Body.Preference

	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &TableResponse{}
	res.Body.Table = *table
	return res, nil
}

type DeleteTableRequest struct {
	auth.AuthInput
	ID int `path:"id"`
}

func (h *TableHandler) HandleDeleteTable(ctx context.Context, input *DeleteTableRequest) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	if err := tables.Remove(st, input.ID); err != nil {
		return nil, huma.Error404NotFound("Table not found")
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}
	return nil, nil
}
