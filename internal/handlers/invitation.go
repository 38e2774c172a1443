package handlers

import (
	"context"
	"sort"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"wedding-manager/internal/auth"
	"wedding-manager/internal/models"
	"wedding-manager/internal/store"
)

type InvitationHandler struct {
	store       *store.Accessor
	authHandler *auth.AuthHandler
}

func NewInvitationHandler(accessor *store.Accessor, authHandler *auth.AuthHandler) *InvitationHandler {
	return &InvitationHandler{store: accessor, authHandler: authHandler}
}

type InviteResponse struct {
	Body struct {
		Settings models.Settings            `json:"settings"`
		Sections []models.InvitationSection `json:"sections"`
		Fields   []models.InvitationField   `json:"fields"`
	}
}

// HandleInvite serves the public invitation content: settings, the story
// sections in display order, and the RSVP field schema.
func (h *InvitationHandler) HandleInvite(ctx context.Context, input *struct{}) (*InviteResponse, error) {
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	sections := make([]models.InvitationSection, len(st.InvitationSections))
	copy(sections, st.InvitationSections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].SortOrder < sections[j].SortOrder
	})

	res := &InviteResponse{}
	res.Body.Settings = st.Settings
	res.Body.Sections = sections
	res.Body.Fields = st.InvitationFields
	return res, nil
}

type UpdateSettingsRequest struct {
	auth.AuthInput
	Body struct {
		CoupleName      string `json:"couple_name"`
		WeddingDate     string `json:"wedding_date"`
		WeddingLocation string `json:"wedding_location"`
		HeroMessage     string `json:"hero_message"`
	}
}

type UpdateSettingsResponse struct {
	Body struct {
		Settings models.Settings `json:"settings"`
	}
}

func (h *InvitationHandler) HandleUpdateSettings(ctx context.Context, input *UpdateSettingsRequest) (*UpdateSettingsResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	st.Settings = models.Settings{
		CoupleName:      input.Body.CoupleName,
		WeddingDate:     input.Body.WeddingDate,
		WeddingLocation: input.Body.WeddingLocation,
		HeroMessage:     input.Body.HeroMessage,
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &UpdateSettingsResponse{}
	res.Body.Settings = st.Settings
	return res, nil
}

type AddSectionRequest struct {
	auth.AuthInput
	Body struct {
		SortOrder int    `json:"sort_order"`
		Title     string `json:"title"`
		Body      string `json:"body"`
		ImageURL  string `json:"image_url"`
	}
}

type SectionResponse struct {
	Body struct {
		Section models.InvitationSection `json:"section"`
	}
}

func (h *InvitationHandler) HandleAddSection(ctx context.Context, input *AddSectionRequest) (*SectionResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	section := models.InvitationSection{
		ID:        st.NextID(store.ColInvitationSections),
		SortOrder: input.Body.SortOrder,
		Title:     input.Body.Title,
		Body:      input.Body.Body,
		ImageURL:  input.Body.ImageURL,
	}
	st.InvitationSections = append(st.InvitationSections, section)
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &SectionResponse{}
	res.Body.Section = section
	return res, nil
}

type DeleteSectionRequest struct {
	auth.AuthInput
	ID int `path:"id"`
}

func (h *InvitationHandler) HandleDeleteSection(ctx context.Context, input *DeleteSectionRequest) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	sections := st.InvitationSections[:0]
	found := false
	for _, s := range st.InvitationSections {
		if s.ID == input.ID {
			found = true
			continue
		}
		sections = append(sections, s)
	}
	if !found {
		return nil, huma.Error404NotFound("Section not found")
	}
	st.InvitationSections = sections
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}
	return nil, nil
}

type AddFieldRequest struct {
	auth.AuthInput
	Body struct {
		Label     string `json:"label" required:"true"`
		FieldKey  string `json:"field_key" required:"true"`
		FieldType string `json:"field_type" required:"true" enum:"text,textarea,select"`
		Options   string `json:"options,omitempty" doc:"Comma-separated options for select fields"`
		Required  bool   `json:"required"`
	}
}

type FieldResponse struct {
	Body struct {
		Field models.InvitationField `json:"field"`
	}
}

func (h *InvitationHandler) HandleAddField(ctx context.Context, input *AddFieldRequest) (*FieldResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Body.Label) == "" || strings.TrimSpace(input.Body.FieldKey) == "" {
		return nil, huma.Error422UnprocessableEntity("label and field_key are required")
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	field := models.InvitationField{
		ID:        st.NextID(store.ColInvitationFields),
		Label:     input.Body.Label,
		FieldKey:  input.Body.FieldKey,
		FieldType: input.Body.FieldType,
		Options:   input.Body.Options,
		Required:  input.Body.Required,
	}
	st.InvitationFields = append(st.InvitationFields, field)
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &FieldResponse{}
	res.Body.Field = field
	return res, nil
}

type DeleteFieldRequest struct {
	auth.AuthInput
	ID int `path:"id"`
}

func (h *InvitationHandler) HandleDeleteField(ctx context.Context, input *DeleteFieldRequest) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	fields := st.InvitationFields[:0]
	found := false
	for _, f := range st.InvitationFields {
		if f.ID == input.ID {
			found = true
			continue
		}
		fields = append(fields, f)
	}
	if !found {
		return nil, huma.Error404NotFound("Field not found")
	}
	st.InvitationFields = fields
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}
	return nil, nil
}
