package models

// InvitationSection is one content block on the public invite page.
type InvitationSection struct {
	ID        int    `json:"id"`
	SortOrder int    `json:"sort_order"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	ImageURL  string `json:"image_url"`
}

// Field types accepted for invitation fields.
const (
	FieldTypeText     = "text"
	FieldTypeTextarea = "textarea"
	FieldTypeSelect   = "select"
)

// InvitationField defines one custom RSVP question. FieldKey is the key used
// in Guest.Responses.
type InvitationField struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	FieldKey  string `json:"field_key"`
	FieldType string `json:"field_type"`
	Options   string `json:"options"`
	Required  bool   `json:"required"`
}

// Settings holds the invite page headline content.
type Settings struct {
	CoupleName      string `json:"couple_name"`
	WeddingDate     string `json:"wedding_date"`
	WeddingLocation string `json:"wedding_location"`
	HeroMessage     string `json:"hero_message"`
}
