package store

import (
	"time"

	"wedding-manager/internal/models"
)

// SeedConfig carries the bootstrap admin credentials. The password arrives
// already hashed so this package stays independent of the hashing scheme.
type SeedConfig struct {
	AdminUsername     string
	AdminPasswordHash string
}

// seedDefaults fills the first-run content: a bootstrap admin, the invite
// page story sections, the default RSVP fields and the wedding settings.
// Returns true when anything was added.
func seedDefaults(st *Store, cfg SeedConfig) bool {
	seeded := false

	if len(st.Admins) == 0 && cfg.AdminUsername != "" {
		st.Admins = append(st.Admins, models.Admin{
			ID:           st.NextID(ColAdmins),
			Username:     cfg.AdminUsername,
			PasswordHash: cfg.AdminPasswordHash,
			CreatedAt:    time.Now(),
		})
		seeded = true
	}

	if len(st.InvitationSections) == 0 {
		sections := []models.InvitationSection{
			{
				SortOrder: 1,
				Title:     "我们的故事",
				Body:      "从初见到牵手，我们把每一份心动写进这场婚礼。",
				ImageURL:  "https://images.unsplash.com/photo-1520854221256-17451cc331bf?q=80&w=1600&auto=format&fit=crop",
			},
			{
				SortOrder: 2,
				Title:     "婚礼信息",
				Body:      "时间：2025年5月20日 17:30\n地点：海滨花园宴会厅",
				ImageURL:  "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee?q=80&w=1600&auto=format&fit=crop",
			},
			{
				SortOrder: 3,
				Title:     "期待与你见面",
				Body:      "你的到来是我们最好的礼物。",
				ImageURL:  "https://images.unsplash.com/photo-1487412720507-e7ab37603c6f?q=80&w=1600&auto=format&fit=crop",
			},
		}
		for _, s := range sections {
			s.ID = st.NextID(ColInvitationSections)
			st.InvitationSections = append(st.InvitationSections, s)
		}
		seeded = true
	}

	if len(st.InvitationFields) == 0 {
		st.InvitationFields = append(st.InvitationFields,
			models.InvitationField{
				ID:        st.NextID(ColInvitationFields),
				Label:     "出席人数",
				FieldKey:  "attendees",
				FieldType: models.FieldTypeSelect,
				Options:   "1,2,3,4+",
				Required:  true,
			},
			models.InvitationField{
				ID:        st.NextID(ColInvitationFields),
				Label:     "忌口/过敏",
				FieldKey:  "dietary",
				FieldType: models.FieldTypeText,
			},
		)
		seeded = true
	}

	if st.Settings == (models.Settings{}) {
		st.Settings = models.Settings{
			CoupleName:      "林曦 & 周然",
			WeddingDate:     "2025年5月20日 17:30",
			WeddingLocation: "海滨花园宴会厅",
			HeroMessage:     "诚挚邀请你见证我们的幸福时刻",
		}
		seeded = true
	}

	return seeded
}
