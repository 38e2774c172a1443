package store

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Row is one persisted collection: the collection name and its JSON document.
type Row struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

func (Row) TableName() string { return "store_rows" }

// Accessor loads and saves the aggregate document. The model is
// read-modify-write of the whole store with no optimistic locking: each save
// is atomic, but two racing mutations can lose updates. Acceptable for a
// single-admin, event-day workload.
type Accessor struct {
	db   *gorm.DB
	seed SeedConfig
}

func NewAccessor(db *gorm.DB, seed SeedConfig) *Accessor {
	return &Accessor{db: db, seed: seed}
}

// Load reads every collection row and decodes it into a Store. On first run
// the default content is seeded and persisted before returning.
func (a *Accessor) Load() (*Store, error) {
	var rows []Row
	if err := a.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}

	st := New()
	for _, row := range rows {
		if err := decodeRow(st, row); err != nil {
			return nil, err
		}
	}

	if seedDefaults(st, a.seed) {
		if err := a.Save(st); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Save writes every collection back in a single transaction, so a partial
// write can never be observed.
func (a *Accessor) Save(st *Store) error {
	rows, err := encodeRows(st)
	if err != nil {
		return err
	}
	err = a.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&row)
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	return nil
}

func decodeRow(st *Store, row Row) error {
	var dst any
	switch row.Key {
	case ColAdmins:
		dst = &st.Admins
	case ColInvitationSections:
		dst = &st.InvitationSections
	case ColInvitationFields:
		dst = &st.InvitationFields
	case ColGuests:
		dst = &st.Guests
	case ColTables:
		dst = &st.Tables
	case ColCheckins:
		dst = &st.Checkins
	case ColPrizes:
		dst = &st.Prizes
	case ColWinners:
		dst = &st.Winners
	case ColLedger:
		dst = &st.Ledger
	case ColSettings:
		dst = &st.Settings
	case ColCounters:
		dst = &st.Counters
	default:
		// Unknown keys from newer revisions are ignored.
		return nil
	}
	if err := json.Unmarshal([]byte(row.Value), dst); err != nil {
		return fmt.Errorf("decode %s: %w", row.Key, err)
	}
	return nil
}

func encodeRows(st *Store) ([]Row, error) {
	collections := []struct {
		key string
		val any
	}{
		{ColAdmins, st.Admins},
		{ColInvitationSections, st.InvitationSections},
		{ColInvitationFields, st.InvitationFields},
		{ColGuests, st.Guests},
		{ColTables, st.Tables},
		{ColCheckins, st.Checkins},
		{ColPrizes, st.Prizes},
		{ColWinners, st.Winners},
		{ColLedger, st.Ledger},
		{ColSettings, st.Settings},
		{ColCounters, st.Counters},
	}

	rows := make([]Row, 0, len(collections))
	for _, c := range collections {
		payload, err := json.Marshal(c.val)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", c.key, err)
		}
		rows = append(rows, Row{Key: c.key, Value: string(payload)})
	}
	return rows, nil
}
