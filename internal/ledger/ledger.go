// Package ledger keeps the wedding income and expense book.
package ledger

import (
	"errors"
	"slices"
	"strings"
	"time"

	"wedding-manager/internal/models"
	"wedding-manager/internal/store"
)

var (
	// ErrInvalidEntry rejects entries missing amount, purpose or payer, or
	// carrying an unknown direction or category.
	ErrInvalidEntry = errors.New("ledger entry requires a positive amount, purpose, payer and known direction/category")
	// ErrEntryNotFound reports an id that matches no entry.
	ErrEntryNotFound = errors.New("ledger entry not found")
)

// Input is one ledger entry write.
type Input struct {
	Amount     float64
	Direction  string
	Category   string
	Purpose    string
	Payer      string
	Payee      string
	Method     string
	Note       string
	OccurredAt string
}

func (in Input) validate() error {
	if in.Amount <= 0 || strings.TrimSpace(in.Purpose) == "" || strings.TrimSpace(in.Payer) == "" {
		return ErrInvalidEntry
	}
	if in.Direction != models.DirectionIncome && in.Direction != models.DirectionExpense {
		return ErrInvalidEntry
	}
	if !slices.Contains(models.LedgerCategories, in.Category) {
		return ErrInvalidEntry
	}
	return nil
}

// Add validates and appends an entry.
func Add(st *store.Store, in Input) (*models.LedgerEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	st.Ledger = append(st.Ledger, models.LedgerEntry{
		ID:         st.NextID(store.ColLedger),
		Amount:     in.Amount,
		Direction:  in.Direction,
		Category:   in.Category,
		Purpose:    strings.TrimSpace(in.Purpose),
		Payer:      strings.TrimSpace(in.Payer),
		Payee:      in.Payee,
		Method:     in.Method,
		Note:       in.Note,
		OccurredAt: in.OccurredAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	return &st.Ledger[len(st.Ledger)-1], nil
}

// Update replaces an entry's fields in place.
func Update(st *store.Store, id int, in Input) (*models.LedgerEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	for i := range st.Ledger {
		if st.Ledger[i].ID != id {
			continue
		}
		e := &st.Ledger[i]
		e.Amount = in.Amount
		e.Direction = in.Direction
		e.Category = in.Category
		e.Purpose = strings.TrimSpace(in.Purpose)
		e.Payer = strings.TrimSpace(in.Payer)
		e.Payee = in.Payee
		e.Method = in.Method
		e.Note = in.Note
		e.OccurredAt = in.OccurredAt
		e.UpdatedAt = time.Now()
		return e, nil
	}
	return nil, ErrEntryNotFound
}

// Remove deletes an entry by id.
func Remove(st *store.Store, id int) error {
	for i := range st.Ledger {
		if st.Ledger[i].ID == id {
			st.Ledger = append(st.Ledger[:i], st.Ledger[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

// Summary aggregates the book.
type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// Totals sums the book by direction.
func Totals(st *store.Store) Summary {
	var s Summary
	for _, e := range st.Ledger {
		switch e.Direction {
		case models.DirectionIncome:
			s.Income += e.Amount
		case models.DirectionExpense:
			s.Expense += e.Amount
		}
	}
	s.Net = s.Income - s.Expense
	return s
}
