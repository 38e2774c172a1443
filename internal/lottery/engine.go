// Package lottery draws prize winners from the checked-in guests. A guest
// wins at most once across the whole lottery.
package lottery

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"wedding-manager/internal/models"
	"wedding-manager/internal/store"
)

var (
	// ErrPrizeNotFound reports a draw against an unknown prize.
	ErrPrizeNotFound = errors.New("奖品不存在")
	// ErrPrizeExhausted reports a prize whose quantity is fully drawn.
	ErrPrizeExhausted = errors.New("奖品已抽完")
	// ErrNoEligibleGuests reports an empty draw pool.
	ErrNoEligibleGuests = errors.New("暂无可抽取来宾")
	// ErrMissingPrizeName rejects a prize without a name.
	ErrMissingPrizeName = errors.New("prize name is required")
)

// Rand is the random source behind draws. *rand.Rand satisfies it, so tests
// can inject a seeded generator.
type Rand interface {
	Intn(n int) int
}

// Engine performs draws with an injectable random source.
type Engine struct {
	rng Rand
}

// NewEngine wires a random source; a nil source falls back to a time-seeded
// generator.
func NewEngine(rng Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// Draw selects one eligible guest uniformly at random for one unit of a
// prize. Eligible means checked in and not yet a winner of any prize.
func (e *Engine) Draw(st *store.Store, prizeID int) (*models.Winner, error) {
	prize := st.PrizeByID(prizeID)
	if prize == nil {
		return nil, ErrPrizeNotFound
	}

	drawn := 0
	won := map[int]bool{}
	for _, w := range st.Winners {
		if w.PrizeID == prize.ID {
			drawn++
		}
		won[w.GuestID] = true
	}
	if drawn >= prize.Quantity {
		return nil, ErrPrizeExhausted
	}

	var eligible []*models.Guest
	for _, c := range st.Checkins {
		g := st.GuestByID(c.GuestID)
		if g != nil && !won[g.ID] {
			eligible = append(eligible, g)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleGuests
	}

	winner := eligible[e.rng.Intn(len(eligible))]
	st.Winners = append(st.Winners, models.Winner{
		ID:        st.NextID(store.ColWinners),
		PrizeID:   prize.ID,
		GuestID:   winner.ID,
		CreatedAt: time.Now(),
	})
	return &st.Winners[len(st.Winners)-1], nil
}

// Reset clears every winner record. Irreversible.
func Reset(st *store.Store) {
	st.Winners = st.Winners[:0]
}

// AddPrize registers a prize; quantity below one is clamped to one.
func AddPrize(st *store.Store, name string, quantity int) (*models.Prize, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingPrizeName
	}
	if quantity < 1 {
		quantity = 1
	}
	st.Prizes = append(st.Prizes, models.Prize{
		ID:       st.NextID(store.ColPrizes),
		Name:     name,
		Quantity: quantity,
	})
	return &st.Prizes[len(st.Prizes)-1], nil
}

// RemovePrize deletes a prize and its winner rows.
func RemovePrize(st *store.Store, id int) error {
	idx := -1
	for i := range st.Prizes {
		if st.Prizes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPrizeNotFound
	}
	st.Prizes = append(st.Prizes[:idx], st.Prizes[idx+1:]...)

	winners := st.Winners[:0]
	for _, w := range st.Winners {
		if w.PrizeID != id {
			winners = append(winners, w)
		}
	}
	st.Winners = winners
	return nil
}

// WinnerSummary is one winner row with prize and guest names resolved for
// display. Deleted guests or prizes render as "-".
type WinnerSummary struct {
	ID        int       `json:"id"`
	PrizeID   int       `json:"prize_id"`
	PrizeName string    `json:"prize_name"`
	GuestID   int       `json:"guest_id"`
	GuestName string    `json:"guest_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Summaries resolves every winner row for the admin lottery view.
func Summaries(st *store.Store) []WinnerSummary {
	out := make([]WinnerSummary, 0, len(st.Winners))
	for _, w := range st.Winners {
		s := WinnerSummary{
			ID:        w.ID,
			PrizeID:   w.PrizeID,
			PrizeName: "-",
			GuestID:   w.GuestID,
			GuestName: "-",
			CreatedAt: w.CreatedAt,
		}
		if p := st.PrizeByID(w.PrizeID); p != nil {
			s.PrizeName = p.Name
		}
		if g := st.GuestByID(w.GuestID); g != nil {
			s.GuestName = g.Name
		}
		out = append(out, s)
	}
	return out
}
