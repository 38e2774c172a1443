package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"wedding-manager/internal/auth"
	"wedding-manager/internal/lottery"
	"wedding-manager/internal/models"
	"wedding-manager/internal/notifier"
	"wedding-manager/internal/store"
)

type LotteryHandler struct {
	store       *store.Accessor
	authHandler *auth.AuthHandler
	notifier    notifier.Notifier
	engine      *lottery.Engine
}

func NewLotteryHandler(accessor *store.Accessor, authHandler *auth.AuthHandler, n notifier.Notifier, engine *lottery.Engine) *LotteryHandler {
	return &LotteryHandler{store: accessor, authHandler: authHandler, notifier: n, engine: engine}
}

// PrizeView is one prize with its drawn count resolved.
type PrizeView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Drawn    int    `json:"drawn"`
}

type LotteryOverviewResponse struct {
	Body struct {
		Prizes  []PrizeView             `json:"prizes"`
		Winners []lottery.WinnerSummary `json:"winners"`
	}
}

func (h *LotteryHandler) overview(st *store.Store) *LotteryOverviewResponse {
	drawn := map[int]int{}
	for _, w := range st.Winners {
		drawn[w.PrizeID]++
	}

	res := &LotteryOverviewResponse{}
	res.Body.Prizes = make([]PrizeView, 0, len(st.Prizes))
	for _, p := range st.Prizes {
		res.Body.Prizes = append(res.Body.Prizes, PrizeView{
			ID:       p.ID,
			Name:     p.Name,
			Quantity: p.Quantity,
			Drawn:    drawn[p.ID],
		})
	}
	res.Body.Winners = lottery.Summaries(st)
	return res
}

// HandleOverview serves the public lottery viewer: prizes with progress and
// the winner board.
func (h *LotteryHandler) HandleOverview(ctx context.Context, input *struct{}) (*LotteryOverviewResponse, error) {
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}
	return h.overview(st), nil
}

type AdminLotteryRequest struct {
	auth.AuthInput
}

func (h *LotteryHandler) HandleAdminOverview(ctx context.Context, input *AdminLotteryRequest) (*LotteryOverviewResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}
	return h.overview(st), nil
}

type AddPrizeRequest struct {
	auth.AuthInput
	Body struct {
		Name     string `json:"name" doc:"Prize name" required:"true"`
		Quantity int    `json:"quantity" doc:"Units to draw" minimum:"1" default:"1"`
	}
}

type PrizeResponse struct {
	Body struct {
		Prize models.Prize `json:"prize"`
	}
}

func (h *LotteryHandler) HandleAddPrize(ctx context.Context, input *AddPrizeRequest) (*PrizeResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	prize, err := lottery.AddPrize(st, input.Body.Name, input.Body.Quantity)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("请填写奖品名称")
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &PrizeResponse{}
	res.Body.Prize = *prize
	return res, nil
}

type DeletePrizeRequest struct {
	auth.AuthInput
	ID int `path:"id"`
}

func (h *LotteryHandler) HandleDeletePrize(ctx context.Context, input *DeletePrizeRequest) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	if err := lottery.RemovePrize(st, input.ID); err != nil {
		return nil, huma.Error404NotFound("奖品不存在")
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}
	return nil, nil
}

type DrawRequest struct {
	auth.AuthInput
	Body struct {
		PrizeID int `json:"prize_id" doc:"Prize to draw one unit of" required:"true"`
	}
}

type DrawResponse struct {
	Body struct {
		Winner lottery.WinnerSummary `json:"winner"`
	}
}

// HandleDraw selects one random checked-in guest who has not yet won any
// prize.
func (h *LotteryHandler) HandleDraw(ctx context.Context, input *DrawRequest) (*DrawResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	winner, err := h.engine.Draw(st, input.Body.PrizeID)
	if err != nil {
		switch {
		case errors.Is(err, lottery.ErrPrizeNotFound):
			return nil, huma.Error404NotFound(err.Error())
		case errors.Is(err, lottery.ErrPrizeExhausted), errors.Is(err, lottery.ErrNoEligibleGuests):
			return nil, huma.Error409Conflict(err.Error())
		default:
			return nil, huma.Error500InternalServerError("Failed to draw: " + err.Error())
		}
	}
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	if h.notifier != nil {
		prize := st.PrizeByID(winner.PrizeID)
		guest := st.GuestByID(winner.GuestID)
		if prize != nil && guest != nil {
			if err := h.notifier.NotifyDraw(*prize, *guest); err != nil {
				log.Warn().Err(err).Msg("Failed to send draw notification")
			}
		}
	}

	res := &DrawResponse{}
	for _, s := range lottery.Summaries(st) {
		if s.ID == winner.ID {
			res.Body.Winner = s
			break
		}
	}
	return res, nil
}

type ResetLotteryRequest struct {
	auth.AuthInput
}

type ResetLotteryResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

// HandleReset clears every winner record. Irreversible.
func (h *LotteryHandler) HandleReset(ctx context.Context, input *ResetLotteryRequest) (*ResetLotteryResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	lottery.Reset(st)
	if err := h.store.Save(st); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save store: " + err.Error())
	}

	res := &ResetLotteryResponse{}
	res.Body.Message = "抽奖记录已清空"
	return res, nil
}
