package httptransport

import (
	"net/http"

	appwager "star-casino/internal/app/wager"
)

type WagerHandlers struct {
	engine *appwager.Engine
}

func NewWagerHandlers(engine *appwager.Engine) *WagerHandlers {
	return &WagerHandlers{engine: engine}
}

func (h *WagerHandlers) Place() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		var body struct {
			Variant string `json:"variant"`
			Stake   int64  `json:"stake"`
			ChatID  int64  `json:"chat_id"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := h.engine.Place(r.Context(), appwager.PlaceInput{
			AccountID: id,
			ChatID:    body.ChatID,
			Variant:   body.Variant,
			Stake:     body.Stake,
		})
		if err != nil {
			metricWagerErrorsTotal.Add(1)
			writeServiceError(w, r, err)
			return
		}
		metricWagerPlacedTotal.Add(1)
		metricWagerStakeTotal.Add(res.Stake)
		metricWagerPayoutTotal.Add(res.Payout)
		writeJSON(w, res)
	}
}
