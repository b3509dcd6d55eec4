package httptransport

import (
	"net/http"

	appreferral "star-casino/internal/app/referral"
)

type ReferralHandlers struct {
	svc *appreferral.Service
}

func NewReferralHandlers(svc *appreferral.Service) *ReferralHandlers {
	return &ReferralHandlers{svc: svc}
}

func (h *ReferralHandlers) Code() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		code, err := h.svc.EnsureCode(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"code": code, "link": h.svc.Link(code)})
	}
}

func (h *ReferralHandlers) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		st, err := h.svc.Stats(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, st)
	}
}

func (h *ReferralHandlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		items, err := h.svc.List(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"items": items})
	}
}

func (h *ReferralHandlers) Redeem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		var body struct {
			Code string `json:"code"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := h.svc.Register(r.Context(), body.Code, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		metricReferralRedeemTotal.Add(1)
		writeJSON(w, res)
	}
}
