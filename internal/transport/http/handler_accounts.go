package httptransport

import (
	"net/http"
	"strconv"

	appaccount "star-casino/internal/app/account"
)

type AccountHandlers struct {
	svc *appaccount.Service
}

func NewAccountHandlers(svc *appaccount.Service) *AccountHandlers {
	return &AccountHandlers{svc: svc}
}

func (h *AccountHandlers) Start() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		var body struct {
			DisplayName string `json:"display_name"`
			Text        string `json:"text"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.svc.Start(r.Context(), id, body.DisplayName, body.Text)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if resp.Referral != nil {
			metricReferralRedeemTotal.Add(1)
		}
		writeJSON(w, resp)
	}
}

func (h *AccountHandlers) Balance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		bal, err := h.svc.Balance(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"account_id": id, "balance": bal})
	}
}

func (h *AccountHandlers) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		p, err := h.svc.Profile(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, p)
	}
}

func (h *AccountHandlers) SetNickname() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		var body struct {
			Nickname string `json:"nickname"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := h.svc.SetNickname(r.Context(), id, body.Nickname); err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "nickname": body.Nickname})
	}
}

func (h *AccountHandlers) Leaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_limit")
				return
			}
			limit = n
		}
		items, err := h.svc.Top(r.Context(), limit)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"items": items})
	}
}
