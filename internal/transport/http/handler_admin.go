package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	appaccount "star-casino/internal/app/account"
	"star-casino/internal/store"
)

// AdminStore is the read side the admin surface needs directly from storage.
type AdminStore interface {
	Ping(ctx context.Context) error
	ListLedgerEntries(ctx context.Context, f store.LedgerFilter, limit, offset int) ([]store.LedgerEntry, error)
}

type AdminHandlers struct {
	store    AdminStore
	accounts *appaccount.Service
}

func NewAdminHandlers(st AdminStore, accounts *appaccount.Service) *AdminHandlers {
	return &AdminHandlers{store: st, accounts: accounts}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.store.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "db": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "db": "up"})
	}
}

func (h *AdminHandlers) Balance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		bal, err := h.accounts.AdminBalance(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"account_id": id, "balance": bal})
	}
}

func (h *AdminHandlers) Adjust() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		var body struct {
			Delta int64 `json:"delta"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		bal, err := h.accounts.AdminAdjust(r.Context(), id, body.Delta, OperatorFromContext(r.Context()))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "balance": bal})
	}
}

func (h *AdminHandlers) SetBalance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		var body struct {
			Balance int64 `json:"balance"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		bal, err := h.accounts.AdminSet(r.Context(), id, body.Balance, OperatorFromContext(r.Context()))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "balance": bal})
	}
}

func (h *AdminHandlers) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := h.accounts.GlobalStats(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, st)
	}
}

func (h *AdminHandlers) Ledger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		q := r.URL.Query()
		f := store.LedgerFilter{Type: q.Get("type")}
		if v := q.Get("account_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
				return
			}
			f.AccountID = id
		}
		if v := q.Get("from"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.From = &t
			}
		}
		if v := q.Get("to"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.To = &t
			}
		}
		items, err := h.store.ListLedgerEntries(r.Context(), f, limit, offset)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

func (h *AdminHandlers) Broadcast() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Message string `json:"message"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := h.accounts.Broadcast(r.Context(), body.Message)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		metricBroadcastTotal.Add(1)
		writeJSON(w, res)
	}
}
