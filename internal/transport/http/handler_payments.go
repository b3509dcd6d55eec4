package httptransport

import (
	"net/http"

	apppayment "star-casino/internal/app/payment"
)

type PaymentHandlers struct {
	svc *apppayment.Service
}

func NewPaymentHandlers(svc *apppayment.Service) *PaymentHandlers {
	return &PaymentHandlers{svc: svc}
}

func (h *PaymentHandlers) DepositLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		var body struct {
			Amount int64 `json:"amount"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		link, err := h.svc.CreateDepositLink(r.Context(), id, body.Amount)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, link)
	}
}

func (h *PaymentHandlers) PreCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Payload string `json:"payload"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := h.svc.ValidatePreCheckout(body.Payload); err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h *PaymentHandlers) Confirmed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID     int64  `json:"user_id"`
			Amount     int64  `json:"amount"`
			PaymentRef string `json:"payment_ref"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.UserID == 0 {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		res, err := h.svc.CreditDeposit(r.Context(), body.UserID, body.Amount, body.PaymentRef)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if res.Duplicate {
			metricDepositDuplicateTotal.Add(1)
		} else {
			metricDepositCreditedTotal.Add(1)
		}
		writeJSON(w, res)
	}
}

func (h *PaymentHandlers) Withdraw() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountIDParam(r)
		if !ok {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_account_id")
			return
		}
		var body struct {
			Amount    int64  `json:"amount"`
			UserLabel string `json:"user_label"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := h.svc.RequestWithdrawal(r.Context(), apppayment.WithdrawalInput{
			AccountID: id,
			Amount:    body.Amount,
			UserLabel: body.UserLabel,
		})
		if err != nil {
			metricWithdrawalErrors.Add(1)
			writeServiceError(w, r, err)
			return
		}
		metricWithdrawalTotal.Add(1)
		writeJSON(w, res)
	}
}
