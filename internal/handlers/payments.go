package handlers

import (
	"database/sql"
	"net/http"

	"playtomic/internal/middleware"
	"playtomic/internal/money"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	limit, offset := parseLimitOffset(r)
	payments, err := h.payments.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load payments")
		return
	}
	normalized := make([]map[string]any, 0, len(payments))
	for _, payment := range payments {
		normalized = append(normalized, map[string]any{
			"id":         payment.ID,
			"booking_id": payment.BookingID,
			"amount":     money.FormatMinor(payment.Amount),
			"status":     payment.Status,
			"method":     payment.Method,
			"created_at": payment.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	payment, err := h.payments.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "payment not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load payment")
		return
	}
	booking, err := h.bookings.GetByID(r.Context(), payment.BookingID)
	if err != nil || booking.UserID != userID {
		respondError(w, http.StatusNotFound, "payment not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":         payment.ID,
		"booking_id": payment.BookingID,
		"amount":     money.FormatMinor(payment.Amount),
		"status":     payment.Status,
		"method":     payment.Method,
		"created_at": payment.CreatedAt,
	})
}

func (h *Handler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.bookingService.Refund(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err, "refund_failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "refunded"})
}
