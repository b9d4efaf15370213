package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"playtomic/internal/middleware"
	"playtomic/internal/money"
	"playtomic/internal/services"

	"github.com/go-chi/chi/v5"
)

type createBookingRequest struct {
	CourtID   int64  `json:"court_id"`
	CoachID   *int64 `json:"coach_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Price     string `json:"price"`
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.CourtID <= 0 {
		respondError(w, http.StatusBadRequest, "court_id is required")
		return
	}
	start, end, err := parseTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	priceMinor, err := parseAmountMinor(req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	bookingID, err := h.bookingService.Create(r.Context(), services.CreateBookingRequest{
		UserID:     userID,
		CourtID:    req.CourtID,
		CoachID:    req.CoachID,
		StartTime:  start,
		EndTime:    end,
		PriceMinor: priceMinor,
	})
	if err != nil {
		respondServiceError(w, err, "booking_failed")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"booking_id": bookingID})
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	limit, offset := parseLimitOffset(r)
	bookings, err := h.bookings.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load bookings")
		return
	}
	normalized := make([]map[string]any, 0, len(bookings))
	for _, booking := range bookings {
		normalized = append(normalized, map[string]any{
			"id":         booking.ID,
			"court_id":   booking.CourtID,
			"coach_id":   booking.CoachID,
			"start_time": booking.StartTime,
			"end_time":   booking.EndTime,
			"price":      money.FormatMinor(booking.Price),
			"status":     booking.Status,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	booking, err := h.bookings.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "booking not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load booking")
		return
	}
	if booking.UserID != userID {
		respondError(w, http.StatusNotFound, "booking not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":         booking.ID,
		"court_id":   booking.CourtID,
		"coach_id":   booking.CoachID,
		"start_time": booking.StartTime,
		"end_time":   booking.EndTime,
		"price":      money.FormatMinor(booking.Price),
		"status":     booking.Status,
	})
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.bookingService.Cancel(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err, "cancel_failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
