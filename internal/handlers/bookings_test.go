package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"playtomic/internal/models"
	"playtomic/internal/services"
)

func TestCreateBookingRejectsBackwardsRange(t *testing.T) {
	handler := newTestHandler(handlerDeps{
		bookingService: stubBookingService{
			createFn: func(context.Context, services.CreateBookingRequest) (string, error) {
				t.Fatalf("service should not be called")
				return "", nil
			},
		},
	})
	body := `{"court_id":1,"start_time":"2026-09-01T11:00:00Z","end_time":"2026-09-01T10:00:00Z","price":"20.00"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	rr := serveWithAuth(t, http.HandlerFunc(handler.CreateBooking), req, "user-1")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateBookingPassesPriceMinor(t *testing.T) {
	var got services.CreateBookingRequest
	handler := newTestHandler(handlerDeps{
		bookingService: stubBookingService{
			createFn: func(_ context.Context, req services.CreateBookingRequest) (string, error) {
				got = req
				return "booking-1", nil
			},
		},
	})
	body := `{"court_id":3,"start_time":"2026-09-01T10:00:00Z","end_time":"2026-09-01T11:00:00Z","price":"20.00"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	rr := serveWithAuth(t, http.HandlerFunc(handler.CreateBooking), req, "user-1")
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if got.UserID != "user-1" || got.CourtID != 3 || got.PriceMinor != 2000 {
		t.Fatalf("unexpected request: %+v", got)
	}
}

func TestGetBookingHidesOtherUsers(t *testing.T) {
	handler := newTestHandler(handlerDeps{
		bookings: stubBookingStore{
			getByIDFn: func(_ context.Context, bookingID string) (models.Booking, error) {
				return models.Booking{ID: bookingID, UserID: "someone-else"}, nil
			},
		},
	})
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/bookings/booking-1", nil), "id", "booking-1")
	rr := serveWithAuth(t, http.HandlerFunc(handler.GetBooking), req, "user-1")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestCancelBookingInvalidState(t *testing.T) {
	handler := newTestHandler(handlerDeps{
		bookingService: stubBookingService{
			cancelFn: func(context.Context, string, string) error { return services.ErrInvalidState },
		},
	})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/bookings/booking-1/cancel", nil), "id", "booking-1")
	rr := serveWithAuth(t, http.HandlerFunc(handler.CancelBooking), req, "user-1")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestRefundPaymentForbidden(t *testing.T) {
	handler := newTestHandler(handlerDeps{
		bookingService: stubBookingService{
			refundFn: func(context.Context, string, string) error { return services.ErrForbidden },
		},
	})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/payments/payment-1/refund", nil), "id", "payment-1")
	rr := serveWithAuth(t, http.HandlerFunc(handler.RefundPayment), req, "user-1")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}
