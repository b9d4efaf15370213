package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"playtomic/internal/models"
)

func TestBookingStoreCreateStartsPending(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO bookings") {
				t.Fatalf("unexpected query: %s", query)
			}
			if !strings.Contains(query, "'pending'") {
				t.Fatalf("expected pending status in insert: %s", query)
			}
			if len(args) != 7 {
				t.Fatalf("expected 7 args, got %d", len(args))
			}
			if args[1] != "user-1" || args[2] != int64(3) || args[6] != int64(6000) {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewBookingStore(stubDB{})
	err := store.Create(ctx, execer, BookingInput{
		ID:        "bk-1",
		UserID:    "user-1",
		CourtID:   3,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Price:     6000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBookingStoreGetForUpdate(t *testing.T) {
	ctx := context.Background()
	tx := stubTx{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FOR UPDATE") {
				t.Fatalf("expected row lock, got: %s", query)
			}
			*dest.(*models.Booking) = models.Booking{ID: "bk-1", Status: "pending", Price: 6000}
			return nil
		},
	}
	store := NewBookingStore(stubDB{})
	booking, err := store.GetForUpdate(ctx, tx, "bk-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != "pending" || booking.Price != 6000 {
		t.Fatalf("unexpected booking: %#v", booking)
	}
}

func TestBookingStoreUpdateStatus(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "UPDATE bookings") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[0] != "paid" || args[1] != "bk-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewBookingStore(stubDB{})
	if err := store.UpdateStatus(ctx, execer, "bk-1", "paid"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBookingStoreCountByUser(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "COUNT(*)") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*int64) = 12
			return nil
		},
	})
	count, err := store.CountByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 12 {
		t.Fatalf("unexpected count: %d", count)
	}
}
