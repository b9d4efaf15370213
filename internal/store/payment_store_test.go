package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"playtomic/internal/models"
)

func TestPaymentStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO payments") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[1] != "bk-1" || args[2] != int64(6000) || args[3] != "paid" || args[4] != "wallet" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewPaymentStore(stubDB{})
	err := store.Create(ctx, execer, PaymentInput{
		ID:        "pay-1",
		BookingID: "bk-1",
		Amount:    6000,
		Status:    "paid",
		Method:    "wallet",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPaymentStoreGetForUpdate(t *testing.T) {
	ctx := context.Background()
	tx := stubTx{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FOR UPDATE") {
				t.Fatalf("expected row lock, got: %s", query)
			}
			*dest.(*models.Payment) = models.Payment{ID: "pay-1", BookingID: "bk-1", Status: "paid"}
			return nil
		},
	}
	store := NewPaymentStore(stubDB{})
	payment, err := store.GetForUpdate(ctx, tx, "pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Status != "paid" {
		t.Fatalf("unexpected payment: %#v", payment)
	}
}

func TestPaymentStoreListByUserScopesToOwner(t *testing.T) {
	ctx := context.Background()
	store := NewPaymentStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "JOIN bookings b ON b.id = p.booking_id") {
				t.Fatalf("expected booking join, got: %s", query)
			}
			if args[0] != "user-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*[]models.Payment) = []models.Payment{{ID: "pay-1"}}
			return nil
		},
	})
	rows, err := store.ListByUser(ctx, "user-1", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}
