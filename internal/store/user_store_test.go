package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"playtomic/internal/models"
)

func TestUserStoreGetOrCreateByPhone(t *testing.T) {
	ctx := context.Background()
	var inserted bool
	tx := stubTx{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "ON CONFLICT (phone) DO NOTHING") {
				t.Fatalf("expected upsert, got: %s", query)
			}
			if args[1] != "+15551234567" || args[2] != "player" {
				t.Fatalf("unexpected args: %#v", args)
			}
			inserted = true
			return stubResult{rows: 1}, nil
		},
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			*dest.(*models.User) = models.User{ID: "user-1", Phone: "+15551234567", Role: "player"}
			return nil
		},
	}
	store := NewUserStore(stubDB{})
	user, err := store.GetOrCreateByPhone(ctx, tx, "user-new", "+15551234567", "player")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inserted {
		t.Fatalf("expected insert attempt")
	}
	if user.ID != "user-1" {
		t.Fatalf("unexpected user: %#v", user)
	}
}

func TestUserStoreGetByID(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM users WHERE id = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*models.User) = models.User{ID: "user-1", Role: "coach"}
			return nil
		},
	})
	user, err := store.GetByID(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != "coach" {
		t.Fatalf("unexpected user: %#v", user)
	}
}
