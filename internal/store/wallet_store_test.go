package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"playtomic/internal/models"
)

func TestWalletStoreCreateIsUpsert(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO wallets") {
				t.Fatalf("unexpected query: %s", query)
			}
			if !strings.Contains(query, "ON CONFLICT (user_id) DO NOTHING") {
				t.Fatalf("expected lazy-create upsert, got: %s", query)
			}
			if len(args) != 2 || args[0] != "wal-1" || args[1] != "user-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewWalletStore(stubDB{})
	if err := store.Create(ctx, execer, "wal-1", "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWalletStoreGetOrCreateForUpdateLocksRow(t *testing.T) {
	ctx := context.Background()
	var locked bool
	tx := stubTx{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FOR UPDATE") {
				t.Fatalf("expected row lock, got: %s", query)
			}
			if len(args) != 1 || args[0] != "user-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			locked = true
			*dest.(*models.Wallet) = models.Wallet{ID: "wal-1", UserID: "user-1", Balance: 10000}
			return nil
		},
	}
	store := NewWalletStore(stubDB{})
	wallet, err := store.GetOrCreateForUpdate(ctx, tx, "wal-new", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !locked {
		t.Fatalf("expected locking select")
	}
	if wallet.ID != "wal-1" || wallet.Balance != 10000 {
		t.Fatalf("unexpected wallet: %#v", wallet)
	}
}

func TestWalletStoreUpdateBalance(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "UPDATE wallets") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[0] != int64(4000) || args[1] != "wal-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewWalletStore(stubDB{})
	if err := store.UpdateBalance(ctx, execer, "wal-1", 4000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWalletStoreGetByUser(t *testing.T) {
	ctx := context.Background()
	store := NewWalletStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM wallets") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*models.Wallet) = models.Wallet{ID: "wal-1", UserID: "user-1"}
			return nil
		},
	})
	wallet, err := store.GetByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wallet.ID != "wal-1" {
		t.Fatalf("unexpected wallet: %#v", wallet)
	}
}
