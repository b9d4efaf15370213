package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"playtomic/internal/models"
)

func TestMatchStoreCreate(t *testing.T) {
	ctx := context.Background()
	code := "9f2d1c0a"
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO matches") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 9 {
				t.Fatalf("expected 9 args, got %d", len(args))
			}
			if args[1] != "host-1" || args[6] != 4 || args[7] != false {
				t.Fatalf("unexpected args: %#v", args)
			}
			if ptr, ok := args[8].(*string); !ok || *ptr != code {
				t.Fatalf("unexpected invite code arg: %#v", args[8])
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewMatchStore(stubDB{})
	err := store.Create(ctx, execer, MatchInput{
		ID:         "match-1",
		HostID:     "host-1",
		MatchType:  "friendly",
		CourtID:    2,
		StartTime:  time.Now(),
		Capacity:   4,
		IsPublic:   false,
		InviteCode: &code,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMatchStoreGetForUpdateLocksRow(t *testing.T) {
	ctx := context.Background()
	tx := stubTx{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FOR UPDATE") {
				t.Fatalf("expected row lock, got: %s", query)
			}
			*dest.(*models.Match) = models.Match{ID: "match-1", Capacity: 4, Status: "open"}
			return nil
		},
	}
	store := NewMatchStore(stubDB{})
	match, err := store.GetForUpdate(ctx, tx, "match-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match.Capacity != 4 {
		t.Fatalf("unexpected match: %#v", match)
	}
}

func TestMatchStoreGetByInviteCodeForUpdateFiltersPrivate(t *testing.T) {
	ctx := context.Background()
	tx := stubTx{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "is_public = FALSE") {
				t.Fatalf("expected private filter, got: %s", query)
			}
			if args[0] != "code-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*models.Match) = models.Match{ID: "match-1", IsPublic: false}
			return nil
		},
	}
	store := NewMatchStore(stubDB{})
	if _, err := store.GetByInviteCodeForUpdate(ctx, tx, "code-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMatchStoreAddPlayer(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO match_players") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[0] != "match-1" || args[1] != "user-2" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewMatchStore(stubDB{})
	if err := store.AddPlayer(ctx, execer, "match-1", "user-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMatchStoreCountPlayers(t *testing.T) {
	ctx := context.Background()
	tx := stubTx{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM match_players") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*int) = 3
			return nil
		},
	}
	store := NewMatchStore(stubDB{})
	count, err := store.CountPlayers(ctx, tx, "match-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("unexpected count: %d", count)
	}
}

func TestMatchStoreListPublicOpen(t *testing.T) {
	ctx := context.Background()
	store := NewMatchStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "m.is_public = TRUE AND m.status = 'open'") {
				t.Fatalf("unexpected filter: %s", query)
			}
			*dest.(*[]MatchSummary) = []MatchSummary{{Match: models.Match{ID: "match-1"}, PlayerCount: 2}}
			return nil
		},
	})
	rows, err := store.ListPublicOpen(ctx, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].PlayerCount != 2 {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}
