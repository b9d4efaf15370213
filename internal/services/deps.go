package services

import (
	"context"
	"errors"

	"playtomic/internal/models"
	"playtomic/internal/store"
	"playtomic/internal/websocket"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidState      = errors.New("invalid state")
	ErrAlreadyJoined     = errors.New("already joined")
	ErrMatchFull         = errors.New("match is full")
)

type WalletStore interface {
	GetOrCreateForUpdate(ctx context.Context, tx store.Tx, newID, userID string) (models.Wallet, error)
	UpdateBalance(ctx context.Context, tx store.Execer, walletID string, balance int64) error
}

type WalletTransactionStore interface {
	Append(ctx context.Context, tx store.Execer, input store.WalletTransactionInput) error
}

type BookingStore interface {
	Create(ctx context.Context, tx store.Execer, input store.BookingInput) error
	GetForUpdate(ctx context.Context, tx store.Getter, bookingID string) (models.Booking, error)
	UpdateStatus(ctx context.Context, tx store.Execer, bookingID, status string) error
}

type PaymentStore interface {
	Create(ctx context.Context, tx store.Execer, input store.PaymentInput) error
	GetForUpdate(ctx context.Context, tx store.Getter, paymentID string) (models.Payment, error)
	UpdateStatus(ctx context.Context, tx store.Execer, paymentID, status string) error
}

type MatchStore interface {
	Create(ctx context.Context, tx store.Execer, input store.MatchInput) error
	GetForUpdate(ctx context.Context, tx store.Getter, matchID string) (models.Match, error)
	GetByInviteCodeForUpdate(ctx context.Context, tx store.Getter, inviteCode string) (models.Match, error)
	SetStatus(ctx context.Context, tx store.Execer, matchID, status string) error
	AddPlayer(ctx context.Context, tx store.Execer, matchID, userID string) error
	CountPlayers(ctx context.Context, tx store.Getter, matchID string) (int, error)
	IsPlayer(ctx context.Context, tx store.Getter, matchID, userID string) (bool, error)
}

type InviteStore interface {
	Create(ctx context.Context, tx store.Execer, id, matchID, userID string) error
	GetForUpdate(ctx context.Context, tx store.Getter, inviteID string) (models.MatchInvite, error)
	UpdateStatus(ctx context.Context, tx store.Execer, inviteID, status string) error
}

type NotificationStore interface {
	Insert(ctx context.Context, tx store.Execer, id, userID, message string) error
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
}

type BalanceHub interface {
	BroadcastBalance(userID string, update websocket.BalanceUpdate)
}

type RosterHub interface {
	BroadcastRoster(userID string, update websocket.RosterUpdate)
}
