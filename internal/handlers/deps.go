package handlers

import (
	"context"

	"playtomic/internal/models"
	"playtomic/internal/services"
	"playtomic/internal/store"
)

type UserStore interface {
	GetOrCreateByPhone(ctx context.Context, tx store.Tx, newID, phone, role string) (models.User, error)
	GetByID(ctx context.Context, userID string) (models.User, error)
}

type WalletStore interface {
	Create(ctx context.Context, tx store.Execer, id, userID string) error
	GetByUser(ctx context.Context, userID string) (models.Wallet, error)
}

type WalletTransactionStore interface {
	ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]models.WalletTransaction, error)
	SumByWallet(ctx context.Context, walletID string) (int64, error)
}

type BookingStore interface {
	GetByID(ctx context.Context, bookingID string) (models.Booking, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Booking, error)
}

type PaymentStore interface {
	GetByID(ctx context.Context, paymentID string) (models.Payment, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Payment, error)
}

type MatchStore interface {
	GetByID(ctx context.Context, matchID string) (models.Match, error)
	ListPublicOpen(ctx context.Context, limit, offset int) ([]store.MatchSummary, error)
	ListPlayers(ctx context.Context, matchID string) ([]string, error)
}

type NotificationStore interface {
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error)
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
}

type WalletService interface {
	TopUp(ctx context.Context, userID string, amountMinor int64) (string, error)
	Withdraw(ctx context.Context, userID string, amountMinor int64) (string, error)
	PayBooking(ctx context.Context, userID, bookingID string) (string, error)
}

type BookingService interface {
	Create(ctx context.Context, req services.CreateBookingRequest) (string, error)
	Cancel(ctx context.Context, userID, bookingID string) error
	Refund(ctx context.Context, userID, paymentID string) error
}

type MatchService interface {
	Create(ctx context.Context, req services.CreateMatchRequest) (services.CreatedMatch, error)
	JoinPublic(ctx context.Context, matchID, userID string) error
	RequestInvite(ctx context.Context, inviteCode, userID string) (string, error)
	RespondInvite(ctx context.Context, inviteID, hostID, action string) error
	Close(ctx context.Context, matchID, hostID string) error
}

type LevelService interface {
	ForUser(ctx context.Context, userID string) (services.Level, error)
}

type OTPStore interface {
	Put(ctx context.Context, phone, codeHash string) error
	Take(ctx context.Context, phone string) (string, error)
}

// SMSSender delivers one-time codes. The default implementation just logs;
// a real gateway slots in behind the same interface.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}
