package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"playtomic/internal/db"
	"playtomic/internal/money"
	"playtomic/internal/store"
	"playtomic/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type BookingService struct {
	txRunner db.TxRunner
	bookings BookingStore
	payments PaymentStore
	wallets  WalletStore
	entries  WalletTransactionStore
	audit    AuditStore
	hub      BalanceHub
}

func NewBookingService(txRunner db.TxRunner, bookings BookingStore, payments PaymentStore, wallets WalletStore, entries WalletTransactionStore, audit AuditStore, hub BalanceHub) *BookingService {
	return &BookingService{
		txRunner: txRunner,
		bookings: bookings,
		payments: payments,
		wallets:  wallets,
		entries:  entries,
		audit:    audit,
		hub:      hub,
	}
}

type CreateBookingRequest struct {
	UserID     string
	CourtID    int64
	CoachID    *int64
	StartTime  time.Time
	EndTime    time.Time
	PriceMinor int64
}

func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (string, error) {
	if req.PriceMinor < 0 {
		return "", ErrInvalidAmount
	}
	bookingID := uuid.NewString()
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.bookings.Create(ctx, tx, store.BookingInput{
			ID:        bookingID,
			UserID:    req.UserID,
			CourtID:   req.CourtID,
			CoachID:   req.CoachID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Price:     req.PriceMinor,
		}); err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]any{
			"court_id": req.CourtID,
			"price":    money.FormatMinor(req.PriceMinor),
		})
		return s.audit.Log(ctx, tx, req.UserID, "booking_create", "booking", bookingID, string(data))
	})
	if err != nil {
		return "", err
	}
	return bookingID, nil
}

// Cancel moves a pending booking to cancelled. Paid bookings must go through
// Refund so the settled payment is unwound with the status change.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) error {
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err := s.bookings.GetForUpdate(ctx, tx, bookingID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if booking.UserID != userID {
			return ErrForbidden
		}
		if booking.Status != "pending" {
			return ErrInvalidState
		}
		if err := s.bookings.UpdateStatus(ctx, tx, bookingID, "cancelled"); err != nil {
			return err
		}
		return s.audit.Log(ctx, tx, userID, "booking_cancel", "booking", bookingID, "{}")
	})
}

// Refund flips a paid payment to refunded and the booking to cancelled in one
// transaction. Wallet payments are credited back to the owner's wallet.
func (s *BookingService) Refund(ctx context.Context, userID, paymentID string) error {
	var refunded bool
	var balanceAfter int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		refunded = false
		payment, err := s.payments.GetForUpdate(ctx, tx, paymentID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if payment.Status != "paid" {
			return ErrInvalidState
		}
		booking, err := s.bookings.GetForUpdate(ctx, tx, payment.BookingID)
		if err != nil {
			return err
		}
		if booking.UserID != userID {
			return ErrForbidden
		}
		if err := s.payments.UpdateStatus(ctx, tx, paymentID, "refunded"); err != nil {
			return err
		}
		if err := s.bookings.UpdateStatus(ctx, tx, payment.BookingID, "cancelled"); err != nil {
			return err
		}
		if payment.Method == "wallet" {
			wallet, err := s.wallets.GetOrCreateForUpdate(ctx, tx, uuid.NewString(), booking.UserID)
			if err != nil {
				return err
			}
			newBalance := wallet.Balance + payment.Amount
			if err := s.wallets.UpdateBalance(ctx, tx, wallet.ID, newBalance); err != nil {
				return err
			}
			if err := s.entries.Append(ctx, tx, store.WalletTransactionInput{
				ID:       uuid.NewString(),
				WalletID: wallet.ID,
				Type:     "topup",
				Amount:   payment.Amount,
				Status:   "completed",
				Meta:     fmt.Sprintf("refund:%s", paymentID),
			}); err != nil {
				return err
			}
			refunded = true
			balanceAfter = newBalance
		}
		data, _ := json.Marshal(map[string]string{"booking_id": payment.BookingID})
		return s.audit.Log(ctx, tx, userID, "payment_refund", "payment", paymentID, string(data))
	})
	if err != nil {
		return err
	}
	if refunded {
		s.hub.BroadcastBalance(userID, websocket.BalanceUpdate{
			Balance: money.FormatMinor(balanceAfter),
		})
	}
	return nil
}
