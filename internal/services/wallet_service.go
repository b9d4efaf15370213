package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"playtomic/internal/db"
	"playtomic/internal/money"
	"playtomic/internal/store"
	"playtomic/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type WalletService struct {
	txRunner db.TxRunner
	wallets  WalletStore
	entries  WalletTransactionStore
	bookings BookingStore
	payments PaymentStore
	audit    AuditStore
	hub      BalanceHub
}

func NewWalletService(txRunner db.TxRunner, wallets WalletStore, entries WalletTransactionStore, bookings BookingStore, payments PaymentStore, audit AuditStore, hub BalanceHub) *WalletService {
	return &WalletService{
		txRunner: txRunner,
		wallets:  wallets,
		entries:  entries,
		bookings: bookings,
		payments: payments,
		audit:    audit,
		hub:      hub,
	}
}

// TopUp credits the wallet and records a completed topup transaction.
func (s *WalletService) TopUp(ctx context.Context, userID string, amountMinor int64) (string, error) {
	if amountMinor <= 0 {
		return "", ErrInvalidAmount
	}
	var transactionID string
	var balanceAfter int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		wallet, err := s.wallets.GetOrCreateForUpdate(ctx, tx, uuid.NewString(), userID)
		if err != nil {
			return err
		}
		newBalance := wallet.Balance + amountMinor
		if err := s.wallets.UpdateBalance(ctx, tx, wallet.ID, newBalance); err != nil {
			return err
		}
		transactionID = uuid.NewString()
		if err := s.entries.Append(ctx, tx, store.WalletTransactionInput{
			ID:       transactionID,
			WalletID: wallet.ID,
			Type:     "topup",
			Amount:   amountMinor,
			Status:   "completed",
		}); err != nil {
			return err
		}
		balanceAfter = newBalance
		data, _ := json.Marshal(map[string]string{"transaction_id": transactionID})
		return s.audit.Log(ctx, tx, userID, "wallet_topup", "wallet_transaction", transactionID, string(data))
	})
	if err != nil {
		return "", err
	}
	s.hub.BroadcastBalance(userID, websocket.BalanceUpdate{
		Balance: money.FormatMinor(balanceAfter),
	})
	return transactionID, nil
}

// Withdraw debits the wallet. The balance check and the debit run under the
// wallet row lock, so concurrent debits cannot both observe the old balance.
func (s *WalletService) Withdraw(ctx context.Context, userID string, amountMinor int64) (string, error) {
	if amountMinor <= 0 {
		return "", ErrInvalidAmount
	}
	var transactionID string
	var balanceAfter int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		wallet, err := s.wallets.GetOrCreateForUpdate(ctx, tx, uuid.NewString(), userID)
		if err != nil {
			return err
		}
		if wallet.Balance < amountMinor {
			return ErrInsufficientFunds
		}
		newBalance := wallet.Balance - amountMinor
		if err := s.wallets.UpdateBalance(ctx, tx, wallet.ID, newBalance); err != nil {
			return err
		}
		transactionID = uuid.NewString()
		if err := s.entries.Append(ctx, tx, store.WalletTransactionInput{
			ID:       transactionID,
			WalletID: wallet.ID,
			Type:     "withdraw",
			Amount:   amountMinor,
			Status:   "completed",
		}); err != nil {
			return err
		}
		balanceAfter = newBalance
		data, _ := json.Marshal(map[string]string{"transaction_id": transactionID})
		return s.audit.Log(ctx, tx, userID, "wallet_withdraw", "wallet_transaction", transactionID, string(data))
	})
	if err != nil {
		return "", err
	}
	s.hub.BroadcastBalance(userID, websocket.BalanceUpdate{
		Balance: money.FormatMinor(balanceAfter),
	})
	return transactionID, nil
}

// PayBooking settles a pending booking from the owner's wallet: debit, wallet
// transaction, payment record and booking transition commit together or not
// at all.
func (s *WalletService) PayBooking(ctx context.Context, userID, bookingID string) (string, error) {
	var paymentID string
	var balanceAfter int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err := s.bookings.GetForUpdate(ctx, tx, bookingID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if booking.UserID != userID {
			// the booking exists but is not the caller's; do not reveal it
			return ErrNotFound
		}
		if booking.Status != "pending" {
			return ErrInvalidState
		}
		wallet, err := s.wallets.GetOrCreateForUpdate(ctx, tx, uuid.NewString(), userID)
		if err != nil {
			return err
		}
		if wallet.Balance < booking.Price {
			return ErrInsufficientFunds
		}
		newBalance := wallet.Balance - booking.Price
		if err := s.wallets.UpdateBalance(ctx, tx, wallet.ID, newBalance); err != nil {
			return err
		}
		if err := s.entries.Append(ctx, tx, store.WalletTransactionInput{
			ID:       uuid.NewString(),
			WalletID: wallet.ID,
			Type:     "payment",
			Amount:   booking.Price,
			Status:   "completed",
			Meta:     fmt.Sprintf("bookingId:%s", bookingID),
		}); err != nil {
			return err
		}
		paymentID = uuid.NewString()
		if err := s.payments.Create(ctx, tx, store.PaymentInput{
			ID:        paymentID,
			BookingID: bookingID,
			Amount:    booking.Price,
			Status:    "paid",
			Method:    "wallet",
		}); err != nil {
			return err
		}
		if err := s.bookings.UpdateStatus(ctx, tx, bookingID, "paid"); err != nil {
			return err
		}
		balanceAfter = newBalance
		data, _ := json.Marshal(map[string]string{
			"booking_id": bookingID,
			"payment_id": paymentID,
		})
		return s.audit.Log(ctx, tx, userID, "wallet_pay_booking", "payment", paymentID, string(data))
	})
	if err != nil {
		return "", err
	}
	s.hub.BroadcastBalance(userID, websocket.BalanceUpdate{
		Balance: money.FormatMinor(balanceAfter),
	})
	return paymentID, nil
}
