package store

import (
	"context"

	"playtomic/internal/models"
)

type WalletTransactionStore struct {
	db DB
}

func NewWalletTransactionStore(db DB) *WalletTransactionStore {
	return &WalletTransactionStore{db: db}
}

type WalletTransactionInput struct {
	ID       string
	WalletID string
	Type     string
	Amount   int64
	Status   string
	Meta     string
}

// Append inserts an immutable transaction record. Rows are never updated or
// deleted; the wallet balance must always equal the signed sum of its rows.
func (s *WalletTransactionStore) Append(ctx context.Context, tx Execer, input WalletTransactionInput) error {
	query := `
		INSERT INTO wallet_transactions (id, wallet_id, type, amount, status, meta)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.WalletID, input.Type, input.Amount, input.Status, input.Meta,
	)
	return err
}

func (s *WalletTransactionStore) ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]models.WalletTransaction, error) {
	var rows []models.WalletTransaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, wallet_id, type, amount, status, meta, created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, walletID, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SumByWallet returns the signed sum of completed transactions: topups count
// positive, withdrawals and payments negative. Used for reconciliation against
// the stored balance.
func (s *WalletTransactionStore) SumByWallet(ctx context.Context, walletID string) (int64, error) {
	var sum int64
	err := s.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(CASE WHEN type = 'topup' THEN amount ELSE -amount END), 0)
		FROM wallet_transactions
		WHERE wallet_id = $1 AND status = 'completed'
	`, walletID)
	return sum, err
}
