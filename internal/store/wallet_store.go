package store

import (
	"context"

	"playtomic/internal/models"
)

type WalletStore struct {
	db DB
}

func NewWalletStore(db DB) *WalletStore {
	return &WalletStore{db: db}
}

func (s *WalletStore) Create(ctx context.Context, tx Execer, id, userID string) error {
	query := `
		INSERT INTO wallets (id, user_id, balance)
		VALUES ($1, $2, 0)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := tx.ExecContext(ctx, query, id, userID)
	return err
}

func (s *WalletStore) GetByUser(ctx context.Context, userID string) (models.Wallet, error) {
	var row models.Wallet
	err := s.db.GetContext(ctx, &row, `
		SELECT id, user_id, balance, created_at
		FROM wallets
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return models.Wallet{}, err
	}
	return row, nil
}

// GetOrCreateForUpdate lazily creates the wallet for a user and returns the
// row locked for the remainder of the transaction. newID is used only when
// the wallet does not exist yet.
func (s *WalletStore) GetOrCreateForUpdate(ctx context.Context, tx Tx, newID, userID string) (models.Wallet, error) {
	if err := s.Create(ctx, tx, newID, userID); err != nil {
		return models.Wallet{}, err
	}
	var row models.Wallet
	err := tx.GetContext(ctx, &row, `
		SELECT id, user_id, balance, created_at
		FROM wallets
		WHERE user_id = $1
		FOR UPDATE
	`, userID)
	if err != nil {
		return models.Wallet{}, err
	}
	return row, nil
}

func (s *WalletStore) UpdateBalance(ctx context.Context, tx Execer, walletID string, balance int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE wallets
		SET balance = $1, updated_at = NOW()
		WHERE id = $2
	`, balance, walletID)
	return err
}
