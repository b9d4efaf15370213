package store

import (
	"context"

	"playtomic/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

// GetOrCreateByPhone finds the user for a verified phone number, creating a
// fresh player account on first login. newID is used only on creation.
func (s *UserStore) GetOrCreateByPhone(ctx context.Context, tx Tx, newID, phone, role string) (models.User, error) {
	query := `
		INSERT INTO users (id, phone, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, query, newID, phone, role); err != nil {
		return models.User{}, err
	}
	var row models.User
	err := tx.GetContext(ctx, &row, `
		SELECT id, phone, role, created_at FROM users WHERE phone = $1
	`, phone)
	if err != nil {
		return models.User{}, err
	}
	return row, nil
}

func (s *UserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	var row models.User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, phone, role, created_at FROM users WHERE id = $1
	`, userID)
	if err != nil {
		return models.User{}, err
	}
	return row, nil
}

func (s *UserStore) GetByPhone(ctx context.Context, phone string) (models.User, error) {
	var row models.User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, phone, role, created_at FROM users WHERE phone = $1
	`, phone)
	if err != nil {
		return models.User{}, err
	}
	return row, nil
}
