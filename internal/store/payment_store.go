package store

import (
	"context"

	"playtomic/internal/models"
)

type PaymentStore struct {
	db DB
}

func NewPaymentStore(db DB) *PaymentStore {
	return &PaymentStore{db: db}
}

type PaymentInput struct {
	ID        string
	BookingID string
	Amount    int64
	Status    string
	Method    string
}

func (s *PaymentStore) Create(ctx context.Context, tx Execer, input PaymentInput) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, status, method)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.BookingID, input.Amount, input.Status, input.Method,
	)
	return err
}

func (s *PaymentStore) GetByID(ctx context.Context, paymentID string) (models.Payment, error) {
	var row models.Payment
	err := s.db.GetContext(ctx, &row, `
		SELECT id, booking_id, amount, status, method, created_at
		FROM payments
		WHERE id = $1
	`, paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	return row, nil
}

func (s *PaymentStore) GetForUpdate(ctx context.Context, tx Getter, paymentID string) (models.Payment, error) {
	var row models.Payment
	err := tx.GetContext(ctx, &row, `
		SELECT id, booking_id, amount, status, method, created_at
		FROM payments
		WHERE id = $1
		FOR UPDATE
	`, paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	return row, nil
}

func (s *PaymentStore) UpdateStatus(ctx context.Context, tx Execer, paymentID, status string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE payments SET status = $1 WHERE id = $2
	`, status, paymentID)
	return err
}

// ListByUser returns payments for bookings owned by the user.
func (s *PaymentStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Payment, error) {
	var rows []models.Payment
	err := s.db.SelectContext(ctx, &rows, `
		SELECT p.id, p.booking_id, p.amount, p.status, p.method, p.created_at
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.user_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
