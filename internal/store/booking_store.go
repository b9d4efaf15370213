package store

import (
	"context"
	"time"

	"playtomic/internal/models"
)

type BookingStore struct {
	db DB
}

func NewBookingStore(db DB) *BookingStore {
	return &BookingStore{db: db}
}

type BookingInput struct {
	ID        string
	UserID    string
	CourtID   int64
	CoachID   *int64
	StartTime time.Time
	EndTime   time.Time
	Price     int64
}

func (s *BookingStore) Create(ctx context.Context, tx Execer, input BookingInput) error {
	query := `
		INSERT INTO bookings (id, user_id, court_id, coach_id, start_time, end_time, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.UserID, input.CourtID, input.CoachID,
		input.StartTime, input.EndTime, input.Price,
	)
	return err
}

func (s *BookingStore) GetByID(ctx context.Context, bookingID string) (models.Booking, error) {
	var row models.Booking
	err := s.db.GetContext(ctx, &row, `
		SELECT id, user_id, court_id, coach_id, start_time, end_time, price, status, created_at
		FROM bookings
		WHERE id = $1
	`, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	return row, nil
}

func (s *BookingStore) GetForUpdate(ctx context.Context, tx Getter, bookingID string) (models.Booking, error) {
	var row models.Booking
	err := tx.GetContext(ctx, &row, `
		SELECT id, user_id, court_id, coach_id, start_time, end_time, price, status, created_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	return row, nil
}

func (s *BookingStore) UpdateStatus(ctx context.Context, tx Execer, bookingID, status string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, bookingID)
	return err
}

func (s *BookingStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Booking, error) {
	var rows []models.Booking
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, court_id, coach_id, start_time, end_time, price, status, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *BookingStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM bookings WHERE user_id = $1
	`, userID)
	return count, err
}
