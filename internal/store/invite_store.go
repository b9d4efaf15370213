package store

import (
	"context"

	"playtomic/internal/models"
)

type InviteStore struct {
	db DB
}

func NewInviteStore(db DB) *InviteStore {
	return &InviteStore{db: db}
}

func (s *InviteStore) Create(ctx context.Context, tx Execer, id, matchID, userID string) error {
	query := `
		INSERT INTO match_invites (id, match_id, user_id, status)
		VALUES ($1, $2, $3, 'pending')
	`
	_, err := tx.ExecContext(ctx, query, id, matchID, userID)
	return err
}

func (s *InviteStore) GetForUpdate(ctx context.Context, tx Getter, inviteID string) (models.MatchInvite, error) {
	var row models.MatchInvite
	err := tx.GetContext(ctx, &row, `
		SELECT id, match_id, user_id, status, created_at
		FROM match_invites
		WHERE id = $1
		FOR UPDATE
	`, inviteID)
	if err != nil {
		return models.MatchInvite{}, err
	}
	return row, nil
}

func (s *InviteStore) UpdateStatus(ctx context.Context, tx Execer, inviteID, status string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE match_invites SET status = $1 WHERE id = $2
	`, status, inviteID)
	return err
}

func (s *InviteStore) ListByMatch(ctx context.Context, matchID string) ([]models.MatchInvite, error) {
	var rows []models.MatchInvite
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, match_id, user_id, status, created_at
		FROM match_invites
		WHERE match_id = $1
		ORDER BY created_at
	`, matchID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
