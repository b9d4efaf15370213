package store

import (
	"context"
	"time"

	"playtomic/internal/models"
)

type MatchStore struct {
	db DB
}

func NewMatchStore(db DB) *MatchStore {
	return &MatchStore{db: db}
}

type MatchInput struct {
	ID         string
	HostID     string
	Title      string
	MatchType  string
	CourtID    int64
	StartTime  time.Time
	Capacity   int
	IsPublic   bool
	InviteCode *string
}

func (s *MatchStore) Create(ctx context.Context, tx Execer, input MatchInput) error {
	query := `
		INSERT INTO matches (id, host_id, title, match_type, court_id, start_time, capacity, status, is_public, invite_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'open', $8, $9)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.HostID, input.Title, input.MatchType, input.CourtID,
		input.StartTime, input.Capacity, input.IsPublic, input.InviteCode,
	)
	return err
}

func (s *MatchStore) GetByID(ctx context.Context, matchID string) (models.Match, error) {
	var row models.Match
	err := s.db.GetContext(ctx, &row, `
		SELECT id, host_id, title, match_type, court_id, start_time, capacity, status, is_public, invite_code, created_at
		FROM matches
		WHERE id = $1
	`, matchID)
	if err != nil {
		return models.Match{}, err
	}
	return row, nil
}

// GetForUpdate locks the match row; the roster capacity check and the player
// insert must happen under this lock.
func (s *MatchStore) GetForUpdate(ctx context.Context, tx Getter, matchID string) (models.Match, error) {
	var row models.Match
	err := tx.GetContext(ctx, &row, `
		SELECT id, host_id, title, match_type, court_id, start_time, capacity, status, is_public, invite_code, created_at
		FROM matches
		WHERE id = $1
		FOR UPDATE
	`, matchID)
	if err != nil {
		return models.Match{}, err
	}
	return row, nil
}

func (s *MatchStore) GetByInviteCodeForUpdate(ctx context.Context, tx Getter, inviteCode string) (models.Match, error) {
	var row models.Match
	err := tx.GetContext(ctx, &row, `
		SELECT id, host_id, title, match_type, court_id, start_time, capacity, status, is_public, invite_code, created_at
		FROM matches
		WHERE invite_code = $1 AND is_public = FALSE
		FOR UPDATE
	`, inviteCode)
	if err != nil {
		return models.Match{}, err
	}
	return row, nil
}

func (s *MatchStore) SetStatus(ctx context.Context, tx Execer, matchID, status string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE matches SET status = $1 WHERE id = $2
	`, status, matchID)
	return err
}

func (s *MatchStore) AddPlayer(ctx context.Context, tx Execer, matchID, userID string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO match_players (match_id, user_id)
		VALUES ($1, $2)
	`, matchID, userID)
	return err
}

func (s *MatchStore) CountPlayers(ctx context.Context, tx Getter, matchID string) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM match_players WHERE match_id = $1
	`, matchID)
	return count, err
}

func (s *MatchStore) IsPlayer(ctx context.Context, tx Getter, matchID, userID string) (bool, error) {
	var exists bool
	err := tx.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM match_players WHERE match_id = $1 AND user_id = $2)
	`, matchID, userID)
	return exists, err
}

func (s *MatchStore) ListPlayers(ctx context.Context, matchID string) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids, `
		SELECT user_id FROM match_players WHERE match_id = $1 ORDER BY joined_at
	`, matchID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

type MatchSummary struct {
	models.Match
	PlayerCount int `db:"player_count" json:"player_count"`
}

func (s *MatchStore) ListPublicOpen(ctx context.Context, limit, offset int) ([]MatchSummary, error) {
	var rows []MatchSummary
	err := s.db.SelectContext(ctx, &rows, `
		SELECT m.id, m.host_id, m.title, m.match_type, m.court_id, m.start_time,
		       m.capacity, m.status, m.is_public, m.created_at,
		       COUNT(p.user_id) AS player_count
		FROM matches m
		LEFT JOIN match_players p ON p.match_id = m.id
		WHERE m.is_public = TRUE AND m.status = 'open'
		GROUP BY m.id
		ORDER BY m.start_time
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
