package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"playtomic/internal/db"
	"playtomic/internal/models"
	"playtomic/internal/store"
	"playtomic/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MatchService struct {
	txRunner      db.TxRunner
	matches       MatchStore
	invites       InviteStore
	notifications NotificationStore
	audit         AuditStore
	hub           RosterHub
}

func NewMatchService(txRunner db.TxRunner, matches MatchStore, invites InviteStore, notifications NotificationStore, audit AuditStore, hub RosterHub) *MatchService {
	return &MatchService{
		txRunner:      txRunner,
		matches:       matches,
		invites:       invites,
		notifications: notifications,
		audit:         audit,
		hub:           hub,
	}
}

type CreateMatchRequest struct {
	HostID    string
	Title     string
	MatchType string
	CourtID   int64
	StartTime time.Time
	Capacity  int
	IsPublic  bool
}

type CreatedMatch struct {
	ID         string
	InviteCode *string
}

// Create opens a match with the host as its first player. Private matches get
// an unguessable invite code.
func (s *MatchService) Create(ctx context.Context, req CreateMatchRequest) (CreatedMatch, error) {
	matchID := uuid.NewString()
	var inviteCode *string
	if !req.IsPublic {
		code := uuid.NewString()
		inviteCode = &code
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.matches.Create(ctx, tx, store.MatchInput{
			ID:         matchID,
			HostID:     req.HostID,
			Title:      req.Title,
			MatchType:  req.MatchType,
			CourtID:    req.CourtID,
			StartTime:  req.StartTime,
			Capacity:   req.Capacity,
			IsPublic:   req.IsPublic,
			InviteCode: inviteCode,
		}); err != nil {
			return err
		}
		if err := s.matches.AddPlayer(ctx, tx, matchID, req.HostID); err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]any{"capacity": req.Capacity, "public": req.IsPublic})
		return s.audit.Log(ctx, tx, req.HostID, "match_create", "match", matchID, string(data))
	})
	if err != nil {
		return CreatedMatch{}, err
	}
	return CreatedMatch{ID: matchID, InviteCode: inviteCode}, nil
}

// JoinPublic adds a player to an open public match. The capacity check and the
// roster insert happen under the match row lock, so concurrent joins cannot
// overrun the capacity.
func (s *MatchService) JoinPublic(ctx context.Context, matchID, userID string) error {
	var match models.Match
	var playerCount int
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		match, err = s.matches.GetForUpdate(ctx, tx, matchID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if !match.IsPublic || match.Status != "open" {
			return ErrInvalidState
		}
		joined, err := s.matches.IsPlayer(ctx, tx, matchID, userID)
		if err != nil {
			return err
		}
		if joined {
			return ErrAlreadyJoined
		}
		count, err := s.matches.CountPlayers(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if count >= match.Capacity {
			return ErrMatchFull
		}
		if err := s.matches.AddPlayer(ctx, tx, matchID, userID); err != nil {
			return err
		}
		playerCount = count + 1
		if err := s.notifications.Insert(ctx, tx, uuid.NewString(), match.HostID,
			fmt.Sprintf("A player joined your match %s", matchID)); err != nil {
			return err
		}
		return s.audit.Log(ctx, tx, userID, "match_join", "match", matchID, "{}")
	})
	if err != nil {
		return err
	}
	s.hub.BroadcastRoster(match.HostID, websocket.RosterUpdate{
		MatchID:     matchID,
		PlayerCount: playerCount,
		Capacity:    match.Capacity,
	})
	return nil
}

// RequestInvite records a pending join request against a private match
// resolved by its invite code.
func (s *MatchService) RequestInvite(ctx context.Context, inviteCode, userID string) (string, error) {
	inviteID := uuid.NewString()
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		match, err := s.matches.GetByInviteCodeForUpdate(ctx, tx, inviteCode)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if match.Status != "open" {
			return ErrInvalidState
		}
		if err := s.invites.Create(ctx, tx, inviteID, match.ID, userID); err != nil {
			return err
		}
		if err := s.notifications.Insert(ctx, tx, uuid.NewString(), match.HostID,
			fmt.Sprintf("New join request for your match %s", match.ID)); err != nil {
			return err
		}
		return s.audit.Log(ctx, tx, userID, "match_invite_request", "match_invite", inviteID, "{}")
	})
	if err != nil {
		return "", err
	}
	return inviteID, nil
}

// RespondInvite lets the host accept or reject a pending join request.
// Acceptance re-checks capacity under the match lock; a full match fails with
// ErrMatchFull and the rollback leaves the invite pending, so the host can
// retry after a slot frees up.
func (s *MatchService) RespondInvite(ctx context.Context, inviteID, hostID, action string) error {
	var match models.Match
	var playerCount int
	var accepted bool
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		accepted = false
		invite, err := s.invites.GetForUpdate(ctx, tx, inviteID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		match, err = s.matches.GetForUpdate(ctx, tx, invite.MatchID)
		if err != nil {
			return err
		}
		if match.HostID != hostID {
			return ErrForbidden
		}
		if invite.Status != "pending" {
			return ErrInvalidState
		}
		switch action {
		case "accept":
			if match.Status != "open" {
				return ErrInvalidState
			}
			joined, err := s.matches.IsPlayer(ctx, tx, invite.MatchID, invite.UserID)
			if err != nil {
				return err
			}
			if !joined {
				count, err := s.matches.CountPlayers(ctx, tx, invite.MatchID)
				if err != nil {
					return err
				}
				if count >= match.Capacity {
					return ErrMatchFull
				}
				if err := s.matches.AddPlayer(ctx, tx, invite.MatchID, invite.UserID); err != nil {
					return err
				}
				playerCount = count + 1
			}
			if err := s.invites.UpdateStatus(ctx, tx, inviteID, "accepted"); err != nil {
				return err
			}
			accepted = true
			if err := s.notifications.Insert(ctx, tx, uuid.NewString(), invite.UserID,
				fmt.Sprintf("Your request to join match %s was accepted", invite.MatchID)); err != nil {
				return err
			}
		case "reject":
			if err := s.invites.UpdateStatus(ctx, tx, inviteID, "rejected"); err != nil {
				return err
			}
			if err := s.notifications.Insert(ctx, tx, uuid.NewString(), invite.UserID,
				fmt.Sprintf("Your request to join match %s was rejected", invite.MatchID)); err != nil {
				return err
			}
		default:
			return ErrInvalidState
		}
		data, _ := json.Marshal(map[string]string{"action": action})
		return s.audit.Log(ctx, tx, hostID, "match_invite_respond", "match_invite", inviteID, string(data))
	})
	if err != nil {
		return err
	}
	if accepted && playerCount > 0 {
		s.hub.BroadcastRoster(hostID, websocket.RosterUpdate{
			MatchID:     match.ID,
			PlayerCount: playerCount,
			Capacity:    match.Capacity,
		})
	}
	return nil
}

// Close stops further joins and invite acceptances.
func (s *MatchService) Close(ctx context.Context, matchID, hostID string) error {
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		match, err := s.matches.GetForUpdate(ctx, tx, matchID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if match.HostID != hostID {
			return ErrForbidden
		}
		if err := s.matches.SetStatus(ctx, tx, matchID, "closed"); err != nil {
			return err
		}
		return s.audit.Log(ctx, tx, hostID, "match_close", "match", matchID, "{}")
	})
}
