package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"playtomic/internal/middleware"
	"playtomic/internal/services"

	"github.com/go-chi/chi/v5"
)

type createMatchRequest struct {
	Title     string `json:"title"`
	MatchType string `json:"match_type"`
	CourtID   int64  `json:"court_id"`
	StartTime string `json:"start_time"`
	IsPublic  bool   `json:"is_public"`
}

func capacityForType(matchType string) (int, bool) {
	switch matchType {
	case "singles":
		return 2, true
	case "doubles":
		return 4, true
	default:
		return 0, false
	}
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	capacity, ok := capacityForType(req.MatchType)
	if !ok {
		respondError(w, http.StatusBadRequest, "match_type must be singles or doubles")
		return
	}
	if req.CourtID <= 0 {
		respondError(w, http.StatusBadRequest, "court_id is required")
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid start_time")
		return
	}
	created, err := h.matchService.Create(r.Context(), services.CreateMatchRequest{
		HostID:    userID,
		Title:     req.Title,
		MatchType: req.MatchType,
		CourtID:   req.CourtID,
		StartTime: start,
		Capacity:  capacity,
		IsPublic:  req.IsPublic,
	})
	if err != nil {
		respondServiceError(w, err, "match_create_failed")
		return
	}
	payload := map[string]any{"match_id": created.ID}
	if created.InviteCode != nil {
		payload["invite_code"] = *created.InviteCode
	}
	respondJSON(w, http.StatusCreated, payload)
}

func (h *Handler) ListPublicMatches(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)
	matches, err := h.matches.ListPublicOpen(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load matches")
		return
	}
	normalized := make([]map[string]any, 0, len(matches))
	for _, match := range matches {
		normalized = append(normalized, map[string]any{
			"id":           match.ID,
			"title":        match.Title,
			"match_type":   match.MatchType,
			"court_id":     match.CourtID,
			"start_time":   match.StartTime,
			"capacity":     match.Capacity,
			"player_count": match.PlayerCount,
			"status":       match.Status,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	match, err := h.matches.GetByID(r.Context(), matchID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "match not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load match")
		return
	}
	players, err := h.matches.ListPlayers(r.Context(), matchID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load match")
		return
	}
	// invite codes stay hidden from non-hosts
	payload := map[string]any{
		"id":         match.ID,
		"host_id":    match.HostID,
		"title":      match.Title,
		"match_type": match.MatchType,
		"court_id":   match.CourtID,
		"start_time": match.StartTime,
		"capacity":   match.Capacity,
		"status":     match.Status,
		"is_public":  match.IsPublic,
		"players":    players,
	}
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok && userID == match.HostID && match.InviteCode != nil {
		payload["invite_code"] = *match.InviteCode
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *Handler) JoinMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.matchService.JoinPublic(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		respondServiceError(w, err, "join_failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "joined"})
}

type inviteRequest struct {
	InviteCode string `json:"invite_code"`
}

func (h *Handler) RequestInvite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.InviteCode == "" {
		respondError(w, http.StatusBadRequest, "invite_code is required")
		return
	}
	inviteID, err := h.matchService.RequestInvite(r.Context(), req.InviteCode, userID)
	if err != nil {
		respondServiceError(w, err, "invite_failed")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"invite_id": inviteID})
}

type respondInviteRequest struct {
	Action string `json:"action"`
}

func (h *Handler) RespondInvite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req respondInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Action != "accept" && req.Action != "reject" {
		respondError(w, http.StatusBadRequest, "action must be accept or reject")
		return
	}
	if err := h.matchService.RespondInvite(r.Context(), chi.URLParam(r, "id"), userID, req.Action); err != nil {
		respondServiceError(w, err, "invite_response_failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": req.Action + "ed"})
}

func (h *Handler) CloseMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.matchService.Close(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		respondServiceError(w, err, "close_failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}
