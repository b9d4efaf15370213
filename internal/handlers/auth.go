package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"playtomic/internal/auth"
	"playtomic/internal/otp"
	"playtomic/internal/validator"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type requestOTPRequest struct {
	Phone string `json:"phone"`
}

// RequestOTP starts a phone login. The code itself only ever leaves the
// process through the SMS sender; Redis stores a bcrypt hash with a TTL.
func (h *Handler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidatePhone(req.Phone); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	code, err := auth.GenerateOTP()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate code")
		return
	}
	codeHash, err := auth.HashOTP(code)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to secure code")
		return
	}
	if err := h.otp.Put(r.Context(), req.Phone, codeHash); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store code")
		return
	}
	if err := h.sms.Send(r.Context(), req.Phone, fmt.Sprintf("Your verification code is %s", code)); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to send code")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "otp_sent"})
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
	Role  string `json:"role"`
}

// VerifyOTP redeems a one-time code. First-time callers get a user row and an
// empty wallet; the code is single-use either way.
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidatePhone(req.Phone); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateOTP(req.Code); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	role := req.Role
	if role == "" {
		role = "player"
	}
	if err := validator.ValidateRole(role); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	codeHash, err := h.otp.Take(r.Context(), req.Phone)
	if err != nil {
		if err == otp.ErrNotFound {
			respondError(w, http.StatusUnauthorized, "invalid or expired code")
			return
		}
		respondError(w, http.StatusInternalServerError, "verification failed")
		return
	}
	if !auth.CheckOTP(codeHash, req.Code) {
		respondError(w, http.StatusUnauthorized, "invalid or expired code")
		return
	}
	var userID, userRole string
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		user, err := h.users.GetOrCreateByPhone(r.Context(), tx, uuid.NewString(), req.Phone, role)
		if err != nil {
			return err
		}
		userID = user.ID
		userRole = user.Role
		if err := h.wallets.Create(r.Context(), tx, uuid.NewString(), user.ID); err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]string{
			"ip":         r.RemoteAddr,
			"user_agent": r.UserAgent(),
		})
		return h.audit.Log(r.Context(), tx, user.ID, "login", "user", user.ID, string(data))
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "verification failed")
		return
	}
	token, err := auth.GenerateToken(h.cfg.JWTSecret, userID, userRole, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
