package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"playtomic/internal/middleware"
	"playtomic/internal/money"
)

func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	wallet, err := h.wallets.GetByUser(r.Context(), userID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "wallet not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load wallet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":      wallet.ID,
		"balance": money.FormatMinor(wallet.Balance),
	})
}

func (h *Handler) ListWalletTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	wallet, err := h.wallets.GetByUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load wallet")
		return
	}
	limit, offset := parseLimitOffset(r)
	entries, err := h.entries.ListByWallet(r.Context(), wallet.ID, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	normalized := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		normalized = append(normalized, map[string]any{
			"id":         entry.ID,
			"type":       entry.Type,
			"amount":     money.FormatMinor(entry.Amount),
			"status":     entry.Status,
			"meta":       entry.Meta,
			"created_at": entry.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

// SelfCheck compares the stored wallet balance against the signed sum of its
// ledger entries. A nonzero difference means a write path skipped the ledger.
func (h *Handler) SelfCheck(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	wallet, err := h.wallets.GetByUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to self_check")
		return
	}
	ledgerSum, err := h.entries.SumByWallet(r.Context(), wallet.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to self_check")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"wallet_id":      wallet.ID,
		"wallet_balance": money.FormatMinor(wallet.Balance),
		"ledger_sum":     money.FormatMinor(ledgerSum),
		"difference":     money.FormatMinor(wallet.Balance - ledgerSum),
	})
}

type amountRequest struct {
	Amount string `json:"amount"`
}

func (h *Handler) TopUp(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amountMinor, err := parseAmountMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	transactionID, err := h.walletService.TopUp(r.Context(), userID, amountMinor)
	if err != nil {
		respondServiceError(w, err, "topup_failed")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"transaction_id": transactionID})
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amountMinor, err := parseAmountMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	transactionID, err := h.walletService.Withdraw(r.Context(), userID, amountMinor)
	if err != nil {
		respondServiceError(w, err, "withdraw_failed")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"transaction_id": transactionID})
}

type payBookingRequest struct {
	BookingID string `json:"booking_id"`
}

func (h *Handler) PayBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req payBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.BookingID == "" {
		respondError(w, http.StatusBadRequest, "booking_id is required")
		return
	}
	paymentID, err := h.walletService.PayBooking(r.Context(), userID, req.BookingID)
	if err != nil {
		respondServiceError(w, err, "payment_failed")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"payment_id": paymentID})
}
