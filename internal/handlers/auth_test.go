package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"playtomic/internal/auth"
	"playtomic/internal/otp"
)

func TestRequestOTPInvalidPhone(t *testing.T) {
	handler := newTestHandler(handlerDeps{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"phone":"abc"}`))
	handler.RequestOTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestRequestOTPStoresHashAndSends(t *testing.T) {
	var storedPhone, storedHash, sentMessage string
	handler := newTestHandler(handlerDeps{
		otp: stubOTPStore{
			putFn: func(_ context.Context, phone, codeHash string) error {
				storedPhone = phone
				storedHash = codeHash
				return nil
			},
		},
		sms: stubSMSSender{
			sendFn: func(_ context.Context, phone, message string) error {
				sentMessage = message
				return nil
			},
		},
	})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"phone":"+34600111222"}`))
	handler.RequestOTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if storedPhone != "+34600111222" {
		t.Fatalf("unexpected stored phone: %q", storedPhone)
	}
	if storedHash == "" || strings.Contains(sentMessage, storedHash) {
		t.Fatalf("code should be stored hashed, not plaintext")
	}
	code := strings.TrimPrefix(sentMessage, "Your verification code is ")
	if len(code) != 6 || !auth.CheckOTP(storedHash, code) {
		t.Fatalf("stored hash does not match sent code")
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	hash, err := auth.HashOTP("123456")
	if err != nil {
		t.Fatalf("failed to hash code: %v", err)
	}
	handler := newTestHandler(handlerDeps{
		otp: stubOTPStore{
			takeFn: func(context.Context, string) (string, error) { return hash, nil },
		},
	})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/verify", strings.NewReader(`{"phone":"+34600111222","code":"654321"}`))
	handler.VerifyOTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	handler := newTestHandler(handlerDeps{
		otp: stubOTPStore{
			takeFn: func(context.Context, string) (string, error) { return "", otp.ErrNotFound },
		},
	})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/verify", strings.NewReader(`{"phone":"+34600111222","code":"123456"}`))
	handler.VerifyOTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestVerifyOTPIssuesToken(t *testing.T) {
	hash, err := auth.HashOTP("123456")
	if err != nil {
		t.Fatalf("failed to hash code: %v", err)
	}
	handler := newTestHandler(handlerDeps{
		otp: stubOTPStore{
			takeFn: func(context.Context, string) (string, error) { return hash, nil },
		},
	})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/verify", strings.NewReader(`{"phone":"+34600111222","code":"123456"}`))
	handler.VerifyOTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	claims, err := auth.ParseToken("secret", payload["token"])
	if err != nil {
		t.Fatalf("issued token should parse: %v", err)
	}
	if claims.Role != "player" {
		t.Fatalf("expected default player role, got %q", claims.Role)
	}
}

func TestVerifyOTPRejectsBadRole(t *testing.T) {
	handler := newTestHandler(handlerDeps{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/verify", strings.NewReader(`{"phone":"+34600111222","code":"123456","role":"admin"}`))
	handler.VerifyOTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
