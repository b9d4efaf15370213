package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"playtomic/internal/auth"
	"playtomic/internal/config"
	"playtomic/internal/middleware"
	"playtomic/internal/models"
	"playtomic/internal/services"
	"playtomic/internal/store"
	"playtomic/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubUserStore struct {
	getOrCreateFn func(ctx context.Context, tx store.Tx, newID, phone, role string) (models.User, error)
	getByIDFn     func(ctx context.Context, userID string) (models.User, error)
}

func (s stubUserStore) GetOrCreateByPhone(ctx context.Context, tx store.Tx, newID, phone, role string) (models.User, error) {
	if s.getOrCreateFn == nil {
		return models.User{ID: newID, Phone: phone, Role: role}, nil
	}
	return s.getOrCreateFn(ctx, tx, newID, phone, role)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	if s.getByIDFn == nil {
		return models.User{ID: userID}, nil
	}
	return s.getByIDFn(ctx, userID)
}

type stubWalletStore struct {
	createFn    func(ctx context.Context, tx store.Execer, id, userID string) error
	getByUserFn func(ctx context.Context, userID string) (models.Wallet, error)
}

func (s stubWalletStore) Create(ctx context.Context, tx store.Execer, id, userID string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, userID)
}

func (s stubWalletStore) GetByUser(ctx context.Context, userID string) (models.Wallet, error) {
	if s.getByUserFn == nil {
		return models.Wallet{ID: "wallet-1", UserID: userID}, nil
	}
	return s.getByUserFn(ctx, userID)
}

type stubEntryStore struct {
	listFn func(ctx context.Context, walletID string, limit, offset int) ([]models.WalletTransaction, error)
	sumFn  func(ctx context.Context, walletID string) (int64, error)
}

func (s stubEntryStore) ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]models.WalletTransaction, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, walletID, limit, offset)
}

func (s stubEntryStore) SumByWallet(ctx context.Context, walletID string) (int64, error) {
	if s.sumFn == nil {
		return 0, nil
	}
	return s.sumFn(ctx, walletID)
}

type stubBookingStore struct {
	getByIDFn    func(ctx context.Context, bookingID string) (models.Booking, error)
	listByUserFn func(ctx context.Context, userID string, limit, offset int) ([]models.Booking, error)
}

func (s stubBookingStore) GetByID(ctx context.Context, bookingID string) (models.Booking, error) {
	if s.getByIDFn == nil {
		return models.Booking{ID: bookingID}, nil
	}
	return s.getByIDFn(ctx, bookingID)
}

func (s stubBookingStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Booking, error) {
	if s.listByUserFn == nil {
		return nil, nil
	}
	return s.listByUserFn(ctx, userID, limit, offset)
}

type stubPaymentStore struct {
	getByIDFn    func(ctx context.Context, paymentID string) (models.Payment, error)
	listByUserFn func(ctx context.Context, userID string, limit, offset int) ([]models.Payment, error)
}

func (s stubPaymentStore) GetByID(ctx context.Context, paymentID string) (models.Payment, error) {
	if s.getByIDFn == nil {
		return models.Payment{ID: paymentID}, nil
	}
	return s.getByIDFn(ctx, paymentID)
}

func (s stubPaymentStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Payment, error) {
	if s.listByUserFn == nil {
		return nil, nil
	}
	return s.listByUserFn(ctx, userID, limit, offset)
}

type stubMatchStore struct {
	getByIDFn     func(ctx context.Context, matchID string) (models.Match, error)
	listPublicFn  func(ctx context.Context, limit, offset int) ([]store.MatchSummary, error)
	listPlayersFn func(ctx context.Context, matchID string) ([]string, error)
}

func (s stubMatchStore) GetByID(ctx context.Context, matchID string) (models.Match, error) {
	if s.getByIDFn == nil {
		return models.Match{ID: matchID}, nil
	}
	return s.getByIDFn(ctx, matchID)
}

func (s stubMatchStore) ListPublicOpen(ctx context.Context, limit, offset int) ([]store.MatchSummary, error) {
	if s.listPublicFn == nil {
		return nil, nil
	}
	return s.listPublicFn(ctx, limit, offset)
}

func (s stubMatchStore) ListPlayers(ctx context.Context, matchID string) ([]string, error) {
	if s.listPlayersFn == nil {
		return nil, nil
	}
	return s.listPlayersFn(ctx, matchID)
}

type stubNotificationStore struct {
	listByUserFn func(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error)
}

func (s stubNotificationStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	if s.listByUserFn == nil {
		return nil, nil
	}
	return s.listByUserFn(ctx, userID, limit, offset)
}

type stubAuditStore struct {
	logFn func(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
}

func (s stubAuditStore) Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error {
	if s.logFn == nil {
		return nil
	}
	return s.logFn(ctx, tx, actorID, action, entityType, entityID, data)
}

type stubWalletService struct {
	topUpFn    func(ctx context.Context, userID string, amountMinor int64) (string, error)
	withdrawFn func(ctx context.Context, userID string, amountMinor int64) (string, error)
	payFn      func(ctx context.Context, userID, bookingID string) (string, error)
}

func (s stubWalletService) TopUp(ctx context.Context, userID string, amountMinor int64) (string, error) {
	if s.topUpFn == nil {
		return "txn-1", nil
	}
	return s.topUpFn(ctx, userID, amountMinor)
}

func (s stubWalletService) Withdraw(ctx context.Context, userID string, amountMinor int64) (string, error) {
	if s.withdrawFn == nil {
		return "txn-1", nil
	}
	return s.withdrawFn(ctx, userID, amountMinor)
}

func (s stubWalletService) PayBooking(ctx context.Context, userID, bookingID string) (string, error) {
	if s.payFn == nil {
		return "payment-1", nil
	}
	return s.payFn(ctx, userID, bookingID)
}

type stubBookingService struct {
	createFn func(ctx context.Context, req services.CreateBookingRequest) (string, error)
	cancelFn func(ctx context.Context, userID, bookingID string) error
	refundFn func(ctx context.Context, userID, paymentID string) error
}

func (s stubBookingService) Create(ctx context.Context, req services.CreateBookingRequest) (string, error) {
	if s.createFn == nil {
		return "booking-1", nil
	}
	return s.createFn(ctx, req)
}

func (s stubBookingService) Cancel(ctx context.Context, userID, bookingID string) error {
	if s.cancelFn == nil {
		return nil
	}
	return s.cancelFn(ctx, userID, bookingID)
}

func (s stubBookingService) Refund(ctx context.Context, userID, paymentID string) error {
	if s.refundFn == nil {
		return nil
	}
	return s.refundFn(ctx, userID, paymentID)
}

type stubMatchService struct {
	createFn  func(ctx context.Context, req services.CreateMatchRequest) (services.CreatedMatch, error)
	joinFn    func(ctx context.Context, matchID, userID string) error
	requestFn func(ctx context.Context, inviteCode, userID string) (string, error)
	respondFn func(ctx context.Context, inviteID, hostID, action string) error
	closeFn   func(ctx context.Context, matchID, hostID string) error
}

func (s stubMatchService) Create(ctx context.Context, req services.CreateMatchRequest) (services.CreatedMatch, error) {
	if s.createFn == nil {
		return services.CreatedMatch{ID: "match-1"}, nil
	}
	return s.createFn(ctx, req)
}

func (s stubMatchService) JoinPublic(ctx context.Context, matchID, userID string) error {
	if s.joinFn == nil {
		return nil
	}
	return s.joinFn(ctx, matchID, userID)
}

func (s stubMatchService) RequestInvite(ctx context.Context, inviteCode, userID string) (string, error) {
	if s.requestFn == nil {
		return "invite-1", nil
	}
	return s.requestFn(ctx, inviteCode, userID)
}

func (s stubMatchService) RespondInvite(ctx context.Context, inviteID, hostID, action string) error {
	if s.respondFn == nil {
		return nil
	}
	return s.respondFn(ctx, inviteID, hostID, action)
}

func (s stubMatchService) Close(ctx context.Context, matchID, hostID string) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx, matchID, hostID)
}

type stubLevelService struct {
	forUserFn func(ctx context.Context, userID string) (services.Level, error)
}

func (s stubLevelService) ForUser(ctx context.Context, userID string) (services.Level, error) {
	if s.forUserFn == nil {
		return services.Level{Level: 1, Progress: "0.00"}, nil
	}
	return s.forUserFn(ctx, userID)
}

type stubOTPStore struct {
	putFn  func(ctx context.Context, phone, codeHash string) error
	takeFn func(ctx context.Context, phone string) (string, error)
}

func (s stubOTPStore) Put(ctx context.Context, phone, codeHash string) error {
	if s.putFn == nil {
		return nil
	}
	return s.putFn(ctx, phone, codeHash)
}

func (s stubOTPStore) Take(ctx context.Context, phone string) (string, error) {
	if s.takeFn == nil {
		return "", nil
	}
	return s.takeFn(ctx, phone)
}

type stubSMSSender struct {
	sendFn func(ctx context.Context, phone, message string) error
}

func (s stubSMSSender) Send(ctx context.Context, phone, message string) error {
	if s.sendFn == nil {
		return nil
	}
	return s.sendFn(ctx, phone, message)
}

type handlerDeps struct {
	txRunner       fakeTxRunner
	users          stubUserStore
	wallets        stubWalletStore
	entries        stubEntryStore
	bookings       stubBookingStore
	payments       stubPaymentStore
	matches        stubMatchStore
	notifications  stubNotificationStore
	audit          stubAuditStore
	walletService  stubWalletService
	bookingService stubBookingService
	matchService   stubMatchService
	levelService   stubLevelService
	otp            stubOTPStore
	sms            stubSMSSender
}

func newTestHandler(deps handlerDeps) *Handler {
	cfg := config.Config{
		AppEnv:         "test",
		Port:           "0",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		OTPTTL:         time.Minute,
		AllowedOrigins: "*",
	}
	return New(deps.txRunner, cfg, deps.users, deps.wallets, deps.entries, deps.bookings, deps.payments, deps.matches, deps.notifications, deps.audit, deps.walletService, deps.bookingService, deps.matchService, deps.levelService, deps.otp, deps.sms, websocket.NewHub())
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func serveWithAuth(t *testing.T, handler http.Handler, req *http.Request, userID string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateToken("secret", userID, "player", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	middleware.Auth("secret")(handler).ServeHTTP(rr, req)
	return rr
}
