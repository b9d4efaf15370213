package services

import (
	"context"
	"sync"

	"playtomic/internal/models"
	"playtomic/internal/store"
	"playtomic/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

// lockingTxRunner serializes transaction bodies the way the database's
// serializable isolation would, so in-memory fakes can stand in for row locks
// in concurrency tests.
type lockingTxRunner struct {
	mu sync.Mutex
}

func (l *lockingTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(nil)
}

type stubWalletStore struct {
	getForUpdateFn  func(ctx context.Context, tx store.Tx, newID, userID string) (models.Wallet, error)
	updateBalanceFn func(ctx context.Context, tx store.Execer, walletID string, balance int64) error
}

func (s stubWalletStore) GetOrCreateForUpdate(ctx context.Context, tx store.Tx, newID, userID string) (models.Wallet, error) {
	if s.getForUpdateFn == nil {
		return models.Wallet{ID: "wallet-1", UserID: userID}, nil
	}
	return s.getForUpdateFn(ctx, tx, newID, userID)
}

func (s stubWalletStore) UpdateBalance(ctx context.Context, tx store.Execer, walletID string, balance int64) error {
	if s.updateBalanceFn == nil {
		return nil
	}
	return s.updateBalanceFn(ctx, tx, walletID, balance)
}

type stubEntryStore struct {
	appendFn func(ctx context.Context, tx store.Execer, input store.WalletTransactionInput) error
}

func (s stubEntryStore) Append(ctx context.Context, tx store.Execer, input store.WalletTransactionInput) error {
	if s.appendFn == nil {
		return nil
	}
	return s.appendFn(ctx, tx, input)
}

type stubBookingStore struct {
	createFn       func(ctx context.Context, tx store.Execer, input store.BookingInput) error
	getForUpdateFn func(ctx context.Context, tx store.Getter, bookingID string) (models.Booking, error)
	updateStatusFn func(ctx context.Context, tx store.Execer, bookingID, status string) error
}

func (s stubBookingStore) Create(ctx context.Context, tx store.Execer, input store.BookingInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubBookingStore) GetForUpdate(ctx context.Context, tx store.Getter, bookingID string) (models.Booking, error) {
	if s.getForUpdateFn == nil {
		return models.Booking{ID: bookingID}, nil
	}
	return s.getForUpdateFn(ctx, tx, bookingID)
}

func (s stubBookingStore) UpdateStatus(ctx context.Context, tx store.Execer, bookingID, status string) error {
	if s.updateStatusFn == nil {
		return nil
	}
	return s.updateStatusFn(ctx, tx, bookingID, status)
}

type stubPaymentStore struct {
	createFn       func(ctx context.Context, tx store.Execer, input store.PaymentInput) error
	getForUpdateFn func(ctx context.Context, tx store.Getter, paymentID string) (models.Payment, error)
	updateStatusFn func(ctx context.Context, tx store.Execer, paymentID, status string) error
}

func (s stubPaymentStore) Create(ctx context.Context, tx store.Execer, input store.PaymentInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubPaymentStore) GetForUpdate(ctx context.Context, tx store.Getter, paymentID string) (models.Payment, error) {
	if s.getForUpdateFn == nil {
		return models.Payment{ID: paymentID}, nil
	}
	return s.getForUpdateFn(ctx, tx, paymentID)
}

func (s stubPaymentStore) UpdateStatus(ctx context.Context, tx store.Execer, paymentID, status string) error {
	if s.updateStatusFn == nil {
		return nil
	}
	return s.updateStatusFn(ctx, tx, paymentID, status)
}

type stubMatchStore struct {
	createFn       func(ctx context.Context, tx store.Execer, input store.MatchInput) error
	getForUpdateFn func(ctx context.Context, tx store.Getter, matchID string) (models.Match, error)
	getByCodeFn    func(ctx context.Context, tx store.Getter, inviteCode string) (models.Match, error)
	setStatusFn    func(ctx context.Context, tx store.Execer, matchID, status string) error
	addPlayerFn    func(ctx context.Context, tx store.Execer, matchID, userID string) error
	countPlayersFn func(ctx context.Context, tx store.Getter, matchID string) (int, error)
	isPlayerFn     func(ctx context.Context, tx store.Getter, matchID, userID string) (bool, error)
}

func (s stubMatchStore) Create(ctx context.Context, tx store.Execer, input store.MatchInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubMatchStore) GetForUpdate(ctx context.Context, tx store.Getter, matchID string) (models.Match, error) {
	if s.getForUpdateFn == nil {
		return models.Match{ID: matchID, Status: "open"}, nil
	}
	return s.getForUpdateFn(ctx, tx, matchID)
}

func (s stubMatchStore) GetByInviteCodeForUpdate(ctx context.Context, tx store.Getter, inviteCode string) (models.Match, error) {
	if s.getByCodeFn == nil {
		return models.Match{ID: "match-1", Status: "open"}, nil
	}
	return s.getByCodeFn(ctx, tx, inviteCode)
}

func (s stubMatchStore) SetStatus(ctx context.Context, tx store.Execer, matchID, status string) error {
	if s.setStatusFn == nil {
		return nil
	}
	return s.setStatusFn(ctx, tx, matchID, status)
}

func (s stubMatchStore) AddPlayer(ctx context.Context, tx store.Execer, matchID, userID string) error {
	if s.addPlayerFn == nil {
		return nil
	}
	return s.addPlayerFn(ctx, tx, matchID, userID)
}

func (s stubMatchStore) CountPlayers(ctx context.Context, tx store.Getter, matchID string) (int, error) {
	if s.countPlayersFn == nil {
		return 0, nil
	}
	return s.countPlayersFn(ctx, tx, matchID)
}

func (s stubMatchStore) IsPlayer(ctx context.Context, tx store.Getter, matchID, userID string) (bool, error) {
	if s.isPlayerFn == nil {
		return false, nil
	}
	return s.isPlayerFn(ctx, tx, matchID, userID)
}

type stubInviteStore struct {
	createFn       func(ctx context.Context, tx store.Execer, id, matchID, userID string) error
	getForUpdateFn func(ctx context.Context, tx store.Getter, inviteID string) (models.MatchInvite, error)
	updateStatusFn func(ctx context.Context, tx store.Execer, inviteID, status string) error
}

func (s stubInviteStore) Create(ctx context.Context, tx store.Execer, id, matchID, userID string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, matchID, userID)
}

func (s stubInviteStore) GetForUpdate(ctx context.Context, tx store.Getter, inviteID string) (models.MatchInvite, error) {
	if s.getForUpdateFn == nil {
		return models.MatchInvite{ID: inviteID, Status: "pending"}, nil
	}
	return s.getForUpdateFn(ctx, tx, inviteID)
}

func (s stubInviteStore) UpdateStatus(ctx context.Context, tx store.Execer, inviteID, status string) error {
	if s.updateStatusFn == nil {
		return nil
	}
	return s.updateStatusFn(ctx, tx, inviteID, status)
}

type stubNotificationStore struct {
	insertFn func(ctx context.Context, tx store.Execer, id, userID, message string) error
}

func (s stubNotificationStore) Insert(ctx context.Context, tx store.Execer, id, userID, message string) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, tx, id, userID, message)
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

type stubBalanceHub struct {
	mu    sync.Mutex
	calls []websocket.BalanceUpdate
}

func (s *stubBalanceHub) BroadcastBalance(_ string, update websocket.BalanceUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, update)
}

type stubRosterHub struct {
	mu    sync.Mutex
	calls []websocket.RosterUpdate
}

func (s *stubRosterHub) BroadcastRoster(_ string, update websocket.RosterUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, update)
}

// memWallet backs concurrency tests with real read-modify-write state.
type memWallet struct {
	wallet  models.Wallet
	entries []store.WalletTransactionInput
}

func (m *memWallet) GetOrCreateForUpdate(_ context.Context, _ store.Tx, _, userID string) (models.Wallet, error) {
	return m.wallet, nil
}

func (m *memWallet) UpdateBalance(_ context.Context, _ store.Execer, _ string, balance int64) error {
	m.wallet.Balance = balance
	return nil
}

func (m *memWallet) Append(_ context.Context, _ store.Execer, input store.WalletTransactionInput) error {
	m.entries = append(m.entries, input)
	return nil
}

// memRoster backs match concurrency tests.
type memRoster struct {
	stubMatchStore
	match   models.Match
	players map[string]struct{}
}

func (m *memRoster) GetForUpdate(_ context.Context, _ store.Getter, _ string) (models.Match, error) {
	return m.match, nil
}

func (m *memRoster) AddPlayer(_ context.Context, _ store.Execer, _, userID string) error {
	m.players[userID] = struct{}{}
	return nil
}

func (m *memRoster) CountPlayers(_ context.Context, _ store.Getter, _ string) (int, error) {
	return len(m.players), nil
}

func (m *memRoster) IsPlayer(_ context.Context, _ store.Getter, _, userID string) (bool, error) {
	_, ok := m.players[userID]
	return ok, nil
}
