package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"playtomic/internal/config"
	"playtomic/internal/db"
	"playtomic/internal/middleware"
	"playtomic/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	txRunner       db.TxRunner
	cfg            config.Config
	users          UserStore
	wallets        WalletStore
	entries        WalletTransactionStore
	bookings       BookingStore
	payments       PaymentStore
	matches        MatchStore
	notifications  NotificationStore
	audit          AuditStore
	walletService  WalletService
	bookingService BookingService
	matchService   MatchService
	levelService   LevelService
	otp            OTPStore
	sms            SMSSender
	hub            *websocket.Hub
}

func New(txRunner db.TxRunner, cfg config.Config, users UserStore, wallets WalletStore, entries WalletTransactionStore, bookings BookingStore, payments PaymentStore, matches MatchStore, notifications NotificationStore, audit AuditStore, walletService WalletService, bookingService BookingService, matchService MatchService, levelService LevelService, otpStore OTPStore, sms SMSSender, hub *websocket.Hub) *Handler {
	return &Handler{
		txRunner:       txRunner,
		cfg:            cfg,
		users:          users,
		wallets:        wallets,
		entries:        entries,
		bookings:       bookings,
		payments:       payments,
		matches:        matches,
		notifications:  notifications,
		audit:          audit,
		walletService:  walletService,
		bookingService: bookingService,
		matchService:   matchService,
		levelService:   levelService,
		otp:            otpStore,
		sms:            sms,
		hub:            hub,
	}
}

// LogSMSSender writes codes to the process log. Development only.
type LogSMSSender struct{}

func (LogSMSSender) Send(_ context.Context, phone, message string) error {
	log.Printf("sms to %s: %s", phone, message)
	return nil
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authLimiter := middleware.NewRateLimiter(10, 10*time.Minute)
	paymentLimiter := middleware.NewRateLimiter(5, 10*time.Minute)
	requireAuth := middleware.Auth(h.cfg.JWTSecret)

	router.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/register", h.RequestOTP)
		r.Post("/verify", h.VerifyOTP)
	})
	router.With(requireAuth).Get("/users/me", h.Me)

	router.Route("/wallet", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.GetWallet)
		r.Get("/transactions", h.ListWalletTransactions)
		r.Get("/self-check", h.SelfCheck)
		r.Post("/topup", h.TopUp)
		r.Post("/withdraw", h.Withdraw)
		r.With(paymentLimiter.Middleware).Post("/pay", h.PayBooking)
	})

	router.Route("/bookings", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.CreateBooking)
		r.Get("/", h.ListBookings)
		r.Get("/{id}", h.GetBooking)
		r.Post("/{id}/cancel", h.CancelBooking)
	})

	router.Route("/payments", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.ListPayments)
		r.Get("/{id}", h.GetPayment)
		r.With(paymentLimiter.Middleware).Post("/{id}/refund", h.RefundPayment)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.CreateMatch)
		r.Get("/", h.ListPublicMatches)
		r.Get("/{id}", h.GetMatch)
		r.Post("/{id}/join", h.JoinMatch)
		r.Post("/invites", h.RequestInvite)
		r.Post("/invites/{id}/respond", h.RespondInvite)
		r.Post("/{id}/close", h.CloseMatch)
	})

	router.With(requireAuth).Get("/notifications", h.ListNotifications)
	router.Get("/ws/updates", h.WSUpdates)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
