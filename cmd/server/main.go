package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playtomic/internal/config"
	"playtomic/internal/db"
	"playtomic/internal/handlers"
	"playtomic/internal/otp"
	"playtomic/internal/services"
	"playtomic/internal/store"
	"playtomic/internal/websocket"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	redisClient, err := otp.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer redisClient.Close()

	users := store.NewUserStore(database)
	wallets := store.NewWalletStore(database)
	entries := store.NewWalletTransactionStore(database)
	bookings := store.NewBookingStore(database)
	payments := store.NewPaymentStore(database)
	matches := store.NewMatchStore(database)
	invites := store.NewInviteStore(database)
	notifications := store.NewNotificationStore(database)
	audit := store.NewAuditStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()
	otpStore := otp.NewRedisStore(redisClient, cfg.OTPTTL)

	walletService := services.NewWalletService(txRunner, wallets, entries, bookings, payments, audit, hub)
	bookingService := services.NewBookingService(txRunner, bookings, payments, wallets, entries, audit, hub)
	matchService := services.NewMatchService(txRunner, matches, invites, notifications, audit, hub)
	levelService := services.NewLevelService(bookings)

	handler := handlers.New(txRunner, cfg, users, wallets, entries, bookings, payments, matches, notifications, audit, walletService, bookingService, matchService, levelService, otpStore, handlers.LogSMSSender{}, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("playtomic API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
