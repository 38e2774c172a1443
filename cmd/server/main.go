package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wedding-manager/internal/auth"
	"wedding-manager/internal/config"
	"wedding-manager/internal/database"
	"wedding-manager/internal/handlers"
	"wedding-manager/internal/lottery"
	"wedding-manager/internal/notifier"
	"wedding-manager/internal/store"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	// Load Configuration
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// Connect to Database
	db := database.Connect(cfg)

	accessor := store.NewAccessor(db, store.SeedConfig{
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: auth.HashPassword(cfg.AdminPassword),
	})
	if _, err := accessor.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}

	var n notifier.Notifier
	discordNotifier, err := notifier.NewDiscordNotifier(cfg.DiscordBotToken, cfg.DiscordNotificationsChannelID)
	if err != nil {
		log.Warn().Err(err).Msg("Discord notifier not initialized")
	} else {
		n = discordNotifier
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, accessor)
	h := handlers.Handlers{
		Auth:       authHandler,
		Admin:      handlers.NewAdminHandler(accessor, authHandler),
		Invitation: handlers.NewInvitationHandler(accessor, authHandler),
		Guest:      handlers.NewGuestHandler(accessor, authHandler, n),
		Table:      handlers.NewTableHandler(accessor, authHandler),
		Checkin:    handlers.NewCheckinHandler(accessor, authHandler, n),
		Lottery:    handlers.NewLotteryHandler(accessor, authHandler, n, lottery.NewEngine(nil)),
		Ledger:     handlers.NewLedgerHandler(accessor, authHandler),
	}

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, h)

	// Start Server
	log.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
