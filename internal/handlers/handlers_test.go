package handlers

import (
	"math/rand"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wedding-manager/internal/auth"
	"wedding-manager/internal/config"
	"wedding-manager/internal/lottery"
	"wedding-manager/internal/store"
)

// testEnv is the shared handler-test fixture: an in-memory store, a signed
// admin session cookie and every handler wired without a notifier.
type testEnv struct {
	accessor   *store.Accessor
	cookie     string
	guest      *GuestHandler
	table      *TableHandler
	checkin    *CheckinHandler
	lottery    *LotteryHandler
	ledger     *LedgerHandler
	admin      *AdminHandler
	invitation *InvitationHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&store.Row{}); err != nil {
		t.Fatalf("failed to auto migrate: %v", err)
	}

	accessor := store.NewAccessor(db, store.SeedConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: auth.HashPassword("admin123"),
	})
	if _, err := accessor.Load(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	cfg := &config.Config{JWTSecret: "test-secret"}
	authHandler := auth.NewAuthHandler(cfg, accessor)
	token, err := authHandler.GenerateToken(1)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	engine := lottery.NewEngine(rand.New(rand.NewSource(7)))
	return &testEnv{
		accessor:   accessor,
		cookie:     auth.CookieName + "=" + token,
		guest:      NewGuestHandler(accessor, authHandler, nil),
		table:      NewTableHandler(accessor, authHandler),
		checkin:    NewCheckinHandler(accessor, authHandler, nil),
		lottery:    NewLotteryHandler(accessor, authHandler, nil, engine),
		ledger:     NewLedgerHandler(accessor, authHandler),
		admin:      NewAdminHandler(accessor, authHandler),
		invitation: NewInvitationHandler(accessor, authHandler),
	}
}
