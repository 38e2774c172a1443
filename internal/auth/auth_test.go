package auth

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wedding-manager/internal/config"
	"wedding-manager/internal/store"
)

func testHandler(t *testing.T) *AuthHandler {
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
		AdminPasswordHash: HashPassword("admin123"),
	})
	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewAuthHandler(cfg, accessor)
}

func TestHandleLogin(t *testing.T) {
	handler := testHandler(t)

	t.Run("ValidCredentials", func(t *testing.T) {
		req := &LoginRequest{}
		req.Body.Username = "admin"
		req.Body.Password = "admin123"

		resp, err := handler.HandleLogin(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleLogin returned error: %v", err)
		}
		if !strings.HasPrefix(resp.SetCookie, CookieName+"=") {
			t.Errorf("expected %s cookie, got %q", CookieName, resp.SetCookie)
		}
		if !strings.Contains(resp.SetCookie, "HttpOnly") {
			t.Errorf("expected HttpOnly cookie, got %q", resp.SetCookie)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		req := &LoginRequest{}
		req.Body.Username = "admin"
		req.Body.Password = "nope"

		if _, err := handler.HandleLogin(context.Background(), req); err == nil {
			t.Fatal("expected error for wrong password, got nil")
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		req := &LoginRequest{}
		req.Body.Username = "ghost"
		req.Body.Password = "admin123"

		if _, err := handler.HandleLogin(context.Background(), req); err == nil {
			t.Fatal("expected error for unknown user, got nil")
		}
	})
}

func TestAuthorize(t *testing.T) {
	handler := testHandler(t)

	t.Run("ValidToken", func(t *testing.T) {
		token, err := handler.GenerateToken(1)
		if err != nil {
			t.Fatalf("GenerateToken returned error: %v", err)
		}

		adminID, err := handler.Authorize(context.Background(), CookieName+"="+token)
		if err != nil {
			t.Fatalf("Authorize returned error: %v", err)
		}
		if adminID != 1 {
			t.Errorf("expected admin id 1, got %d", adminID)
		}
	})

	t.Run("NoCookie", func(t *testing.T) {
		if _, err := handler.Authorize(context.Background(), ""); err == nil {
			t.Fatal("expected error for empty cookie header, got nil")
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		if _, err := handler.Authorize(context.Background(), CookieName+"=not-a-jwt"); err == nil {
			t.Fatal("expected error for garbage token, got nil")
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := testHandler(t)
		other.cfg.JWTSecret = "other-secret"
		token, _ := other.GenerateToken(1)

		if _, err := handler.Authorize(context.Background(), CookieName+"="+token); err == nil {
			t.Fatal("expected error for token signed with another secret, got nil")
		}
	})
}

func TestLogout_ClearsCookie(t *testing.T) {
	handler := testHandler(t)

	resp, err := handler.HandleLogout(context.Background(), &struct{}{})
	if err != nil {
		t.Fatalf("HandleLogout returned error: %v", err)
	}
	if !strings.Contains(resp.SetCookie, "Max-Age=0") {
		t.Errorf("expected expired cookie, got %q", resp.SetCookie)
	}
}
