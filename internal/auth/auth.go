// Package auth handles the admin login session. Login verifies the password
// against the stored admin accounts and issues a JWT in the auth_token
// cookie; every protected operation authorizes against that cookie.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"

	"wedding-manager/internal/config"
	"wedding-manager/internal/models"
	"wedding-manager/internal/store"
)

// TokenDuration is the admin session lifetime.
const TokenDuration = 8 * time.Hour

// CookieName is the session cookie carrying the JWT.
const CookieName = "auth_token"

// AuthInput is embedded by protected operation inputs to receive the raw
// Cookie header.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie" required:"false"`
}

type AuthHandler struct {
	cfg   *config.Config
	store *store.Accessor
}

func NewAuthHandler(cfg *config.Config, accessor *store.Accessor) *AuthHandler {
	return &AuthHandler{cfg: cfg, store: accessor}
}

type LoginRequest struct {
	Body struct {
		Username string `json:"username" doc:"Admin username" required:"true"`
		Password string `json:"password" doc:"Admin password" required:"true"`
	}
}

type LoginResponse struct {
	SetCookie string `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	st, err := h.store.Load()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load store: " + err.Error())
	}

	var admin *models.Admin
	for i := range st.Admins {
		if st.Admins[i].Username == input.Body.Username {
			admin = &st.Admins[i]
			break
		}
	}
	if admin == nil || !VerifyPassword(input.Body.Password, admin.PasswordHash) {
		return nil, huma.Error401Unauthorized("账号或密码错误")
	}

	token, err := h.GenerateToken(admin.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}

	res := &LoginResponse{SetCookie: cookie.String()}
	res.Body.Message = fmt.Sprintf("Welcome %s", admin.Username)
	return res, nil
}

type LogoutResponse struct {
	SetCookie string `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

func (h *AuthHandler) HandleLogout(ctx context.Context, input *struct{}) (*LogoutResponse, error) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
	res := &LogoutResponse{SetCookie: cookie.String()}
	res.Body.Message = "Logged out"
	return res, nil
}

// GenerateToken signs a session token for an admin id.
func (h *AuthHandler) GenerateToken(adminID int) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": adminID,
		"exp":      time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// Authorize validates the auth_token cookie from a raw Cookie header and
// returns the admin id.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (int, error) {
	if cookieHeader == "" {
		return 0, huma.Error401Unauthorized("Unauthorized: no session")
	}

	req := http.Request{Header: http.Header{"Cookie": {cookieHeader}}}
	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return 0, huma.Error401Unauthorized("Unauthorized: no session")
	}

	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, huma.Error401Unauthorized("Unauthorized: invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, huma.Error401Unauthorized("Unauthorized: invalid token claims")
	}
	adminID, ok := claims["admin_id"].(float64)
	if !ok || adminID < 1 {
		return 0, huma.Error401Unauthorized("Unauthorized: invalid token claims")
	}
	return int(adminID), nil
}
