package rejimde

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/selim-create/rejimde-datahub/internal/config"
)

// TokenSource yields the bearer token for a request, or "" for anonymous
// calls. Implementations are read on every request rather than cached, so
// a rotated token takes effect immediately.
type TokenSource interface {
	Token() (string, error)
}

type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }

// FileTokenSource re-reads the token file on each call.
type FileTokenSource struct {
	Path string
}

func (f FileTokenSource) Token() (string, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read token file %s: %w", f.Path, err)
	}
	return strings.TrimSpace(string(b)), nil
}

// TokenSourceFromConfig picks the configured source; the token file wins
// over the inline token. Returns nil when neither is set (anonymous mode).
func TokenSourceFromConfig(cfg *config.Config) TokenSource {
	if cfg.TokenFile != "" {
		return FileTokenSource{Path: cfg.TokenFile}
	}
	if cfg.Token != "" {
		return StaticToken(cfg.Token)
	}
	return nil
}

// SessionContext mirrors the persisted user session blob.
type SessionContext struct {
	UserID    string `json:"user_id"`
	Slug      string `json:"user_slug"`
	Name      string `json:"user_name"`
	AvatarURL string `json:"user_avatar"`
	Role      string `json:"user_role"`
	Token     string `json:"jwt_token"`
}

// LoadSession reads a session blob from disk.
func LoadSession(path string) (*SessionContext, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", path, err)
	}
	var s SessionContext
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", path, err)
	}
	return &s, nil
}

// TokenClaims is the subset of JWT claims this side cares about. Tokens
// are issued and verified by the backend; claims are decoded without
// signature verification, for display and expiry checks only.
type TokenClaims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

func InspectToken(raw string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	out := &TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// Expired reports whether the token is past its expiry, with a small skew
// so a token about to lapse is treated as already gone.
func (tc *TokenClaims) Expired(now time.Time) bool {
	if tc.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(30 * time.Second).Before(tc.ExpiresAt)
}
