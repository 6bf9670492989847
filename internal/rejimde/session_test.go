package rejimde

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/selim-create/rejimde-datahub/internal/config"
)

func signedToken(t *testing.T, sub, role string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
	}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	raw := signedToken(t, "42", "pro", exp)

	tc, err := InspectToken(raw)
	if err != nil {
		t.Fatalf("InspectToken: %v", err)
	}
	if tc.Subject != "42" {
		t.Errorf("Subject = %q, want 42", tc.Subject)
	}
	if tc.Role != "pro" {
		t.Errorf("Role = %q, want pro", tc.Role)
	}
	if !tc.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", tc.ExpiresAt, exp)
	}
}

func TestInspectToken_Garbage(t *testing.T) {
	if _, err := InspectToken("not-a-jwt"); err == nil {
		t.Fatal("want error for malformed token")
	}
}

func TestTokenClaimsExpired(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		exp  time.Time
		want bool
	}{
		{"no expiry never expires", time.Time{}, false},
		{"well in the future", now.Add(time.Hour), false},
		{"already past", now.Add(-time.Minute), true},
		{"inside the skew window", now.Add(10 * time.Second), true},
		{"just outside the skew window", now.Add(45 * time.Second), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims := &TokenClaims{ExpiresAt: tc.exp}
			if got := claims.Expired(now); got != tc.want {
				t.Errorf("Expired = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFileTokenSource_ReadsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("first\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	src := FileTokenSource{Path: path}

	got, err := src.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got != "first" {
		t.Errorf("Token = %q, want first", got)
	}

	// rotation takes effect on the next call, no restart needed
	if err := os.WriteFile(path, []byte("second"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err = src.Token()
	if err != nil {
		t.Fatalf("Token after rotate: %v", err)
	}
	if got != "second" {
		t.Errorf("Token = %q, want second", got)
	}
}

func TestTokenSourceFromConfig(t *testing.T) {
	t.Run("file wins over inline", func(t *testing.T) {
		src := TokenSourceFromConfig(&config.Config{Token: "inline", TokenFile: "/tmp/tok"})
		if _, ok := src.(FileTokenSource); !ok {
			t.Fatalf("source = %T, want FileTokenSource", src)
		}
	})
	t.Run("inline token", func(t *testing.T) {
		src := TokenSourceFromConfig(&config.Config{Token: "inline"})
		if got, _ := src.Token(); got != "inline" {
			t.Errorf("Token = %q", got)
		}
	})
	t.Run("anonymous", func(t *testing.T) {
		if src := TokenSourceFromConfig(&config.Config{}); src != nil {
			t.Errorf("source = %v, want nil", src)
		}
	})
}

func TestLoadSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	blob := `{"user_id":"42","user_slug":"ayse-kaya","user_name":"Ayşe Kaya","user_role":"user","jwt_token":"tok"}`
	if err := os.WriteFile(path, []byte(blob), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if s.UserID != "42" || s.Name != "Ayşe Kaya" || s.Token != "tok" {
		t.Errorf("session = %+v", s)
	}
}
