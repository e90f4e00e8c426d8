package auth

import (
	"context"
	"testing"
	"time"

	"github.com/buildsy/buildsy-backend/errs"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "super-secret-jwt-key"

func mint(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier(testSecret, "authenticated")
	now := time.Now()

	valid := mint(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-123",
		"email": "dev@example.com",
		"aud":   "authenticated",
		"exp":   now.Add(time.Hour).Unix(),
	})
	id, err := v.Verify(context.Background(), valid)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if id.UserID != "user-123" || id.Email != "dev@example.com" {
		t.Errorf("identity = %+v", id)
	}

	tests := []struct {
		name    string
		token   string
		expired bool
	}{
		{"expired", mint(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u", "aud": "authenticated", "exp": now.Add(-time.Hour).Unix()}), true},
		{"wrong secret", mint(t, "other-secret", jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u", "aud": "authenticated", "exp": now.Add(time.Hour).Unix()}), false},
		{"wrong algorithm", mint(t, testSecret, jwt.SigningMethodHS512, jwt.MapClaims{"sub": "u", "aud": "authenticated", "exp": now.Add(time.Hour).Unix()}), false},
		{"no expiry", mint(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u", "aud": "authenticated"}), false},
		{"no subject", mint(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"aud": "authenticated", "exp": now.Add(time.Hour).Unix()}), false},
		{"wrong audience", mint(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u", "aud": "anon", "exp": now.Add(time.Hour).Unix()}), false},
		{"garbage", "not-a-jwt", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token)
			if err == nil {
				t.Fatal("expected rejection")
			}
			if tt.expired && !errs.IsExpiredTokenError(err) {
				t.Errorf("want expired token error, got %v", err)
			}
			if !tt.expired && !errs.IsInvalidTokenError(err) {
				t.Errorf("want invalid token error, got %v", err)
			}
		})
	}

	if _, err := v.Verify(context.Background(), ""); !errs.IsMissingTokenError(err) {
		t.Errorf("empty token: %v", err)
	}
}

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"":             "",
		"Bearer":       "",
	}
	for header, want := range tests {
		if got := BearerToken(header); got != want {
			t.Errorf("BearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestNewFromConfig(t *testing.T) {
	if _, err := NewFromConfig(map[string]string{}); err == nil {
		t.Error("jwt provider without secret should fail")
	}
	v, err := NewFromConfig(map[string]string{"SUPABASE_JWT_SECRET": testSecret})
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if _, ok := v.(*JWTVerifier); !ok {
		t.Errorf("got %T", v)
	}
	if _, err := NewFromConfig(map[string]string{"AUTH_PROVIDER": "saml"}); err == nil {
		t.Error("unknown provider should fail")
	}
	if _, err := NewFromConfig(map[string]string{"AUTH_PROVIDER": "descope"}); err == nil {
		t.Error("descope without project id should fail")
	}
}

func TestStaticVerifier(t *testing.T) {
	v := StaticVerifier{"tok": "u1"}
	if id, err := v.Verify(context.Background(), "tok"); err != nil || id.UserID != "u1" {
		t.Errorf("got %+v %v", id, err)
	}
	if _, err := v.Verify(context.Background(), "nope"); !errs.IsInvalidTokenError(err) {
		t.Errorf("got %v", err)
	}
}
