// Package auth verifies bearer tokens issued by the external identity
// provider. Tokens are never issued here.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/buildsy/buildsy-backend/config"
	"github.com/buildsy/buildsy-backend/errs"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID string
	Email  string
}

// Verifier checks a raw bearer token. Implementations return an error
// wrapping errs.ErrInvalidToken or errs.ErrExpiredToken on rejection.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// BearerToken extracts the token from an Authorization header value. It
// returns "" when the header is absent or not a bearer credential.
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// NewFromConfig builds the verifier selected by AUTH_PROVIDER.
func NewFromConfig(cfg map[string]string) (Verifier, error) {
	switch provider := strings.ToLower(config.GetString(cfg, "AUTH_PROVIDER", "jwt")); provider {
	case "jwt":
		secret := config.GetString(cfg, "SUPABASE_JWT_SECRET", "")
		if secret == "" {
			return nil, errs.NewConfigMissingError("SUPABASE_JWT_SECRET")
		}
		return NewJWTVerifier(secret, config.GetString(cfg, "JWT_AUDIENCE", "")), nil
	case "descope":
		projectID := config.GetString(cfg, "DESCOPE_PROJECT_ID", "")
		if projectID == "" {
			return nil, errs.NewConfigMissingError("DESCOPE_PROJECT_ID")
		}
		return NewDescopeVerifier(projectID)
	default:
		return nil, errs.NewConfigInvalidError("AUTH_PROVIDER", fmt.Sprintf("unknown provider %q", provider))
	}
}

// StaticVerifier maps fixed tokens to user ids. Used by tests and local runs.
type StaticVerifier map[string]string

func (s StaticVerifier) Verify(_ context.Context, token string) (Identity, error) {
	userID, ok := s[token]
	if !ok {
		return Identity{}, fmt.Errorf("unknown token: %w", errs.ErrInvalidToken)
	}
	return Identity{UserID: userID}, nil
}
