package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildsy/buildsy-backend/errs"
	"github.com/golang-jwt/jwt/v5"
)

type supabaseClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTVerifier checks HS256 tokens signed with a shared secret, as issued by
// Supabase auth.
type JWTVerifier struct {
	secret   []byte
	audience string
	parser   *jwt.Parser
}

// NewJWTVerifier returns a verifier for secret. audience is optional.
func NewJWTVerifier(secret, audience string) *JWTVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &JWTVerifier{
		secret:   []byte(secret),
		audience: audience,
		parser:   jwt.NewParser(opts...),
	}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, errs.ErrMissingToken
	}

	claims := &supabaseClaims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return Identity{}, fmt.Errorf("%w: %w", errs.ErrExpiredToken, err)
	}
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", errs.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: token has no subject", errs.ErrInvalidToken)
	}
	return Identity{UserID: claims.Subject, Email: claims.Email}, nil
}
