package auth

import (
	"context"
	"fmt"

	"github.com/buildsy/buildsy-backend/errs"
	"github.com/descope/go-sdk/descope/client"
)

// DescopeVerifier validates Descope session tokens.
type DescopeVerifier struct {
	client *client.DescopeClient
}

func NewDescopeVerifier(projectID string) (*DescopeVerifier, error) {
	c, err := client.NewWithConfig(&client.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("create descope client: %w", err)
	}
	return &DescopeVerifier{client: c}, nil
}

func (v *DescopeVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, errs.ErrMissingToken
	}
	ok, session, err := v.client.Auth.ValidateSessionWithToken(ctx, token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", errs.ErrInvalidToken, err)
	}
	if !ok || session == nil || session.ID == "" {
		return Identity{}, fmt.Errorf("%w: session rejected", errs.ErrInvalidToken)
	}

	id := Identity{UserID: session.ID}
	if email, ok := session.Claims["email"].(string); ok {
		id.Email = email
	}
	return id, nil
}
