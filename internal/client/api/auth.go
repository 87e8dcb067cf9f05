package api

import (
	"context"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

// Login exchanges credentials for a bearer token. It does not store the
// token; that is the caller's decision.
func (a *API) Login(ctx context.Context, c models.Credentials) (*models.TokenResponse, error) {
	if err := models.Validate(c); err != nil {
		return nil, err
	}
	var out models.TokenResponse
	if err := a.post(ctx, "/auth/login", c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Register(ctx context.Context, r models.Registration) (*models.TokenResponse, error) {
	if err := models.Validate(r); err != nil {
		return nil, err
	}
	var out models.TokenResponse
	if err := a.post(ctx, "/auth/register", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user the current token belongs to.
func (a *API) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := a.get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh trades the current token for a fresh one.
func (a *API) Refresh(ctx context.Context) (*models.TokenResponse, error) {
	var out models.TokenResponse
	if err := a.post(ctx, "/auth/refresh", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
