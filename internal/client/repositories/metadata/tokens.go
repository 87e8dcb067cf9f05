package metadata

import (
	"context"
)

// TokenStore persists the bearer token under KeyAuthToken so a session
// survives restarts. It satisfies client.TokenStore.
type TokenStore struct {
	repo Repository
}

func NewTokenStore(repo Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Get returns "" when no token is stored.
func (s *TokenStore) Get(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeyAuthToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *TokenStore) Set(ctx context.Context, token string) error {
	return s.repo.Set(ctx, KeyAuthToken, []byte(token))
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyAuthToken)
}
