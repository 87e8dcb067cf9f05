// Package metadata stores small key/value facts about the local client
// state: the bearer token, the logged-in username and the time of the
// last catalog sync.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyAuthToken = "auth_token"
	KeyUsername  = "username"
	KeyLastSync  = "last_sync"
)

// Repository is a byte-valued key/value store. Get returns (nil, nil) for
// a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
