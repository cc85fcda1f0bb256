// Package session persists the durable key-value state behind the session:
// the auth token and the current username.
package session

import "context"

// Repository is a durable string key-value store.
//
// Get returns "" for a missing key: callers must not be able to distinguish
// an absent token from an empty one, so the repository never reports
// absence separately.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
