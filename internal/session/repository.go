package session

import "context"

// Durable storage keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Repository is the durable string-keyed storage backing a Session.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
