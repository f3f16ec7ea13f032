package settings

import (
	"context"
)

// Repository is a durable string key/value store. Get returns
// common.ErrNotFound for keys that were never written.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}
