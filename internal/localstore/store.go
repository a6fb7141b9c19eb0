package localstore

import (
	"context"
	"errors"
)

// Fixed keys mirrored from the browser client. No versioning, no expiry.
const (
	KeyToken          = "token"
	KeyRole           = "role"
	KeyUserID         = "userId"
	KeyUser           = "user"
	KeyOrderID        = "orderId"
	KeyRecentlyViewed = "recentlyViewed"
)

var ErrKeyNotFound = errors.New("key not found")

// Store persists per-session string values under fixed keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
