package cache

import (
	"context"
	"time"
)

// Cache 上游响应缓存接口
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
