package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NameCache 用户显示名缓存
// 读写失败只记日志，调用方回落到数据库查询
type NameCache struct {
	cache *RedisCache
	ttl   time.Duration
}

// NewNameCache 创建显示名缓存，ttl <= 0 时使用默认值
func NewNameCache(cache *RedisCache, ttl time.Duration) *NameCache {
	if ttl <= 0 {
		ttl = DefaultUserNameTTL
	}
	return &NameCache{cache: cache, ttl: ttl}
}

// GetName 读取缓存的显示名
func (n *NameCache) GetName(ctx context.Context, userID string) (string, bool) {
	var name string
	if err := n.cache.Get(ctx, UserNameCacheKey(userID), &name); err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("user_id", userID).Msg("name cache read failed")
		}
		return "", false
	}
	return name, name != ""
}

// SetName 写入显示名
func (n *NameCache) SetName(ctx context.Context, userID, name string) {
	if err := n.cache.Set(ctx, UserNameCacheKey(userID), name, n.ttl); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("name cache write failed")
	}
}
