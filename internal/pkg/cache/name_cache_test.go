package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNameCache_Unreachable(t *testing.T) {
	Convey("Redis 不可用时显示名缓存降级为未命中", t, func() {
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 100 * time.Millisecond,
			MaxRetries:  -1,
		})
		defer client.Close()

		names := NewNameCache(NewRedisCacheWithClient(client), 0)
		So(names.ttl, ShouldEqual, DefaultUserNameTTL)

		ctx := context.Background()
		So(func() { names.SetName(ctx, "u1", "alice") }, ShouldNotPanic)

		name, ok := names.GetName(ctx, "u1")
		So(ok, ShouldBeFalse)
		So(name, ShouldBeEmpty)
	})
}

func TestUserNameCacheKey(t *testing.T) {
	Convey("显示名缓存 key", t, func() {
		So(UserNameCacheKey("abc"), ShouldEqual, "user:name:abc")
	})
}
