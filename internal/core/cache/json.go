package cache

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
)

// NegativeTTL 缓存"不存在"的时长，挡住对无效 id 的反复回源
const NegativeTTL = 10 * time.Second

var null = []byte("null")

// GetOrLoadJSON 值以 JSON 存储；load 返回 (nil, nil) 表示不存在，缓存为 null 并返回 nil
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	if c == nil {
		return load(ctx)
	}
	miss := false
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if v == nil {
			miss = true
			return null, nil
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	if miss {
		_ = c.RDB.Expire(ctx, c.Prefix+key, NegativeTTL).Err()
	}
	if string(b) == string(null) {
		return nil, nil
	}
	var out T
	if e := json.Unmarshal(b, &out); e != nil {
		// 结构变更后的旧值：丢弃并回源
		c.Delete(ctx, key)
		return load(ctx)
	}
	return &out, nil
}
