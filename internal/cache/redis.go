package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vidshare/fixture-seeder/internal/config"
	"github.com/vidshare/fixture-seeder/internal/fixture"
)

const (
	counterPrefix = "counts:"
	counterTTL    = time.Hour

	invalidateBatch = 100
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

func (c *RedisCache) KeyForVideoLikes(videoID uint64) string {
	return fmt.Sprintf("%svideo:%d:likes", counterPrefix, videoID)
}

func (c *RedisCache) KeyForVideoComments(videoID uint64) string {
	return fmt.Sprintf("%svideo:%d:comments", counterPrefix, videoID)
}

func (c *RedisCache) KeyForCommentLikes(commentID uint64) string {
	return fmt.Sprintf("%scomment:%d:likes", counterPrefix, commentID)
}

// InvalidateCounters deletes every cached counter. Counters computed against
// the previous store contents are meaningless after a reset.
//
// Keys are collected by a full SCAN first and deleted afterwards, in batches
// of invalidateBatch; deleting while the cursor advances can skip keys.
func (c *RedisCache) InvalidateCounters(ctx context.Context) (int, error) {
	var keys []string
	iter := c.Client.Scan(ctx, 0, counterPrefix+"*", invalidateBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scan counters: %w", err)
	}

	deleted := 0
	for start := 0; start < len(keys); start += invalidateBatch {
		end := min(start+invalidateBatch, len(keys))
		n, err := c.Client.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return deleted, fmt.Errorf("delete counters: %w", err)
		}
		deleted += int(n)
	}
	return deleted, nil
}

// PrimeCounters drops stale counters and writes fresh ones derived from the
// dataset's comment and like records, one hour TTL each.
//
// Behavior:
//   - every video gets a likes and a comments key, zero included;
//   - every comment gets a likes key;
//   - values come from the relation rows, never from the records' cached
//     counter fields.
func (c *RedisCache) PrimeCounters(ctx context.Context, ds *fixture.Dataset) error {
	if _, err := c.InvalidateCounters(ctx); err != nil {
		return err
	}

	counts := map[string]int64{}
	for _, v := range ds.Videos {
		counts[c.KeyForVideoLikes(v.ID)] = 0
		counts[c.KeyForVideoComments(v.ID)] = 0
	}
	for _, cm := range ds.Comments {
		counts[c.KeyForVideoComments(cm.VideoID)]++
		counts[c.KeyForCommentLikes(cm.ID)] = 0
	}
	for _, l := range ds.VideoLikes {
		counts[c.KeyForVideoLikes(l.VideoID)]++
	}
	for _, l := range ds.CommentLikes {
		counts[c.KeyForCommentLikes(l.CommentID)]++
	}

	pipe := c.Client.TxPipeline()
	for key, n := range counts {
		pipe.Set(ctx, key, n, counterTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("prime counters: %w", err)
	}
	return nil
}

// GetCounter reads a cached counter. A miss returns ok=false.
func (c *RedisCache) GetCounter(ctx context.Context, key string) (int64, bool, error) {
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil // cache miss
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
