package queue

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisJobsKey    = "washly:queue:jobs"
	redisDelayedKey = "washly:queue:delayed"
)

// RedisDriver stores jobs in a Redis list so they survive restarts and can
// be shared across processes. Delayed jobs live in a sorted set scored by
// their ready-at timestamp and are promoted by a background loop.
type RedisDriver struct {
	client *redis.Client
}

// NewRedisDriver wraps an existing Redis client. Call StartDelayedPromoter
// if you use PushDelayed.
func NewRedisDriver(client *redis.Client) *RedisDriver {
	return &RedisDriver{client: client}
}

func (d *RedisDriver) Push(payload []byte) error {
	return d.client.LPush(context.Background(), redisJobsKey, payload).Err()
}

// PushDelayed schedules payload to become available after delay.
func (d *RedisDriver) PushDelayed(payload []byte, delay time.Duration) error {
	score := float64(time.Now().Add(delay).Unix())
	return d.client.ZAdd(context.Background(), redisDelayedKey, redis.Z{
		Score:  score,
		Member: payload,
	}).Err()
}

func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	res, err := d.client.BRPop(ctx, 2*time.Second, redisJobsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // timeout, no job available
		}
		return nil, err
	}
	// BRPop returns [key, value]
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}

// StartDelayedPromoter moves due delayed jobs onto the main queue once per
// second until ctx is cancelled.
func (d *RedisDriver) StartDelayedPromoter(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				d.promoteDue(ctx)
			}
		}
	}()
}

func (d *RedisDriver) promoteDue(ctx context.Context) {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	due, err := d.client.ZRangeByScore(ctx, redisDelayedKey, &redis.ZRangeBy{
		Min: "0", Max: now,
	}).Result()
	if err != nil || len(due) == 0 {
		return
	}
	for _, member := range due {
		pipe := d.client.TxPipeline()
		pipe.ZRem(ctx, redisDelayedKey, member)
		pipe.LPush(ctx, redisJobsKey, member)
		pipe.Exec(ctx) //nolint:errcheck
	}
}
