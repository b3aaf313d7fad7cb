// Package cache holds lookaside caches mapping a calendar date to the id of
// the schedule that was last resolved for it. Entries are hints only; readers
// must re-validate them against the store.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "schedule:date:"

type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(address, username, password string, ttl time.Duration) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, date string) (int, bool, error) {
	val, err := r.rdb.Get(ctx, keyPrefix+date).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt cache entry %q: %w", keyPrefix+date, err)
	}
	return id, true, nil
}

func (r *Redis) Set(ctx context.Context, date string, id int) error {
	if err := r.rdb.Set(ctx, keyPrefix+date, id, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("date", date).Int("schedule_id", id).Msg("failed to add schedule date to redis")
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, date string) error {
	return r.rdb.Del(ctx, keyPrefix+date).Err()
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
