package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const statePrefix = "oauthstate:"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// SetState stores a 5-minute OAuth state nonce.
func SetState(ctx context.Context, rdb *redis.Client, state string) error {
	return rdb.Set(ctx, statePrefix+state, "1", 5*time.Minute).Err()
}

// TakeState consumes a state nonce; a nonce can only be taken once.
func TakeState(ctx context.Context, rdb *redis.Client, state string) bool {
	_, err := rdb.GetDel(ctx, statePrefix+state).Result()
	return err == nil
}
