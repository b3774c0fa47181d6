package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const streamQueries = "polkaquery.queries"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishQueryEvent appends a processed-query record to the event stream.
// Best effort: callers log and move on when it fails.
func PublishQueryEvent(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamQueries,
		Values: payload,
	}).Result()
	return err
}
