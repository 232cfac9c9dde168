package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// FeatureRunStream carries one event per completed feature rebuild.
	FeatureRunStream = "pipeline.features.ncaab"

	// PredictionStream carries one event per published prediction slate.
	PredictionStream = "pipeline.predictions.ncaab"
)

// RedisStreamPublisher publishes pipeline events to Redis streams so
// downstream consumers (notebooks, bet trackers) can react to fresh data.
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a publisher from an existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// PublishFeatureRun publishes the stats of a completed feature rebuild.
func (rsp *RedisStreamPublisher) PublishFeatureRun(ctx context.Context, stats interface{}) error {
	return rsp.publish(ctx, FeatureRunStream, stats)
}

// PublishPredictions publishes a freshly persisted prediction slate.
func (rsp *RedisStreamPublisher) PublishPredictions(ctx context.Context, slate interface{}) error {
	return rsp.publish(ctx, PredictionStream, slate)
}

func (rsp *RedisStreamPublisher) publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: 1000,
		Approx: true,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
