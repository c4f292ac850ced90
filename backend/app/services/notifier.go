package services

import (
	"context"
	"encoding/json"

	"monitor-hub/backend/app/models"

	"github.com/redis/go-redis/v9"
)

// AlertNotifier fans a freshly stored alert out to live subscribers.
type AlertNotifier interface {
	Notify(ctx context.Context, alert *models.AlertLog) error
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, *models.AlertLog) error { return nil }

// RedisNotifier publishes alerts as JSON on a pub/sub channel.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: channel}
}

func (n *RedisNotifier) Notify(ctx context.Context, alert *models.AlertLog) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, n.channel, payload).Err()
}
