package cache

import (
	"context"
	"encoding/json"
	"time"

	"hotelbooking/config"
	"hotelbooking/internal/client"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client   *redis.Client
	roomsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, roomsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		roomsTTL: roomsTTL,
	}
}

func (c *RedisCache) GetRooms(ctx context.Context, recommended bool) ([]client.RoomSummary, error) {
	data, err := c.client.Get(ctx, roomsKey(recommended)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var rooms []client.RoomSummary
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *RedisCache) SetRooms(ctx context.Context, recommended bool, rooms []client.RoomSummary) error {
	payload, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, roomsKey(recommended), payload, c.roomsTTL).Err()
}

func roomsKey(recommended bool) string {
	if recommended {
		return "cache:rooms:recommended"
	}
	return "cache:rooms"
}
