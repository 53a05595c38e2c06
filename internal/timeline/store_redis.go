package timeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key holding the event stream as a sorted set scored by
	// timestamp. One key for the whole stream keeps range queries a single
	// ZRANGEBYSCORE.
	eventStreamKey = "sentra:timeline:events"
)

// RedisStore is a Redis-backed event stream for deployments where multiple
// instances append concurrently. ZADD is atomic, so concurrent writers need
// no coordination, and readers never observe a torn event: the member is the
// fully marshaled payload.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal timeline event: %w", err)
	}
	return s.client.ZAdd(ctx, eventStreamKey, redis.Z{
		Score:  float64(event.Timestamp.UnixNano()),
		Member: payload,
	}).Err()
}

func (s *RedisStore) ListRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	members, err := s.client.ZRangeByScore(ctx, eventStreamKey, &redis.ZRangeBy{
		Min: fmt.Sprintf("%d", start.UnixNano()),
		Max: fmt.Sprintf("%d", end.UnixNano()),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("range timeline events: %w", err)
	}
	events := make([]Event, 0, len(members))
	for _, member := range members {
		var event Event
		if err := json.Unmarshal([]byte(member), &event); err != nil {
			return nil, fmt.Errorf("unmarshal timeline event: %w", err)
		}
		events = append(events, event)
	}
	// ZRANGEBYSCORE orders by score; equal-score members order by member
	// bytes, so re-sort on the decoded timestamp for stability.
	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp.Before(events[j].Timestamp) })
	return events, nil
}
