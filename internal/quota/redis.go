package quota

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "quota:user:"

// RedisStore keeps quota records as one hash per user. The hash never
// expires: day-rollover is interpreted lazily from last_reset_at, same as
// the other stores.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*UserRecord, error) {
	fields, err := s.client.HGetAll(ctx, redisKeyPrefix+userID).Result()
	if err != nil {
		return nil, fmt.Errorf("fetching quota hash: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	rec := &UserRecord{
		UserID: userID,
		Tier:   Tier(fields["tier"]),
		Email:  fields["email"],
	}
	if v, ok := fields["notes_generated_today"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parsing notes_generated_today: %w", err)
		}
		rec.NotesGeneratedToday = n
	}
	if v, ok := fields["last_reset_at"]; ok && v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("parsing last_reset_at: %w", err)
		}
		rec.LastResetAt = t
	}
	return rec, nil
}

func (s *RedisStore) Put(ctx context.Context, rec *UserRecord) error {
	err := s.client.HSet(ctx, redisKeyPrefix+rec.UserID,
		"tier", string(rec.Tier),
		"notes_generated_today", strconv.Itoa(rec.NotesGeneratedToday),
		"last_reset_at", rec.LastResetAt.Format(time.RFC3339Nano),
		"email", rec.Email,
	).Err()
	if err != nil {
		return fmt.Errorf("writing quota hash: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
