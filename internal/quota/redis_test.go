package quota

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client)
}

func TestRedisStore_GetMissingUser(t *testing.T) {
	s := setupRedisStore(t)

	rec, err := s.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRedisStore_PutGetRoundTrip(t *testing.T) {
	s := setupRedisStore(t)
	ctx := context.Background()

	resetAt := time.Date(2026, 8, 30, 9, 15, 0, 0, time.UTC)
	require.NoError(t, s.Put(ctx, &UserRecord{
		UserID:              "u1",
		Tier:                TierPro,
		NotesGeneratedToday: 3,
		LastResetAt:         resetAt,
		Email:               "student@example.com",
	}))

	rec, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, TierPro, rec.Tier)
	assert.Equal(t, 3, rec.NotesGeneratedToday)
	assert.True(t, rec.LastResetAt.Equal(resetAt))
	assert.Equal(t, "student@example.com", rec.Email)
}

func TestRedisStore_PutOverwrites(t *testing.T) {
	s := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &UserRecord{UserID: "u1", Tier: TierFree, NotesGeneratedToday: 1, LastResetAt: time.Now()}))
	require.NoError(t, s.Put(ctx, &UserRecord{UserID: "u1", Tier: TierFree, NotesGeneratedToday: 2, LastResetAt: time.Now()}))

	rec, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.NotesGeneratedToday)
}

func TestRedisStore_LedgerEndToEnd(t *testing.T) {
	s := setupRedisStore(t)
	l := NewLedger(s, 1)
	ctx := context.Background()

	adm, err := l.CheckAdmission(ctx, "u1")
	require.NoError(t, err)
	require.True(t, adm.Admitted)

	_, err = l.RecordUsage(ctx, "u1")
	require.NoError(t, err)

	adm, err = l.CheckAdmission(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, adm.Admitted)
	assert.Equal(t, 0, adm.Remaining)
}

func TestRedisStore_ErrorPropagates(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	s := NewRedisStore(client)
	mr.Close()

	_, err := s.Get(context.Background(), "u1")
	assert.Error(t, err, "a configured but unreachable store must fault, not admit")
}
