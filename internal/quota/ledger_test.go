package quota

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_FreshFreeUserAdmitted(t *testing.T) {
	l := NewLedger(NewMemoryStore(), 1)
	ctx := context.Background()

	adm, err := l.CheckAdmission(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, adm.Admitted)
	assert.Equal(t, 1, adm.Remaining)
	assert.Equal(t, TierFree, adm.Tier)
}

func TestLedger_FreeUserDeniedAfterCap(t *testing.T) {
	l := NewLedger(NewMemoryStore(), 1)
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
	assert.Equal(t, TierFree, adm.Tier)
}

func TestLedger_DayRolloverTreatsCountAsZero(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, store.Put(ctx, &UserRecord{
		UserID:              "u1",
		Tier:                TierFree,
		NotesGeneratedToday: 1,
		LastResetAt:         yesterday,
	}))

	l := NewLedger(store, 1)
	adm, err := l.CheckAdmission(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, adm.Admitted, "yesterday's counter must not block today")
	assert.Equal(t, 1, adm.Remaining)
}

func TestLedger_RolloverAcrossMidnightNotDuration(t *testing.T) {
	// 23:30 yesterday vs 00:30 today is under an hour apart but crosses the
	// local-midnight day boundary, so the count must reset.
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 0, 30, 0, 0, time.Local)
	lateLastNight := time.Date(2026, 3, 9, 23, 30, 0, 0, time.Local)

	require.NoError(t, store.Put(ctx, &UserRecord{
		UserID:              "u1",
		NotesGeneratedToday: 1,
		LastResetAt:         lateLastNight,
	}))

	l := NewLedger(store, 1)
	l.now = func() time.Time { return now }

	adm, err := l.CheckAdmission(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, adm.Admitted)
}

func TestLedger_SameDayCountPersists(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.Local)
	earlierToday := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	require.NoError(t, store.Put(ctx, &UserRecord{
		UserID:              "u1",
		NotesGeneratedToday: 1,
		LastResetAt:         earlierToday,
	}))

	l := NewLedger(store, 1)
	l.now = func() time.Time { return now }

	adm, err := l.CheckAdmission(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, adm.Admitted)
}

func TestLedger_NonFreeTiersUnlimited(t *testing.T) {
	for _, tier := range []Tier{TierPro, TierTeam} {
		t.Run(string(tier), func(t *testing.T) {
			store := NewMemoryStore()
			ctx := context.Background()

			require.NoError(t, store.Put(ctx, &UserRecord{
				UserID:              "u1",
				Tier:                tier,
				NotesGeneratedToday: 50,
				LastResetAt:         time.Now(),
			}))

			l := NewLedger(store, 1)
			adm, err := l.CheckAdmission(ctx, "u1")
			require.NoError(t, err)
			assert.True(t, adm.Admitted)
			assert.Equal(t, Unlimited, adm.Remaining)
			assert.Equal(t, tier, adm.Tier)
		})
	}
}

func TestLedger_RecordUsagePreservesTierAndEmail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &UserRecord{
		UserID:      "u1",
		Tier:        TierPro,
		Email:       "student@example.com",
		LastResetAt: time.Now(),
	}))

	l := NewLedger(store, 1)
	updated, err := l.RecordUsage(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, TierPro, updated.Tier)
	assert.Equal(t, "student@example.com", updated.Email)
	assert.Equal(t, 1, updated.NotesGeneratedToday)
}

func TestLedger_RecordUsageCreatesRecordOnFirstWrite(t *testing.T) {
	store := NewMemoryStore()
	l := NewLedger(store, 1)
	ctx := context.Background()

	updated, err := l.RecordUsage(ctx, "new-user")
	require.NoError(t, err)
	assert.Equal(t, TierFree, updated.Tier)
	assert.Equal(t, 1, updated.NotesGeneratedToday)
	assert.Empty(t, updated.Email)
	assert.WithinDuration(t, time.Now(), updated.LastResetAt, time.Second)

	rec, err := store.Get(ctx, "new-user")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 1, rec.NotesGeneratedToday)
}

func TestLedger_RecordUsageResetsStaleCounter(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &UserRecord{
		UserID:              "u1",
		NotesGeneratedToday: 7,
		LastResetAt:         time.Now().AddDate(0, 0, -3),
	}))

	l := NewLedger(store, 1)
	updated, err := l.RecordUsage(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, updated.NotesGeneratedToday, "stale count must restart at 1, not 8")
}

func TestLedger_DisabledAdmitsEverything(t *testing.T) {
	l := NewLedger(nil, 1)
	ctx := context.Background()

	assert.False(t, l.Enabled())

	for i := 0; i < 5; i++ {
		adm, err := l.CheckAdmission(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, adm.Admitted)
		assert.Equal(t, Unlimited, adm.Remaining)

		_, err = l.RecordUsage(ctx, "u1")
		require.NoError(t, err)
	}
}

func TestLedger_Status(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	l := NewLedger(store, 1)

	st, err := l.Status(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, TierFree, st.Tier)
	assert.Equal(t, 0, st.UsedToday)
	assert.Equal(t, "1", st.Remaining)
	assert.Equal(t, 1, st.Limit)

	_, err = l.RecordUsage(ctx, "u1")
	require.NoError(t, err)

	st, err = l.Status(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, st.UsedToday)
	assert.Equal(t, "0", st.Remaining)

	require.NoError(t, store.Put(ctx, &UserRecord{UserID: "u2", Tier: TierTeam, LastResetAt: time.Now()}))
	st, err = l.Status(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "unlimited", st.Remaining)
}
