package quota

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Ledger decides whether a generation request may proceed and records usage
// after a successful one. The day boundary is local midnight of the server's
// clock, derived from LastResetAt alone — no separate "last day" field is
// stored, so the counter and its reset marker cannot drift apart.
//
// Check and commit are two separate store round-trips; two concurrent
// requests from the same free user can both be admitted. That race is
// accepted here, matching the rest of the design's per-request model.
type Ledger struct {
	store Store
	limit int
	now   func() time.Time
}

// NewLedger creates a Ledger over store. A nil store disables enforcement:
// every request is admitted as unlimited and commits are no-ops. Callers are
// expected to surface that degraded mode at startup, not rely on it silently.
func NewLedger(store Store, freeDailyLimit int) *Ledger {
	return &Ledger{store: store, limit: freeDailyLimit, now: time.Now}
}

// Enabled reports whether a backing store is configured.
func (l *Ledger) Enabled() bool { return l.store != nil }

// CheckAdmission reads the user's record and decides admit/deny. It never
// writes; the stored counter is reinterpreted against today's date instead
// of being reset in place.
func (l *Ledger) CheckAdmission(ctx context.Context, userID string) (Admission, error) {
	if l.store == nil {
		return Admission{Admitted: true, Remaining: Unlimited, Limit: l.limit, Tier: TierFree}, nil
	}

	rec, err := l.store.Get(ctx, userID)
	if err != nil {
		return Admission{}, fmt.Errorf("reading quota record: %w", err)
	}

	tier := TierFree
	if rec != nil && rec.Tier != "" {
		tier = rec.Tier
	}

	if tier != TierFree {
		return Admission{Admitted: true, Remaining: Unlimited, Limit: l.limit, Tier: tier}, nil
	}

	used := l.effectiveCount(rec)
	if used >= l.limit {
		return Admission{Admitted: false, Remaining: 0, Limit: l.limit, Tier: tier}, nil
	}
	return Admission{Admitted: true, Remaining: l.limit - used, Limit: l.limit, Tier: tier}, nil
}

// RecordUsage re-derives the effective count, increments it, and persists the
// record with merge semantics: counter and reset time are overwritten, tier
// and email are carried over from the existing record or defaulted.
func (l *Ledger) RecordUsage(ctx context.Context, userID string) (*UserRecord, error) {
	if l.store == nil {
		return nil, nil
	}

	rec, err := l.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading quota record: %w", err)
	}

	updated := &UserRecord{
		UserID:              userID,
		Tier:                TierFree,
		NotesGeneratedToday: l.effectiveCount(rec) + 1,
		LastResetAt:         l.now(),
	}
	if rec != nil {
		if rec.Tier != "" {
			updated.Tier = rec.Tier
		}
		updated.Email = rec.Email
	}

	if err := l.store.Put(ctx, updated); err != nil {
		return nil, fmt.Errorf("writing quota record: %w", err)
	}
	return updated, nil
}

// Status returns the read-only quota view for a user.
func (l *Ledger) Status(ctx context.Context, userID string) (*Status, error) {
	adm, err := l.CheckAdmission(ctx, userID)
	if err != nil {
		return nil, err
	}

	st := &Status{Tier: adm.Tier, Limit: l.limit, Remaining: "unlimited"}
	if adm.Tier == TierFree && l.store != nil {
		rec, err := l.store.Get(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("reading quota record: %w", err)
		}
		st.UsedToday = l.effectiveCount(rec)
		st.Remaining = strconv.Itoa(l.limit - st.UsedToday)
	}
	return st, nil
}

func (l *Ledger) effectiveCount(rec *UserRecord) int {
	if rec == nil || rec.LastResetAt.IsZero() || !sameDay(rec.LastResetAt, l.now()) {
		return 0
	}
	return rec.NotesGeneratedToday
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
