package quota

import "time"

// Tier is a user's subscription class. Only the free tier is subject to the
// daily generation cap; every other tier is unlimited.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
	TierTeam Tier = "team"
)

// Unlimited is the sentinel remaining-count for tiers without a daily cap.
const Unlimited = -1

// UserRecord mirrors the persisted per-user quota row.
//
// NotesGeneratedToday is only meaningful relative to LastResetAt's calendar
// day: when LastResetAt falls on an earlier day than now, the effective count
// is zero regardless of the stored integer. The stored value is rewritten
// lazily on the next commit, never proactively.
type UserRecord struct {
	UserID              string    `json:"user_id"`
	Tier                Tier      `json:"tier"`
	NotesGeneratedToday int       `json:"notes_generated_today"`
	LastResetAt         time.Time `json:"last_reset_at"`
	Email               string    `json:"email,omitempty"`
}

// Admission is the outcome of a quota check made before any model call.
// Remaining counts the slots still available including the one this request
// would consume; Unlimited for non-free tiers.
type Admission struct {
	Admitted  bool
	Remaining int
	Limit     int
	Tier      Tier
}

// Status is the read-only quota view served to the presentation layer.
type Status struct {
	Tier      Tier   `json:"tier"`
	UsedToday int    `json:"usedToday"`
	Remaining string `json:"remaining"`
	Limit     int    `json:"limit"`
}
