package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps quota records in the user_quotas table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (*UserRecord, error) {
	var (
		rec   UserRecord
		email *string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, tier, notes_generated_today, last_reset_at, email
		 FROM user_quotas WHERE user_id = $1`, userID,
	).Scan(&rec.UserID, &rec.Tier, &rec.NotesGeneratedToday, &rec.LastResetAt, &email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching quota record: %w", err)
	}
	if email != nil {
		rec.Email = *email
	}
	return &rec, nil
}

func (s *PostgresStore) Put(ctx context.Context, rec *UserRecord) error {
	var email *string
	if rec.Email != "" {
		email = &rec.Email
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO user_quotas (user_id, tier, notes_generated_today, last_reset_at, email, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET tier = EXCLUDED.tier,
		     notes_generated_today = EXCLUDED.notes_generated_today,
		     last_reset_at = EXCLUDED.last_reset_at,
		     email = EXCLUDED.email,
		     updated_at = now()`,
		rec.UserID, rec.Tier, rec.NotesGeneratedToday, rec.LastResetAt, email)
	if err != nil {
		return fmt.Errorf("upserting quota record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
