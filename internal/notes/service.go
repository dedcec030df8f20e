package notes

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/studytube-app/studytube/internal/metrics"
	"github.com/studytube-app/studytube/internal/quota"
)

// Service runs one generation request end to end: admit → resolve → generate
// → validate → commit. Any failure short-circuits before the next stage, and
// quota is only committed after a validated document exists — a failed
// generation never consumes the user's daily allowance.
type Service struct {
	generator *Generator
	ledger    *quota.Ledger
}

// Result is the outcome of an orchestrated request. Admission is set as soon
// as the quota check admits the request, so it is present even when a later
// stage fails; it is nil when the request carried no user ID or enforcement
// is disabled.
type Result struct {
	Document  *StudyNotesDocument
	Admission *quota.Admission
}

func NewService(generator *Generator, ledger *quota.Ledger) *Service {
	return &Service{generator: generator, ledger: ledger}
}

func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*Result, error) {
	if req.URL == "" && req.Content == "" {
		metrics.GenerationsTotal.WithLabelValues("invalid_request").Inc()
		return nil, ErrMissingReference
	}

	res := &Result{}

	if req.UserID != "" && s.ledger.Enabled() {
		adm, err := s.ledger.CheckAdmission(ctx, req.UserID)
		if err != nil {
			metrics.GenerationsTotal.WithLabelValues("infrastructure").Inc()
			return nil, fmt.Errorf("%w: %v", ErrInfrastructure, err)
		}
		if !adm.Admitted {
			metrics.QuotaDenialsTotal.Inc()
			metrics.GenerationsTotal.WithLabelValues("quota_denied").Inc()
			return nil, &QuotaExceededError{Remaining: 0, Limit: adm.Limit, Tier: adm.Tier}
		}
		res.Admission = &adm
	}

	content, err := Resolve(req)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("invalid_request").Inc()
		return res, err
	}

	start := time.Now()
	raw, err := s.generator.Generate(ctx, content)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("model_error").Inc()
		return res, err
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("unparseable").Inc()
		return res, err
	}

	if res.Admission != nil {
		if _, err := s.ledger.RecordUsage(ctx, req.UserID); err != nil {
			metrics.GenerationsTotal.WithLabelValues("infrastructure").Inc()
			return res, fmt.Errorf("%w: %v", ErrInfrastructure, err)
		}
	}

	metrics.GenerationsTotal.WithLabelValues("success").Inc()
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	slog.Info("notes generated",
		"user_id", req.UserID,
		"title", doc.Title,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	res.Document = doc
	return res, nil
}

// QuotaStatus returns the read-only quota view for a user.
func (s *Service) QuotaStatus(ctx context.Context, userID string) (*quota.Status, error) {
	st, err := s.ledger.Status(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInfrastructure, err)
	}
	return st, nil
}
