package notes

import (
	"errors"
	"fmt"

	"github.com/studytube-app/studytube/internal/quota"
)

// Pipeline error kinds. The handler maps these onto HTTP statuses; nothing
// is swallowed and quota is never committed once one of them occurs.
var (
	// ErrMissingReference: the request carried neither a URL nor raw content.
	ErrMissingReference = errors.New("YouTube URL or content is required")

	// ErrInvalidReference: the URL does not match any recognized video-link shape.
	ErrInvalidReference = errors.New("Invalid YouTube URL")

	// ErrModelUnavailable: the model cannot be reached at all — missing
	// credential or bounded-wait expiry. Fatal to the request.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrModelInvocation: the model call itself failed. Transient, but not
	// retried automatically.
	ErrModelInvocation = errors.New("model invocation failed")

	// ErrUnparseableResponse: the model produced output that does not contain
	// a well-formed study-notes JSON object.
	ErrUnparseableResponse = errors.New("failed to parse study notes response")

	// ErrInfrastructure: the quota store is configured but unreachable. The
	// fault propagates; it never silently admits or denies.
	ErrInfrastructure = errors.New("quota store unavailable")
)

// QuotaExceededError is the policy denial for a free-tier user who has spent
// today's allowance. It carries what the caller needs to render upgrade
// messaging.
type QuotaExceededError struct {
	Remaining int
	Limit     int
	Tier      quota.Tier
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("Daily limit reached. Free users can generate %d note per day. Upgrade to Pro for unlimited notes.", e.Limit)
}
