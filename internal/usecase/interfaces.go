package usecase

import (
	"context"

	"waypost/internal/domain/service"
)

// AttestationVerifier abstracts the external identity verifier so the
// verification flow can be tested without network access.
type AttestationVerifier interface {
	Verify(ctx context.Context, req service.AttestationRequest) (*service.AttestationResult, error)
}

// EventPublisher broadcasts lifecycle events to connected observers. It is
// fire-and-forget: publishing never fails a transition.
type EventPublisher interface {
	Publish(eventType string, payload map[string]interface{})
}
