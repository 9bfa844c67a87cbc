package contracts

import "context"

// EventPublisher emits case lifecycle events for downstream consumers.
// Publishing is best-effort: a failed publish is logged, never surfaced to
// the caller of the originating operation.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}
