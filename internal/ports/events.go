package ports

import "context"

// EventPublisher announces catalog and theme changes so downstream consumers
// (edge caches, the public site) can revalidate. Publishing is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload []byte) error
}
