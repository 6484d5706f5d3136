package service

import (
	"context"
	"log"
)

// EventPublisher delivers domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// FileStore persists uploaded files under a directory and returns the public
// URL of the stored file.
type FileStore interface {
	Save(dir, name string, data []byte) (string, error)
	Remove(url string) error
}

// Cache stores JSON-encodable values for a bounded time.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

func publish(ctx context.Context, p EventPublisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		log.Printf("[Publisher] failed to publish %s: %v", routingKey, err)
	}
}
