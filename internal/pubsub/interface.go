package pubsub

import "context"

// Publisher fans events out to subscribers of a topic.
type Publisher interface {
	Publish(ctx context.Context, topic EventType, data any) error
	Close() error
}
