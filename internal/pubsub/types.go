package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchImported EventType = "match-imported"
	EventPlayerErased  EventType = "player-erased"
)
