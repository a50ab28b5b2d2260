package service

import (
	"context"
	"time"
)

// EntryEventType names what happened to a log entry.
type EntryEventType string

const (
	EntryAdded   EntryEventType = "entry.added"
	EntryDeleted EntryEventType = "entry.deleted"
)

// EntryEvent is published after a successful table write. It never carries
// row contents.
type EntryEvent struct {
	RequestID  string         `json:"request_id,omitempty"` // For distributed tracing
	Type       EntryEventType `json:"type"`
	EntryID    string         `json:"entry_id"`
	OwnerEmail string         `json:"owner_email"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishEntryEvent publishes an entry change for downstream consumers
	PublishEntryEvent(ctx context.Context, event *EntryEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
