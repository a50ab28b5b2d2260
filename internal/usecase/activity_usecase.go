package usecase

import (
	"context"

	"didilikeit/internal/domain/service"
)

// ActivityUsecase keeps a bounded feed of entry events delivered by Pub/Sub.
type ActivityUsecase interface {
	// Record stores an event. Redeliveries of the same message are ignored and
	// reported with recorded=false.
	Record(ctx context.Context, messageID string, event *service.EntryEvent) (recorded bool, err error)
	// Recent returns up to limit events, newest first, optionally for one owner.
	Recent(ctx context.Context, ownerEmail string, limit int) []*service.EntryEvent
}
