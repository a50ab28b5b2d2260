package impl

import (
	"context"
	"log/slog"
	"sync"

	"didilikeit/config"
	deliverycontext "didilikeit/internal/delivery/context"
	"didilikeit/internal/domain/entity"
	domainerrors "didilikeit/internal/domain/errors"
	"didilikeit/internal/domain/service"
	"didilikeit/internal/usecase"

	"go.uber.org/fx"
)

// activityService implements the ActivityUsecase interface with a ring of
// recent events.
type activityService struct {
	mu       sync.Mutex
	events   []*service.EntryEvent
	messages []string
	seen     map[string]struct{}
	next     int
	size     int
	logger   *slog.Logger
}

// ActivityServiceParams holds dependencies for ActivityService, injected by Fx.
type ActivityServiceParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewActivityService is the constructor for activityService.
func NewActivityService(params ActivityServiceParams) usecase.ActivityUsecase {
	return newActivityService(params.Config.Worker.RecentEvents, params.Logger)
}

func newActivityService(capacity int, logger *slog.Logger) *activityService {
	if capacity <= 0 {
		capacity = 1
	}

	return &activityService{
		events:   make([]*service.EntryEvent, capacity),
		messages: make([]string, capacity),
		seen:     make(map[string]struct{}, capacity),
		logger:   logger,
	}
}

func (srv *activityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Record validates the event and appends it, evicting the oldest when full.
func (srv *activityService) Record(ctx context.Context, messageID string, event *service.EntryEvent) (bool, error) {
	if event == nil || event.EntryID == "" {
		return false, domainerrors.ErrValidationFailed.WithDetails("event has no entry id")
	}
	switch event.Type {
	case service.EntryAdded, service.EntryDeleted:
	default:
		return false, domainerrors.ErrValidationFailed.WithDetails("unknown event type " + string(event.Type))
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	if messageID != "" {
		if _, ok := srv.seen[messageID]; ok {
			srv.log(ctx).Debug("Ignoring redelivered event", slog.String("message_id", messageID))

			return false, nil
		}
	}

	cp := *event
	cp.OwnerEmail = entity.NormalizeEmail(cp.OwnerEmail)

	if evicted := srv.messages[srv.next]; evicted != "" {
		delete(srv.seen, evicted)
	}
	srv.events[srv.next] = &cp
	srv.messages[srv.next] = messageID
	if messageID != "" {
		srv.seen[messageID] = struct{}{}
	}
	srv.next = (srv.next + 1) % len(srv.events)
	if srv.size < len(srv.events) {
		srv.size++
	}

	return true, nil
}

// Recent walks the ring backwards from the newest event.
func (srv *activityService) Recent(_ context.Context, ownerEmail string, limit int) []*service.EntryEvent {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if limit <= 0 || limit > srv.size {
		limit = srv.size
	}
	ownerEmail = entity.NormalizeEmail(ownerEmail)

	out := make([]*service.EntryEvent, 0, limit)
	for i := 1; i <= srv.size && len(out) < limit; i++ {
		event := srv.events[(srv.next-i+len(srv.events))%len(srv.events)]
		if ownerEmail != "" && event.OwnerEmail != ownerEmail {
			continue
		}
		cp := *event
		out = append(out, &cp)
	}

	return out
}
