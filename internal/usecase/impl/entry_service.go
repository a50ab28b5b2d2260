package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	deliverycontext "didilikeit/internal/delivery/context"
	"didilikeit/internal/domain/entity"
	domainerrors "didilikeit/internal/domain/errors"
	"didilikeit/internal/domain/repository"
	"didilikeit/internal/domain/service"
	"didilikeit/internal/errors"
	"didilikeit/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

// entryService implements the EntryUsecase interface.
type entryService struct {
	store     repository.TableStore
	sessions  usecase.SessionUsecase
	publisher service.EventPublisher
	validate  *validator.Validate
	now       func() time.Time
	logger    *slog.Logger
}

// EntryServiceParams holds dependencies for EntryService, injected by Fx.
type EntryServiceParams struct {
	fx.In

	Store     repository.TableStore
	Sessions  usecase.SessionUsecase
	Publisher service.EventPublisher `optional:"true"`
	Logger    *slog.Logger
}

// NewEntryService is the constructor for entryService.
func NewEntryService(params EntryServiceParams) usecase.EntryUsecase {
	return &entryService{
		store:     params.Store,
		sessions:  params.Sessions,
		publisher: params.Publisher,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		now:       time.Now,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *entryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListMyEntries returns the caller's rows, newest first.
func (srv *entryService) ListMyEntries(ctx context.Context, session *entity.Session, input *usecase.ListInput) (*usecase.ListOutput, error) {
	principal, err := srv.sessions.CurrentPrincipal(session)
	if err != nil {
		return nil, err
	}

	snapshot, err := srv.store.ReadAll(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrStoreUnavailable) {
			return nil, errors.Wrap(err, "failed to read table")
		}
		srv.log(ctx).Warn("Serving an empty log because the table store is unavailable", slog.Any("error", err))

		return &usecase.ListOutput{
			Items:    []usecase.ListItem{},
			Summary:  entity.Summarize(nil),
			Degraded: true,
			Warning:  usecase.StoreUnavailableWarning,
		}, nil
	}

	search := ""
	if input != nil {
		search = input.Search
	}

	owned := make([]*entity.LogEntry, 0)
	items := make([]usecase.ListItem, 0)
	for i, row := range snapshot.Rows {
		if !row.OwnedBy(principal.Email) {
			continue
		}
		owned = append(owned, row)
		if row.Matches(search) {
			items = append(items, usecase.ListItem{Entry: row, Position: i})
		}
	}
	slices.Reverse(items)

	return &usecase.ListOutput{
		Items:   items,
		Version: snapshot.Version,
		Summary: entity.Summarize(owned),
	}, nil
}

// AddEntry validates the form, appends the row and writes the whole table back.
func (srv *entryService) AddEntry(ctx context.Context, session *entity.Session, input *usecase.AddEntryInput) (*entity.LogEntry, error) {
	principal, err := srv.sessions.CurrentPrincipal(session)
	if err != nil {
		return nil, err
	}

	entry, err := srv.buildEntry(principal, input)
	if err != nil {
		return nil, err
	}

	snapshot, err := srv.store.ReadAll(ctx)
	if err != nil {
		return nil, srv.storeError(ctx, err, "read table")
	}

	if err := srv.store.ReplaceAll(ctx, withIDs(snapshot.With(entry)), snapshot.Version); err != nil {
		return nil, srv.storeError(ctx, err, "write table")
	}

	srv.log(ctx).Info("Entry added", slog.String("entry_id", entry.ID), slog.String("email", principal.Email))
	srv.publish(ctx, service.EntryAdded, entry)

	return entry, nil
}

// DeleteEntry removes the caller's row with the given ID.
func (srv *entryService) DeleteEntry(ctx context.Context, session *entity.Session, id string) error {
	principal, err := srv.sessions.CurrentPrincipal(session)
	if err != nil {
		return err
	}

	snapshot, err := srv.store.ReadAll(ctx)
	if err != nil {
		return srv.storeError(ctx, err, "read table")
	}

	position := snapshot.IndexOf(id)
	if position < 0 {
		return domainerrors.ErrEntryNotFound
	}

	return srv.deleteAt(ctx, principal, snapshot, position)
}

// DeleteEntryAt removes the caller's row at a position of a known snapshot.
func (srv *entryService) DeleteEntryAt(ctx context.Context, session *entity.Session, position int, expectedVersion string) error {
	principal, err := srv.sessions.CurrentPrincipal(session)
	if err != nil {
		return err
	}

	snapshot, err := srv.store.ReadAll(ctx)
	if err != nil {
		return srv.storeError(ctx, err, "read table")
	}

	if expectedVersion != "" && expectedVersion != snapshot.Version {
		return errors.Wrap(domainerrors.ErrConflict, "table changed since the positions were read")
	}

	if position < 0 || position >= len(snapshot.Rows) {
		return domainerrors.ErrEntryNotFound
	}

	return srv.deleteAt(ctx, principal, snapshot, position)
}

func (srv *entryService) deleteAt(ctx context.Context, principal *entity.Principal, snapshot *entity.Snapshot, position int) error {
	target := snapshot.Rows[position]
	if !target.OwnedBy(principal.Email) {
		srv.log(ctx).Warn("Refused to delete another user's entry",
			slog.String("email", principal.Email), slog.Int("position", position))

		return domainerrors.ErrForbidden
	}

	if err := srv.store.ReplaceAll(ctx, withIDs(snapshot.Without(position)), snapshot.Version); err != nil {
		return srv.storeError(ctx, err, "write table")
	}

	srv.log(ctx).Info("Entry deleted", slog.String("entry_id", target.ID), slog.String("email", principal.Email))
	srv.publish(ctx, service.EntryDeleted, target)

	return nil
}

// AdminStats aggregates the whole table for the configured admin.
func (srv *entryService) AdminStats(ctx context.Context, session *entity.Session) (*usecase.AdminStatsOutput, error) {
	if _, err := srv.sessions.CurrentPrincipal(session); err != nil {
		return nil, err
	}
	if !srv.sessions.IsAdmin(session) {
		return nil, domainerrors.ErrForbidden
	}

	snapshot, err := srv.store.ReadAll(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrStoreUnavailable) {
			return nil, errors.Wrap(err, "failed to read table")
		}
		srv.log(ctx).Warn("Serving empty admin stats because the table store is unavailable", slog.Any("error", err))

		return &usecase.AdminStatsOutput{
			Stats:    entity.ComputeAdminStats(nil),
			Degraded: true,
			Warning:  usecase.StoreUnavailableWarning,
		}, nil
	}

	return &usecase.AdminStatsOutput{Stats: entity.ComputeAdminStats(snapshot.Rows)}, nil
}

// buildEntry applies form defaults and validation. It never touches the store.
func (srv *entryService) buildEntry(principal *entity.Principal, input *usecase.AddEntryInput) (*entity.LogEntry, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("entry is required")
	}

	normalized := *input
	normalized.Title = strings.TrimSpace(normalized.Title)
	normalized.Creator = strings.TrimSpace(normalized.Creator)
	normalized.Genre = strings.TrimSpace(normalized.Genre)
	normalized.DateLogged = strings.TrimSpace(normalized.DateLogged)

	if err := srv.validate.Struct(&normalized); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(describeValidation(err))
	}

	now := srv.now()

	category := entity.CategoryMovie
	if normalized.Category != "" {
		category = entity.Category(normalized.Category)
	}
	if !category.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown type " + normalized.Category)
	}

	verdict := entity.VerdictYes
	if normalized.Verdict != "" {
		verdict = entity.Verdict(normalized.Verdict)
	}
	if !verdict.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown verdict " + normalized.Verdict)
	}

	year := normalized.Year
	if year == 0 {
		year = now.Year()
	}

	dateLogged := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if normalized.DateLogged != "" {
		parsed, err := time.Parse(entity.DateLayout, normalized.DateLogged)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("date must be YYYY-MM-DD")
		}
		dateLogged = parsed
	}

	return &entity.LogEntry{
		ID:         uuid.NewString(),
		OwnerEmail: principal.Email,
		Title:      normalized.Title,
		Creator:    normalized.Creator,
		Category:   category,
		Genre:      normalized.Genre,
		Year:       year,
		DateLogged: dateLogged,
		Verdict:    verdict,
		Thoughts:   normalized.Thoughts,
	}, nil
}

// storeError maps store failures onto the error taxonomy. Writes never degrade.
func (srv *entryService) storeError(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrVersionMismatch):
		srv.log(ctx).Info("Table changed underneath a write", slog.String("op", op))

		return errors.Wrap(domainerrors.ErrConflict, op)
	case errors.Is(err, repository.ErrStoreUnavailable):
		srv.log(ctx).Error("Table store unavailable", slog.String("op", op), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrStoreUnavailable, op)
	default:
		return errors.Wrapf(err, "failed to %s", op)
	}
}

func (srv *entryService) publish(ctx context.Context, eventType service.EntryEventType, entry *entity.LogEntry) {
	if srv.publisher == nil {
		return
	}

	event := &service.EntryEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		EntryID:    entry.ID,
		OwnerEmail: entry.OwnerEmail,
		OccurredAt: srv.now(),
	}
	if err := srv.publisher.PublishEntryEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish entry event",
			slog.String("type", string(eventType)), slog.String("entry_id", entry.ID), slog.Any("error", err))
	}
}

// withIDs gives legacy rows an ID as they pass through a write.
func withIDs(rows []*entity.LogEntry) []*entity.LogEntry {
	for i, row := range rows {
		if row.ID != "" {
			continue
		}
		cp := *row
		cp.ID = uuid.NewString()
		rows[i] = &cp
	}

	return rows
}

func describeValidation(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			messages = append(messages, strings.ToLower(fe.Field())+" is required")
		case "min", "max":
			messages = append(messages, strings.ToLower(fe.Field())+" is out of range")
		case "datetime":
			messages = append(messages, strings.ToLower(fe.Field())+" must be YYYY-MM-DD")
		default:
			messages = append(messages, strings.ToLower(fe.Field())+" is invalid")
		}
	}

	return strings.Join(messages, "; ")
}
