package usecase

import (
	"context"

	"didilikeit/internal/domain/entity"
)

// StoreUnavailableWarning is shown instead of the log when the table cannot be read.
const StoreUnavailableWarning = "Your log could not be loaded right now. What you see may be incomplete; please try again shortly."

// ListInput narrows the caller's own entries.
type ListInput struct {
	Search string // Case-insensitive substring matched against every displayed field.
}

// ListItem is one visible entry plus where it sits in the full table.
type ListItem struct {
	Entry    *entity.LogEntry
	Position int
}

// ListOutput is the caller's log, newest first.
type ListOutput struct {
	Items   []ListItem
	Version string         // Snapshot version the positions refer to.
	Summary entity.Summary // Computed over every own row, ignoring Search.

	// Degraded is set when the store could not be read; Items is then empty
	// and Warning explains why.
	Degraded bool
	Warning  string
}

// AddEntryInput is the new-entry form. Zero values take the form defaults.
type AddEntryInput struct {
	Title      string `json:"title" validate:"required,max=300"`
	Creator    string `json:"creator" validate:"max=300"`
	Category   string `json:"type" validate:"max=50"`
	Genre      string `json:"genre" validate:"max=100"`
	Year       int    `json:"year" validate:"omitempty,min=1800,max=2100"`
	DateLogged string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Verdict    string `json:"verdict" validate:"max=50"`
	Thoughts   string `json:"thoughts" validate:"max=5000"`

	// OwnerEmail is ignored. Rows are always stamped with the session principal.
	OwnerEmail string `json:"user"`
}

// AdminStatsOutput is the cross-user aggregate view.
type AdminStatsOutput struct {
	Stats    *entity.AdminStats
	Degraded bool
	Warning  string
}

// EntryUsecase is per-user access to the shared table.
type EntryUsecase interface {
	ListMyEntries(ctx context.Context, session *entity.Session, input *ListInput) (*ListOutput, error)
	AddEntry(ctx context.Context, session *entity.Session, input *AddEntryInput) (*entity.LogEntry, error)
	// DeleteEntry removes the caller's entry with the given stable ID.
	DeleteEntry(ctx context.Context, session *entity.Session, id string) error
	// DeleteEntryAt removes the caller's entry at a position of the snapshot
	// identified by expectedVersion. An empty version skips the staleness check.
	DeleteEntryAt(ctx context.Context, session *entity.Session, position int, expectedVersion string) error
	AdminStats(ctx context.Context, session *entity.Session) (*AdminStatsOutput, error)
}
