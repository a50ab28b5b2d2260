package entity

import (
	"strconv"
	"strings"
	"time"
)

const (
	// MinYear is the earliest accepted release year.
	MinYear = 1800
	// MaxYear is the latest accepted release year.
	MaxYear = 2100
	// DateLayout is how dates are written to the table.
	DateLayout = "2006-01-02"
)

// Category is the kind of media an entry logs.
type Category string

const (
	CategoryMovie Category = "Movie"
	CategoryBook  Category = "Book"
	CategoryAlbum Category = "Album"
)

// Categories lists every accepted category, in form order.
func Categories() []Category {
	return []Category{CategoryMovie, CategoryBook, CategoryAlbum}
}

// IsValid checks if the Category is a known value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryMovie, CategoryBook, CategoryAlbum:
		return true
	default:
		return false
	}
}

// Verdict answers "did I like it?".
type Verdict string

const (
	VerdictYes    Verdict = "Yes"
	VerdictNo     Verdict = "No"
	VerdictKindOf Verdict = "Kind of"
)

// Verdicts lists every accepted verdict, in form order.
func Verdicts() []Verdict {
	return []Verdict{VerdictYes, VerdictNo, VerdictKindOf}
}

// IsValid checks if the Verdict is a known value.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictYes, VerdictNo, VerdictKindOf:
		return true
	default:
		return false
	}
}

// LogEntry is one reviewed item. Entries are never edited; they are appended
// and removed as whole rows.
type LogEntry struct {
	ID         string    // Stable synthetic identifier; empty only for legacy rows not yet rewritten.
	OwnerEmail string    // The "User" column. Always the principal that created the row.
	Title      string    // Required.
	Creator    string    // Director, author or artist.
	Category   Category  // The "Type" column.
	Genre      string    // Free text.
	Year       int       // Release year, 0 when the stored cell could not be parsed.
	DateLogged time.Time // The "Date Finished" column, date only.
	Verdict    Verdict   // The "Did I Like It?" column.
	Thoughts   string    // Free text.

	// Stored is the row's text as the table held it, nil for rows created here.
	Stored *StoredCells
}

// StoredCells keeps a row's cells verbatim so rewriting the table leaves rows
// that were only read untouched, including text the fields cannot represent.
type StoredCells struct {
	Known []string    // aligned with Cells; the ID position is ignored
	Extra []ExtraCell // columns the log does not model, in table order
}

// ExtraCell is one cell under a column the log does not model.
type ExtraCell struct {
	Column string
	Value  string
}

// Cells renders the row's modeled columns in table order: ID, User, Title,
// Creator, Type, Genre, Year Released, Date Finished, Did I Like It?, Thoughts.
// Stored text wins over the parsed fields, except for the ID.
func (e *LogEntry) Cells() []string {
	cells := []string{
		e.ID,
		e.OwnerEmail,
		e.Title,
		e.Creator,
		string(e.Category),
		e.Genre,
		e.YearString(),
		e.DateString(),
		string(e.Verdict),
		e.Thoughts,
	}
	if e.Stored == nil {
		return cells
	}

	for i := 1; i < len(cells) && i < len(e.Stored.Known); i++ {
		cells[i] = e.Stored.Known[i]
	}

	return cells
}

// ExtraCells returns the cells under unmodeled columns.
func (e *LogEntry) ExtraCells() []ExtraCell {
	if e.Stored == nil {
		return nil
	}

	return e.Stored.Extra
}

// OwnedBy reports whether the row belongs to the given normalized email.
func (e *LogEntry) OwnedBy(email string) bool {
	return email != "" && e.OwnerEmail == email
}

// YearString renders the year cell, empty when unknown.
func (e *LogEntry) YearString() string {
	if e.Year == 0 {
		return ""
	}

	return strconv.Itoa(e.Year)
}

// DateString renders the date cell, empty when unknown.
func (e *LogEntry) DateString() string {
	if e.DateLogged.IsZero() {
		return ""
	}

	return e.DateLogged.Format(DateLayout)
}

// Matches reports whether any displayed field contains term, ignoring case.
// An empty term matches everything.
func (e *LogEntry) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	for _, field := range e.displayFields() {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}

	return false
}

func (e *LogEntry) displayFields() []string {
	return []string{
		e.Title,
		e.Creator,
		string(e.Category),
		e.Genre,
		e.YearString(),
		e.DateString(),
		string(e.Verdict),
		e.Thoughts,
	}
}
