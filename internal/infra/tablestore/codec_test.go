package tablestore

import (
	"testing"
	"time"

	"didilikeit/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	rows := []*entity.LogEntry{{
		ID:         "id-1",
		OwnerEmail: "alice@example.com",
		Title:      "Dune",
		Creator:    "Frank Herbert",
		Category:   entity.CategoryBook,
		Genre:      "Sci-fi",
		Year:       1965,
		DateLogged: time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		Verdict:    entity.VerdictKindOf,
		Thoughts:   "Slow start",
	}}

	records := Encode(rows)

	require.Len(t, records, 2)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{
		"id-1", "alice@example.com", "Dune", "Frank Herbert", "Book", "Sci-fi",
		"1965", "2026-02-14", "Kind of", "Slow start",
	}, records[1])
}

func TestDecode_LegacyLayout(t *testing.T) {
	records := [][]string{
		{"user", "Title", "Type", "Year Released", "Date Finished", "Did I Like It?"},
		{" Alice@Example.com ", "Dune", "Book", "1965.0", "2/14/2026", "Yes"},
		{"", "", "", "", "", ""},
		{"bob@example.com", "Arrival", "Movie", "n/a", "2026-01-01 20:30:00"},
	}

	rows := Decode(records)

	require.Len(t, rows, 2)
	assert.Empty(t, rows[0].ID)
	assert.Equal(t, "alice@example.com", rows[0].OwnerEmail)
	assert.Equal(t, 1965, rows[0].Year)
	assert.Equal(t, "2026-02-14", rows[0].DateString())
	assert.Equal(t, entity.VerdictYes, rows[0].Verdict)

	assert.Equal(t, 0, rows[1].Year)
	assert.Equal(t, "2026-01-01", rows[1].DateString())
	assert.Empty(t, rows[1].Verdict)
	assert.Empty(t, rows[1].Creator)
}

func TestDecode_UnparseableDateReadsEmpty(t *testing.T) {
	rows := Decode([][]string{
		{"Title", "Date Finished"},
		{"Dune", "last summer"},
	})

	require.Len(t, rows, 1)
	assert.True(t, rows[0].DateLogged.IsZero())
	assert.Equal(t, "last summer", rows[0].Cells()[7])
}

func TestEncode_WritesStoredCellsBack(t *testing.T) {
	rows := Decode([][]string{
		{"User", "Title", "Year Released", "Rating", "Rating"},
		{" Bob@Example.com", "Middlemarch ", "c. 1850", "5", "five"},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "bob@example.com", rows[0].OwnerEmail)
	assert.Equal(t, "Middlemarch", rows[0].Title)

	rows = append(rows, &entity.LogEntry{ID: "new", OwnerEmail: "alice@example.com", Title: "Heat"})
	records := Encode(rows)

	require.Len(t, records, 3)
	assert.Equal(t, append(append([]string(nil), Header...), "Rating", "Rating"), records[0])
	assert.Equal(t, []string{
		"", " Bob@Example.com", "Middlemarch ", "", "", "", "c. 1850", "", "", "", "5", "five",
	}, records[1])
	assert.Equal(t, []string{
		"new", "alice@example.com", "Heat", "", "", "", "", "", "", "", "", "",
	}, records[2])

	assert.Equal(t, entity.Fingerprint(rows[:1]), entity.Fingerprint(Decode(Encode(rows[:1]))))
}

func TestDecode_Empty(t *testing.T) {
	assert.Empty(t, Decode(nil))
	assert.Empty(t, Decode([][]string{Header}))
}

func TestEncodeDecode_PreservesFingerprint(t *testing.T) {
	rows := []*entity.LogEntry{
		{ID: "1", OwnerEmail: "a@example.com", Title: "Dune", Category: entity.CategoryMovie, Year: 2021, Verdict: entity.VerdictYes},
		{ID: "2", OwnerEmail: "b@example.com", Title: "Kid A", Category: entity.CategoryAlbum, Verdict: entity.VerdictNo,
			DateLogged: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	assert.Equal(t, entity.Fingerprint(rows), entity.Fingerprint(Decode(Encode(rows))))
}

func TestCloneRows(t *testing.T) {
	rows := []*entity.LogEntry{{Title: "Dune"}}
	cloned := CloneRows(rows)
	cloned[0].Title = "Arrival"

	assert.Equal(t, "Dune", rows[0].Title)
}
