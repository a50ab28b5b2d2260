package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, owner, title string) *LogEntry {
	return &LogEntry{
		ID:         id,
		OwnerEmail: owner,
		Title:      title,
		Category:   CategoryMovie,
		Verdict:    VerdictYes,
		Year:       2021,
		DateLogged: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewPrincipal(t *testing.T) {
	p := NewPrincipal("  Alice@Example.COM ", "")
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, "alice", p.DisplayName)

	p = NewPrincipal("bob@example.com", " Bob ")
	assert.Equal(t, "Bob", p.DisplayName)
}

func TestSameEmail(t *testing.T) {
	assert.True(t, SameEmail("Admin@Example.com", " admin@example.com"))
	assert.False(t, SameEmail("", ""))
	assert.False(t, SameEmail("a@example.com", "b@example.com"))
}

func TestLogEntry_OwnedBy(t *testing.T) {
	row := entry("1", "alice@example.com", "Dune")

	assert.True(t, row.OwnedBy("alice@example.com"))
	assert.False(t, row.OwnedBy("bob@example.com"))
	assert.False(t, (&LogEntry{}).OwnedBy(""))
}

func TestLogEntry_Matches(t *testing.T) {
	row := entry("1", "alice@example.com", "Dune")
	row.Creator = "Denis Villeneuve"
	row.Thoughts = "Loud and beautiful"

	assert.True(t, row.Matches(""))
	assert.True(t, row.Matches("dune"))
	assert.True(t, row.Matches("VILLENEUVE"))
	assert.True(t, row.Matches("2021"))
	assert.True(t, row.Matches("beautiful"))
	assert.False(t, row.Matches("alice"))
	assert.False(t, row.Matches("arrival"))
}

func TestLogEntry_YearAndDateString(t *testing.T) {
	row := &LogEntry{Title: "Untitled"}

	assert.Empty(t, row.YearString())
	assert.Empty(t, row.DateString())

	row = entry("1", "a@example.com", "Dune")
	assert.Equal(t, "2021", row.YearString())
	assert.Equal(t, "2026-01-05", row.DateString())
}

func TestCategoryAndVerdict_IsValid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.IsValid())
	}
	assert.False(t, Category("Podcast").IsValid())

	for _, v := range Verdicts() {
		assert.True(t, v.IsValid())
	}
	assert.False(t, Verdict("Maybe").IsValid())
}

func TestSnapshot(t *testing.T) {
	rows := []*LogEntry{
		entry("1", "a@example.com", "Dune"),
		entry("2", "b@example.com", "Arrival"),
		entry("3", "a@example.com", "Sicario"),
	}
	snapshot := NewSnapshot(rows)

	assert.Equal(t, 1, snapshot.IndexOf("2"))
	assert.Equal(t, -1, snapshot.IndexOf("missing"))
	assert.Equal(t, -1, snapshot.IndexOf(""))

	without := snapshot.Without(1)
	require.Len(t, without, 2)
	assert.Equal(t, "Dune", without[0].Title)
	assert.Equal(t, "Sicario", without[1].Title)
	assert.Len(t, snapshot.Rows, 3)

	with := snapshot.With(entry("4", "c@example.com", "Blade Runner"))
	require.Len(t, with, 4)
	assert.Equal(t, "Blade Runner", with[3].Title)
	assert.Len(t, snapshot.Rows, 3)

	assert.NotNil(t, NewSnapshot(nil).Rows)
}

func TestFingerprint(t *testing.T) {
	a := []*LogEntry{entry("1", "a@example.com", "Dune"), entry("2", "b@example.com", "Arrival")}
	b := []*LogEntry{entry("1", "a@example.com", "Dune"), entry("2", "b@example.com", "Arrival")}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	b[1].Thoughts = "changed"
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))

	swapped := []*LogEntry{a[1], a[0]}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(swapped))

	// Cell boundaries are part of the hash.
	left := []*LogEntry{{Title: "ab", Creator: "c"}}
	right := []*LogEntry{{Title: "a", Creator: "bc"}}
	assert.NotEqual(t, Fingerprint(left), Fingerprint(right))

	// Control characters inside a cell cannot fake a boundary.
	sneaky := []*LogEntry{{Title: "a\x1fb"}}
	plain := []*LogEntry{{Title: "a", Creator: "b"}}
	assert.NotEqual(t, Fingerprint(sneaky), Fingerprint(plain))

	// Stored text the fields cannot hold is part of the version.
	marchThird := []*LogEntry{{Title: "Dune", Stored: &StoredCells{Known: storedDate("March 3")}}}
	marchFourth := []*LogEntry{{Title: "Dune", Stored: &StoredCells{Known: storedDate("March 4")}}}
	assert.NotEqual(t, Fingerprint(marchThird), Fingerprint(marchFourth))

	withRating := []*LogEntry{{Title: "Dune", Stored: &StoredCells{
		Known: storedDate(""),
		Extra: []ExtraCell{{Column: "Rating", Value: "5"}},
	}}}
	assert.NotEqual(t, Fingerprint(marchThird), Fingerprint(withRating))
}

func storedDate(date string) []string {
	known := make([]string, 10)
	known[2] = "Dune"
	known[7] = date

	return known
}

func TestLogEntry_Cells(t *testing.T) {
	fresh := entry("1", "a@example.com", "Dune")
	assert.Equal(t, "Dune", fresh.Cells()[2])
	assert.Nil(t, fresh.ExtraCells())

	legacy := &LogEntry{ID: "assigned", Title: "Dune", Stored: &StoredCells{Known: storedDate("someday")}}
	cells := legacy.Cells()
	assert.Equal(t, "assigned", cells[0])
	assert.Equal(t, "someday", cells[7])
}

func TestComputeAdminStats(t *testing.T) {
	rows := []*LogEntry{
		entry("1", "a@example.com", "Dune"),
		entry("2", "a@example.com", "Arrival"),
		entry("3", "b@example.com", "Sicario"),
		entry("4", "", "Orphan"),
	}

	stats := ComputeAdminStats(rows)

	assert.Equal(t, 4, stats.TotalRows)
	assert.Equal(t, 2, stats.UniqueUsers)
	assert.Equal(t, map[string]int{"a@example.com": 2, "b@example.com": 1}, stats.PerUserCounts)
	assert.Equal(t, []UserCount{{"a@example.com", 2}, {"b@example.com", 1}}, stats.Usage)

	empty := ComputeAdminStats(nil)
	assert.Zero(t, empty.TotalRows)
	assert.Empty(t, empty.PerUserCounts)
}

func TestSummarize(t *testing.T) {
	book := entry("2", "a@example.com", "Dune")
	book.Category = CategoryBook

	summary := Summarize([]*LogEntry{entry("1", "a@example.com", "Dune"), book})

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, map[Category]int{CategoryMovie: 1, CategoryBook: 1, CategoryAlbum: 0}, summary.ByCategory)
	assert.Len(t, Summarize(nil).ByCategory, 3)
}

func TestSession_StateMachine(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	session := NewSession(now, time.Hour)

	assert.Equal(t, SessionAnonymous, session.State)
	assert.False(t, session.IsAuthenticated(now))

	session.BeginPending(&PendingAuth{State: "s1", ExpiresAt: now.Add(time.Minute)})
	assert.Equal(t, SessionAuthPending, session.State)

	pending := session.TakePending()
	require.NotNil(t, pending)
	assert.Equal(t, "s1", pending.State)
	assert.Nil(t, session.TakePending())

	session.Install(NewPrincipal("a@example.com", "A"))
	assert.True(t, session.IsAuthenticated(now))
	assert.False(t, session.IsAuthenticated(now.Add(time.Hour)))

	cloned := session.Clone()
	cloned.Principal.Email = "mutated@example.com"
	assert.Equal(t, "a@example.com", session.Principal.Email)

	session.Reset()
	assert.Equal(t, SessionAnonymous, session.State)
	assert.Nil(t, session.Principal)
}

func TestPendingAuth_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	pending := &PendingAuth{ExpiresAt: now}

	assert.True(t, pending.Expired(now))
	assert.False(t, pending.Expired(now.Add(-time.Second)))
}
