package entity

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Snapshot is one faithful full read of the table together with a version
// token that changes whenever any cell changes.
type Snapshot struct {
	Rows    []*LogEntry
	Version string
}

// NewSnapshot fingerprints rows and wraps them as a Snapshot.
func NewSnapshot(rows []*LogEntry) *Snapshot {
	if rows == nil {
		rows = []*LogEntry{}
	}

	return &Snapshot{
		Rows:    rows,
		Version: Fingerprint(rows),
	}
}

// IndexOf returns the position of the row with the given ID, or -1.
func (s *Snapshot) IndexOf(id string) int {
	if id == "" {
		return -1
	}

	for i, row := range s.Rows {
		if row.ID == id {
			return i
		}
	}

	return -1
}

// Without returns a copy of the rows with position i removed.
func (s *Snapshot) Without(i int) []*LogEntry {
	rows := make([]*LogEntry, 0, len(s.Rows)-1)
	rows = append(rows, s.Rows[:i]...)

	return append(rows, s.Rows[i+1:]...)
}

// With returns a copy of the rows with entry appended.
func (s *Snapshot) With(entry *LogEntry) []*LogEntry {
	rows := make([]*LogEntry, 0, len(s.Rows)+1)
	rows = append(rows, s.Rows...)

	return append(rows, entry)
}

// Fingerprint hashes the cells of rows with BLAKE3, stored text included.
// Two tables with identical cells in identical order share a fingerprint.
// Every field is length-prefixed, so no cell content can shift a boundary.
func Fingerprint(rows []*LogEntry) string {
	hasher := blake3.New()
	buf := make([]byte, 0, binary.MaxVarintLen64)
	write := func(field string) {
		buf = binary.AppendUvarint(buf[:0], uint64(len(field)))
		_, _ = hasher.Write(buf)
		_, _ = hasher.WriteString(field)
	}

	buf = binary.AppendUvarint(buf[:0], uint64(len(rows)))
	_, _ = hasher.Write(buf)
	for _, row := range rows {
		cells := row.Cells()
		extra := row.ExtraCells()

		buf = binary.AppendUvarint(buf[:0], uint64(len(cells)+2*len(extra)))
		_, _ = hasher.Write(buf)
		for _, cell := range cells {
			write(cell)
		}
		for _, cell := range extra {
			write(cell.Column)
			write(cell.Value)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil))
}
