// Package tablestore maps log entries onto the fixed spreadsheet column set
// shared by every table store driver.
package tablestore

import (
	"strconv"
	"strings"
	"time"

	"didilikeit/internal/domain/entity"
)

// Column names as they appear in the header row.
const (
	ColumnID       = "ID"
	ColumnUser     = "User"
	ColumnTitle    = "Title"
	ColumnCreator  = "Creator"
	ColumnType     = "Type"
	ColumnGenre    = "Genre"
	ColumnYear     = "Year Released"
	ColumnDate     = "Date Finished"
	ColumnVerdict  = "Did I Like It?"
	ColumnThoughts = "Thoughts"
)

// Header is the column order written by every driver.
var Header = []string{
	ColumnID,
	ColumnUser,
	ColumnTitle,
	ColumnCreator,
	ColumnType,
	ColumnGenre,
	ColumnYear,
	ColumnDate,
	ColumnVerdict,
	ColumnThoughts,
}

// dateLayouts are tried in order when reading the date cell. Older tables
// were written with timestamps or US-style dates.
var dateLayouts = []string{
	entity.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
}

// Encode renders rows as a header row followed by one record per entry.
// Columns the log does not model follow the modeled ones, in the order the
// rows carried them; rows without a cell there get an empty one.
func Encode(rows []*entity.LogEntry) [][]string {
	extras := extraColumns(rows)

	header := make([]string, 0, len(Header)+len(extras))
	header = append(header, Header...)
	for _, column := range extras {
		header = append(header, column.name)
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	for _, row := range rows {
		record := EncodeRow(row)
		if len(extras) == 0 {
			records = append(records, record)

			continue
		}

		cells := keyedExtras(row.ExtraCells())
		for _, column := range extras {
			record = append(record, cells[column].Value)
		}
		records = append(records, record)
	}

	return records
}

// EncodeRow renders one entry in Header order.
func EncodeRow(row *entity.LogEntry) []string {
	return row.Cells()
}

// Decode reads a header row plus records. Columns are located by name, so
// tables with reordered columns or without the ID column still load; missing
// columns read as empty cells and blank records are skipped. Every row keeps
// its cells verbatim, unmodeled columns included.
func Decode(records [][]string) []*entity.LogEntry {
	if len(records) == 0 {
		return []*entity.LogEntry{}
	}

	width := tableWidth(records)
	header := make([]string, width)
	for i := 0; i < width && i < len(records[0]); i++ {
		header[i] = strings.TrimSpace(records[0][i])
	}

	index := columnIndex(header)
	rows := make([]*entity.LogEntry, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		rows = append(rows, decodeRecord(record, header, index))
	}

	return rows
}

func decodeRecord(record, header []string, index map[string]int) *entity.LogEntry {
	raw := func(i int) string {
		if i >= len(record) {
			return ""
		}

		return record[i]
	}
	cell := func(column string) string {
		i, ok := index[column]
		if !ok {
			return ""
		}

		return strings.TrimSpace(raw(i))
	}

	stored := &entity.StoredCells{Known: make([]string, len(Header))}
	for k, column := range Header {
		if i, ok := index[column]; ok {
			stored.Known[k] = raw(i)
		}
	}
	for i, column := range header {
		if !isModeled(i, index) {
			stored.Extra = append(stored.Extra, entity.ExtraCell{Column: column, Value: raw(i)})
		}
	}

	return &entity.LogEntry{
		ID:         cell(ColumnID),
		OwnerEmail: entity.NormalizeEmail(cell(ColumnUser)),
		Title:      cell(ColumnTitle),
		Creator:    cell(ColumnCreator),
		Category:   entity.Category(cell(ColumnType)),
		Genre:      cell(ColumnGenre),
		Year:       parseYear(cell(ColumnYear)),
		DateLogged: parseDate(cell(ColumnDate)),
		Verdict:    entity.Verdict(cell(ColumnVerdict)),
		Thoughts:   cell(ColumnThoughts),
		Stored:     stored,
	}
}

func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		for _, known := range Header {
			if strings.EqualFold(name, known) {
				if _, seen := index[known]; !seen {
					index[known] = i
				}
			}
		}
	}

	return index
}

func isModeled(i int, index map[string]int) bool {
	for _, j := range index {
		if i == j {
			return true
		}
	}

	return false
}

// tableWidth is one past the last column holding any non-blank cell.
func tableWidth(records [][]string) int {
	width := 0
	for _, record := range records {
		for i := len(record) - 1; i >= width; i-- {
			if strings.TrimSpace(record[i]) != "" {
				width = i + 1

				break
			}
		}
	}

	return width
}

// extraColumn names an unmodeled column. Repeated names are told apart by
// their occurrence.
type extraColumn struct {
	name       string
	occurrence int
}

func keyedExtras(cells []entity.ExtraCell) map[extraColumn]entity.ExtraCell {
	seen := make(map[string]int, len(cells))
	keyed := make(map[extraColumn]entity.ExtraCell, len(cells))
	for _, cell := range cells {
		keyed[extraColumn{name: cell.Column, occurrence: seen[cell.Column]}] = cell
		seen[cell.Column]++
	}

	return keyed
}

func extraColumns(rows []*entity.LogEntry) []extraColumn {
	var columns []extraColumn
	known := make(map[extraColumn]bool)
	for _, row := range rows {
		seen := make(map[string]int)
		for _, cell := range row.ExtraCells() {
			key := extraColumn{name: cell.Column, occurrence: seen[cell.Column]}
			seen[cell.Column]++
			if !known[key] {
				known[key] = true
				columns = append(columns, key)
			}
		}
	}

	return columns
}

// parseYear accepts integers and the float form spreadsheets export ("1965.0").
func parseYear(s string) int {
	if s == "" {
		return 0
	}
	if year, err := strconv.Atoi(s); err == nil {
		return year
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}

	return 0
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	return time.Time{}
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// CloneRows deep-copies rows so callers cannot mutate stored state.
func CloneRows(rows []*entity.LogEntry) []*entity.LogEntry {
	cloned := make([]*entity.LogEntry, len(rows))
	for i, row := range rows {
		cp := *row
		cloned[i] = &cp
	}

	return cloned
}
