package entity

import (
	"cmp"
	"slices"
)

// UserCount is one bar of the per-user usage chart.
type UserCount struct {
	Email string
	Count int
}

// AdminStats aggregates the whole table without exposing row contents.
type AdminStats struct {
	TotalRows     int
	UniqueUsers   int
	PerUserCounts map[string]int
	Usage         []UserCount // Sorted by count descending, then email.
}

// ComputeAdminStats counts rows per owner. Rows without an owner count toward
// TotalRows only.
func ComputeAdminStats(rows []*LogEntry) *AdminStats {
	perUser := make(map[string]int)
	for _, row := range rows {
		if row.OwnerEmail == "" {
			continue
		}
		perUser[row.OwnerEmail]++
	}

	usage := make([]UserCount, 0, len(perUser))
	for email, count := range perUser {
		usage = append(usage, UserCount{Email: email, Count: count})
	}
	slices.SortFunc(usage, func(a, b UserCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Email, b.Email)
	})

	return &AdminStats{
		TotalRows:     len(rows),
		UniqueUsers:   len(perUser),
		PerUserCounts: perUser,
		Usage:         usage,
	}
}

// Summary is the per-user headline shown above the log.
type Summary struct {
	Total      int
	ByCategory map[Category]int
}

// Summarize counts rows by category. Every known category is present, even at zero.
func Summarize(rows []*LogEntry) Summary {
	byCategory := make(map[Category]int, len(Categories()))
	for _, category := range Categories() {
		byCategory[category] = 0
	}
	for _, row := range rows {
		byCategory[row.Category]++
	}

	return Summary{
		Total:      len(rows),
		ByCategory: byCategory,
	}
}
