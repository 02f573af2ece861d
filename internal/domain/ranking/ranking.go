// Package ranking derives leaderboard order from a record set.
//
// The persisted set is the single source of truth: every read re-derives
// the ordering by a full sort, nothing incremental is cached.
package ranking

import (
	"sort"

	"github.com/greenbin/bunrigo/internal/domain/model"
	"github.com/greenbin/bunrigo/internal/domain/types"
)

// SortByScore returns a copy of set ordered by score descending.
// Ties break on ascending student id so the output is deterministic
// regardless of file order.
func SortByScore(set model.RecordSet) model.RecordSet {
	sorted := set.Clone()
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].StudentID < sorted[j].StudentID
	})
	return sorted
}

// TopN returns the first n leaderboard entries. When fewer than n records
// exist, all of them are returned. A non-positive n yields an empty slice.
func TopN(set model.RecordSet, n int) []types.Entry {
	if n < 0 {
		n = 0
	}
	sorted := SortByScore(set)
	if n > len(sorted) {
		n = len(sorted)
	}
	entries := make([]types.Entry, n)
	for i := 0; i < n; i++ {
		entries[i] = types.Entry{
			Rank:      i + 1,
			StudentID: sorted[i].StudentID,
			Score:     sorted[i].Score,
		}
	}
	return entries
}

// Rank returns the 1-based position of studentID in the descending sort.
// The boolean reports whether the id was present at all.
func Rank(set model.RecordSet, studentID string) (int, bool) {
	sorted := SortByScore(set)
	for i := range sorted {
		if sorted[i].StudentID == studentID {
			return i + 1, true
		}
	}
	return len(sorted) + 1, false
}
