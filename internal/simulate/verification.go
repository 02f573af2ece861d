package simulate

import (
	"context"
	"fmt"
	"sort"

	"github.com/greenbin/bunrigo/pkg/logger"
)

// verifyResults checks the retrieved ranks and leaderboard against the
// scores the simulation expects each student to have earned.
func verifyResults(ctx context.Context, config *Config, students []Student, ranks, leaderboard []Entry, stats *Stats) error {
	logger.Get().Info(ctx, "verifying results")

	if len(ranks) == 0 {
		return fmt.Errorf("no ranks to verify")
	}

	expected := make(map[string]int, len(students))
	for _, s := range students {
		expected[s.ID] = s.ExpectedScore
	}

	// Every retrieved rank entry must carry the locally expected score
	mismatches := 0
	for _, entry := range ranks {
		want, ok := expected[entry.StudentID]
		if !ok {
			continue
		}
		if entry.Score != want {
			mismatches++
			if config.Verbose {
				logger.Get().Warn(ctx, "score mismatch",
					logger.String("studentID", entry.StudentID),
					logger.Int("expected", want),
					logger.Int("got", entry.Score))
			}
		}
	}
	if mismatches > 0 {
		return fmt.Errorf("%d of %d students have unexpected scores", mismatches, len(ranks))
	}

	if len(leaderboard) > 0 {
		if err := verifyLeaderboardConsistency(ranks, leaderboard); err != nil {
			logger.Get().Warn(ctx, "leaderboard consistency warning", logger.Error(err))
		} else {
			logger.Get().Info(ctx, "leaderboard consistency verified")
		}
	}

	displayTopStudents(ranks, leaderboard, config.Verbose)

	logger.Get().Info(ctx, "result verification completed")
	return nil
}

// verifyLeaderboardConsistency checks the leaderboard against the ranks.
func verifyLeaderboardConsistency(ranks, leaderboard []Entry) error {
	if len(leaderboard) == 0 {
		return fmt.Errorf("empty leaderboard")
	}

	sorted := make([]Entry, len(ranks))
	copy(sorted, ranks)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].StudentID < sorted[j].StudentID
	})

	top := leaderboard[0]
	if top.Score != sorted[0].Score {
		return fmt.Errorf("top leaderboard score (%d) does not match top ranked score (%d)",
			top.Score, sorted[0].Score)
	}

	for i := 1; i < len(leaderboard); i++ {
		if leaderboard[i].Score > leaderboard[i-1].Score {
			return fmt.Errorf("leaderboard not properly sorted: entry %d outranks entry %d",
				i, i-1)
		}
		if leaderboard[i].Rank != leaderboard[i-1].Rank+1 {
			return fmt.Errorf("leaderboard ranks not contiguous at entry %d", i)
		}
	}

	return nil
}

// displayTopStudents logs the top students from ranks and leaderboard.
func displayTopStudents(ranks, leaderboard []Entry, verbose bool) {
	ctx := context.Background()

	sorted := make([]Entry, len(ranks))
	copy(sorted, ranks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	topN := 10
	if len(sorted) < topN {
		topN = len(sorted)
	}
	for i := 0; i < topN; i++ {
		logger.Get().Info(ctx, "top student",
			logger.Int("place", i+1),
			logger.String("studentID", sorted[i].StudentID),
			logger.Int("score", sorted[i].Score))
	}

	if verbose && len(sorted) > 0 {
		sum := 0
		for _, entry := range sorted {
			sum += entry.Score
		}
		logger.Get().Info(ctx, "score statistics",
			logger.Int("max", sorted[0].Score),
			logger.Int("min", sorted[len(sorted)-1].Score),
			logger.Int("avg", sum/len(sorted)),
			logger.Int("leaderboardEntries", len(leaderboard)))
	}
}
