package simulate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/greenbin/bunrigo/pkg/logger"
)

// Run executes the complete simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting recycling simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("students", config.Students),
		logger.Int("rounds", config.Rounds),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate student ids
	students := generateStudents(ctx, config)

	// Step 3: Register every student
	if err := registerStudents(ctx, config, students, stats); err != nil {
		return fmt.Errorf("student registration failed: %w", err)
	}

	// Step 4: Drive the capture flow
	if err := runRounds(ctx, config, students, stats); err != nil {
		return fmt.Errorf("recycle rounds failed: %w", err)
	}

	// Step 5: Retrieve ranks concurrently
	ranks, err := retrieveRanks(ctx, config, students, stats)
	if err != nil {
		return fmt.Errorf("rank retrieval failed: %w", err)
	}

	// Step 6: Get leaderboard
	leaderboard, err := getLeaderboard(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("leaderboard retrieval failed: %w", err)
	}

	// Step 7: Verify results
	if err := verifyResults(ctx, config, students, ranks, leaderboard, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats logs the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var roundsPerSecond float64
	if stats.Duration > 0 {
		roundsPerSecond = float64(stats.RoundsAttempted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("studentsCreated", stats.StudentsCreated),
		logger.Int("roundsAttempted", stats.RoundsAttempted),
		logger.Int("roundsCompleted", stats.RoundsCompleted),
		logger.Int("roundsRetried", stats.RoundsRetried),
		logger.Int("roundsFailed", stats.RoundsFailed),
		logger.Int("pointsAwarded", stats.PointsAwarded),
		logger.Int("ranksRetrieved", stats.RanksRetrieved),
		logger.Int("leaderboardEntries", stats.LeaderboardSize),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("roundsPerSecond", roundsPerSecond))
}
