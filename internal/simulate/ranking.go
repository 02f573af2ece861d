package simulate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/greenbin/bunrigo/pkg/logger"
)

// retrieveRanks fetches the rank entry for every simulated student.
func retrieveRanks(ctx context.Context, config *Config, students []Student, stats *Stats) ([]Entry, error) {
	logger.Get().Info(ctx, "retrieving ranks",
		logger.Int("students", len(students)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)

	ranks := make([]Entry, len(students))
	var (
		retrieved int64
		failed    int64
	)

	idxChan := make(chan int, config.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range idxChan {
				select {
				case <-ctx.Done():
					return
				default:
					entry, err := retrieveSingleRank(client, config.BaseURL, students[index].ID)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							logger.Get().Warn(ctx, "rank retrieval failed",
								logger.String("studentID", students[index].ID),
								logger.Error(err))
						}
						continue
					}
					ranks[index] = entry
					atomic.AddInt64(&retrieved, 1)
				}
			}
		}()
	}

	go func() {
		defer close(idxChan)
		for i := range students {
			select {
			case <-ctx.Done():
				return
			case idxChan <- i:
			}
		}
	}()

	wg.Wait()

	// Drop entries whose retrieval failed
	valid := make([]Entry, 0, len(ranks))
	for _, entry := range ranks {
		if entry.StudentID != "" {
			valid = append(valid, entry)
		}
	}

	stats.RanksRetrieved = len(valid)
	logger.Get().Info(ctx, "rank retrieval completed",
		logger.Int("retrieved", len(valid)),
		logger.Int("failed", int(atomic.LoadInt64(&failed))))
	return valid, nil
}

// retrieveSingleRank fetches the rank entry for one student.
func retrieveSingleRank(client *HTTPClient, baseURL, studentID string) (Entry, error) {
	url := fmt.Sprintf("%s/rank/%s", baseURL, studentID)

	resp, err := client.Get(url)
	if err != nil {
		return Entry{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Entry{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var entry Entry
	if err := json.Unmarshal(body, &entry); err != nil {
		return Entry{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return entry, nil
}

// getLeaderboard retrieves the top N leaderboard entries.
func getLeaderboard(ctx context.Context, config *Config, stats *Stats) ([]Entry, error) {
	logger.Get().Info(ctx, "fetching leaderboard", logger.Int("topN", config.TopN))

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/leaderboard?limit=%d", config.BaseURL, config.TopN)

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var leaderboard []Entry
	if err := json.Unmarshal(body, &leaderboard); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.LeaderboardSize = len(leaderboard)
	logger.Get().Info(ctx, "leaderboard retrieved", logger.Int("entries", len(leaderboard)))
	return leaderboard, nil
}
