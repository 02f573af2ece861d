package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/greenbin/bunrigo/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(url string) (*http.Response, error) {
	return c.client.Get(url)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// registerStudents submits every simulated id through POST /students.
func registerStudents(ctx context.Context, config *Config, students []Student, stats *Stats) error {
	logger.Get().Info(ctx, "registering students",
		logger.Int("students", len(students)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/students"

	var created int64

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
					resp, err := client.Post(url, map[string]string{"student_id": students[index].ID})
					if err != nil {
						continue
					}
					if _, err := readResponseBody(resp); err != nil || resp.StatusCode != http.StatusOK {
						continue
					}
					atomic.AddInt64(&created, 1)
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

	stats.StudentsCreated = int(atomic.LoadInt64(&created))
	if stats.StudentsCreated != len(students) {
		return fmt.Errorf("registered %d of %d students", stats.StudentsCreated, len(students))
	}
	logger.Get().Info(ctx, "students registered", logger.Int("created", stats.StudentsCreated))
	return nil
}

// runRounds drives every student through their recycle rounds with a
// worker pool. Each round is the full identify-then-confirm flow.
func runRounds(ctx context.Context, config *Config, students []Student, stats *Stats) error {
	total := len(students) * config.Rounds
	logger.Get().Info(ctx, "running recycle rounds",
		logger.Int("rounds", total),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)

	var (
		attempted int64
		completed int64
		retried   int64
		failed    int64
		awarded   int64
	)

	// Expected scores are per-student; one worker owns one student at a
	// time so no extra locking is needed.
	studentChan := make(chan int, config.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range studentChan {
				select {
				case <-ctx.Done():
					return
				default:
					for round := 0; round < config.Rounds; round++ {
						atomic.AddInt64(&attempted, 1)
						points, retries, err := runSingleRound(ctx, client, config.BaseURL, students[index].ID)
						atomic.AddInt64(&retried, int64(retries))
						if err != nil {
							atomic.AddInt64(&failed, 1)
							if config.Verbose {
								logger.Get().Warn(ctx, "round failed",
									logger.String("studentID", students[index].ID),
									logger.Error(err))
							}
							continue
						}
						students[index].ExpectedScore += points
						atomic.AddInt64(&awarded, int64(points))
						atomic.AddInt64(&completed, 1)
					}
				}
			}
		}()
	}

	go func() {
		defer close(studentChan)
		for i := range students {
			select {
			case <-ctx.Done():
				return
			case studentChan <- i:
			}
		}
	}()

	wg.Wait()

	stats.RoundsAttempted = int(atomic.LoadInt64(&attempted))
	stats.RoundsCompleted = int(atomic.LoadInt64(&completed))
	stats.RoundsRetried = int(atomic.LoadInt64(&retried))
	stats.RoundsFailed = int(atomic.LoadInt64(&failed))
	stats.PointsAwarded = int(atomic.LoadInt64(&awarded))

	logger.Get().Info(ctx, "rounds completed",
		logger.Int("completed", stats.RoundsCompleted),
		logger.Int("retried", stats.RoundsRetried),
		logger.Int("failed", stats.RoundsFailed),
		logger.Int("pointsAwarded", stats.PointsAwarded))
	return nil
}

// runSingleRound walks one student through identify and confirm. A
// retryable negative from either stage is recaptured up to maxRecaptures
// times before the round counts as failed.
func runSingleRound(ctx context.Context, client *HTTPClient, baseURL, studentID string) (int, int, error) {
	url := baseURL + "/capture"
	retries := 0

	for attempt := 0; attempt <= maxRecaptures; attempt++ {
		identify, err := postCapture(client, url, map[string]string{
			"student_id": studentID,
			"stage":      "identify",
			"image":      fakeImage(),
		})
		if err != nil {
			return 0, retries, fmt.Errorf("identify stage: %w", err)
		}
		if !identify.Success {
			retries++
			continue
		}

		confirm, err := postCapture(client, url, map[string]string{
			"student_id":  studentID,
			"stage":       "confirm",
			"image":       fakeImage(),
			"label":       identify.Label,
			"award_token": identify.AwardToken,
		})
		if err != nil {
			return 0, retries, fmt.Errorf("confirm stage: %w", err)
		}
		if !confirm.Success {
			retries++
			continue
		}
		if confirm.Duplicate {
			return 0, retries, nil
		}
		return confirm.ScoreAwarded, retries, nil
	}

	return 0, retries, fmt.Errorf("gave up after %d recaptures", maxRecaptures)
}

// postCapture posts one capture stage and decodes the reply.
func postCapture(client *HTTPClient, url string, payload map[string]string) (captureResponse, error) {
	resp, err := client.Post(url, payload)
	if err != nil {
		return captureResponse{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return captureResponse{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return captureResponse{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var out captureResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return captureResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return out, nil
}
