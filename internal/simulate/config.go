package simulate

import "time"

// Config holds configuration for a simulation run
type Config struct {
	BaseURL  string        // Base URL of the service
	Students int           // Number of simulated students
	Rounds   int           // Recycle rounds per student
	TopN     int           // Number of top entries to fetch
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	LogFile  string        // Log file for simulation output
	Verbose  bool          // Enable verbose logging
}

// Student is one simulated participant and their locally expected score.
type Student struct {
	ID            string
	ExpectedScore int
}

// Entry represents a leaderboard entry
type Entry struct {
	Rank      int    `json:"rank"`
	StudentID string `json:"student_id"`
	Score     int    `json:"score"`
}

// captureResponse mirrors the /capture reply shape.
type captureResponse struct {
	Success      bool    `json:"success"`
	Stage        string  `json:"stage"`
	Reason       string  `json:"reason"`
	Label        string  `json:"label"`
	Confidence   float64 `json:"confidence"`
	Bin          string  `json:"bin"`
	AwardToken   string  `json:"award_token"`
	ScoreAwarded int     `json:"score_awarded"`
	NewScore     int     `json:"new_score"`
	Duplicate    bool    `json:"duplicate"`
}

// Stats holds simulation statistics
type Stats struct {
	StudentsCreated int
	RoundsAttempted int
	RoundsCompleted int
	RoundsRetried   int
	RoundsFailed    int
	PointsAwarded   int
	RanksRetrieved  int
	LeaderboardSize int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
