// Package types contains common types used across the application
package types

// Entry represents one leaderboard row as exposed by read queries.
type Entry struct {
	Rank      int    `json:"rank"`
	StudentID string `json:"student_id"`
	Score     int    `json:"score"`
}
