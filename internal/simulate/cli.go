package simulate

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/greenbin/bunrigo/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "simulation_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`Bunrigo Student Simulator
=========================

A concurrent tool that drives simulated students through the full
recycling flow against a running bunrigo service.

Usage:
  go run cmd/seed-students/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:5001")
  -students int
        Number of simulated students (default 50)
  -rounds int
        Recycle rounds per student (default 3)
  -top int
        Number of top entries to fetch from leaderboard (default 10)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for simulation output (default: simulation_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate with default settings
  go run cmd/seed-students/main.go

  # A bigger school with more activity
  go run cmd/seed-students/main.go -students 500 -rounds 5 -workers 16

  # Simulate with verbose output
  go run cmd/seed-students/main.go -verbose -students 100
`)
}
