package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/greenbin/bunrigo/internal/simulate"
)

// Default configuration constants.
const (
	defaultStudents          = 50
	defaultRounds            = 3
	defaultTopN              = 10
	defaultWorkerMultiplier  = 2 // multiplier for runtime.NumCPU()
	defaultTimeout           = 30 * time.Second
	defaultSimulationTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:5001", "Base URL of the service")
		students = flag.Int("students", defaultStudents, "Number of simulated students")
		rounds   = flag.Int("rounds", defaultRounds, "Recycle rounds per student")
		topN     = flag.Int("top", defaultTopN, "Number of top entries to fetch from leaderboard")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for simulation output (default: simulation_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	// Setup logging
	if err := simulate.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultSimulationTimeout)
	defer cancel()

	// Create simulation configuration
	config := &simulate.Config{
		BaseURL:  *baseURL,
		Students: *students,
		Rounds:   *rounds,
		TopN:     *topN,
		Workers:  *workers,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	// Run the simulation
	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}
