package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/okian/prospectboard/internal/rostercheck"
	"github.com/okian/prospectboard/pkg/logger"
)

// Default configuration constants.
const (
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", rostercheck.DefaultBaseURL, "Base URL of the service")
		requests = flag.Int("requests", rostercheck.DefaultRequests, "Number of concurrent roster reads")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		topN     = flag.Int("top", rostercheck.DefaultTopN, "Leaders fetched per metric")
		metrics  = flag.String("metrics", strings.Join(rostercheck.DefaultMetrics, ","), "Comma separated metrics to check")
		refresh  = flag.Bool("refresh", false, "Force a roster reload before reading")
		timeout  = flag.Duration("timeout", rostercheck.DefaultTimeout, "HTTP request timeout")
		format   = flag.String("format", logger.FormatText, "Log format: text or json")
		verbose  = flag.Bool("verbose", false, "Log every failed request")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		rostercheck.ShowHelp(os.Stdout)
		return
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(logger.WithFormat(*format), logger.WithLevel(level)); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	cfg := &rostercheck.Config{
		BaseURL:  *baseURL,
		Requests: *requests,
		Workers:  *workers,
		TopN:     *topN,
		Metrics:  strings.Split(*metrics, ","),
		Timeout:  *timeout,
		Refresh:  *refresh,
		Logger:   logger.Named("roster_check"),
	}

	if _, err := rostercheck.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "roster check failed", logger.Error(err))
		cancel()
		os.Exit(1)
	}
}
