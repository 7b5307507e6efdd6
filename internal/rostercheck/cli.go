package rostercheck

import "io"

// ShowHelp prints usage information for the roster check tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Prospect Board Roster Check
===========================

Reads a running prospect board concurrently and verifies the roster it
serves: ordering, hitter/pitcher partition, summary counts, leader boards
and snapshot reuse inside the cache window.

Usage:
  go run ./cmd/roster-check [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Number of concurrent roster reads (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -top int
        Leaders fetched per metric (default 5)
  -metrics string
        Comma separated metrics to check (default "avg,hr,era,whip,k_per_ip")
  -refresh
        Force a roster reload before reading
  -timeout duration
        HTTP request timeout (default 10s)
  -format string
        Log format, text or json (default "text")
  -verbose
        Log every failed request
  -help
        Show this help message

Examples:
  go run ./cmd/roster-check -requests 20000 -workers 32
  go run ./cmd/roster-check -refresh -metrics era,so -top 10
`)
}
