package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// RunSummary carries the handful of facts worth printing alongside the
// startup banner once a dataset has been loaded.
type RunSummary struct {
	DatasetPath string
	Stocks      int
	Industries  int
	TradingDays int
}

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config, logger *Logger, summary RunSummary) {
	version := GetVersion()
	build := GetBuild()
	commit := GetGitCommit()

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 70
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		`8888888b.            888    d8b                    8888888888`,
		`888   Y88b           888    Y8P                    888`,
		`888    888           888                            888`,
		`888   d88P  8888b.  888888 888 88888b.   .d88b.     8888888`,
		`8888888P"      "88b 888    888 888 "88b d88P"88b    888`,
		`888 T88b   .d888888 888    888 888  888 888  888    888`,
		`888  T88b  888  888 Y88b.  888 888  888 Y88b 888    888`,
		`888   T88b "Y888888  "Y888 888 888  888  "Y88888    8888888888`,
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s  Stock Rating Trend & Sentiment Analytics%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")

	kvPad := 16
	kvLines := [][2]string{
		{"Version", version},
		{"Build", build},
		{"Commit", commit},
		{"Environment", config.Environment},
		{"Dataset", summary.DatasetPath},
		{"Stocks", fmt.Sprintf("%d", summary.Stocks)},
		{"Industries", fmt.Sprintf("%d", summary.Industries)},
		{"Trading days", fmt.Sprintf("%d", summary.TradingDays)},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(os.Stderr, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")

	logger.Info().
		Str("version", version).
		Str("build", build).
		Str("commit", commit).
		Str("environment", config.Environment).
		Str("dataset", summary.DatasetPath).
		Int("stocks", summary.Stocks).
		Int("industries", summary.Industries).
		Msg("Analysis run started")
}

// PrintShutdownBanner displays the run-completion banner to stderr.
func PrintShutdownBanner(logger *Logger) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 42
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "%s  RUN COMPLETE%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")

	logger.Info().Msg("Analysis run complete")
}
