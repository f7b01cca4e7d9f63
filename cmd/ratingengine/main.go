package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/marketpulse/ratingengine/internal/common"
	"github.com/marketpulse/ratingengine/internal/engine"
	"github.com/marketpulse/ratingengine/internal/loader"
)

func main() {
	datasetPath := flag.String("dataset", "", "path to the rating dataset CSV file")
	configPath := flag.String("config", os.Getenv("RATINGENGINE_CONFIG"), "path to a TOML config file")
	forceRefresh := flag.Bool("force-refresh", true, "bypass the result cache for this run")
	flag.Parse()

	if *datasetPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ratingengine -dataset <path> [-config <path>]")
		os.Exit(2)
	}

	config, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLogger(config.Logging.Level)

	file, err := os.Open(*datasetPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *datasetPath).Msg("Failed to open dataset file")
	}
	defer file.Close()

	ctx := context.Background()
	dataset, err := loader.NewCSVLoader(file).Load(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load dataset")
	}

	common.PrintBanner(config, logger, common.RunSummary{
		DatasetPath: *datasetPath,
		Stocks:      len(dataset.Stocks),
		Industries:  len(dataset.IndustryLabels()),
		TradingDays: len(dataset.Days),
	})

	analysisEngine := engine.New(logger, config, dataset)

	runCtx, cancel := context.WithTimeout(ctx, config.Engine.Timeout()+10*time.Second)
	defer cancel()

	results, err := analysisEngine.CalculateAll(runCtx, *datasetPath, *forceRefresh)
	if err != nil {
		logger.Fatal().Err(err).Msg("Analysis run failed")
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		logger.Fatal().Err(err).Msg("Failed to encode results")
	}

	common.PrintShutdownBanner(logger)
}
