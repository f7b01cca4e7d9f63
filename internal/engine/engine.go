// Package engine orchestrates the rating-analytics calculators into a
// single run: interpolate every stock, compute RTSI per stock, IRSI per
// industry, MSCI once for the whole market, then assemble, rank, and
// cache the result.
package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marketpulse/ratingengine/internal/common"
	"github.com/marketpulse/ratingengine/internal/errs"
	"github.com/marketpulse/ratingengine/internal/interpolate"
	"github.com/marketpulse/ratingengine/internal/irsi"
	"github.com/marketpulse/ratingengine/internal/models"
	"github.com/marketpulse/ratingengine/internal/msci"
	"github.com/marketpulse/ratingengine/internal/ratingscale"
	"github.com/marketpulse/ratingengine/internal/rtsi"
)

const maxIndustryMembers = 10
const maxTrendSignals = 50

// AnalysisEngine runs the full stocks -> industries -> market pipeline
// over a Dataset, with a bounded worker pool for the per-stock pass, a
// TTL'd result cache keyed by an opaque snapshot key, and running
// performance counters.
//
// The engine holds a single lock around the calculation critical
// section so two concurrent CalculateAll calls never race on the
// cache; top_stocks/top_industries/detect_trend_changes read the cache
// directly and never block on a computation for a different key.
type AnalysisEngine struct {
	logger *common.Logger
	cfg    common.EngineConfig
	rtsiCfg rtsi.Config
	irsiCfg irsi.Config
	msciCfg msci.Config

	mu      sync.Mutex
	dataset *models.Dataset

	cacheMu sync.RWMutex
	cache   map[string]cacheEntry

	metricsMu sync.Mutex
	metrics   metricsState
}

type cacheEntry struct {
	results   models.AnalysisResults
	storedAt  time.Time
}

// New constructs an AnalysisEngine bound to the given dataset and
// configuration. The dataset reference is read-only for the lifetime
// of any single run; Update replaces it wholesale.
func New(logger *common.Logger, cfg *common.Config, dataset *models.Dataset) *AnalysisEngine {
	return &AnalysisEngine{
		logger:  logger,
		cfg:     cfg.Engine,
		rtsiCfg: rtsiConfigFrom(cfg.RTSI),
		irsiCfg: irsi.Config{MinStocks: cfg.IRSI.MinStocks},
		msciCfg: msciConfigFrom(cfg.MSCI),
		dataset: dataset,
		cache:   make(map[string]cacheEntry),
	}
}

func rtsiConfigFrom(c common.RTSIConfig) rtsi.Config {
	return rtsi.Config{
		MinDataPoints: c.MinDataPoints,
		PThreshold:    c.PThreshold,
		Weights:       c.Weights,
		BaseFloor:     c.BaseFloor,
		Enhanced:      c.Enhanced,
	}
}

func msciConfigFrom(c common.MSCIConfig) msci.Config {
	return msci.Config{
		MinRatedPerDay:    c.MinRatedPerDay,
		UseEnhanced:       c.UseEnhanced,
		VolumeRatioJitter: c.VolumeRatioJitter,
	}
}

// CalculateAll runs the full pipeline, honoring the cache unless
// forceRefresh is set. snapshotKey identifies the dataset snapshot for
// cache purposes; an empty key is replaced with a fresh UUID, which
// effectively disables caching for that call (the caller has no way to
// address the same key again).
func (e *AnalysisEngine) CalculateAll(ctx context.Context, snapshotKey string, forceRefresh bool) (models.AnalysisResults, error) {
	if snapshotKey == "" {
		snapshotKey = uuid.NewString()
	}

	if !forceRefresh {
		if cached, ok := e.cacheLookup(snapshotKey); ok {
			e.recordCacheHit()
			return cached, nil
		}
	}
	e.recordCacheMiss()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Re-check under the write lock: another goroutine may have
	// populated this key while we waited.
	if !forceRefresh {
		if cached, ok := e.cacheLookup(snapshotKey); ok {
			e.recordCacheHit()
			return cached, nil
		}
	}

	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout())
	defer cancel()

	results, err := e.run(runCtx)
	if err != nil {
		e.recordError()
		return models.AnalysisResults{}, err
	}

	elapsed := time.Since(start).Seconds()
	results.Metadata.CalculationTimeS = elapsed
	results.Metadata.RunID = uuid.NewString()
	results.Metadata.CacheHitRate = e.cacheHitRate()
	results.Metadata.PerformanceMetrics = e.snapshotMetrics()

	e.recordCalculation(elapsed)
	e.cacheStore(snapshotKey, results)

	e.logger.Info().
		Str("run_id", results.Metadata.RunID).
		Int("total_stocks", results.Metadata.TotalStocks).
		Int("total_industries", results.Metadata.TotalIndustries).
		Float64("calculation_time_s", elapsed).
		Msg("Analysis run complete")

	return results, nil
}

func (e *AnalysisEngine) run(ctx context.Context) (models.AnalysisResults, error) {
	if e.dataset == nil || len(e.dataset.Stocks) == 0 {
		return models.AnalysisResults{}, errs.New(errs.InputEmpty, "engine.run", "dataset has no stocks")
	}

	interpolated, fillRatios, interpolationWarnings := e.interpolateAll()

	stockEntries, rtsiByCode, err := e.stockPass(ctx, interpolated)
	if err != nil {
		return models.AnalysisResults{}, err
	}

	industryEntries := e.industryPass(interpolated, rtsiByCode)

	market := e.marketPass(interpolated, fillRatios, interpolationWarnings)

	return models.AnalysisResults{
		Stocks:     stockEntries,
		Industries: industryEntries,
		Market:     market,
		Metadata: models.Metadata{
			TotalStocks:     len(stockEntries),
			TotalIndustries: len(industryEntries),
		},
	}, nil
}

type interpolatedStock struct {
	stock     models.Stock
	series    models.RatingSeries
	fillRatio float64
	allMissing bool
}

func (e *AnalysisEngine) interpolateAll() ([]interpolatedStock, []float64, []string) {
	out := make([]interpolatedStock, 0, len(e.dataset.Stocks))
	fillRatios := make([]float64, 0, len(e.dataset.Stocks))
	var warnings []string
	seen := make(map[string]bool)

	for _, s := range e.dataset.Stocks {
		filled := interpolate.Fill(s.Series)
		out = append(out, interpolatedStock{
			stock:      s,
			series:     filled.Series,
			fillRatio:  filled.InterpolationRatio,
			allMissing: filled.AllMissing,
		})
		fillRatios = append(fillRatios, filled.InterpolationRatio)
		for _, w := range interpolate.QualityWarnings(filled.InterpolationRatio) {
			if !seen[w] {
				seen[w] = true
				warnings = append(warnings, w)
			}
		}
	}
	return out, fillRatios, warnings
}

// stockPass computes RTSI for every stock, fanning out over a bounded
// worker pool when e.cfg.Parallel is set. A per-stock panic is
// recovered and logged; that stock is omitted from the run rather than
// failing it.
func (e *AnalysisEngine) stockPass(ctx context.Context, stocks []interpolatedStock) (map[string]models.StockEntry, map[string]models.RtsiResult, error) {
	entries := make(map[string]models.StockEntry, len(stocks))
	rtsiByCode := make(map[string]models.RtsiResult, len(stocks))

	results := make([]stockOutcome, len(stocks))

	if !e.cfg.Parallel {
		for i, s := range stocks {
			results[i] = e.computeStock(s)
		}
	} else {
		workers := e.cfg.MaxWorkers
		if workers <= 0 {
			workers = 1
		}
		sem := make(chan struct{}, workers)
		var wg sync.WaitGroup
		abortErr := func() error {
			if ctx.Err() == context.Canceled {
				return errs.Wrap(errs.Cancelled, "engine.stockPass", ctx.Err())
			}
			return errs.Wrap(errs.Timeout, "engine.stockPass", ctx.Err())
		}

		for i, s := range stocks {
			select {
			case <-ctx.Done():
				return nil, nil, abortErr()
			default:
			}

			i, s := i, s
			wg.Add(1)
			sem <- struct{}{}
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				defer e.recoverStock(s.stock.Code)
				results[i] = e.computeStock(s)
			}()
		}
		wg.Wait()

		select {
		case <-ctx.Done():
			return nil, nil, abortErr()
		default:
		}
	}

	for _, r := range results {
		if r.code == "" {
			continue
		}
		entries[r.code] = r.entry
		rtsiByCode[r.code] = r.rtsi
	}
	return entries, rtsiByCode, nil
}

func (e *AnalysisEngine) recoverStock(code string) {
	if r := recover(); r != nil {
		e.logger.Error().
			Str("code", code).
			Str("panic", fmt.Sprintf("%v", r)).
			Str("stack", string(debug.Stack())).
			Msg("Recovered from panic computing stock RTSI; stock omitted")
	}
}

// stockOutcome is one stock's per-stock-pass result: its assembled
// StockEntry plus the raw RtsiResult, which the industry pass needs
// again to build representative-member summaries.
type stockOutcome struct {
	code  string
	entry models.StockEntry
	rtsi  models.RtsiResult
}

func (e *AnalysisEngine) computeStock(s interpolatedStock) stockOutcome {
	if s.allMissing {
		e.logger.Warn().Str("code", s.stock.Code).Msg("Stock has no valid rating cells; omitted from run")
		return stockOutcome{}
	}

	result := rtsi.Calculate(s.series, s.fillRatio, e.rtsiCfg)
	lastScore := lastValidScore(s.series)

	return stockOutcome{
		code: s.stock.Code,
		entry: models.StockEntry{
			Name:      s.stock.Name,
			Industry:  s.stock.Industry,
			Rtsi:      result,
			LastScore: lastScore,
			Trend:     result.Trend,
		},
		rtsi: result,
	}
}

func lastValidScore(series models.RatingSeries) float64 {
	for i := len(series) - 1; i >= 0; i-- {
		if series[i] != models.Missing {
			return ratingscale.ScoreLinear(series[i])
		}
	}
	return 0
}

func (e *AnalysisEngine) industryPass(stocks []interpolatedStock, rtsiByCode map[string]models.RtsiResult) map[string]models.IndustryEntry {
	byIndustry := make(map[string][]interpolatedStock)
	for _, s := range stocks {
		label := s.stock.Industry
		if label == "" {
			label = models.DefaultIndustry
		}
		byIndustry[label] = append(byIndustry[label], s)
	}

	allSeries := make([]models.RatingSeries, len(stocks))
	for i, s := range stocks {
		allSeries[i] = s.series
	}

	entries := make(map[string]models.IndustryEntry, len(byIndustry))
	for label, members := range byIndustry {
		memberSeries := make([]models.RatingSeries, len(members))
		for i, m := range members {
			memberSeries[i] = m.series
		}

		result := irsi.Calculate(memberSeries, allSeries, 0, e.irsiCfg)

		repr := make([]models.IndustryMember, 0, maxIndustryMembers)
		sorted := append([]interpolatedStock{}, members...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].stock.Code < sorted[j].stock.Code })
		for _, m := range sorted {
			if len(repr) >= maxIndustryMembers {
				break
			}
			score := 0.0
			if r, ok := rtsiByCode[m.stock.Code]; ok {
				score = r.Score
			}
			repr = append(repr, models.IndustryMember{
				Code: m.stock.Code,
				Name: m.stock.Name,
				Rtsi: score,
			})
		}

		entries[label] = models.IndustryEntry{
			Irsi:       result,
			StockCount: len(members),
			Stocks:     repr,
			Status:     result.Status,
		}
	}
	return entries
}

func (e *AnalysisEngine) marketPass(stocks []interpolatedStock, fillRatios []float64, warnings []string) models.MsciResult {
	series := make([]models.RatingSeries, len(stocks))
	var indexSeries []models.RatingSeries
	for i, s := range stocks {
		series[i] = s.series
		if s.stock.IsIndexConstituent() {
			indexSeries = append(indexSeries, s.series)
		}
	}

	result := msci.Calculate(series, fillRatios, indexSeries, e.dataset.Days, e.msciCfg)
	for _, w := range warnings {
		found := false
		for _, existing := range result.Warnings {
			if existing == w {
				found = true
				break
			}
		}
		if !found {
			result.Warnings = append(result.Warnings, w)
		}
	}
	return result
}
