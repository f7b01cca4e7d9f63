package engine

import (
	"context"
	"sort"

	"github.com/marketpulse/ratingengine/internal/models"
)

// RankedEntry is one row of a top_stocks/top_industries ranking view.
type RankedEntry struct {
	Code  string  `json:"code"`
	Score float64 `json:"score"`
}

// TopStocks returns the n stocks with the highest value for metric
// ("rtsi" is the only metric today), ties broken by stock code
// ascending. It reads the most recent cached run and never blocks a
// computation targeting a different snapshot key.
func (e *AnalysisEngine) TopStocks(metric string, n int) []RankedEntry {
	results, ok := e.latestCached()
	if !ok {
		return nil
	}

	entries := make([]RankedEntry, 0, len(results.Stocks))
	for code, s := range results.Stocks {
		entries = append(entries, RankedEntry{Code: code, Score: coerceStockMetric(s, metric)})
	}
	sortRanked(entries)
	return truncate(entries, n)
}

// TopIndustries returns the n industries with the highest value for
// metric ("irsi" is the only metric today), ties broken by industry
// label ascending.
func (e *AnalysisEngine) TopIndustries(metric string, n int) []RankedEntry {
	results, ok := e.latestCached()
	if !ok {
		return nil
	}

	entries := make([]RankedEntry, 0, len(results.Industries))
	for label, industry := range results.Industries {
		entries = append(entries, RankedEntry{Code: label, Score: coerceIndustryMetric(industry, metric)})
	}
	sortRanked(entries)
	return truncate(entries, n)
}

func coerceStockMetric(s models.StockEntry, metric string) float64 {
	switch metric {
	case "rtsi":
		return s.Rtsi.Score
	default:
		return 0
	}
}

func coerceIndustryMetric(i models.IndustryEntry, metric string) float64 {
	switch metric {
	case "irsi":
		return i.Irsi.Score
	default:
		return 0
	}
}

func sortRanked(entries []RankedEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Code < entries[j].Code
	})
}

func truncate(entries []RankedEntry, n int) []RankedEntry {
	if n < 0 || n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

// TrendSignal is one emitted event from DetectTrendChanges.
type TrendSignal struct {
	Kind   string `json:"kind"`
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

const (
	signalStockBullish     = "stock_bullish"
	signalStockBearish     = "stock_bearish"
	signalIndustryRotation = "industry_rotation"
	signalMarketExtreme    = "market_extreme"

	bullishThreshold   = 70.0
	bearishThreshold   = 20.0
	confidenceThreshold = 0.7
	irsiRotationThreshold = 30.0
)

// DetectTrendChanges scans the most recently cached run and emits
// bounded signals: stock_bullish/stock_bearish for strong RTSI moves
// with high confidence, industry_rotation for strong IRSI
// outperformance, and market_extreme when the market state is at
// either sentiment extreme. Output is capped at 50 signals.
func (e *AnalysisEngine) DetectTrendChanges() []TrendSignal {
	results, ok := e.latestCached()
	if !ok {
		return nil
	}

	var signals []TrendSignal

	codes := make([]string, 0, len(results.Stocks))
	for code := range results.Stocks {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		if len(signals) >= maxTrendSignals {
			return signals
		}
		s := results.Stocks[code]
		r := s.Rtsi
		if r.Confidence <= confidenceThreshold {
			continue
		}
		if r.Score > bullishThreshold && isUpward(r.Trend) {
			signals = append(signals, TrendSignal{Kind: signalStockBullish, Code: code, Detail: string(r.Trend)})
		} else if r.Score < bearishThreshold && isDownward(r.Trend) {
			signals = append(signals, TrendSignal{Kind: signalStockBearish, Code: code, Detail: string(r.Trend)})
		}
	}

	labels := make([]string, 0, len(results.Industries))
	for label := range results.Industries {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		if len(signals) >= maxTrendSignals {
			return signals
		}
		industry := results.Industries[label]
		if industry.Irsi.Score > irsiRotationThreshold && industry.Irsi.Status == models.StatusStrongOutperform {
			signals = append(signals, TrendSignal{Kind: signalIndustryRotation, Code: label, Detail: string(industry.Irsi.Status)})
		}
	}

	if len(signals) < maxTrendSignals {
		if results.Market.MarketState == models.StateExtremeEuphoria || results.Market.MarketState == models.StatePanicSelling {
			signals = append(signals, TrendSignal{Kind: signalMarketExtreme, Detail: string(results.Market.MarketState)})
		}
	}

	if len(signals) > maxTrendSignals {
		signals = signals[:maxTrendSignals]
	}
	return signals
}

func isUpward(t models.TrendLabel) bool {
	switch t {
	case models.TrendStrongBull, models.TrendModerateBull, models.TrendWeakBull:
		return true
	default:
		return false
	}
}

func isDownward(t models.TrendLabel) bool {
	switch t {
	case models.TrendStrongBear, models.TrendModerateBear, models.TrendWeakBear:
		return true
	default:
		return false
	}
}

// RealtimeRankings bundles the top-stocks/top-industries views with the
// current market sentiment into one convenience struct.
type RealtimeRankings struct {
	TopStocks     []RankedEntry       `json:"top_stocks"`
	TopIndustries []RankedEntry       `json:"top_industries"`
	Market        models.MsciResult   `json:"market"`
}

// RealtimeRankings returns the top 20 stocks by RTSI, the top 10
// industries by IRSI, and the current market reading, all from the
// most recently cached run.
func (e *AnalysisEngine) RealtimeRankings() RealtimeRankings {
	results, _ := e.latestCached()
	return RealtimeRankings{
		TopStocks:     e.TopStocks("rtsi", 20),
		TopIndustries: e.TopIndustries("irsi", 10),
		Market:        results.Market,
	}
}

// UpdateStatus reports the outcome of an incremental dataset update.
type UpdateStatus struct {
	TotalStocks     int `json:"total_stocks"`
	TotalIndustries int `json:"total_industries"`
}

// Update replaces the engine's dataset and forces a full
// recomputation under a fresh snapshot key.
func (e *AnalysisEngine) Update(ctx context.Context, dataset *models.Dataset) (UpdateStatus, error) {
	e.mu.Lock()
	e.dataset = dataset
	e.mu.Unlock()

	results, err := e.CalculateAll(ctx, "", true)
	if err != nil {
		return UpdateStatus{}, err
	}
	return UpdateStatus{
		TotalStocks:     results.Metadata.TotalStocks,
		TotalIndustries: results.Metadata.TotalIndustries,
	}, nil
}

// PerformanceReport bundles the engine's configuration snapshot with
// its running performance counters and cache state, mirroring the
// source engine's get_performance_report.
type PerformanceReport struct {
	MaxWorkers  int                       `json:"max_workers"`
	Parallel    bool                      `json:"parallel"`
	CacheTTLS   int                       `json:"cache_ttl_s"`
	TimeoutS    int                       `json:"timeout_s"`
	CachedKeys  int                       `json:"cached_keys"`
	Metrics     models.PerformanceMetrics `json:"metrics"`
}

// PerformanceReport snapshots the engine's current configuration and
// performance counters.
func (e *AnalysisEngine) PerformanceReport() PerformanceReport {
	e.cacheMu.RLock()
	cachedKeys := len(e.cache)
	e.cacheMu.RUnlock()

	return PerformanceReport{
		MaxWorkers: e.cfg.MaxWorkers,
		Parallel:   e.cfg.Parallel,
		CacheTTLS:  e.cfg.CacheTTLSeconds,
		TimeoutS:   e.cfg.TimeoutSeconds,
		CachedKeys: cachedKeys,
		Metrics:    e.snapshotMetrics(),
	}
}
