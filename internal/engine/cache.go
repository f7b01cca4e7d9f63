package engine

import (
	"time"

	"github.com/marketpulse/ratingengine/internal/common"
	"github.com/marketpulse/ratingengine/internal/models"
)

// metricsState tracks the engine's running performance counters across
// calls. All fields are protected by AnalysisEngine.metricsMu.
type metricsState struct {
	totalCalculations int
	cacheHits         int
	cacheMisses       int
	errorCount        int
	totalDurationS    float64
}

func (e *AnalysisEngine) recordCacheHit() {
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()
	e.metrics.cacheHits++
}

func (e *AnalysisEngine) recordCacheMiss() {
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()
	e.metrics.cacheMisses++
}

func (e *AnalysisEngine) recordError() {
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()
	e.metrics.errorCount++
}

func (e *AnalysisEngine) recordCalculation(durationS float64) {
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()
	e.metrics.totalCalculations++
	e.metrics.totalDurationS += durationS
}

func (e *AnalysisEngine) cacheHitRate() float64 {
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()
	total := e.metrics.cacheHits + e.metrics.cacheMisses
	if total == 0 {
		return 0
	}
	return float64(e.metrics.cacheHits) / float64(total)
}

func (e *AnalysisEngine) snapshotMetrics() models.PerformanceMetrics {
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()
	avg := 0.0
	if e.metrics.totalCalculations > 0 {
		avg = e.metrics.totalDurationS / float64(e.metrics.totalCalculations)
	}
	return models.PerformanceMetrics{
		TotalCalculations:   e.metrics.totalCalculations,
		CacheHits:           e.metrics.cacheHits,
		CacheMisses:         e.metrics.cacheMisses,
		ErrorCount:          e.metrics.errorCount,
		AvgCalculationTimeS: avg,
	}
}

// cacheLookup is the read-only fast path: it never blocks a
// computation in progress for a different snapshot key.
func (e *AnalysisEngine) cacheLookup(key string) (models.AnalysisResults, bool) {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()

	entry, ok := e.cache[key]
	if !ok {
		return models.AnalysisResults{}, false
	}
	if !common.IsFresh(entry.storedAt, e.cfg.CacheTTL()) {
		return models.AnalysisResults{}, false
	}
	return entry.results, true
}

func (e *AnalysisEngine) cacheStore(key string, results models.AnalysisResults) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	e.cache[key] = cacheEntry{results: results, storedAt: time.Now()}
}

// latestCached returns the most recently stored cache entry regardless
// of key, for the read-only ranking/trend-change accessors that operate
// on "whatever was last computed" rather than a specific snapshot.
func (e *AnalysisEngine) latestCached() (models.AnalysisResults, bool) {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()

	var latest cacheEntry
	found := false
	for _, entry := range e.cache {
		if !found || entry.storedAt.After(latest.storedAt) {
			latest = entry
			found = true
		}
	}
	if !found {
		return models.AnalysisResults{}, false
	}
	return latest.results, true
}
