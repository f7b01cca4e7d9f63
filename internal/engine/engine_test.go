package engine

import (
	"context"
	"testing"

	"github.com/marketpulse/ratingengine/internal/common"
	"github.com/marketpulse/ratingengine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constSeries(r models.Rating, days int) models.RatingSeries {
	s := make(models.RatingSeries, days)
	for i := range s {
		s[i] = r
	}
	return s
}

func genDataset(days int) *models.Dataset {
	dates := make([]string, days)
	for i := range dates {
		dates[i] = "2026010" + string(rune('0'+i%10))
	}

	stocks := []models.Stock{
		{Code: "000001", Name: "Alpha", Industry: "tech", Series: constSeries(models.StrongBull, days)},
		{Code: "000002", Name: "Beta", Industry: "tech", Series: constSeries(models.MidBull, days)},
		{Code: "000003", Name: "Gamma", Industry: "finance", Series: constSeries(models.MidBear, days)},
		{Code: "000004", Name: "Delta", Industry: "finance", Series: constSeries(models.SmallBear, days)},
	}
	return &models.Dataset{Stocks: stocks, Days: dates}
}

func testConfig() *common.Config {
	cfg := common.NewDefaultConfig()
	cfg.MSCI.MinRatedPerDay = 2
	cfg.IRSI.MinStocks = 2
	cfg.RTSI.MinDataPoints = 3
	cfg.Engine.Parallel = true
	cfg.Engine.MaxWorkers = 2
	cfg.Engine.TimeoutSeconds = 30
	cfg.Engine.CacheTTLSeconds = 300
	return cfg
}

func TestCalculateAll_Orchestration(t *testing.T) {
	e := New(common.NewSilentLogger(), testConfig(), genDataset(10))

	results, err := e.CalculateAll(context.Background(), "snapshot-1", false)
	require.NoError(t, err)

	assert.Len(t, results.Stocks, 4)
	assert.Len(t, results.Industries, 2)
	assert.Contains(t, results.Stocks, "000001")
	assert.Equal(t, 4, results.Metadata.TotalStocks)
	assert.Equal(t, 2, results.Metadata.TotalIndustries)
}

func TestCalculateAll_CacheHit(t *testing.T) {
	e := New(common.NewSilentLogger(), testConfig(), genDataset(10))

	_, err := e.CalculateAll(context.Background(), "snapshot-1", false)
	require.NoError(t, err)

	report := e.PerformanceReport()
	assert.Equal(t, 1, report.Metrics.CacheMisses)

	_, err = e.CalculateAll(context.Background(), "snapshot-1", false)
	require.NoError(t, err)

	report = e.PerformanceReport()
	assert.Equal(t, 1, report.Metrics.CacheHits)
}

func TestCalculateAll_ForceRefreshBypassesCache(t *testing.T) {
	e := New(common.NewSilentLogger(), testConfig(), genDataset(10))

	_, err := e.CalculateAll(context.Background(), "snapshot-1", false)
	require.NoError(t, err)

	_, err = e.CalculateAll(context.Background(), "snapshot-1", true)
	require.NoError(t, err)

	report := e.PerformanceReport()
	assert.Equal(t, 2, report.Metrics.CacheMisses)
	assert.Equal(t, 0, report.Metrics.CacheHits)
}

func TestCalculateAll_EmptyDatasetFails(t *testing.T) {
	e := New(common.NewSilentLogger(), testConfig(), &models.Dataset{})

	_, err := e.CalculateAll(context.Background(), "", false)
	assert.Error(t, err)
}

func TestTopStocks_OrderedByScoreThenCode(t *testing.T) {
	e := New(common.NewSilentLogger(), testConfig(), genDataset(10))
	_, err := e.CalculateAll(context.Background(), "snapshot-1", false)
	require.NoError(t, err)

	top := e.TopStocks("rtsi", 2)
	require.Len(t, top, 2)
	assert.GreaterOrEqual(t, top[0].Score, top[1].Score)
	// Every fixture series is flat, so all scores tie and code order decides.
	assert.Equal(t, "000001", top[0].Code)
	assert.Equal(t, "000002", top[1].Code)
}

func TestTopIndustries_Bounded(t *testing.T) {
	e := New(common.NewSilentLogger(), testConfig(), genDataset(10))
	_, err := e.CalculateAll(context.Background(), "snapshot-1", false)
	require.NoError(t, err)

	top := e.TopIndustries("irsi", 1)
	assert.Len(t, top, 1)
}

func TestDetectTrendChanges_MarketExtremeSignal(t *testing.T) {
	days := 10
	dates := make([]string, days)
	for i := range dates {
		dates[i] = "2026010" + string(rune('0'+i%10))
	}
	var stocks []models.Stock
	for i := 0; i < 40; i++ {
		stocks = append(stocks, models.Stock{
			Code:     "00" + string(rune('A'+i%26)) + string(rune('0'+i%10)),
			Name:     "Stock",
			Industry: "tech",
			Series:   constSeries(models.StrongBull, days),
		})
	}
	dataset := &models.Dataset{Stocks: stocks, Days: dates}

	cfg := testConfig()
	cfg.MSCI.MinRatedPerDay = 5
	e := New(common.NewSilentLogger(), cfg, dataset)

	_, err := e.CalculateAll(context.Background(), "snapshot-1", false)
	require.NoError(t, err)

	signals := e.DetectTrendChanges()
	found := false
	for _, s := range signals {
		if s.Kind == signalMarketExtreme {
			found = true
		}
	}
	assert.True(t, found)
}

func TestUpdate_RecomputesAndReportsCounts(t *testing.T) {
	e := New(common.NewSilentLogger(), testConfig(), genDataset(10))
	_, err := e.CalculateAll(context.Background(), "snapshot-1", false)
	require.NoError(t, err)

	status, err := e.Update(context.Background(), genDataset(10))
	require.NoError(t, err)
	assert.Equal(t, 4, status.TotalStocks)
}

func TestPerformanceReport_ReflectsConfig(t *testing.T) {
	e := New(common.NewSilentLogger(), testConfig(), genDataset(10))
	report := e.PerformanceReport()

	assert.Equal(t, 2, report.MaxWorkers)
	assert.True(t, report.Parallel)
}
