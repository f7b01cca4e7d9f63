package models

// TrendLabel is one of the seven-level trend/state vocabulary used by
// RTSI (and, via the same thresholds, by the enhanced-RTSI score).
type TrendLabel string

const (
	TrendStrongBull   TrendLabel = "strong-bull"
	TrendModerateBull TrendLabel = "moderate-bull"
	TrendWeakBull     TrendLabel = "weak-bull"
	TrendNeutral      TrendLabel = "neutral"
	TrendWeakBear     TrendLabel = "weak-bear"
	TrendModerateBear TrendLabel = "moderate-bear"
	TrendStrongBear   TrendLabel = "strong-bear"
	TrendUnclear      TrendLabel = "unclear"
	TrendSideways     TrendLabel = "sideways"
	TrendInsufficient TrendLabel = "insufficient_data"
	TrendCalcError    TrendLabel = "calculation_error"
)

// IrsiStatus is the five-level outperformance vocabulary for IRSI.
type IrsiStatus string

const (
	StatusStrongOutperform  IrsiStatus = "strong-outperform"
	StatusWeakOutperform    IrsiStatus = "weak-outperform"
	StatusNeutral           IrsiStatus = "neutral"
	StatusWeakUnderperform  IrsiStatus = "weak-underperform"
	StatusStrongUnderperform IrsiStatus = "strong-underperform"
	StatusInsufficientData  IrsiStatus = "insufficient_data"
)

// MarketState is the seven-level MSCI sentiment-regime vocabulary.
type MarketState string

const (
	StateExtremeEuphoria      MarketState = "extreme-euphoria"
	StateHealthyOptimism      MarketState = "healthy-optimism"
	StateCautiousOptimism     MarketState = "cautious-optimism"
	StateNeutralSentiment     MarketState = "neutral-sentiment"
	StateMildPessimism        MarketState = "mild-pessimism"
	StateSignificantPessimism MarketState = "significant-pessimism"
	StatePanicSelling         MarketState = "panic-selling"
)

// ExtremeState classifies a single MSCI day as bull-extreme, bear-extreme
// or normal.
type ExtremeState string

const (
	ExtremeBull   ExtremeState = "bull"
	ExtremeBear   ExtremeState = "bear"
	ExtremeNormal ExtremeState = "normal"
)

// RiskLevel is one of the stable risk-assessment tokens produced by the
// MSCI (state, extreme-state, trend) risk matrix.
type RiskLevel string

const (
	RiskExtremelyHighBubbleWarning       RiskLevel = "extremely_high_risk_bubble_warning"
	RiskExtremelyHighBubbleConfirmed     RiskLevel = "extremely_high_risk_bubble_confirmed"
	RiskHighReturnBottomOpportunity      RiskLevel = "high_risk_high_return_bottom_opportunity"
	RiskContrarianPanicBottom            RiskLevel = "contrarian_investment_opportunity_panic_bottom"
	RiskHigh                             RiskLevel = "high_risk"
	RiskExtremelyHigh                    RiskLevel = "extremely_high_risk"
	RiskMediumHigh                       RiskLevel = "medium_high_risk"
	RiskMedium                           RiskLevel = "medium_risk"
	RiskLow                              RiskLevel = "low_risk"
	RiskMediumWatchExtremeSentiment      RiskLevel = "medium_risk_watch_extreme_sentiment"
)

// RtsiResult is C3's per-stock output.
type RtsiResult struct {
	Score              float64    `json:"score"`
	Trend              TrendLabel `json:"trend"`
	Confidence         float64    `json:"confidence"`
	Slope              float64    `json:"slope,omitempty"`
	RSquared           float64    `json:"r_squared,omitempty"`
	RecentScore        float64    `json:"recent_score,omitempty"`
	ScoreChange5D       float64   `json:"score_change_5d,omitempty"`
	SampleSize         int        `json:"sample_size"`
	InterpolationRatio float64    `json:"interpolation_ratio,omitempty"`
	Warnings           []string   `json:"warnings,omitempty"`
	Reason             string     `json:"reason,omitempty"`
	Enhanced           bool       `json:"enhanced,omitempty"`
}

// IrsiResult is C4's per-industry output.
type IrsiResult struct {
	Score      float64    `json:"score"`
	Status     IrsiStatus `json:"status"`
	SampleSize int        `json:"sample_size"`
	Reason     string     `json:"reason,omitempty"`
}

// MsciDay is one day's entry in MsciResult.History.
type MsciDay struct {
	Date               string  `json:"date"`
	Score              float64 `json:"score"`
	InterpolationRatio float64 `json:"interpolation_ratio"`
	Warnings           []string `json:"warnings,omitempty"`
}

// MsciResult is C5's whole-market output.
type MsciResult struct {
	CurrentScore       float64      `json:"current_score"`
	MarketState        MarketState  `json:"market_state"`
	Trend5D            float64      `json:"trend_5d"`
	Volatility         float64      `json:"volatility"`
	Participation      float64      `json:"participation"`
	BullBearRatio      float64      `json:"bull_bear_ratio"`
	VolumeRatio        float64      `json:"volume_ratio"`
	ExtremeState       ExtremeState `json:"extreme_state"`
	RiskLevel          RiskLevel    `json:"risk_level"`
	History            []MsciDay    `json:"history"`
	AvgInterpolation   float64      `json:"avg_interpolation_ratio"`
	Warnings           []string     `json:"warnings,omitempty"`
	Enhanced           bool         `json:"enhanced,omitempty"`
	AlgorithmID        string       `json:"algorithm_id,omitempty"`
	Reason             string       `json:"reason,omitempty"`
}

// StockEntry is one AnalysisResults.Stocks value.
type StockEntry struct {
	Name     string     `json:"name"`
	Industry string     `json:"industry"`
	Rtsi     RtsiResult `json:"rtsi"`
	LastScore float64   `json:"last_score"`
	Trend    TrendLabel `json:"trend"`
}

// IndustryMember is a representative stock summary nested under an
// IndustryEntry.
type IndustryMember struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Rtsi float64 `json:"rtsi"`
}

// IndustryEntry is one AnalysisResults.Industries value.
type IndustryEntry struct {
	Irsi       IrsiResult       `json:"irsi"`
	StockCount int              `json:"stock_count"`
	Stocks     []IndustryMember `json:"stocks"`
	Status     IrsiStatus       `json:"status"`
}

// Metadata carries run-level counters and timings.
type Metadata struct {
	RunID              string             `json:"run_id"`
	TotalStocks        int                `json:"total_stocks"`
	TotalIndustries    int                `json:"total_industries"`
	CalculationTimeS   float64            `json:"calculation_time_s"`
	CacheHitRate       float64            `json:"cache_hit_rate"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics"`
}

// PerformanceMetrics mirrors the engine's running performance counters.
type PerformanceMetrics struct {
	TotalCalculations  int     `json:"total_calculations"`
	CacheHits          int     `json:"cache_hits"`
	CacheMisses        int     `json:"cache_misses"`
	ErrorCount         int     `json:"error_count"`
	AvgCalculationTimeS float64 `json:"avg_calculation_time_s"`
}

// AnalysisResults is C6's assembled output: every stock's RTSI, every
// industry's IRSI, the single MsciResult, and run metadata.
type AnalysisResults struct {
	Stocks     map[string]StockEntry    `json:"stocks"`
	Industries map[string]IndustryEntry `json:"industries"`
	Market     MsciResult               `json:"market"`
	Metadata   Metadata                 `json:"metadata"`
}
