// Package interpolate fills "missing" cells in an entity's rating
// series using the bidirectional, position-aware policy C2 of the
// engine design: back-fill before the first valid cell, forward-fill
// everywhere after.
package interpolate

import "github.com/marketpulse/ratingengine/internal/models"

// Result bundles the filled series with the leading-gap diagnostic
// each calculator records for data-quality warnings.
type Result struct {
	Series             models.RatingSeries
	InterpolationRatio float64 // missing_before / total
	AllMissing         bool
}

// Fill applies the bidirectional interpolation policy to series. If no
// valid cell exists anywhere, the series is returned unchanged and
// AllMissing is true — downstream MUST treat that as insufficient data.
func Fill(series models.RatingSeries) Result {
	n := len(series)
	out := make(models.RatingSeries, n)
	copy(out, series)

	firstValid := -1
	for i, r := range series {
		if r != models.Missing {
			firstValid = i
			break
		}
	}
	if firstValid == -1 {
		return Result{Series: out, AllMissing: true}
	}

	missingBefore := 0
	for i := 0; i < firstValid; i++ {
		out[i] = series[firstValid]
		missingBefore++
	}

	last := series[firstValid]
	for i := firstValid + 1; i < n; i++ {
		if series[i] == models.Missing {
			out[i] = last
			missingBefore++
		} else {
			out[i] = series[i]
			last = series[i]
		}
	}

	ratio := 0.0
	if n > 0 {
		ratio = float64(missingBefore) / float64(n)
	}
	return Result{Series: out, InterpolationRatio: ratio}
}

// QualityWarning thresholds: interpolation ratios at or above these
// trigger, respectively, a plain and a severe data-quality warning.
const (
	WarningThreshold = 0.30
	SevereThreshold  = 0.50
)

// QualityWarnings returns the zero or one warning string that applies
// to the given interpolation ratio; a severe ratio yields only the
// severe warning.
func QualityWarnings(ratio float64) []string {
	var warnings []string
	if ratio >= SevereThreshold {
		warnings = append(warnings, "severe_interpolation: more than half of series was interpolated")
	} else if ratio >= WarningThreshold {
		warnings = append(warnings, "high_interpolation: more than 30% of series was interpolated")
	}
	return warnings
}
