// Package report defines the Writer interface external reporting
// collaborators implement (HTML dashboards, Excel workbooks), plus
// SparklineWriter, a thin reference adapter rendering an MSCI history
// sparkline to SVG.
package report

import (
	"io"

	"github.com/marketpulse/ratingengine/internal/models"
)

// Writer renders an AnalysisResults run into some external report
// format and writes it to w.
type Writer interface {
	Write(w io.Writer, results models.AnalysisResults) error
}
