// Package commentary defines the interface contract for the LLM-based
// narrative-commentary collaborator. Per spec.md §1, this subsystem is
// explicitly out of scope for the core engine: only the interface
// lives here, with no concrete adapter wiring a real LLM client.
package commentary

import (
	"context"

	"github.com/marketpulse/ratingengine/internal/models"
)

// Generator produces human-readable narrative commentary for a
// completed analysis run.
type Generator interface {
	Generate(ctx context.Context, results models.AnalysisResults) (string, error)
}
