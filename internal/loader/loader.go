// Package loader defines the Loader interface external data-file
// collaborators implement, plus CSVLoader, a reference implementation
// reading the code/name/industry-plus-day-columns shape spec.md §6
// describes.
package loader

import (
	"context"

	"github.com/marketpulse/ratingengine/internal/models"
)

// Loader produces a Dataset from whatever source it wraps (a single
// file, a directory of per-market files, a remote fetch). Callers pass
// a context so a slow load can be cancelled; Loader implementations
// that cannot be interrupted mid-read should at least check ctx before
// starting.
type Loader interface {
	Load(ctx context.Context) (*models.Dataset, error)
}
