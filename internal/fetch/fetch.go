// Package fetch defines the interface contract for the automatic
// data-file downloader collaborator. No concrete adapter is provided:
// wiring a real remote source is out of scope for the core engine.
package fetch

import "context"

// Downloader retrieves a raw data file (whatever the loader's source
// format is) and returns its bytes.
type Downloader interface {
	Download(ctx context.Context, source string) ([]byte, error)
}
