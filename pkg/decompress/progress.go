// pkg/decompress/progress.go
package decompress

import (
	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/vbauerster/mpb/v8"
)

// ProgressCallback is called for various progress events
type ProgressCallback = assetpipe.ProgressCallback

// ProgressEvent contains progress information
type ProgressEvent = assetpipe.ProgressEvent

// ProgressBarCallback creates a progress callback that displays multi-progress bars
// Returns the callback function and the progress container (call Wait() after decompression)
func ProgressBarCallback() (ProgressCallback, *mpb.Progress) {
	return assetpipe.ProgressBarCallback()
}

// FormatSummary formats a decompression result into a human-readable summary string
func FormatSummary(result *Result) string {
	return assetpipe.FormatSummary(result, assetpipe.OperationDecompress)
}
