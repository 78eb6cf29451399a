// pkg/assetpipe/helpers.go
package assetpipe

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// OperationType indicates whether the operation is compression or decompression
type OperationType string

const (
	OperationCompress   OperationType = "compress"
	OperationDecompress OperationType = "decompress"
	OperationVerify     OperationType = "verify"
)

// ProgressEvent is a progress event shared by compress, decompress and verify
type ProgressEvent struct {
	Type         EventType
	FilePath     string
	Current      int64
	Total        int64
	CurrentBytes uint64
	TotalBytes   uint64
}

// ProgressCallback is called for various progress events
type ProgressCallback func(event ProgressEvent)

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventFileStart
	EventFileProgress
	EventFileComplete
	EventComplete
	EventError
)

// Emit calls cb when it is set
func (cb ProgressCallback) Emit(event ProgressEvent) {
	if cb != nil {
		cb(event)
	}
}

// Result is the common surface of compress, decompress and verify results
type Result interface {
	GetFilesTotal() int
	GetFilesProcessed() int
	GetErrors() []error
	GetOriginalSize() uint64
	GetCompressedSize() uint64
	Success() bool
}

// ProgressBarCallback creates a progress callback that displays multi-progress bars
// Returns the callback function and the progress container (call Wait() after operation)
func ProgressBarCallback() (ProgressCallback, *mpb.Progress) {
	progress := mpb.New(
		mpb.WithWidth(60),
		mpb.WithRefreshRate(100*time.Millisecond),
	)

	var overallBar *mpb.Bar
	var fileBars sync.Map // map[string]*mpb.Bar

	callback := func(event ProgressEvent) {
		switch event.Type {
		case EventStart:
			overallBar = progress.AddBar(event.Total,
				mpb.PrependDecorators(
					decor.Name("Total", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Percentage(decor.WC{W: 5}),
				),
				mpb.BarPriority(1000),
			)

		case EventFileStart:
			// Empty files complete instantly
			if event.TotalBytes == 0 {
				return
			}
			shortName := TruncateLeft(event.FilePath, 30)
			bar := progress.AddBar(int64(event.TotalBytes),
				mpb.PrependDecorators(
					decor.Name(shortName, decor.WC{C: decor.DindentRight | decor.DextraSpace, W: 32}),
				),
				mpb.AppendDecorators(
					decor.CountersKibiByte("% .1f / % .1f", decor.WC{W: 18}),
					decor.Percentage(decor.WC{W: 5}),
				),
				mpb.BarRemoveOnComplete(),
			)
			fileBars.Store(event.FilePath, bar)

		case EventFileProgress:
			if bar, ok := fileBars.Load(event.FilePath); ok {
				bar.(*mpb.Bar).SetCurrent(int64(event.CurrentBytes))
			}

		case EventFileComplete:
			if bar, ok := fileBars.Load(event.FilePath); ok {
				b := bar.(*mpb.Bar)
				if event.TotalBytes > 0 {
					b.SetCurrent(int64(event.TotalBytes))
				} else {
					b.Abort(true)
				}
				fileBars.Delete(event.FilePath)
			}
			if overallBar != nil {
				overallBar.Increment()
			}

		case EventError:
			if bar, ok := fileBars.Load(event.FilePath); ok {
				bar.(*mpb.Bar).Abort(true)
				fileBars.Delete(event.FilePath)
			}
			if overallBar != nil {
				overallBar.Abort(false)
			}

		case EventComplete:
			if overallBar != nil && !overallBar.Completed() {
				overallBar.SetTotal(-1, true)
			}
		}
	}

	return callback, progress
}

// FormatSummary formats a result into a human-readable summary string
func FormatSummary(result Result, operation OperationType) string {
	var sb strings.Builder

	errors := result.GetErrors()
	if len(errors) > 0 {
		fmt.Fprintf(&sb, "Failed with %d errors:\n", len(errors))
		for _, e := range errors {
			fmt.Fprintf(&sb, "  - %v\n", e)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "  Files processed: %d / %d\n", result.GetFilesProcessed(), result.GetFilesTotal())

	switch operation {
	case OperationCompress:
		fmt.Fprintf(&sb, "  Original size:   %s\n", FormatSize(result.GetOriginalSize()))
		fmt.Fprintf(&sb, "  Archive size:    %s\n", FormatSize(result.GetCompressedSize()))
		if result.GetOriginalSize() > 0 {
			ratio := float64(result.GetCompressedSize()) / float64(result.GetOriginalSize()) * 100
			fmt.Fprintf(&sb, "  Ratio:           %.1f%%\n", ratio)
		}
	default:
		fmt.Fprintf(&sb, "  Compressed size:   %s\n", FormatSize(result.GetCompressedSize()))
		fmt.Fprintf(&sb, "  Uncompressed size: %s\n", FormatSize(result.GetOriginalSize()))
	}

	return sb.String()
}

// FormatSize formats bytes into human-readable string
func FormatSize(bytes uint64) string {
	return humanize.IBytes(bytes)
}

// TruncateLeft truncates a path from the left to fit maxLen, preserving the filename
func TruncateLeft(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}

	filename := filepath.Base(path)
	if len(filename) >= maxLen-3 {
		return "..." + filename[len(filename)-(maxLen-3):]
	}

	return "..." + path[len(path)-(maxLen-3):]
}
