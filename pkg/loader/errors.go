// pkg/loader/errors.go
package loader

import "errors"

var (
	// ErrBusy is returned when a load is requested while another is in flight
	ErrBusy = errors.New("loader is busy")

	// ErrPathRequired is returned for an empty model, archive or folder path
	ErrPathRequired = errors.New("path is required")

	// ErrNoScene is returned when a parser succeeds without producing a scene
	ErrNoScene = errors.New("parser returned no scene")

	// ErrNoModel is returned when an extracted archive holds no model file
	ErrNoModel = errors.New("no model file found")
)
