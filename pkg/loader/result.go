// pkg/loader/result.go
package loader

import (
	"github.com/creativeyann17/go-assetpipe/pkg/scene"
	"github.com/creativeyann17/go-assetpipe/pkg/texture"
)

// Result is the outcome of one load. On failure Scene is nil and Err holds
// the cause.
type Result struct {
	Path      string
	Scene     *scene.Scene
	Clips     []scene.Clip
	Materials []scene.Material
	Textures  []texture.Binding
	Err       error
}

// Succeeded reports whether the load produced a scene
func (r *Result) Succeeded() bool {
	return r != nil && r.Err == nil && r.Scene != nil
}

// GetClips returns the animation clips of a successful load
func (r *Result) GetClips() []scene.Clip {
	if r == nil {
		return nil
	}
	return r.Clips
}

func failed(path string, err error) *Result {
	return &Result{Path: path, Err: err}
}
