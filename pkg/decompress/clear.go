// pkg/decompress/clear.go
package decompress

import (
	"os"
	"path/filepath"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
)

// ClearDir removes every file and subdirectory of dir, keeping dir itself.
// A nonexistent dir is not an error.
func ClearDir(dir string) error {
	if dir == "" {
		return assetpipe.NewError(assetpipe.KindArgument, "clear directory", "", ErrOutputRequired)
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return assetpipe.NewError(assetpipe.KindIO, "clear directory", dir, err)
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(path); err != nil {
			return assetpipe.NewError(assetpipe.KindIO, "clear directory", path, err)
		}
	}
	return nil
}
