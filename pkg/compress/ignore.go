// pkg/compress/ignore.go
package compress

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileNames are the pattern files honored when Options.UseIgnoreFiles is set
var IgnoreFileNames = []string{".gitignore", ".assetignore"}

// ignoreMatcher applies ignore files found anywhere below an archived root.
// Patterns in a directory's ignore file apply to paths relative to that directory.
type ignoreMatcher struct {
	baseDir  string
	matchers map[string][]*ignore.GitIgnore // key: relative dir path, "" = root
}

// newIgnoreMatcher pre-scans baseDir for ignore files.
// Returns nil if none are found.
func newIgnoreMatcher(baseDir string) (*ignoreMatcher, error) {
	baseDir = filepath.Clean(baseDir)
	im := &ignoreMatcher{
		baseDir:  baseDir,
		matchers: make(map[string][]*ignore.GitIgnore),
	}

	err := filepath.WalkDir(baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Skip inaccessible paths
			return nil
		}
		if d.IsDir() || !isIgnoreFile(d.Name()) {
			return nil
		}

		relDir, err := filepath.Rel(baseDir, filepath.Dir(path))
		if err != nil {
			return nil
		}
		if relDir == "." {
			relDir = ""
		}
		relDir = filepath.ToSlash(relDir)

		matcher, err := ignore.CompileIgnoreFile(path)
		if err != nil {
			// Unreadable ignore files are skipped
			return nil
		}
		im.matchers[relDir] = append(im.matchers[relDir], matcher)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(im.matchers) == 0 {
		return nil, nil
	}
	return im, nil
}

func isIgnoreFile(name string) bool {
	for _, n := range IgnoreFileNames {
		if name == n {
			return true
		}
	}
	return false
}

// ShouldIgnore checks if a file at relPath (relative to baseDir) is ignored.
func (im *ignoreMatcher) ShouldIgnore(relPath string) bool {
	if im == nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, dirPath := range hierarchy(relPath) {
		pathToCheck := relPath
		if dirPath != "" {
			pathToCheck = strings.TrimPrefix(relPath, dirPath+"/")
		}
		for _, m := range im.matchers[dirPath] {
			if m.MatchesPath(pathToCheck) {
				return true
			}
		}
	}
	return false
}

// ShouldIgnoreDir checks if a directory subtree should be pruned.
// Only directory patterns (e.g. "build/") prune; file patterns such as
// "*.log" never prune a directory that happens to match them.
func (im *ignoreMatcher) ShouldIgnoreDir(relPath string) bool {
	if im == nil {
		return false
	}
	return im.ShouldIgnore(relPath+"/") && !im.ShouldIgnore(relPath)
}

// hierarchy lists the directories from root to the parent of relPath.
// For "src/lib/file.log" it returns ["", "src", "src/lib"].
func hierarchy(relPath string) []string {
	dirs := []string{""}
	parent := filepath.ToSlash(filepath.Dir(strings.TrimSuffix(relPath, "/")))
	if parent == "." || parent == "" {
		return dirs
	}
	current := ""
	for _, part := range strings.Split(parent, "/") {
		if part == "" {
			continue
		}
		if current == "" {
			current = part
		} else {
			current += "/" + part
		}
		dirs = append(dirs, current)
	}
	return dirs
}
