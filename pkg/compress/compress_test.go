// pkg/compress/compress_test.go
package compress

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/yeka/zip"
)

// writeTree creates files (relative path -> content) under root
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
}

// zipNames lists entry names of a ZIP archive in stored order
func zipNames(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestCompressEntryOrder(t *testing.T) {
	tempDir := t.TempDir()
	input := filepath.Join(tempDir, "pack")
	writeTree(t, input, map[string]string{
		"a.txt":       "a",
		"sub/b.txt":   "b",
		"sub/x/c.txt": "c",
		"z.txt":       "z",
	})
	output := filepath.Join(tempDir, "out.zip")

	opts := DefaultOptions()
	opts.Files = []string{input}
	opts.OutputPath = output

	result, err := Compress(opts, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if result.FilesProcessed != 4 {
		t.Errorf("Expected 4 files, got %d", result.FilesProcessed)
	}
	if result.DirsProcessed != 3 {
		t.Errorf("Expected 3 directory entries, got %d", result.DirsProcessed)
	}

	// Directory first, then its direct files, then subdirectories
	want := []string{
		"pack/",
		"pack/a.txt",
		"pack/z.txt",
		"pack/sub/",
		"pack/sub/b.txt",
		"pack/sub/x/",
		"pack/sub/x/c.txt",
	}
	got := zipNames(t, output)
	if len(got) != len(want) {
		t.Fatalf("Expected entries %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entry %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestCompressInputPathHasNoPrefix(t *testing.T) {
	tempDir := t.TempDir()
	input := filepath.Join(tempDir, "pack")
	writeTree(t, input, map[string]string{"a.txt": "a", "sub/b.txt": "b"})
	output := filepath.Join(tempDir, "out.zip")

	opts := DefaultOptions()
	opts.InputPath = input
	opts.OutputPath = output

	if _, err := Compress(opts, nil); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	want := []string{"a.txt", "sub/", "sub/b.txt"}
	got := zipNames(t, output)
	if len(got) != len(want) {
		t.Fatalf("Expected entries %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entry %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestCompressHooks(t *testing.T) {
	tempDir := t.TempDir()
	input := filepath.Join(tempDir, "pack")
	writeTree(t, input, map[string]string{
		"keep.txt":        "k",
		"skip.txt":        "s",
		"vetoed/deep.txt": "d",
		"sub/b.txt":       "b",
	})
	output := filepath.Join(tempDir, "out.zip")

	var post []string
	var finished []bool
	opts := DefaultOptions()
	opts.InputPath = input
	opts.OutputPath = output
	opts.Hooks = &assetpipe.Hooks{
		PreEntry: func(e *assetpipe.Entry) bool {
			return e.Name != "skip.txt" && e.Name != "vetoed/"
		},
		PostEntry: func(e *assetpipe.Entry) {
			post = append(post, e.Name)
		},
		Finished: func(ok bool) {
			finished = append(finished, ok)
		},
	}

	result, err := Compress(opts, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if result.Skipped != 2 {
		t.Errorf("Expected 2 skipped entries, got %d", result.Skipped)
	}

	// Directory post hook fires after its subtree
	wantPost := []string{"keep.txt", "sub/b.txt", "sub/"}
	if len(post) != len(wantPost) {
		t.Fatalf("Expected post entries %v, got %v", wantPost, post)
	}
	for i := range wantPost {
		if post[i] != wantPost[i] {
			t.Errorf("Post entry %d: expected %q, got %q", i, wantPost[i], post[i])
		}
	}

	if len(finished) != 1 || !finished[0] {
		t.Errorf("Expected a single successful finish, got %v", finished)
	}

	for _, name := range zipNames(t, output) {
		if name == "skip.txt" || name == "vetoed/" || name == "vetoed/deep.txt" {
			t.Errorf("Vetoed entry %q was written", name)
		}
	}
}

func TestCompressMissingInputReportsFailure(t *testing.T) {
	tempDir := t.TempDir()

	var finished []bool
	opts := DefaultOptions()
	opts.Files = []string{filepath.Join(tempDir, "missing")}
	opts.OutputPath = filepath.Join(tempDir, "out.zip")
	opts.Hooks = &assetpipe.Hooks{Finished: func(ok bool) { finished = append(finished, ok) }}

	_, err := Compress(opts, nil)
	if err == nil {
		t.Fatal("Expected error for missing input")
	}
	if !assetpipe.IsKind(err, assetpipe.KindIO) {
		t.Errorf("Expected IO error, got %v", err)
	}
	if len(finished) != 1 || finished[0] {
		t.Errorf("Expected a single failed finish, got %v", finished)
	}
}

func TestCompressValidation(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
		want error
	}{
		{"no input", &Options{OutputPath: "out.zip"}, ErrInputRequired},
		{"no output", &Options{InputPath: "."}, ErrOutputRequired},
		{"bad level", &Options{InputPath: ".", OutputPath: "o.zip", Level: 12}, ErrInvalidLevel},
		{"bad format", &Options{InputPath: ".", OutputPath: "o.7z", Format: "7z"}, ErrInvalidFormat},
		{"password with xz", &Options{InputPath: ".", OutputPath: "o.tar.xz", Format: FormatTarXZ, Password: "x"}, ErrPasswordUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compress(tt.opts, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if !assetpipe.IsKind(err, assetpipe.KindArgument) {
				t.Errorf("Expected argument error, got %v", err)
			}
		})
	}
}

func TestCompressPassword(t *testing.T) {
	tempDir := t.TempDir()
	input := filepath.Join(tempDir, "pack")
	writeTree(t, input, map[string]string{"secret.txt": "classified"})
	modTime := time.Date(2021, time.March, 4, 5, 6, 8, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(input, "secret.txt"), modTime, modTime); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	output := filepath.Join(tempDir, "out.zip")

	opts := DefaultOptions()
	opts.InputPath = input
	opts.OutputPath = output
	opts.Password = "golang"

	if _, err := Compress(opts, nil); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	data, _ := os.ReadFile(output)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	if len(zr.File) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(zr.File))
	}
	f := zr.File[0]
	if !f.IsEncrypted() {
		t.Fatal("Expected encrypted entry")
	}
	if !f.ModTime().Equal(modTime) {
		t.Errorf("Expected mod time %v, got %v", modTime, f.ModTime())
	}
	if f.Mode().Perm() != 0644 || f.Mode().IsDir() {
		t.Errorf("Expected regular 0644 entry, got %v", f.Mode())
	}
	f.SetPassword("golang")
	rc, err := f.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "classified" {
		t.Errorf("Expected %q, got %q", "classified", got)
	}
}

func TestCompressLevelChangesSize(t *testing.T) {
	tempDir := t.TempDir()
	input := filepath.Join(tempDir, "scene.txt")

	words := []string{"mesh", "bone", "clip", "albedo", "normal", "metallic", "vertex", "index"}
	var sb strings.Builder
	seed := uint32(17)
	for sb.Len() < 256<<10 {
		seed = seed*1664525 + 1013904223
		sb.WriteString(words[seed>>29])
		sb.WriteByte(" \n"[seed>>28&1])
	}
	if err := os.WriteFile(input, []byte(sb.String()), 0644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	sizes := make(map[int]int64)
	for _, level := range []int{1, 9} {
		opts := DefaultOptions()
		opts.InputPath = input
		opts.OutputPath = filepath.Join(tempDir, "out.zip")
		opts.Level = level
		if _, err := Compress(opts, nil); err != nil {
			t.Fatalf("Compress at level %d failed: %v", level, err)
		}
		info, err := os.Stat(opts.OutputPath)
		if err != nil {
			t.Fatalf("Stat failed: %v", err)
		}
		sizes[level] = info.Size()
	}

	if sizes[9] >= sizes[1] {
		t.Errorf("Expected level 9 (%d bytes) to be smaller than level 1 (%d bytes)", sizes[9], sizes[1])
	}
}

func TestCompressIgnoreFiles(t *testing.T) {
	tempDir := t.TempDir()
	input := filepath.Join(tempDir, "pack")
	writeTree(t, input, map[string]string{
		".assetignore":        "*.psd\nbuild/\n",
		"model.fbx":           "m",
		"model_Albedo.psd":    "p",
		"build/out.bin":       "o",
		"textures/.gitignore": "*.tmp\n",
		"textures/a.png":      "a",
		"textures/a.tmp":      "t",
	})
	output := filepath.Join(tempDir, "out.zip")

	opts := DefaultOptions()
	opts.InputPath = input
	opts.OutputPath = output
	opts.UseIgnoreFiles = true

	result, err := Compress(opts, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	names := make(map[string]bool)
	for _, n := range zipNames(t, output) {
		names[n] = true
	}
	for _, n := range []string{"model.fbx", "textures/", "textures/a.png"} {
		if !names[n] {
			t.Errorf("Expected %q in archive", n)
		}
	}
	for _, n := range []string{"model_Albedo.psd", "build/", "build/out.bin", "textures/a.tmp"} {
		if names[n] {
			t.Errorf("Ignored %q was archived", n)
		}
	}
	if result.FilesTotal != result.FilesProcessed {
		t.Errorf("Pre-count %d does not match processed %d", result.FilesTotal, result.FilesProcessed)
	}
}

func TestCompressBytes(t *testing.T) {
	data, err := CompressBytes("payload.bin", []byte("hello"), "")
	if err != nil {
		t.Fatalf("CompressBytes failed: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != "payload.bin" {
		t.Fatalf("Unexpected entries: %v", zr.File)
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "hello" {
		t.Errorf("Expected %q, got %q", "hello", got)
	}

	if _, err := CompressBytes("", nil, ""); !errors.Is(err, ErrInputRequired) {
		t.Errorf("Expected ErrInputRequired, got %v", err)
	}
}

func TestCompressProgressEvents(t *testing.T) {
	tempDir := t.TempDir()
	input := filepath.Join(tempDir, "pack")
	writeTree(t, input, map[string]string{"a.txt": "aaaa", "b.txt": "bb"})

	opts := DefaultOptions()
	opts.InputPath = input
	opts.OutputPath = filepath.Join(tempDir, "out.tar.xz")
	opts.Format = FormatTarXZ

	var events []ProgressEvent
	_, err := Compress(opts, func(e ProgressEvent) { events = append(events, e) })
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if len(events) == 0 || events[0].Type != assetpipe.EventStart {
		t.Fatalf("Expected EventStart first, got %v", events)
	}
	if events[0].Total != 2 || events[0].TotalBytes != 6 {
		t.Errorf("Unexpected start totals: %+v", events[0])
	}
	if last := events[len(events)-1]; last.Type != assetpipe.EventComplete {
		t.Errorf("Expected EventComplete last, got %+v", last)
	}
}
