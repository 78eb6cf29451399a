// pkg/discovery/discovery_test.go
package discovery

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(name), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

func rel(t *testing.T, root, path string) string {
	t.Helper()
	if path == "" {
		return ""
	}
	r, err := filepath.Rel(root, filepath.FromSlash(path))
	if err != nil {
		t.Fatalf("Rel failed: %v", err)
	}
	return filepath.ToSlash(r)
}

func TestScenarioModelAndTexture(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, "model1.fbx", "model1_Albedo.png", "readme.txt")

	got := FindFirstByExtension(root, NewExtensionSet("fbx"))
	if rel(t, root, got) != "model1.fbx" {
		t.Errorf("Expected model1.fbx, got %q", got)
	}
}

func TestSiblingsBeforeDescent(t *testing.T) {
	root := t.TempDir()
	// "a" sorts before "z.fbx" but files of a level are checked first
	createFiles(t, root, "a/deep.fbx", "z.fbx")

	got := FindFirstByExtension(root, NewExtensionSet(".fbx"))
	if rel(t, root, got) != "z.fbx" {
		t.Errorf("Expected z.fbx, got %q", got)
	}

	createFiles(t, root, "b/c/first.glb", "b/second.glb")
	got = FindFirstByExtension(root, NewExtensionSet(".glb"))
	if rel(t, root, got) != "b/second.glb" {
		t.Errorf("Expected b/second.glb, got %q", got)
	}
}

func TestFindFirstByName(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, "textures/Body_Normal.png", "textures/body_albedo.png")

	tests := []struct {
		needle          string
		caseInsensitive bool
		want            string
	}{
		{"Body_Normal", false, "textures/Body_Normal.png"},
		{"body_normal", false, ""},
		{"body_normal", true, "textures/Body_Normal.png"},
		{"_albedo", false, "textures/body_albedo.png"},
		{"missing", true, ""},
	}

	for _, tt := range tests {
		got := FindFirstByName(root, tt.needle, tt.caseInsensitive)
		if rel(t, root, got) != tt.want {
			t.Errorf("FindFirstByName(%q, %v) = %q, want %q", tt.needle, tt.caseInsensitive, got, tt.want)
		}
	}
}

func TestFindFirstBySuffix(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, "x/model.tar.xz", "x/model.xz.bak")

	got := FindFirstBySuffix(root, ".tar.xz")
	if rel(t, root, got) != "x/model.tar.xz" {
		t.Errorf("Expected x/model.tar.xz, got %q", got)
	}
}

func TestFindAllByExtension(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, "a.png", "b.PNG", "c.jpg", "sub/d.png", "sub/deeper/e.png", "sub/e.png.meta")

	exts := NewExtensionSet("png")
	got := FindAllByExtension(root, exts)
	want := []string{"a.png", "b.PNG", "sub/d.png", "sub/deeper/e.png"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if rel(t, root, got[i]) != want[i] {
			t.Errorf("Result %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	// A second search starts from an empty result
	again := FindAllByExtension(root, exts)
	if len(again) != len(want) {
		t.Errorf("Second search leaked results: %v", again)
	}
}

func TestNonexistentDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	exts := NewExtensionSet("fbx")

	if got := FindFirstByExtension(missing, exts); got != "" {
		t.Errorf("Expected empty result, got %q", got)
	}
	if got := FindFirstByName(missing, "x", true); got != "" {
		t.Errorf("Expected empty result, got %q", got)
	}
	if got := FindFirstBySuffix(missing, "x"); got != "" {
		t.Errorf("Expected empty result, got %q", got)
	}
	if got := FindAllByExtension(missing, exts); len(got) != 0 {
		t.Errorf("Expected no results, got %v", got)
	}
	if got := ListModelFiles(missing); len(got) != 0 {
		t.Errorf("Expected no results, got %v", got)
	}
	if got := FindFirstByExtension("", exts); got != "" {
		t.Errorf("Expected empty result for empty dir, got %q", got)
	}
}

func TestUnreadableSubdirectoryIsSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	createFiles(t, root, "a/hidden.fbx", "b/visible.fbx")
	locked := filepath.Join(root, "a")
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	var logs bytes.Buffer
	f := NewFinder(slog.New(slog.NewTextHandler(&logs, nil)))
	got := f.FindFirstByExtension(root, NewExtensionSet("fbx"))
	if rel(t, root, got) != "b/visible.fbx" {
		t.Errorf("Expected b/visible.fbx, got %q", got)
	}
	if !strings.Contains(logs.String(), "skipping unreadable directory") {
		t.Errorf("Expected a warning, got %q", logs.String())
	}
}

func TestFindFirstModelAndList(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root,
		"notes.txt",
		"Robot.GLB",
		"robot.glb.meta",
		"scene.gltf",
		"bundle.unity3d",
		"pack.zip",
		"nested/inner.fbx",
	)

	path, ext := FindFirstModel(root)
	if path == "" || ext == "" {
		t.Fatal("Expected a model")
	}
	if !ModelExtensions.Contains(path) {
		t.Errorf("Unexpected model %q", path)
	}
	if m, _ := ModelExtensions.Match(path); m != ext {
		t.Errorf("Extension %q does not match path %q", ext, path)
	}

	list := ListModelFiles(root)
	want := []string{"Robot.GLB", "bundle.unity3d", "pack.zip", "scene.gltf"}
	if len(list) != len(want) {
		t.Fatalf("Expected %v, got %v", want, list)
	}
	for i := range want {
		if rel(t, root, list[i]) != want[i] {
			t.Errorf("Item %d: expected %q, got %q", i, want[i], list[i])
		}
		if strings.Contains(list[i], `\`) {
			t.Errorf("Path %q is not slash-normalised", list[i])
		}
	}
}

func TestExtensionSet(t *testing.T) {
	set := NewExtensionSet("FBX", ".glb", "tar.xz", " ")
	if len(set) != 3 {
		t.Errorf("Expected 3 extensions, got %v", set.List())
	}

	tests := []struct {
		name string
		want string
	}{
		{"a.fbx", ".fbx"},
		{"A.FBX", ".fbx"},
		{"x.tar.xz", ".tar.xz"},
		{"x.xz", ""},
		{"fbx", ""},
	}
	for _, tt := range tests {
		got, _ := set.Match(tt.name)
		if got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
