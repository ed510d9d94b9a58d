package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanImages_FiltersAndKeys(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "banner.tga"))
	touch(t, filepath.Join(dir, "cards", "card-1.PNG"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "readme.md"))

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(sources))
	}

	keys := map[string]bool{}
	for _, s := range sources {
		keys[s.Key] = true
	}
	if !keys["banner"] {
		t.Error("banner.tga not found")
	}
	if !keys["cards/card-1"] {
		t.Error("cards/card-1.PNG not found (extension match must be case-insensitive)")
	}
}

func TestScanImages_SkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "visible.png"))
	touch(t, filepath.Join(dir, ".cache", "hidden.png"))

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(sources))
	}
	if sources[0].Key != "visible" {
		t.Errorf("got key %q", sources[0].Key)
	}
}

func TestScan_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "texture.tga")
	touch(t, path)

	sources, err := Scan(path)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(sources))
	}
	if sources[0].Key != "texture" {
		t.Errorf("key: got %q", sources[0].Key)
	}
	if sources[0].RelPath != "texture.tga" {
		t.Errorf("relpath: got %q", sources[0].RelPath)
	}
}

func TestScan_UnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.gltf")
	touch(t, path)

	if _, err := Scan(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
