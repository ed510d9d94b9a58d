package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
)

func writeFixture(t *testing.T, path string, w, h int, encode func(*bytes.Buffer, image.Image) error) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func encodePNG(buf *bytes.Buffer, img image.Image) error { return png.Encode(buf, img) }
func encodeTGA(buf *bytes.Buffer, img image.Image) error { return tga.Encode(buf, img) }

func TestPipeline_ConvertDirectory(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFixture(t, filepath.Join(in, "banner.tga"), 64, 32, encodeTGA)
	writeFixture(t, filepath.Join(in, "cards", "card-1.png"), 20, 20, encodePNG)

	p := New(Config{Input: in, OutputDir: out, Workers: 2})
	m, err := p.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(m.Entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(m.Entries))
	}

	e, ok := m.Entries["banner"]
	if !ok {
		t.Fatal("banner entry missing")
	}
	if e.Source.Format != "tga" {
		t.Errorf("banner source format: got %q", e.Source.Format)
	}
	if e.Output.Path != "banner.png" {
		t.Errorf("banner output path: got %q", e.Output.Path)
	}

	// Every output must exist and be a decodable PNG.
	for key, e := range m.Entries {
		data, err := os.ReadFile(filepath.Join(out, e.Output.Path))
		if err != nil {
			t.Fatalf("%s: %v", key, err)
		}
		if int64(len(data)) != e.Output.Size {
			t.Errorf("%s: size on disk %d != manifest %d", key, len(data), e.Output.Size)
		}
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("%s: output is not valid PNG: %v", key, err)
		}
	}

	if m.Stats.TotalFiles != 2 {
		t.Errorf("stats total_files: got %d", m.Stats.TotalFiles)
	}
}

func TestPipeline_SingleFileWithHashNames(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	src := filepath.Join(in, "texture.tga")
	writeFixture(t, src, 16, 16, encodeTGA)

	p := New(Config{Input: src, OutputDir: out, HashNames: true})
	m, err := p.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	e, ok := m.Entries["texture"]
	if !ok {
		t.Fatal("texture entry missing")
	}
	if e.Output.Hash == "" {
		t.Error("hash missing with HashNames")
	}
	want := "texture." + e.Output.Hash[:8] + ".png"
	if e.Output.Path != want {
		t.Errorf("output path: got %q, want %q", e.Output.Path, want)
	}
	if _, err := os.Stat(filepath.Join(out, e.Output.Path)); err != nil {
		t.Errorf("output file: %v", err)
	}
}

func TestPipeline_MaxWidthDownscale(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFixture(t, filepath.Join(in, "wide.png"), 200, 100, encodePNG)

	p := New(Config{Input: in, OutputDir: out, MaxWidth: 50})
	m, err := p.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	e := m.Entries["wide"]
	if e.Source.Width != 200 {
		t.Errorf("source width: got %d", e.Source.Width)
	}
	if e.Output.Width != 50 {
		t.Errorf("output width: got %d, want 50", e.Output.Width)
	}
	if e.Output.Height != 25 {
		t.Errorf("output height: got %d, want 25 (aspect preserved)", e.Output.Height)
	}
	if m.Stats.Downscaled != 1 {
		t.Errorf("downscaled: got %d", m.Stats.Downscaled)
	}
}

func TestPipeline_PartialFailure(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFixture(t, filepath.Join(in, "good.png"), 10, 10, encodePNG)
	if err := os.WriteFile(filepath.Join(in, "bad.png"), []byte("not a png at all............."), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New(Config{Input: in, OutputDir: out})
	m, err := p.Run()
	if err != nil {
		t.Fatalf("partial failure must not fail the run: %v", err)
	}
	if len(m.Entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(m.Entries))
	}
	if _, ok := m.Entries["good"]; !ok {
		t.Error("good entry missing")
	}
}

func TestPipeline_AllFailed(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(in, "bad.png"), []byte("still not a png.............."), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New(Config{Input: in, OutputDir: out})
	if _, err := p.Run(); err == nil {
		t.Fatal("expected error when every image fails")
	}
}
