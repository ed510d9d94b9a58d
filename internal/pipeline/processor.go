package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/imgconv-cli/internal/codec"
	"github.com/AnyUserName/imgconv-cli/internal/hasher"
	"github.com/AnyUserName/imgconv-cli/internal/manifest"
	"github.com/disintegration/imaging"
)

// processResult holds the outcome of converting a single source image.
type processResult struct {
	key        string
	entry      manifest.Entry
	err        error
	downscaled bool // source was wider than MaxWidth
}

// processImage converts one source: read, decode, optional downscale,
// PNG-encode, write.
func processImage(src Source, cfg Config) processResult {
	result := processResult{key: src.Key}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}

	pm, format, err := codec.Decode(data)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	srcInfo := manifest.SourceInfo{
		Format:   format,
		Width:    pm.Width,
		Height:   pm.Height,
		Channels: pm.Channels,
		Size:     src.Size,
	}

	// Downscale oversized sources before encoding.
	if cfg.MaxWidth > 0 && pm.Width > cfg.MaxWidth {
		img, err := pm.Image()
		if err != nil {
			result.err = fmt.Errorf("downscale %s: %w", src.RelPath, err)
			return result
		}
		pm = codec.FromImage(imaging.Resize(img, cfg.MaxWidth, 0, imaging.Lanczos))
		result.downscaled = true
	}

	encoded, err := codec.EncodePNG(pm)
	if err != nil {
		result.err = fmt.Errorf("encode %s: %w", src.RelPath, err)
		return result
	}

	// Build filename: key.png, or key.<hash8>.png with --hash-names.
	fileName := filepath.Base(src.Key) + ".png"
	var contentHash string
	if cfg.HashNames {
		contentHash = hasher.Digest(encoded, hasher.FullHexLen)
		fileName = fmt.Sprintf("%s.%s.png", filepath.Base(src.Key), contentHash[:8])
	}

	keyDir := filepath.Dir(src.Key)
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	// Ensure output subdirectory exists.
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755); err != nil {
			result.err = fmt.Errorf("mkdir %s: %w", keyDir, err)
			return result
		}
	}

	outPath := filepath.Join(cfg.OutputDir, relPath)
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	result.entry = manifest.Entry{
		Source: srcInfo,
		Output: manifest.OutputInfo{
			Path:   relPath,
			Width:  pm.Width,
			Height: pm.Height,
			Size:   int64(len(encoded)),
			Hash:   contentHash,
		},
	}
	return result
}
