package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source represents a discovered convertible image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory.
	RelPath string
	// Key is the asset key (relpath without extension).
	Key string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions lists recognized input extensions. PNG inputs are
// included: re-encoding normalizes them like everything else.
var imageExtensions = map[string]bool{
	".tga":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// Scan returns the sources under input, which may be a single image file
// or a directory tree.
func Scan(input string) ([]Source, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return ScanImages(input)
	}

	ext := strings.ToLower(filepath.Ext(input))
	if !imageExtensions[ext] {
		return nil, fmt.Errorf("unsupported input type %q", ext)
	}
	base := filepath.Base(input)
	return []Source{{
		AbsPath: input,
		RelPath: base,
		Key:     base[:len(base)-len(ext)],
		Size:    info.Size(),
	}}, nil
}

// ScanImages walks the input directory and returns all image sources.
func ScanImages(inputDir string) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories.
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !imageExtensions[ext] {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		// Key: relative path without extension, using forward slashes.
		// Trim by length, not TrimSuffix: ext is lowercased and the file
		// on disk may not be.
		key := filepath.ToSlash(relPath[:len(relPath)-len(ext)])

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Key:     key,
			Size:    info.Size(),
		})

		return nil
	})

	return sources, err
}
