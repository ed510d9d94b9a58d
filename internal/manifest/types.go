package manifest

// Manifest is the top-level record of one conversion run.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	BasePath    string           `json:"base_path"`
	RunInfo     *RunInfo         `json:"run_info,omitempty"`
	Entries     map[string]Entry `json:"entries"`
	Stats       Stats            `json:"stats"`
}

// RunInfo captures run-time parameters for diagnostics.
type RunInfo struct {
	Workers  int `json:"workers"`
	MaxWidth int `json:"max_width,omitempty"` // 0 = no downscaling
}

// Entry describes one source image and the PNG written for it.
type Entry struct {
	Source SourceInfo `json:"source"`
	Output OutputInfo `json:"output"`
}

// SourceInfo holds metadata about the decoded input image.
type SourceInfo struct {
	Format   string `json:"format"` // "tga", "png", "jpeg", "bmp", ...
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Channels int    `json:"channels"` // 1-4, as decoded
	Size     int64  `json:"size"`     // encoded bytes on disk
}

// OutputInfo describes the written PNG.
type OutputInfo struct {
	Path   string `json:"path"` // relative to base_path
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`           // encoded bytes on disk
	Hash   string `json:"hash,omitempty"` // xxhash64 hex, set with --hash-names
}

// Stats aggregates run metrics.
type Stats struct {
	TotalFiles       int   `json:"total_files"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	Downscaled       int   `json:"downscaled,omitempty"` // entries shrunk by --max-width
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
