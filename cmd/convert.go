package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/AnyUserName/imgconv-cli/internal/manifest"
	"github.com/AnyUserName/imgconv-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	convertOutDir    string
	convertWorkers   int
	convertMaxWidth  int
	convertHashNames bool
	convertManifest  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <input_file_or_dir>",
	Short: "Transcode raster images to PNG",
	Long: `Decodes each supported image (tga, png, jpg, jpeg, webp, gif, bmp, tiff)
fully in memory and writes it back out as PNG. A single file converts
inline; a directory is processed in parallel, preserving its layout.

With --hash-names output files are content-addressed: <key>.<hash8>.png`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutDir, "out", "o", "./imgconv_out", "output directory")
	convertCmd.Flags().IntVarP(&convertWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	convertCmd.Flags().IntVar(&convertMaxWidth, "max-width", 0, "downscale images wider than this (0 = keep)")
	convertCmd.Flags().BoolVar(&convertHashNames, "hash-names", false, "content-addressed output filenames")
	convertCmd.Flags().BoolVar(&convertManifest, "manifest", false, "write imgconv.manifest.json to the output dir")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(convertOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	logVerbose("input:  %s", absInput)
	logVerbose("output: %s", absOutput)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		Input:     absInput,
		OutputDir: absOutput,
		Workers:   convertWorkers,
		MaxWidth:  convertMaxWidth,
		HashNames: convertHashNames,
		Verbose:   verbose,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if convertManifest {
		manifestPath := filepath.Join(absOutput, "imgconv.manifest.json")
		if err := manifest.WriteJSON(m, manifestPath); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
	}

	printConvertReport(m, time.Since(start))
	return nil
}

func printConvertReport(m *manifest.Manifest, elapsed time.Duration) {
	stats := m.Stats
	ratio := float64(0)
	if stats.TotalInputBytes > 0 {
		ratio = float64(stats.TotalOutputBytes) / float64(stats.TotalInputBytes) * 100
	}

	fmt.Println()
	fmt.Printf("  Converted:   %d files\n", stats.TotalFiles)
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	if stats.Downscaled > 0 {
		fmt.Printf("  Downscaled:  %d files (wider than --max-width)\n", stats.Downscaled)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()

	// Top 10 heaviest conversions.
	if len(m.Entries) > 0 {
		type entrySize struct {
			key        string
			inputSize  int64
			outputSize int64
		}
		var items []entrySize
		for key, e := range m.Entries {
			items = append(items, entrySize{key, e.Source.Size, e.Output.Size})
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].inputSize > items[j].inputSize
		})
		n := len(items)
		if n > 10 {
			n = 10
		}
		fmt.Printf("  Top %d heaviest (original → png):\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %8s → %8s\n",
				truncKey(it.key, 40),
				formatBytes(it.inputSize),
				formatBytes(it.outputSize),
			)
		}
		fmt.Println()
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
