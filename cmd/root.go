package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "imgconv",
	Short: "In-memory raster-to-PNG transcoder for game assets",
	Long: `imgconv — decodes raster images (TGA, PNG, JPEG, BMP, TIFF, WebP, GIF)
entirely in memory and re-encodes them as PNG.

Built for asset pipelines that ship TGA textures: browsers cannot display
them, so they are transcoded on the way out. Decoding and PNG compression
are delegated to the image libraries; this tool is the plumbing around
them.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgconv %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[imgconv] "+format+"\n", args...)
	}
}
