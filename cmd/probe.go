package cmd

import (
	"fmt"
	"os"

	"github.com/AnyUserName/imgconv-cli/internal/codec"
	"github.com/AnyUserName/imgconv-cli/internal/hasher"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe <image_file>",
	Short: "Decode an image and print what was found",
	Long: `Decodes the file fully in memory and reports format, dimensions,
channel count and content hash. Useful for checking whether an asset
will survive conversion before running a full build.`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(_ *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	pm, format, err := codec.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	channelNames := map[int]string{
		1: "grayscale",
		2: "grayscale+alpha",
		3: "rgb",
		4: "rgba",
	}

	fmt.Println()
	fmt.Printf("  File:       %s\n", path)
	fmt.Printf("  Format:     %s\n", format)
	fmt.Printf("  Dimensions: %dx%d\n", pm.Width, pm.Height)
	fmt.Printf("  Channels:   %d (%s)\n", pm.Channels, channelNames[pm.Channels])
	fmt.Printf("  Raw pixels: %s\n", formatBytes(int64(len(pm.Pix))))
	fmt.Printf("  File size:  %s\n", formatBytes(int64(len(data))))
	fmt.Printf("  Hash:       %s\n", hasher.Digest(data, hasher.FullHexLen))
	fmt.Println()
	return nil
}
