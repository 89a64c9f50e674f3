// Command hitprobe evaluates an overlay hit region file the same way the
// overlay does at runtime, for checking a layout without a display.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "hitprobe",
		Short:        "Inspect overlay hit regions",
		Long:         "Load a region file (rects in CSS pixels plus a scale) and query it the way the click-through realizers do.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("file", "", "Region file (YAML or JSON)")
	rootCmd.PersistentFlags().Float64("scale", 0, "Override the file's scale factor")
	rootCmd.MarkPersistentFlagRequired("file")

	rootCmd.AddCommand(newContainsCmd(), newShapeCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
