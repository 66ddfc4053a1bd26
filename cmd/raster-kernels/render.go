package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/raster-kernels/internal/imaging"
	"github.com/ironsheep/raster-kernels/internal/pipeline"
)

var renderCmd = &cobra.Command{
	Use:   "render SOURCE",
	Short: "Render every configured variant of SOURCE to the output directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		variants, err := configuredVariants()
		if err != nil {
			return err
		}
		return renderSource(args[0], viper.GetString("output_dir"), variants, debugLogger(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("output-dir", "o", ".", "directory receiving the rendered files")
	viper.BindPFlag("output_dir", renderCmd.Flags().Lookup("output-dir"))
}

// renderSource decodes src once and writes each variant into outDir. A source
// that cannot be decoded aborts the run before any stage executes.
func renderSource(src, outDir string, variants []pipeline.Variant, debug *log.Logger, w io.Writer) error {
	grid, err := imaging.NewImageCache().LoadGrid(src)
	if err != nil {
		return fmt.Errorf("cannot load %s: %w", src, err)
	}

	rendered, err := pipeline.NewRunner(debug).Render(grid, variants, outDir)
	for _, r := range rendered {
		fmt.Fprintf(w, "%-16s %dx%d  %s\n", r.Name, r.Width, r.Height, r.Path)
	}
	return err
}
