package pipeline

import (
	"fmt"
	"image"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/ironsheep/raster-kernels/internal/imaging"
)

// SaveFunc persists a rendered image. imaging.SaveImage is the default.
type SaveFunc func(path string, img image.Image) error

// Runner applies stage lists to source images.
type Runner struct {
	logger *log.Logger
	save   SaveFunc
}

// NewRunner creates a Runner that logs stage timings to logger. A nil logger
// discards all output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Runner{
		logger: logger,
		save:   imaging.SaveImage,
	}
}

// WithSaver returns a copy of r that persists images with save.
func (r *Runner) WithSaver(save SaveFunc) *Runner {
	dup := *r
	dup.save = save
	return &dup
}

// Run applies stages in order to a private copy of src and returns the final
// grid. src is never modified. With no stages the result is a plain copy.
func (r *Runner) Run(src image.Image, stages []Stage) (*image.NRGBA, error) {
	grid := imaging.Grid(src)

	for i, stage := range stages {
		start := time.Now()
		out, err := stage.Apply(grid)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, stage, err)
		}
		r.logger.Printf("stage %d %s: %dx%d in %s", i, stage,
			out.Bounds().Dx(), out.Bounds().Dy(), time.Since(start))
		grid = out
	}

	return grid, nil
}

// Rendered describes one variant written by Render.
type Rendered struct {
	Name   string   `json:"name"`
	Path   string   `json:"path"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Stages []string `json:"stages"`
}

// Render runs every variant against src and saves each result to
// outDir/variant.Output. It stops at the first failing variant and returns
// the variants rendered so far together with the error. An Output that
// CleanOutput rejects fails that variant with ErrInvalidOutput before anything
// is run.
func (r *Runner) Render(src image.Image, variants []Variant, outDir string) ([]Rendered, error) {
	rendered := make([]Rendered, 0, len(variants))

	for _, v := range variants {
		name, err := CleanOutput(v.Output)
		if err != nil {
			return rendered, fmt.Errorf("variant %s: %w", v.Name, err)
		}

		out, err := r.Run(src, v.Stages)
		if err != nil {
			return rendered, fmt.Errorf("variant %s: %w", v.Name, err)
		}

		path := filepath.Join(outDir, name)
		if err := r.save(path, out); err != nil {
			return rendered, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		r.logger.Printf("variant %s written to %s", v.Name, path)

		rendered = append(rendered, Rendered{
			Name:   v.Name,
			Path:   path,
			Width:  out.Bounds().Dx(),
			Height: out.Bounds().Dy(),
			Stages: Names(v.Stages),
		})
	}

	return rendered, nil
}
