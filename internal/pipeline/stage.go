package pipeline

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/raster-kernels/internal/imaging"
)

// ErrUnknownStage is returned for stages whose kind or type name is not
// recognized.
var ErrUnknownStage = errors.New("unknown stage")

// StageKind identifies which transform a Stage applies.
type StageKind int

const (
	// KindGrayscale reduces RGB to a single gray level.
	KindGrayscale StageKind = iota + 1

	// KindConvolve applies a normalizing kernel.
	KindConvolve

	// KindEdgeDetect thresholds the Sobel gradient magnitude.
	KindEdgeDetect
)

// String returns the stage type name used in configuration.
func (k StageKind) String() string {
	switch k {
	case KindGrayscale:
		return "grayscale"
	case KindConvolve:
		return "convolve"
	case KindEdgeDetect:
		return "edge_detect"
	default:
		return fmt.Sprintf("StageKind(%d)", int(k))
	}
}

// Stage is one step of a pipeline. Only the payload field matching Kind is
// used.
type Stage struct {
	Kind StageKind

	// Policy is the grayscale policy for KindGrayscale.
	Policy imaging.GrayPolicy

	// Kernel is the convolution kernel for KindConvolve.
	Kernel imaging.Kernel

	// Edge holds the detector parameters for KindEdgeDetect.
	Edge imaging.EdgeParams
}

// GrayscaleStage returns a stage reducing the image to gray with policy.
func GrayscaleStage(policy imaging.GrayPolicy) Stage {
	return Stage{Kind: KindGrayscale, Policy: policy}
}

// ConvolveStage returns a stage convolving with k. The kernel is validated
// up front so a bad kernel fails when the pipeline is built rather than
// part way through a run.
func ConvolveStage(k imaging.Kernel) (Stage, error) {
	if err := k.Validate(); err != nil {
		return Stage{}, err
	}
	return Stage{Kind: KindConvolve, Kernel: k}, nil
}

// BoxBlurStage returns a convolution stage with a size×size box kernel.
func BoxBlurStage(content float64, size int) (Stage, error) {
	k, err := imaging.BoxKernel(content, size)
	if err != nil {
		return Stage{}, err
	}
	return Stage{Kind: KindConvolve, Kernel: k}, nil
}

// EdgeStage returns an edge detection stage.
func EdgeStage(p imaging.EdgeParams) Stage {
	return Stage{Kind: KindEdgeDetect, Edge: p}
}

// String describes the stage, e.g. "grayscale(luminance)" or "convolve(5x5)".
func (s Stage) String() string {
	switch s.Kind {
	case KindGrayscale:
		return fmt.Sprintf("grayscale(%s)", s.Policy)
	case KindConvolve:
		return fmt.Sprintf("convolve(%dx%d)", len(s.Kernel), kernelCols(s.Kernel))
	case KindEdgeDetect:
		return fmt.Sprintf("edge_detect(threshold=%g)", s.Edge.Threshold)
	default:
		return s.Kind.String()
	}
}

// Apply runs the stage on src and returns a new grid. src is not modified.
func (s Stage) Apply(src *image.NRGBA) (*image.NRGBA, error) {
	switch s.Kind {
	case KindGrayscale:
		return imaging.Grayscale(src, s.Policy), nil
	case KindConvolve:
		return imaging.Convolve(src, s.Kernel)
	case KindEdgeDetect:
		return imaging.DetectEdges(src, s.Edge), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, s.Kind)
	}
}

// Names returns the String form of each stage.
func Names(stages []Stage) []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.String()
	}
	return names
}

func kernelCols(k imaging.Kernel) int {
	if len(k) == 0 {
		return 0
	}
	return len(k[0])
}
