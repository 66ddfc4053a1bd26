package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ironsheep/raster-kernels/internal/imaging"
)

// ErrInvalidOutput is returned for variant output names that are empty,
// absolute or resolve outside the output directory.
var ErrInvalidOutput = errors.New("invalid variant output")

// Variant is a named stage list and the file name its result is saved as.
type Variant struct {
	Name   string
	Output string
	Stages []Stage
}

// DefaultVariants returns the four standard renderings of a source image.
func DefaultVariants() []Variant {
	return []Variant{
		{
			Name:   "gray_naive",
			Output: "gray_naive.png",
			Stages: []Stage{GrayscaleStage(imaging.GrayAverage)},
		},
		{
			Name:   "gray_luminance",
			Output: "gray_luminance.png",
			Stages: []Stage{GrayscaleStage(imaging.GrayLuminance)},
		},
		{
			Name:   "blurred",
			Output: "blurred.png",
			Stages: []Stage{mustBoxBlur(1, 5)},
		},
		{
			Name:   "edge_detection",
			Output: "edge_detection.png",
			Stages: []Stage{
				GrayscaleStage(imaging.GrayLuminance),
				mustBoxBlur(1, 3),
				EdgeStage(imaging.DefaultEdgeParams()),
			},
		},
	}
}

// mustBoxBlur is for sizes known to be valid at compile time.
func mustBoxBlur(content float64, size int) Stage {
	s, err := BoxBlurStage(content, size)
	if err != nil {
		panic(fmt.Sprintf("pipeline: box blur %d: %v", size, err))
	}
	return s
}

// CleanOutput normalizes a variant output name with filepath.Clean and checks
// that it names a file inside the output directory.
//
// Parameters:
//   - name: The output name as written in a config file or tool argument.
//     Subdirectories such as "edges/out.png" are allowed.
//
// Returns:
//   - string: The cleaned name, e.g. "a.png" for "./a.png".
//   - error: ErrInvalidOutput if name is empty, absolute, or climbs out of the
//     output directory with "..".
func CleanOutput(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidOutput)
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %s is absolute", ErrInvalidOutput, name)
	}
	clean := filepath.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s leaves the output directory", ErrInvalidOutput, name)
	}
	return clean, nil
}
