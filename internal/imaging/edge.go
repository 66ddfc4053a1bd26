package imaging

import (
	"image"
	"math"
)

// Edge detection defaults.
const (
	// EdgeMargin is the width in pixels of the border forced to black.
	EdgeMargin = 3

	// EdgeThreshold is the gradient magnitude a pixel must exceed to be
	// marked as an edge.
	EdgeThreshold = 90.0

	// EdgeHighlight is the gray level written to edge pixels.
	EdgeHighlight uint8 = 234
)

// horizontalEdgeMask responds to intensity changes between rows.
var horizontalEdgeMask = Kernel{
	{1, 2, 1},
	{0, 0, 0},
	{-1, -2, -1},
}

// verticalEdgeMask responds to intensity changes between columns.
var verticalEdgeMask = Kernel{
	{1, 0, -1},
	{2, 0, -2},
	{1, 0, -1},
}

// EdgeParams controls DetectEdges.
type EdgeParams struct {
	// Margin is the border width forced to black regardless of gradient.
	Margin int `json:"margin"`

	// Threshold is the exclusive lower bound on gradient magnitude for an
	// edge pixel.
	Threshold float64 `json:"threshold"`

	// Highlight is the gray level of edge pixels.
	Highlight uint8 `json:"highlight"`
}

// DefaultEdgeParams returns EdgeMargin, EdgeThreshold and EdgeHighlight.
func DefaultEdgeParams() EdgeParams {
	return EdgeParams{
		Margin:    EdgeMargin,
		Threshold: EdgeThreshold,
		Highlight: EdgeHighlight,
	}
}

// DetectEdges produces a binary edge map of src using Sobel gradient masks.
//
// Parameters:
//   - src: A grayscale grid, usually blurred first. Only its red channel is
//     read.
//   - p: Border margin, magnitude threshold and highlight level. Use
//     DefaultEdgeParams for the standard 3 / 90 / 234.
//
// Returns:
//   - *image.NRGBA: A new grid with the bounds of src, alpha copied from src
//     and R=G=B set to either p.Highlight (edge) or 0.
//
// A grid no wider or taller than 2*p.Margin comes back entirely black.
//
// # Algorithm
//
//  1. Border: pixels within p.Margin of any edge are set to black.
//  2. Gradients: for every other pixel the two 3×3 masks are accumulated
//     over the red channel using the same window mapping as Convolve, but
//     the sums are not divided by the element count.
//  3. Magnitude: sqrt(gx² + gy²).
//  4. Threshold: magnitude > p.Threshold marks an edge.
//
// There is no non-maximum suppression and no hysteresis, so strong steps
// produce edges two pixels wide.
func DetectEdges(src *image.NRGBA, p EdgeParams) *image.NRGBA {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	half := len(horizontalEdgeMask) / 2

	dst := copyGrid(src)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			o := dst.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)

			if y < p.Margin || y >= height-p.Margin || x < p.Margin || x >= width-p.Margin {
				setGray(dst.Pix[o:], 0)
				continue
			}

			var gx, gy float64
			for ky := range horizontalEdgeMask {
				sy, ok := windowSample(y, ky, half, height)
				if !ok {
					continue
				}
				for kx := range horizontalEdgeMask[ky] {
					sx, ok := windowSample(x, kx, half, width)
					if !ok {
						continue
					}
					v := float64(src.Pix[src.PixOffset(bounds.Min.X+sx, bounds.Min.Y+sy)])
					gx += horizontalEdgeMask[ky][kx] * v
					gy += verticalEdgeMask[ky][kx] * v
				}
			}

			if math.Sqrt(gx*gx+gy*gy) > p.Threshold {
				setGray(dst.Pix[o:], p.Highlight)
			} else {
				setGray(dst.Pix[o:], 0)
			}
		}
	}

	return dst
}

// setGray writes v to the R, G and B bytes of the pixel starting at pix[0].
func setGray(pix []uint8, v uint8) {
	pix[0] = v
	pix[1] = v
	pix[2] = v
}
