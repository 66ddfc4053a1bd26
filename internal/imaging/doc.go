// Package imaging provides the raster transforms used by the pipeline:
// grayscale reduction, kernel convolution, and gradient edge detection.
//
// All transforms operate on *image.NRGBA grids (8-bit, non-premultiplied RGBA).
// Use Grid to obtain one from any decoded image.Image. Coordinates follow the
// standard image convention: (0,0) is the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Stages
//
//   - Grayscale: replaces R, G and B with one gray level (average, luminance,
//     or CIE lightness) and forces alpha to 255.
//   - Convolve: weighted neighborhood sum per channel, divided by the kernel's
//     element count and clamped to [0, 254].
//   - DetectEdges: Sobel gradient magnitude on the red channel, thresholded to
//     a binary image with a black border margin.
//
// Every stage reads from its input and writes a freshly allocated output of the
// same bounds. Inputs are never modified, so one grid may feed several stages.
//
// # Border Policies
//
// The two neighborhood stages treat the image border differently:
//
//   - Convolve skips window cells that fall outside the grid but still divides
//     by the full kernel area, so border pixels are darker than the interior.
//   - DetectEdges does not compute gradients near the border at all; pixels
//     within the margin (3 pixels by default) are black.
//
// # Kernels
//
// Kernels are square matrices with an odd side length. NewKernel and
// Kernel.Validate reject anything else with ErrInvalidKernelShape. BoxKernel
// builds uniform kernels; GaussianKernel is not implemented.
//
// # Inspection
//
// SamplePixels reads exact output values at chosen coordinates, and
// EncodeResult packs a grid as base64 PNG for tool responses.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Stage functions are stateless
// and can be called concurrently on different grids.
//
// # Error Handling
//
// Functions return errors for:
//   - Malformed kernels (ErrInvalidKernelShape)
//   - Unknown grayscale policy names (ErrUnknownPolicy)
//   - File I/O, decoding and encoding errors
package imaging
