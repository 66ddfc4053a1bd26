// Package pipeline chains imaging stages into named, reusable variants.
//
// A Stage is a tagged value: its Kind selects one of grayscale reduction,
// kernel convolution, or edge detection, and the matching payload field
// (Policy, Kernel, or Edge) carries its parameters. A Runner applies a list of
// stages in order to a private copy of a source image, so one decoded source
// can feed any number of variants.
//
// # Default Variants
//
// DefaultVariants returns the four standard renderings:
//
//   - gray_naive: average grayscale
//   - gray_luminance: luminance grayscale
//   - blurred: 5x5 box blur
//   - edge_detection: luminance grayscale, 3x3 box blur, edge detection
//
// Variants can also be described declaratively with VariantConfig (for
// example from a config file) and turned into stages with Build.
package pipeline
