package imaging

import (
	"errors"
	"fmt"
)

// ErrInvalidKernelShape is returned for kernels that are empty, ragged,
// non-square, or have an even side length.
var ErrInvalidKernelShape = errors.New("invalid kernel shape")

// ErrKernelNotImplemented is returned by kernel generators that have no
// implementation yet.
var ErrKernelNotImplemented = errors.New("kernel generator not implemented")

// Kernel is a square matrix of weights applied over a pixel neighborhood.
//
// Rows are indexed by the vertical window offset and columns by the
// horizontal one, so k[ky][kx] weights the sample kx columns right and ky
// rows down from the window's top-left corner.
//
// A Kernel is interpreted by its consumer: Convolve divides the weighted sum
// by the element count, while the gradient masks used by DetectEdges are
// applied undivided.
type Kernel [][]float64

// Dimension describes the shape of a Kernel.
type Dimension struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Half returns the integer half-width of the window (side / 2).
func (d Dimension) Half() int {
	return d.Rows / 2
}

// Area returns the number of kernel elements.
func (d Dimension) Area() int {
	return d.Rows * d.Cols
}

// NewKernel validates rows and wraps them as a Kernel.
//
// Parameters:
//   - rows: Kernel weights, one slice per row. They must form a square with
//     an odd side length.
//
// Returns:
//   - Kernel: A copy of rows; later changes to the caller's slices do not
//     affect it.
//   - error: Non-nil if the shape is invalid (see Dimensions).
func NewKernel(rows [][]float64) (Kernel, error) {
	k := make(Kernel, len(rows))
	for i, row := range rows {
		k[i] = append([]float64(nil), row...)
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// Validate reports whether the kernel is square with a positive odd side.
func (k Kernel) Validate() error {
	_, err := k.Dimensions()
	return err
}

// Dimensions returns the kernel's row and column counts.
//
// # Errors
//
//   - Returns an error wrapping ErrInvalidKernelShape if the kernel is empty
//   - Returns an error wrapping ErrInvalidKernelShape if any row differs in
//     length from the first
//   - Returns an error wrapping ErrInvalidKernelShape if the kernel is not
//     square or its side length is even
func (k Kernel) Dimensions() (Dimension, error) {
	if len(k) == 0 || len(k[0]) == 0 {
		return Dimension{}, fmt.Errorf("%w: kernel is empty", ErrInvalidKernelShape)
	}

	dim := Dimension{Rows: len(k), Cols: len(k[0])}
	for i, row := range k {
		if len(row) != dim.Cols {
			return Dimension{}, fmt.Errorf("%w: row %d has %d weights, want %d",
				ErrInvalidKernelShape, i, len(row), dim.Cols)
		}
	}
	if dim.Rows != dim.Cols {
		return Dimension{}, fmt.Errorf("%w: %dx%d is not square", ErrInvalidKernelShape, dim.Rows, dim.Cols)
	}
	if dim.Rows%2 == 0 {
		return Dimension{}, fmt.Errorf("%w: side %d is even", ErrInvalidKernelShape, dim.Rows)
	}
	return dim, nil
}

// BoxKernel returns a size×size kernel with every cell set to content.
//
// Parameters:
//   - content: The value of every cell. With 1.0 Convolve produces the plain
//     mean of the window, since it divides by the element count.
//   - size: The side length. Must be positive and odd.
//
// Returns:
//   - Kernel: The box kernel.
//   - error: Non-nil, wrapping ErrInvalidKernelShape, for an invalid size.
func BoxKernel(content float64, size int) (Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("%w: box side must be positive and odd, got %d", ErrInvalidKernelShape, size)
	}

	k := make(Kernel, size)
	for y := range k {
		row := make([]float64, size)
		for x := range row {
			row[x] = content
		}
		k[y] = row
	}
	return k, nil
}

// GaussianKernel is reserved for a Gaussian-weighted kernel generator.
// It always returns ErrKernelNotImplemented.
func GaussianKernel(size int, sigma float64) (Kernel, error) {
	return nil, fmt.Errorf("%w: gaussian (size %d, sigma %g)", ErrKernelNotImplemented, size, sigma)
}
