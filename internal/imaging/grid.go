package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Grid returns an 8-bit non-premultiplied RGBA copy of img with its origin
// at (0,0).
//
// Every stage in this package consumes and produces *image.NRGBA grids. Grid
// always copies, so the result never aliases img even when img is already an
// *image.NRGBA.
func Grid(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// newGridLike allocates an empty grid with the same bounds as src.
func newGridLike(src *image.NRGBA) *image.NRGBA {
	return image.NewNRGBA(src.Bounds())
}

// copyGrid returns a deep copy of src with identical bounds.
func copyGrid(src *image.NRGBA) *image.NRGBA {
	dst := newGridLike(src)
	bounds := src.Bounds()
	rowLen := 4 * bounds.Dx()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		copy(dst.Pix[dst.PixOffset(bounds.Min.X, y):][:rowLen], src.Pix[src.PixOffset(bounds.Min.X, y):][:rowLen])
	}
	return dst
}

// windowSample maps a kernel cell onto the source axis.
//
// For the pixel at position p and the kernel cell at offset k, the cell is
// kept only when p+k lies in [half, size); the sampled source position is
// then p+k-half. Cells whose source falls before the grid are skipped, and
// so are cells whose source lies in the last half positions of the axis.
func windowSample(p, k, half, size int) (int, bool) {
	at := p + k
	if at < half || at >= size {
		return 0, false
	}
	return at - half, true
}

// truncateChannel truncates v toward zero and clamps it to [0, ceiling].
func truncateChannel(v float64, ceiling uint8) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= float64(ceiling) {
		return ceiling
	}
	return uint8(v)
}
