package imaging

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownPolicy is returned by ParseGrayPolicy for unrecognized names.
var ErrUnknownPolicy = errors.New("unknown grayscale policy")

// GrayPolicy selects how Grayscale reduces R, G and B to one value.
type GrayPolicy int

const (
	// GrayLuminance weights channels by ITU-R BT.601 luma:
	// 0.299*R + 0.587*G + 0.114*B.
	GrayLuminance GrayPolicy = iota

	// GrayAverage takes the unweighted mean (R+G+B)/3.
	GrayAverage

	// GrayLightness uses the CIE L* lightness of the color scaled to 0-255.
	GrayLightness
)

// String returns the policy name accepted by ParseGrayPolicy.
func (p GrayPolicy) String() string {
	switch p {
	case GrayAverage:
		return "average"
	case GrayLuminance:
		return "luminance"
	case GrayLightness:
		return "lightness"
	default:
		return fmt.Sprintf("GrayPolicy(%d)", int(p))
	}
}

// ParseGrayPolicy converts a policy name to a GrayPolicy. Names are case
// insensitive; "naive" is accepted as an alias for "average".
func ParseGrayPolicy(name string) (GrayPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "average", "naive":
		return GrayAverage, nil
	case "luminance", "":
		return GrayLuminance, nil
	case "lightness":
		return GrayLightness, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Grayscale reduces every pixel of src to a single gray level.
//
// Parameters:
//   - src: The grid to reduce. It is read only.
//   - policy: GrayAverage, GrayLuminance or GrayLightness.
//
// Returns:
//   - *image.NRGBA: A new grid with the bounds of src where R=G=B hold the
//     gray level and alpha is forced to 255.
//
// Values are computed in floating point and truncated, not rounded, so a pure
// red pixel (255,0,0) yields 85 under GrayAverage and 76 under GrayLuminance.
// Unknown policies are treated as GrayLuminance.
func Grayscale(src *image.NRGBA, policy GrayPolicy) *image.NRGBA {
	reduce := luminanceGray
	switch policy {
	case GrayAverage:
		reduce = averageGray
	case GrayLightness:
		reduce = lightnessGray
	}

	bounds := src.Bounds()
	dst := newGridLike(src)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := src.PixOffset(x, y)
			v := reduce(src.Pix[i], src.Pix[i+1], src.Pix[i+2])

			o := dst.PixOffset(x, y)
			setGray(dst.Pix[o:], v)
			dst.Pix[o+3] = 255
		}
	}

	return dst
}

func averageGray(r, g, b uint8) uint8 {
	return uint8((float32(r) + float32(g) + float32(b)) / 3)
}

func luminanceGray(r, g, b uint8) uint8 {
	return uint8(float32(r)*0.299 + float32(g)*0.587 + float32(b)*0.114)
}

func lightnessGray(r, g, b uint8) uint8 {
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	l, _, _ := c.Lab()
	return truncateChannel(l*255, 255)
}
