package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    `json:"x"`               // X coordinate (0-based)
	Y     int    `json:"y"`               // Y coordinate (0-based)
	Label string `json:"label,omitempty"` // Optional label echoed in the sample
}

// PixelSample is the non-premultiplied value of one pixel of a result grid.
type PixelSample struct {
	Label string    `json:"label,omitempty"`
	X     int       `json:"x"`
	Y     int       `json:"y"`
	Hex   string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGBA  RGBAColor `json:"rgba"`
}

// SamplePixels reads the pixels at points, in input order.
//
// Parameters:
//   - img: The image to read, typically a stage's output grid.
//   - points: Coordinates relative to the image origin, with optional labels.
//
// Returns:
//   - []PixelSample: One sample per point.
//   - error: Non-nil if any point lies outside img.
//
// Values are read as non-premultiplied 8-bit channels, so a grid produced by
// a stage reports exactly the bytes the stage wrote. On any out-of-bounds
// point no partial results are returned.
func SamplePixels(img image.Image, points []LabeledPoint) ([]PixelSample, error) {
	bounds := img.Bounds()
	samples := make([]PixelSample, 0, len(points))

	for _, p := range points {
		x, y := bounds.Min.X+p.X, bounds.Min.Y+p.Y
		if p.X < 0 || p.Y < 0 || x >= bounds.Max.X || y >= bounds.Max.Y {
			return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", p.X, p.Y)
		}

		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		samples = append(samples, PixelSample{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Hex:   fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
			RGBA:  RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		})
	}

	return samples, nil
}
