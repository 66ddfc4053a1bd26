package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// JPEGQuality is the quality used when a result is saved as JPEG.
const JPEGQuality = 95

// RasterResult contains a processed image encoded as base64 PNG.
type RasterResult struct {
	// Width of the output image in pixels.
	Width int `json:"width"`

	// Height of the output image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`

	// Stages lists the stages applied to produce the image, in order.
	Stages []string `json:"stages,omitempty"`

	// Samples holds the output pixels requested by the caller, if any.
	Samples []PixelSample `json:"samples,omitempty"`
}

// EncodeResult encodes img as a base64 PNG RasterResult.
func EncodeResult(img image.Image, stages []string) (*RasterResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &RasterResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Stages:      stages,
	}, nil
}

// EncoderFor returns the encoder matching the extension of path.
//
// Supported extensions are ".png", ".jpg", ".jpeg" and ".bmp". PNG is
// preferred for intermediate and binary outputs since it is lossless.
func EncoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(JPEGQuality), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}

// SaveImage encodes img to path, choosing the format from the extension.
//
// Missing parent directories are created.
//
// # Errors
//
//   - Returns error if the extension is not one EncoderFor supports; nothing
//     is written in that case
//   - Returns error if the directory or file cannot be created
func SaveImage(path string, img image.Image) error {
	enc, err := EncoderFor(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
