// Package images prepares pictures for embedding into generated documents.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"regexp"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"ksefpdf/layout"
)

// LogoDPI is print resolution logos are prepared for.
const LogoDPI = 300

const mmPerInch = 25.4

var svgRe = regexp.MustCompile(`(?i)<svg[\s>]`)

// looksLikeSVG checks beginning of the data for svg element.
func looksLikeSVG(data []byte) bool {
	return svgRe.Match(data[:min(len(data), 4096)])
}

// PrepareLogo converts picture (PNG, JPEG, GIF, BMP, TIFF, WebP or SVG) to
// PNG sized for widthMM on the page. Pictures are scaled down, never up.
// Transparency is flattened on white and grayscale pictures are stored with
// single channel.
func PrepareLogo(data []byte, widthMM float64, log *zap.Logger) (layout.Bitmap, error) {
	if widthMM <= 0 {
		return layout.Bitmap{}, fmt.Errorf("bad logo width %.1f", widthMM)
	}
	target := int(math.Round(widthMM / mmPerInch * LogoDPI))

	img, kind, err := decodeLogo(data, target)
	if err != nil {
		return layout.Bitmap{}, err
	}
	log.Debug("Logo decoded", zap.String("format", kind), zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))

	if img.Bounds().Dx() > target {
		resized := imaging.Resize(img, target, 0, imaging.Lanczos)
		if resized == nil {
			return layout.Bitmap{}, errors.New("unable to resize logo")
		}
		img = resized
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		b := img.Bounds()
		img = imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Point{}, 1.0)
	}
	if IsGrayscale(img) {
		img = toGray(img)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return layout.Bitmap{}, fmt.Errorf("unable to encode logo: %w", err)
	}
	bm := layout.Bitmap{Data: buf.Bytes(), Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	log.Debug("Logo prepared", zap.Int("width", bm.Width), zap.Int("height", bm.Height), zap.Int("bytes", len(bm.Data)))
	return bm, nil
}

func decodeLogo(data []byte, target int) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", errors.New("empty logo")
	}
	img, derr := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if derr == nil {
		_, kind, _ := image.DecodeConfig(bytes.NewReader(data))
		return img, kind, nil
	}
	if !looksLikeSVG(data) {
		return nil, "", fmt.Errorf("unable to decode logo: %w", derr)
	}
	img, err := RasterizeSVG(data, target, 0)
	if err != nil {
		return nil, "", fmt.Errorf("unable to rasterize logo: %w", err)
	}
	return img, "svg", nil
}
