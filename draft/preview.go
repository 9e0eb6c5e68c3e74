// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draft

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// PreviewWidth is the maximum width of a generated preview
const PreviewWidth = 600

// MaxPreviewPixels bounds the decoded size of an image we build a preview
// for. A few hundred KB of compressed PNG can declare a bitmap of many GB.
const MaxPreviewPixels = 40_000_000

var ErrImageTooLarge = errors.New("image dimensions too large for preview")

// MakePreview decodes an image (jpeg, png, gif, bmp, tiff, webp) and returns
// a JPEG no wider than PreviewWidth. Images over MaxPreviewPixels are
// refused before their pixels are decoded.
func MakePreview(data []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPreviewPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if src.Bounds().Dx() > PreviewWidth {
		src = imaging.Resize(src, PreviewWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, src, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
