// Package snapshot writes reduced PNG thumbnails of rendered pages.
package snapshot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/nfnt/resize"
)

const DefaultMaxWidth = 800

// Options configures thumbnail generation
type Options struct {
	MaxWidth uint
}

// Thumbnail decodes a screenshot and scales it down to at most MaxWidth,
// keeping the aspect ratio. Narrower images are returned unscaled.
func Thumbnail(data []byte, opts Options) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}

	maxWidth := opts.MaxWidth
	if maxWidth == 0 {
		maxWidth = DefaultMaxWidth
	}
	if uint(img.Bounds().Dx()) <= maxWidth {
		return img, nil
	}
	// height 0 preserves the aspect ratio
	return resize.Resize(maxWidth, 0, img, resize.Lanczos3), nil
}

// WriteThumbnail writes the thumbnail of data to outputPath as PNG and
// returns the file size.
func WriteThumbnail(data []byte, outputPath string, opts Options) (int64, error) {
	img, err := Thumbnail(data, opts)
	if err != nil {
		return 0, err
	}

	return writePNG(outputPath, img)
}

// writePNG encodes img to path. A failed encode or close removes the
// partial file so no truncated PNG is left behind.
func writePNG(path string, img image.Image) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return 0, fmt.Errorf("encode %s: %w", path, err)
	}

	info, err := f.Stat()
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return info.Size(), nil
}
