package snapshot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnailScalesDown(t *testing.T) {
	img, err := Thumbnail(encode(t, 1600, 1000), Options{})
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	img, err := Thumbnail(encode(t, 300, 200), Options{MaxWidth: 400})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 300, 200), img.Bounds())
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	_, err := Thumbnail([]byte("not an image"), Options{})
	assert.Error(t, err)
}

func TestWriteThumbnail(t *testing.T) {
	out := filepath.Join(t.TempDir(), "page.png")

	size, err := WriteThumbnail(encode(t, 1000, 100), out, Options{MaxWidth: 500})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(raw)), size)

	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestWritePNGRemovesPartialFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.png")

	_, err := writePNG(out, image.NewRGBA(image.Rect(0, 0, 0, 0)))
	require.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestWriteThumbnailBadPath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "page.png")

	_, err := WriteThumbnail(encode(t, 10, 10), out, Options{})
	assert.Error(t, err)
	assert.NoFileExists(t, out)
}
