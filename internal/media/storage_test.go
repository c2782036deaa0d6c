package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
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

func TestNewStorage(t *testing.T) {
	_, err := NewStorage("", "/media/")
	assert.Error(t, err)

	root := t.TempDir()
	s, err := NewStorage(root, "media")
	require.NoError(t, err)
	assert.Equal(t, root, s.Root())
	assert.DirExists(t, filepath.Join(root, "uploads", "recipe"))
}

func TestStorage_Save(t *testing.T) {
	s, err := NewStorage(t.TempDir(), "/media/")
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("valid png keeps extension", func(t *testing.T) {
		data := encodePNG(t, 10, 10)

		img, err := s.Save(ctx, 1, data, "photo.PNG")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(img.Path, "uploads/recipe/"))
		assert.True(t, strings.HasSuffix(img.Path, ".png"))
		assert.NotEmpty(t, img.BlurHash)
		assert.FileExists(t, s.Path(img.Path))

		stored, err := os.ReadFile(s.Path(img.Path))
		require.NoError(t, err)
		assert.Equal(t, data, stored)
	})

	t.Run("unknown extension falls back to format", func(t *testing.T) {
		img, err := s.Save(ctx, 1, encodePNG(t, 200, 100), "upload.bin")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(img.Path, ".png"))
	})

	t.Run("each upload gets a fresh name", func(t *testing.T) {
		data := encodePNG(t, 4, 4)
		a, err := s.Save(ctx, 2, data, "a.png")
		require.NoError(t, err)
		b, err := s.Save(ctx, 2, data, "a.png")
		require.NoError(t, err)
		assert.NotEqual(t, a.Path, b.Path)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := s.Save(ctx, 1, nil, "a.png")
		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := s.Save(ctx, 1, []byte("notimage"), "a.png")
		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("truncated png is rejected and not stored", func(t *testing.T) {
		dir := filepath.Join(s.Root(), "uploads", "recipe")
		before, err := os.ReadDir(dir)
		require.NoError(t, err)

		_, err = s.Save(ctx, 4, encodePNG(t, 32, 32)[:40], "cut.png")
		assert.ErrorIs(t, err, ErrInvalidImage)

		after, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})
}

func TestStorage_DeleteAndURL(t *testing.T) {
	s, err := NewStorage(t.TempDir(), "/media/")
	require.NoError(t, err)

	img, err := s.Save(context.Background(), 3, encodePNG(t, 2, 2), "x.png")
	require.NoError(t, err)

	assert.Equal(t, "/media/"+img.Path, s.URL(img.Path))

	require.NoError(t, s.Delete(img.Path))
	assert.NoFileExists(t, s.Path(img.Path))

	// Deleting again or deleting nothing is fine.
	assert.NoError(t, s.Delete(img.Path))
	assert.NoError(t, s.Delete(""))
}

func TestStorage_PathStaysUnderRoot(t *testing.T) {
	root := t.TempDir()
	s, err := NewStorage(root, "/media/")
	require.NoError(t, err)

	p := s.Path("../../etc/passwd")
	assert.True(t, strings.HasPrefix(p, root))
}

func TestComputeBlurHash(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(encodePNG(t, 300, 120)))
	require.NoError(t, err)

	hash, err := ComputeBlurHash(img)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	small, err := ComputeBlurHash(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	require.NoError(t, err)
	assert.NotEmpty(t, small)
}
