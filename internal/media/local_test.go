package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 180, G: 20, B: 60, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLocal_UploadKeyDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	l, err := NewLocal(dir, 100)
	require.NoError(t, err)
	assert.Equal(t, dir, l.Dir())

	url, err := l.Upload(ctx, File{Name: "Saree.PNG", ContentType: "image/png", Body: bytes.NewReader(encodePNG(t, solid(10, 10)))})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, URLPrefix+"image-"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	key, ok := l.Key(url)
	require.True(t, ok)
	_, err = os.Stat(filepath.Join(dir, key))
	require.NoError(t, err)

	// absolute URLs pointing at the same path are recognised too
	abs, ok := l.Key("http://localhost:5000" + url)
	assert.True(t, ok)
	assert.Equal(t, key, abs)

	require.NoError(t, l.Delete(ctx, key, KindImage))
	_, err = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(err))
	assert.Error(t, l.Delete(ctx, key, KindImage))
}

func TestLocal_Downscale(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	l, err := NewLocal(dir, 40)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(200, 100), nil))
	url, err := l.Upload(ctx, File{Name: "wide.jpg", ContentType: "image/jpeg", Body: &buf})
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, strings.TrimPrefix(url, URLPrefix)))
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
}

func TestLocal_Rejects(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir(), 0)
	require.NoError(t, err)

	_, err = l.Upload(ctx, File{Name: "empty.png", ContentType: "image/png", Body: strings.NewReader("")})
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = l.Upload(ctx, File{Name: "clip.mp4", ContentType: "video/mp4", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = l.Upload(ctx, File{Name: "fake.png", ContentType: "image/png", Body: strings.NewReader("not an image")})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = l.Upload(ctx, File{Name: "a.png", ContentType: "text/plain", Body: bytes.NewReader(encodePNG(t, solid(2, 2)))})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLocal_Key(t *testing.T) {
	l := &Local{dir: t.TempDir()}
	for _, u := range []string{
		"https://res.cloudinary.com/demo/image/upload/v1/a.jpg",
		"/uploads/",
		"/uploads/nested/a.jpg",
		"/uploads/.hidden",
		"/static/a.jpg",
	} {
		_, ok := l.Key(u)
		assert.False(t, ok, u)
	}
}
