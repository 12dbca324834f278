package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// URLPrefix путь, под которым сервер раздаёт локальные загрузки
const URLPrefix = "/uploads/"

var localFormats = map[string]bool{".jpeg": true, ".jpg": true, ".png": true}

// Local хранит изображения на диске, когда внешний хостинг не настроен.
// Только jpeg и png; слишком широкие картинки уменьшаются.
type Local struct {
	dir      string
	maxWidth uint
}

func NewLocal(dir string, maxWidth uint) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Local{dir: dir, maxWidth: maxWidth}, nil
}

var _ Store = (*Local)(nil)

// Dir is the directory served under URLPrefix.
func (l *Local) Dir() string { return l.dir }

func (l *Local) Upload(ctx context.Context, f File) (string, error) {
	if f.Body == nil {
		return "", ErrNoFile
	}
	ext := strings.ToLower(filepath.Ext(f.Name))
	if !localFormats[ext] || !imageContentType(f.ContentType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, f.Name)
	}
	raw, err := io.ReadAll(f.Body)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(raw) == 0 {
		return "", ErrNoFile
	}
	data, err := l.fit(raw)
	if err != nil {
		return "", err
	}
	name := "image-" + uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(l.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return URLPrefix + name, nil
}

// fit downsizes images wider than maxWidth, keeping the source format.
func (l *Local) fit(raw []byte) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	if l.maxWidth == 0 || uint(cfg.Width) <= l.maxWidth {
		return raw, nil
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	resized := resize.Resize(l.maxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if format == "png" {
		err = png.Encode(&buf, resized)
	} else {
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}
	return buf.Bytes(), nil
}

func imageContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "jpeg") || strings.Contains(ct, "jpg") || strings.Contains(ct, "png")
}

// Key recognises "/uploads/<file>" URLs, with or without a host.
func (l *Local) Key(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	name, ok := strings.CutPrefix(u.Path, URLPrefix)
	if !ok || name == "" || strings.Contains(name, "/") || strings.HasPrefix(name, ".") {
		return "", false
	}
	return name, true
}

func (l *Local) Delete(ctx context.Context, key string, kind Kind) error {
	if err := os.Remove(filepath.Join(l.dir, filepath.Base(key))); err != nil {
		return fmt.Errorf("remove upload %s: %w", key, err)
	}
	return nil
}
