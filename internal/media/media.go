// Package media хранит загруженные изображения и видео товаров.
package media

import (
	"context"
	"errors"
	"io"
)

// Kind тип медиафайла, влияет на удаление во внешнем хранилище
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// File загружаемый файл
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Store хранилище медиа: загрузка, распознавание своих URL и удаление по ключу
type Store interface {
	Upload(ctx context.Context, f File) (string, error)
	// Key derives the storage key from a URL this store produced.
	Key(url string) (string, bool)
	Delete(ctx context.Context, key string, kind Kind) error
}
