package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type closerFunc func(ctx context.Context) error

func (f closerFunc) Close(ctx context.Context) error { return f(ctx) }

func TestCloseStores_LogsError(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	closeStores(context.Background(), closerFunc(func(context.Context) error { return errors.New("disconnect timeout") }))
	assert.Contains(t, buf.String(), "database close error")
	assert.Contains(t, buf.String(), "disconnect timeout")

	buf.Reset()
	closeStores(context.Background(), closerFunc(func(context.Context) error { return nil }))
	assert.Empty(t, buf.String())
}
