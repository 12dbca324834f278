package storefront

import (
	"bytes"
	"image"
	"image/png"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httpapi "shagun/internal/http"
	"shagun/internal/media"
	"shagun/internal/repository"
	"shagun/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newBackend starts the real API over in-memory stores and local uploads.
func newBackend(t *testing.T) *Client {
	t.Helper()
	stores := repository.NewMemoryStores()
	uploads, err := media.NewLocal(t.TempDir(), 800)
	require.NoError(t, err)
	srv := httpapi.NewServer(
		service.NewProductService(stores.Products, uploads),
		service.NewOrderService(stores.Orders),
		service.NewUserService(stores.Users),
		uploads,
	)
	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)
	return NewClient(ts.URL, ts.Client())
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}
