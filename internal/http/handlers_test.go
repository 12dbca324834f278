package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shagun/internal/media"
	"shagun/internal/repository"
	"shagun/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupServer(t *testing.T, uploads media.Store) *Server {
	t.Helper()
	stores := repository.NewMemoryStores()
	productsSvc := service.NewProductService(stores.Products, nil)
	ordersSvc := service.NewOrderService(stores.Orders)
	usersSvc := service.NewUserService(stores.Users)
	return NewServer(productsSvc, ordersSvc, usersSvc, uploads)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func sareeBody(name string) map[string]any {
	return map[string]any{
		"name": name, "price": 2500, "fabric": "Silk", "color": "Red",
		"occasion": "Wedding", "description": "Handwoven", "images": []string{"/uploads/a.jpg"},
		"stock": 4,
	}
}

func TestRoot(t *testing.T) {
	s := setupServer(t, nil)
	w := doJSON(t, s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API is running...", w.Body.String())
}

func TestProductFlow(t *testing.T) {
	s := setupServer(t, nil)
	// create
	w := doJSON(t, s, http.MethodPost, "/api/products", sareeBody("Banarasi"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id, _ := created["_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Saree", created["category"])
	assert.EqualValues(t, 2500, created["price"])

	// get
	w = doJSON(t, s, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Banarasi", decode(t, w)["name"])

	// update
	upd := sareeBody("Banarasi Gold")
	upd["category"] = "Lehenga"
	w = doJSON(t, s, http.MethodPut, "/api/products/"+id, upd)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode(t, w)
	assert.Equal(t, "Banarasi Gold", got["name"])
	assert.Equal(t, "Lehenga", got["category"])

	// update without price is rejected as invalid data, not as a missing product
	bad := sareeBody("Banarasi Gold")
	delete(bad, "price")
	w = doJSON(t, s, http.MethodPut, "/api/products/"+id, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Invalid product data", resp["message"])
	assert.Contains(t, resp["error"], "price")

	// list
	w = doJSON(t, s, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// delete
	w = doJSON(t, s, http.MethodDelete, "/api/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product removed", decode(t, w)["message"])

	w = doJSON(t, s, http.MethodGet, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decode(t, w)["message"])
}

func TestProduct_CreateWithoutPrice(t *testing.T) {
	s := setupServer(t, nil)
	body := sareeBody("No price")
	delete(body, "price")
	w := doJSON(t, s, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Invalid product data", resp["message"])
	assert.Contains(t, resp["error"], "price")

	w = doJSON(t, s, http.MethodGet, "/api/products", nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestProduct_ThreeCreatedOneDeleted(t *testing.T) {
	s := setupServer(t, nil)
	var ids []string
	for _, name := range []string{"Kanjivaram", "Chanderi", "Paithani"} {
		w := doJSON(t, s, http.MethodPost, "/api/products", sareeBody(name))
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, decode(t, w)["_id"].(string))
	}
	w := doJSON(t, s, http.MethodDelete, "/api/products/"+ids[1], nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/products", nil)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	for _, p := range list {
		assert.NotEqual(t, ids[1], p["_id"])
	}
}

func TestHTTP_NotFound(t *testing.T) {
	s := setupServer(t, nil)
	w := doJSON(t, s, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, s, http.MethodPut, "/api/products/999", sareeBody("X"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderFlow(t *testing.T) {
	s := setupServer(t, nil)

	w := doJSON(t, s, http.MethodPost, "/api/orders", map[string]any{"orderItems": []any{}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No order items", decode(t, w)["message"])

	w = doJSON(t, s, http.MethodPost, "/api/orders", map[string]any{
		"orderItems": []map[string]any{
			{"product": "p1", "name": "Banarasi", "image": "/uploads/a.jpg", "price": 2500, "qty": 2},
		},
		"shippingAddress": map[string]any{"name": "Asha", "address": "MG Road", "city": "Patna", "postalCode": "800001", "country": "India", "phone": "9999999999"},
		"itemsPrice":      5000,
		"taxPrice":        0,
		"shippingPrice":   0,
		"totalPrice":      5000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	o := decode(t, w)
	assert.NotEmpty(t, o["_id"])
	assert.Nil(t, o["user"])
	assert.Equal(t, "WhatsApp", o["paymentMethod"])
	assert.EqualValues(t, 5000, o["totalPrice"])

	w = doJSON(t, s, http.MethodPost, "/api/orders", map[string]any{
		"orderItems": []map[string]any{{"product": "p1", "name": "A", "qty": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid order data", decode(t, w)["message"])
}

func TestLogin(t *testing.T) {
	s := setupServer(t, nil)
	w := doJSON(t, s, http.MethodPost, "/api/users/login", map[string]any{
		"email": service.FallbackAdminEmail, "password": service.FallbackAdminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)
	id := decode(t, w)
	assert.Equal(t, "admin_id", id["_id"])
	assert.Equal(t, true, id["isAdmin"])
	assert.Equal(t, service.PlaceholderToken, id["token"])

	w = doJSON(t, s, http.MethodPost, "/api/users/login", map[string]any{"email": "a@b.c", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode(t, w)["message"])
}

func TestLogin_UnreadableBody(t *testing.T) {
	s := setupServer(t, nil)
	for name, body := range map[string]string{"empty": "", "not json": "email=a@b.c"} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			s.Engine().ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Invalid email or password", decode(t, w)["message"])
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	s := setupServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartUpload(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload_Local(t *testing.T) {
	dir := t.TempDir()
	store, err := media.NewLocal(dir, 1600)
	require.NoError(t, err)
	s := setupServer(t, store)

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, multipartUpload(t, "image", "saree.png", "image/png", pngBytes(t, 8, 8)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	path, _ := decode(t, w)["path"].(string)
	require.True(t, strings.HasPrefix(path, "/uploads/image-"), path)
	assert.True(t, strings.HasSuffix(path, ".png"))

	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(path, "/uploads/")))
	require.NoError(t, err)

	// served back as a static file
	w = httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpload_Rejects(t *testing.T) {
	store, err := media.NewLocal(t.TempDir(), 0)
	require.NoError(t, err)
	s := setupServer(t, store)

	// no file
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, multipartUpload(t, "other", "x.png", "image/png", pngBytes(t, 2, 2)))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded. Please select an image.", decode(t, w)["message"])

	// wrong type
	w = httptest.NewRecorder()
	s.Engine().ServeHTTP(w, multipartUpload(t, "image", "notes.txt", "text/plain", []byte("hello")))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Images only!", decode(t, w)["message"])
}

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", repository.ErrNotFound), http.StatusNotFound},
		{&repository.ValidationError{Entity: "Product", Problems: []string{"name: is required"}}, http.StatusBadRequest},
		{service.ErrNoOrderItems, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrServer, http.StatusInternalServerError},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, mapErrorToStatus(tc.err), tc.err.Error())
	}
}
