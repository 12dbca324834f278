package storefront

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"shagun/internal/domain"
)

// FormState состояние формы добавления товара
type FormState int

const (
	FormIdle FormState = iota
	FormUploading
	FormReady
	FormSubmitting
)

func (s FormState) String() string {
	switch s {
	case FormIdle:
		return "idle"
	case FormUploading:
		return "uploading"
	case FormReady:
		return "ready"
	case FormSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("FormState(%d)", int(s))
	}
}

var (
	ErrFormNotReady = errors.New("product form is not ready to submit")
	ErrUploadBusy   = errors.New("upload already in progress")
)

// ProductDraft поля формы до отправки
type ProductDraft struct {
	Name        string
	Price       decimal.Decimal
	Fabric      string
	Color       string
	Occasion    string
	Description string
	Image       string
	Video       string
	Category    domain.Category
	Stock       int64
}

func NewProductDraft() ProductDraft {
	return ProductDraft{Category: domain.CategorySaree, Stock: 10}
}

func (d ProductDraft) product() domain.Product {
	return domain.Product{
		Name:        d.Name,
		Price:       d.Price,
		Fabric:      d.Fabric,
		Color:       d.Color,
		Occasion:    d.Occasion,
		Description: d.Description,
		Images:      []string{d.Image},
		Video:       d.Video,
		Category:    d.Category,
		Stock:       d.Stock,
	}
}

// ProductForm форма товара в админке. Изображение и видео грузятся
// независимо; отправка возможна после загрузки изображения, пока ничего не грузится.
type ProductForm struct {
	client *Client

	mu         sync.Mutex
	draft      ProductDraft
	imageBusy  bool
	videoBusy  bool
	submitting bool
	lastErr    error
}

func NewProductForm(client *Client) *ProductForm {
	return &ProductForm{client: client, draft: NewProductDraft()}
}

func (f *ProductForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *ProductForm) stateLocked() FormState {
	switch {
	case f.submitting:
		return FormSubmitting
	case f.imageBusy || f.videoBusy:
		return FormUploading
	case f.draft.Image != "":
		return FormReady
	default:
		return FormIdle
	}
}

func (f *ProductForm) Draft() ProductDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Edit changes the text fields of the draft.
func (f *ProductForm) Edit(fn func(d *ProductDraft)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.draft)
}

// Err is the last upload or submit failure.
func (f *ProductForm) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *ProductForm) UploadImage(ctx context.Context, filename string, r io.Reader) error {
	return f.upload(ctx, filename, r, &f.imageBusy, func(d *ProductDraft, p string) { d.Image = p })
}

func (f *ProductForm) UploadVideo(ctx context.Context, filename string, r io.Reader) error {
	return f.upload(ctx, filename, r, &f.videoBusy, func(d *ProductDraft, p string) { d.Video = p })
}

func (f *ProductForm) upload(ctx context.Context, filename string, r io.Reader, busy *bool, apply func(*ProductDraft, string)) error {
	f.mu.Lock()
	if *busy || f.submitting {
		f.mu.Unlock()
		return ErrUploadBusy
	}
	*busy = true
	f.mu.Unlock()

	path, err := f.client.Upload(ctx, filename, r)

	f.mu.Lock()
	defer f.mu.Unlock()
	*busy = false
	if err != nil {
		f.lastErr = err
		return err
	}
	apply(&f.draft, normalizeMediaPath(path))
	f.lastErr = nil
	return nil
}

// Submit creates the product. On success the form resets to a fresh draft;
// on failure the draft is kept and the error is surfaced through Err.
func (f *ProductForm) Submit(ctx context.Context) (*domain.Product, error) {
	f.mu.Lock()
	if f.stateLocked() != FormReady {
		f.mu.Unlock()
		return nil, ErrFormNotReady
	}
	f.submitting = true
	draft := f.draft
	f.mu.Unlock()

	p, err := f.client.CreateProduct(ctx, draft.product())

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.lastErr = err
		return nil, err
	}
	f.draft = NewProductDraft()
	f.lastErr = nil
	return p, nil
}

// normalizeMediaPath keeps absolute URLs and makes local paths root-relative.
func normalizeMediaPath(p string) string {
	if strings.HasPrefix(p, "http") {
		return p
	}
	p = strings.ReplaceAll(p, `\`, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
