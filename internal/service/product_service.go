package service

import (
	"context"
	"log/slog"

	"shagun/internal/domain"
	"shagun/internal/media"
	"shagun/internal/repository"
)

// MediaRemover умеет распознать свой URL и удалить файл по ключу
type MediaRemover interface {
	Key(url string) (string, bool)
	Delete(ctx context.Context, key string, kind media.Kind) error
}

// ProductService инкапсулирует бизнес-логику вокруг каталога.
// Ограничения схемы проверяет репозиторий.
type ProductService struct {
	repo  repository.ProductRepository
	media MediaRemover
}

// NewProductService: media may be nil, then deletes skip media cleanup.
func NewProductService(repo repository.ProductRepository, media MediaRemover) *ProductService {
	return &ProductService{repo: repo, media: media}
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	cp := p
	cp.ID = ""
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces the editable fields of an existing product; last writer wins.
func (s *ProductService) Update(ctx context.Context, id string, p domain.Product) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = p.Name
	existing.Price = p.Price
	existing.Fabric = p.Fabric
	existing.Color = p.Color
	existing.Occasion = p.Occasion
	existing.Description = p.Description
	existing.Images = p.Images
	existing.Video = p.Video
	existing.Category = p.Category
	existing.Stock = p.Stock
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes hosted media first, one call per asset, then the record.
// Media failures are logged and do not stop the delete.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s.media != nil {
		for _, u := range p.Images {
			s.removeAsset(ctx, u, media.KindImage)
		}
		if p.Video != "" {
			s.removeAsset(ctx, p.Video, media.KindVideo)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) removeAsset(ctx context.Context, url string, kind media.Kind) {
	key, ok := s.media.Key(url)
	if !ok {
		return
	}
	if err := s.media.Delete(ctx, key, kind); err != nil {
		slog.WarnContext(ctx, "media cleanup failed", "key", key, "kind", kind, "error", err)
	}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}
