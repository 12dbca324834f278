// Package seed наполняет хранилище демонстрационными данными и очищает его.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"shagun/internal/domain"
	"shagun/internal/repository"
	"shagun/internal/service"
)

// Products образцы каталога для импорта
func Products() []domain.Product {
	return []domain.Product{
		{
			Name:        "Banarasi Silk Saree",
			Price:       decimal.NewFromInt(4500),
			Fabric:      "Silk",
			Color:       "Maroon",
			Occasion:    "Wedding",
			Description: "Handwoven Banarasi silk with zari border.",
			Images:      []string{"https://via.placeholder.com/600x800?text=Banarasi"},
			Category:    domain.CategorySaree,
			Stock:       10,
		},
		{
			Name:        "Chanderi Cotton Saree",
			Price:       decimal.NewFromInt(1800),
			Fabric:      "Cotton",
			Color:       "Mint Green",
			Occasion:    "Casual",
			Description: "Lightweight Chanderi cotton for daily wear.",
			Images:      []string{"https://via.placeholder.com/600x800?text=Chanderi"},
			Category:    domain.CategorySaree,
			Stock:       15,
		},
		{
			Name:        "Kanjivaram Silk Saree",
			Price:       decimal.NewFromInt(7200),
			Fabric:      "Silk",
			Color:       "Gold",
			Occasion:    "Festive",
			Description: "Temple border Kanjivaram in pure mulberry silk.",
			Images:      []string{"https://via.placeholder.com/600x800?text=Kanjivaram"},
			Category:    domain.CategorySaree,
			Stock:       5,
		},
		{
			Name:        "Georgette Party Saree",
			Price:       decimal.NewFromInt(2600),
			Fabric:      "Georgette",
			Color:       "Navy Blue",
			Occasion:    "Party",
			Description: "Sequinned georgette with a satin blouse piece.",
			Images:      []string{"https://via.placeholder.com/600x800?text=Georgette"},
			Category:    domain.CategorySaree,
			Stock:       8,
		},
		{
			Name:        "Bridal Velvet Lehenga",
			Price:       decimal.NewFromInt(15500),
			Fabric:      "Velvet",
			Color:       "Red",
			Occasion:    "Wedding",
			Description: "Embroidered velvet lehenga with dupatta.",
			Images:      []string{"https://via.placeholder.com/600x800?text=Lehenga"},
			Category:    domain.CategoryLehenga,
			Stock:       3,
		},
	}
}

// Destroy очищает заказы, товары и пользователей
func Destroy(ctx context.Context, s *repository.Stores) error {
	if err := s.Orders.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete orders: %w", err)
	}
	if err := s.Products.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	if err := s.Users.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}

// Import wipes the store, then creates the seed admin and the sample catalog.
// Returns the number of products inserted.
func Import(ctx context.Context, s *repository.Stores) (int, error) {
	if err := Destroy(ctx, s); err != nil {
		return 0, err
	}
	admin := service.SeedAdmin
	if err := s.Users.Create(ctx, &admin); err != nil {
		return 0, fmt.Errorf("create admin: %w", err)
	}
	n := 0
	for _, p := range Products() {
		if err := s.Products.Create(ctx, &p); err != nil {
			return n, fmt.Errorf("create product %q: %w", p.Name, err)
		}
		n++
	}
	return n, nil
}
