package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"shagun/internal/domain"
	"shagun/internal/repository"
)

func setupOS(t *testing.T) (*OrderService, *repository.MemoryOrders) {
	t.Helper()
	store := repository.NewMemoryStore()
	orders := repository.NewMemoryOrders(store)
	return NewOrderService(orders), orders
}

func TestCreateOrder_Empty(t *testing.T) {
	os, _ := setupOS(t)
	_, err := os.CreateOrder(context.Background(), nil, domain.Order{})
	if !errors.Is(err, ErrNoOrderItems) {
		t.Fatalf("expected no order items, got %v", err)
	}
	_, err = os.CreateOrder(context.Background(), nil, domain.Order{OrderItems: []domain.OrderItem{}})
	if !errors.Is(err, ErrNoOrderItems) {
		t.Fatalf("expected no order items for empty list, got %v", err)
	}
}

func TestCreateOrder_StoresClientTotals(t *testing.T) {
	ctx := context.Background()
	os, repo := setupOS(t)
	in := domain.Order{
		OrderItems: []domain.OrderItem{
			{Product: "p1", Name: "Banarasi", Image: "/uploads/a.jpg", Price: decimal.NewFromInt(2500), Qty: 2},
		},
		ShippingAddress: domain.ShippingAddress{Name: "Asha", City: "Patna", Country: "India"},
		ItemsPrice:      decimal.NewFromInt(5000),
		// deliberately inconsistent: the server does not recompute
		TotalPrice: decimal.NewFromInt(1),
	}
	o, err := os.CreateOrder(ctx, nil, in)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if o.User != nil {
		t.Fatalf("expected guest order")
	}
	if o.PaymentMethod != domain.PaymentMethodWhatsApp {
		t.Fatalf("expected default payment method, got %q", o.PaymentMethod)
	}

	stored, err := repo.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("get stored: %v", err)
	}
	if !stored.TotalPrice.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("total changed: %v", stored.TotalPrice)
	}
	if stored.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp")
	}
}

func TestCreateOrder_Owner(t *testing.T) {
	os, _ := setupOS(t)
	owner := "u-1"
	o, err := os.CreateOrder(context.Background(), &owner, domain.Order{
		OrderItems: []domain.OrderItem{{Product: "p1", Name: "A", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.User == nil || *o.User != owner {
		t.Fatalf("owner not recorded")
	}
}

func TestCreateOrder_InvalidItem(t *testing.T) {
	os, _ := setupOS(t)
	_, err := os.CreateOrder(context.Background(), nil, domain.Order{
		OrderItems: []domain.OrderItem{{Product: "p1", Name: "A", Qty: 0}},
	})
	var verr *repository.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
