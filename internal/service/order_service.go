package service

import (
	"context"
	"errors"

	"shagun/internal/domain"
	"shagun/internal/repository"
)

// ErrNoOrderItems заказ без позиций
var ErrNoOrderItems = errors.New("no order items")

// OrderService записывает намерение покупателя. Оплата и подтверждение
// происходят вне системы, поэтому склад и суммы не трогаются.
type OrderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// CreateOrder сохраняет заказ как есть; owner nil означает гостевой заказ
func (s *OrderService) CreateOrder(ctx context.Context, owner *string, o domain.Order) (*domain.Order, error) {
	if len(o.OrderItems) == 0 {
		return nil, ErrNoOrderItems
	}
	cp := o
	cp.ID = ""
	cp.User = owner
	if err := s.orders.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}
