package storefront

import (
	"sync"

	"github.com/shopspring/decimal"

	"shagun/internal/domain"
)

// PlaceholderImage подставляется, когда у товара нет изображений
const PlaceholderImage = "https://via.placeholder.com/150"

// CartLine позиция корзины
type CartLine struct {
	ProductID string          `json:"_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Fabric    string          `json:"fabric"`
	Color     string          `json:"color"`
	Price     decimal.Decimal `json:"price"`
	Qty       int64           `json:"qty"`
}

// Subtotal is price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Qty))
}

// Cart корзина: позиции по id товара в порядке добавления
type Cart struct {
	mu    sync.Mutex
	lines []CartLine
}

func NewCart() *Cart { return &Cart{} }

// Add adds qty of p. An existing line changes by qty but never drops below 1;
// a new line starts at no less than 1.
func (c *Cart) Add(p domain.Product, qty int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID != p.ID {
			continue
		}
		if next := c.lines[i].Qty + qty; next >= 1 {
			c.lines[i].Qty = next
		}
		return
	}
	if qty < 1 {
		qty = 1
	}
	image := PlaceholderImage
	if len(p.Images) > 0 && p.Images[0] != "" {
		image = p.Images[0]
	}
	c.lines = append(c.lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     image,
		Fabric:    p.Fabric,
		Color:     p.Color,
		Price:     p.Price,
		Qty:       qty,
	})
}

func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartLine(nil), c.lines...)
}

// Count is the total quantity, shown on the header badge.
func (c *Cart) Count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, l := range c.lines {
		n += l.Qty
	}
	return n
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}
