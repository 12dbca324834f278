package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"shagun/internal/domain"
)

// WhatsAppNumber номер магазина для подтверждения заказов
const WhatsAppNumber = "919431612753"

var ErrEmptyCart = errors.New("cart is empty")

// BuildOrder turns the cart into an order payload. Tax and shipping are free.
func BuildOrder(lines []CartLine, addr domain.ShippingAddress) (domain.Order, error) {
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	o := domain.Order{
		OrderItems:      make([]domain.OrderItem, 0, len(lines)),
		ShippingAddress: addr,
		PaymentMethod:   domain.PaymentMethodWhatsApp,
		TaxPrice:        decimal.Zero,
		ShippingPrice:   decimal.Zero,
	}
	items := decimal.Zero
	for _, l := range lines {
		image := l.Image
		if image == "" {
			image = PlaceholderImage
		}
		o.OrderItems = append(o.OrderItems, domain.OrderItem{
			Product: l.ProductID,
			Name:    l.Name,
			Image:   image,
			Price:   l.Price,
			Qty:     l.Qty,
		})
		items = items.Add(l.Subtotal())
	}
	o.ItemsPrice = items
	o.TotalPrice = items.Add(o.TaxPrice).Add(o.ShippingPrice)
	return o, nil
}

// WhatsAppMessage is the order summary the customer sends to the shop.
func WhatsAppMessage(lines []CartLine, addr domain.ShippingAddress, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("*New Order Request* \n\n")
	fmt.Fprintf(&b, "*Name:* %s\n", addr.Name)
	fmt.Fprintf(&b, "*Phone:* %s\n", addr.Phone)
	fmt.Fprintf(&b, "*Address:* %s, %s, %s\n\n", addr.Address, addr.City, addr.PostalCode)
	b.WriteString("*Items:*\n")
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s (x%d) - ₹%s", i+1, l.Name, l.Qty, l.Subtotal().String())
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "*Total Amount:* ₹%s\n\n", total.String())
	b.WriteString("Please confirm my order.")
	return b.String()
}

// WhatsAppLink builds the wa.me deep link carrying msg.
func WhatsAppLink(phone, msg string) string {
	return "https://wa.me/" + phone + "?text=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}

// Checkout оформляет заказ из корзины
type Checkout struct {
	client *Client
	cart   *Cart
	phone  string
}

func NewCheckout(client *Client, cart *Cart) *Checkout {
	return &Checkout{client: client, cart: cart, phone: WhatsAppNumber}
}

// PlaceOrder records the order, then empties the cart and returns the WhatsApp link.
// The cart is kept when the API rejects the order.
func (c *Checkout) PlaceOrder(ctx context.Context, addr domain.ShippingAddress) (*domain.Order, string, error) {
	lines := c.cart.Lines()
	o, err := BuildOrder(lines, addr)
	if err != nil {
		return nil, "", err
	}
	placed, err := c.client.PlaceOrder(ctx, o)
	if err != nil {
		return nil, "", fmt.Errorf("place order: %w", err)
	}
	link := WhatsAppLink(c.phone, WhatsAppMessage(lines, addr, o.TotalPrice))
	c.cart.Clear()
	return placed, link, nil
}
