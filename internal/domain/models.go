package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// the storefront does arithmetic on prices, so they travel as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Category категория товара в каталоге
type Category string

const (
	CategorySaree   Category = "Saree"
	CategoryLehenga Category = "Lehenga"
)

// DefaultCategory подставляется, когда категория не указана
const DefaultCategory = CategorySaree

// Product представляет товар магазина (сари, лехенга)
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Fabric      string          `json:"fabric" validate:"required"`
	Color       string          `json:"color" validate:"required"`
	Occasion    string          `json:"occasion" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Images      []string        `json:"images" validate:"dive,required"`
	Video       string          `json:"video,omitempty"`
	Category    Category        `json:"category" validate:"oneof=Saree Lehenga"`
	Stock       int64           `json:"stock" validate:"gte=0"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PaymentMethodWhatsApp единственный способ оплаты: заказ подтверждается в мессенджере
const PaymentMethodWhatsApp = "WhatsApp"

// OrderItem снимок позиции корзины на момент заказа
type OrderItem struct {
	Product string          `json:"product" validate:"required"`
	Name    string          `json:"name" validate:"required"`
	Image   string          `json:"image"`
	Price   decimal.Decimal `json:"price"`
	Qty     int64           `json:"qty" validate:"gte=1"`
}

// ShippingAddress адрес доставки
type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// Order сущность заказа. После создания не меняется.
type Order struct {
	ID              string          `json:"_id"`
	OrderItems      []OrderItem     `json:"orderItems" validate:"min=1,dive"`
	User            *string         `json:"user"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice"`
	TaxPrice        decimal.Decimal `json:"taxPrice"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// User учётная запись. Пароль хранится как есть и никогда не отдаётся наружу.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required"`
	Password  string    `json:"-" validate:"required"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identity ответ на успешный вход
type Identity struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}
