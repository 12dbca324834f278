package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shagun/internal/domain"
)

// PostgresStore реляционное хранилище на gorm. Списки хранятся в JSON-колонках.
type PostgresStore struct {
	db *gorm.DB
}

// ConnectPostgres открывает соединение, настраивает пул и мигрирует схему
func ConnectPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	gormConfig := &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.WithContext(ctx).AutoMigrate(&productRecord{}, &orderRecord{}, &userRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *PostgresStore) Products() *PostgresProducts { return &PostgresProducts{db: s.db} }
func (s *PostgresStore) Orders() *PostgresOrders     { return &PostgresOrders{db: s.db} }
func (s *PostgresStore) Users() *PostgresUsers       { return &PostgresUsers{db: s.db} }

var (
	_ ProductRepository = (*PostgresProducts)(nil)
	_ OrderRepository   = (*PostgresOrders)(nil)
	_ UserRepository    = (*PostgresUsers)(nil)
)

func recordErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type productRecord struct {
	ID          string          `gorm:"type:varchar(36);primaryKey"`
	Name        string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric;not null"`
	Fabric      string          `gorm:"not null"`
	Color       string          `gorm:"not null"`
	Occasion    string          `gorm:"not null"`
	Description string          `gorm:"not null"`
	Images      []string        `gorm:"serializer:json"`
	Video       string
	Category    string `gorm:"type:varchar(20);not null;default:Saree"`
	Stock       int64  `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productRecord) TableName() string { return "products" }

func toProductRecord(p *domain.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Fabric:      p.Fabric,
		Color:       p.Color,
		Occasion:    p.Occasion,
		Description: p.Description,
		Images:      p.Images,
		Video:       p.Video,
		Category:    string(p.Category),
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r productRecord) toDomain() domain.Product {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Fabric:      r.Fabric,
		Color:       r.Color,
		Occasion:    r.Occasion,
		Description: r.Description,
		Images:      images,
		Video:       r.Video,
		Category:    domain.Category(r.Category),
		Stock:       r.Stock,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// PostgresProducts таблица товаров
type PostgresProducts struct{ db *gorm.DB }

func (r *PostgresProducts) Create(ctx context.Context, p *domain.Product) error {
	if err := prepareProduct(p); err != nil {
		return err
	}
	p.ID = newID()
	rec := toProductRecord(p)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	p.CreatedAt, p.UpdatedAt = rec.CreatedAt, rec.UpdatedAt
	return nil
}

func (r *PostgresProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var rec productRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, recordErr(err)
	}
	p := rec.toDomain()
	return &p, nil
}

func (r *PostgresProducts) Update(ctx context.Context, p *domain.Product) error {
	if err := prepareProduct(p); err != nil {
		return err
	}
	p.UpdatedAt = now()
	rec := toProductRecord(p)
	res := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("id = ?", p.ID).
		Select("*").Omit("id", "created_at").
		Updates(&rec)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresProducts) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&productRecord{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresProducts) List(ctx context.Context) ([]domain.Product, error) {
	var recs []productRecord
	if err := r.db.WithContext(ctx).Order("created_at").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	out := make([]domain.Product, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *PostgresProducts) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&productRecord{}).Error
}

type orderRecord struct {
	ID              string             `gorm:"type:varchar(36);primaryKey"`
	OrderItems      []domain.OrderItem `gorm:"serializer:json;not null"`
	UserID          *string            `gorm:"type:varchar(36);index"`
	ShippingAddress shippingColumns    `gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string             `gorm:"not null"`
	ItemsPrice      decimal.Decimal    `gorm:"type:numeric"`
	TaxPrice        decimal.Decimal    `gorm:"type:numeric"`
	ShippingPrice   decimal.Decimal    `gorm:"type:numeric"`
	TotalPrice      decimal.Decimal    `gorm:"type:numeric"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type shippingColumns struct {
	Name       string
	Address    string
	City       string
	PostalCode string
	Country    string
	Phone      string
}

func (orderRecord) TableName() string { return "orders" }

func (r orderRecord) toDomain() domain.Order {
	return domain.Order{
		ID:              r.ID,
		OrderItems:      r.OrderItems,
		User:            r.UserID,
		ShippingAddress: domain.ShippingAddress(r.ShippingAddress),
		PaymentMethod:   r.PaymentMethod,
		ItemsPrice:      r.ItemsPrice,
		TaxPrice:        r.TaxPrice,
		ShippingPrice:   r.ShippingPrice,
		TotalPrice:      r.TotalPrice,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// PostgresOrders таблица заказов
type PostgresOrders struct{ db *gorm.DB }

func (r *PostgresOrders) Create(ctx context.Context, o *domain.Order) error {
	if err := prepareOrder(o); err != nil {
		return err
	}
	o.ID = newID()
	rec := orderRecord{
		ID:              o.ID,
		OrderItems:      o.OrderItems,
		UserID:          o.User,
		ShippingAddress: shippingColumns(o.ShippingAddress),
		PaymentMethod:   o.PaymentMethod,
		ItemsPrice:      o.ItemsPrice,
		TaxPrice:        o.TaxPrice,
		ShippingPrice:   o.ShippingPrice,
		TotalPrice:      o.TotalPrice,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	o.CreatedAt, o.UpdatedAt = rec.CreatedAt, rec.UpdatedAt
	return nil
}

func (r *PostgresOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var rec orderRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, recordErr(err)
	}
	o := rec.toDomain()
	return &o, nil
}

func (r *PostgresOrders) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&orderRecord{}).Error
}

type userRecord struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"type:varchar(255);index;not null"`
	Password  string `gorm:"not null"`
	IsAdmin   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRecord) TableName() string { return "users" }

// PostgresUsers таблица учётных записей
type PostgresUsers struct{ db *gorm.DB }

func (r *PostgresUsers) Create(ctx context.Context, u *domain.User) error {
	if err := prepareUser(u); err != nil {
		return err
	}
	u.ID = newID()
	rec := userRecord{ID: u.ID, Name: u.Name, Email: u.Email, Password: u.Password, IsAdmin: u.IsAdmin}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.CreatedAt, u.UpdatedAt = rec.CreatedAt, rec.UpdatedAt
	return nil
}

func (r *PostgresUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		return nil, recordErr(err)
	}
	return &domain.User{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		Password:  rec.Password,
		IsAdmin:   rec.IsAdmin,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func (r *PostgresUsers) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&userRecord{}).Error
}
