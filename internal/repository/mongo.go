package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shagun/internal/domain"
)

// Collection names follow the storefront's existing database.
const (
	productsCollection = "products"
	ordersCollection   = "orders"
	usersCollection    = "users"
)

// MongoStore документное хранилище на MongoDB
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo подключается к MongoDB и проверяет соединение
func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(database)}, nil
}

func (s *MongoStore) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

func (s *MongoStore) Products() *MongoProducts {
	return &MongoProducts{coll: s.db.Collection(productsCollection)}
}

func (s *MongoStore) Orders() *MongoOrders {
	return &MongoOrders{coll: s.db.Collection(ordersCollection)}
}

func (s *MongoStore) Users() *MongoUsers {
	return &MongoUsers{coll: s.db.Collection(usersCollection)}
}

var (
	_ ProductRepository = (*MongoProducts)(nil)
	_ OrderRepository   = (*MongoOrders)(nil)
	_ UserRepository    = (*MongoUsers)(nil)
)

// objectID treats malformed identifiers as missing documents.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func findErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// prices are stored as doubles to stay readable by existing documents
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       float64            `bson:"price"`
	Fabric      string             `bson:"fabric"`
	Color       string             `bson:"color"`
	Occasion    string             `bson:"occasion"`
	Description string             `bson:"description"`
	Images      []string           `bson:"images"`
	Video       string             `bson:"video,omitempty"`
	Category    string             `bson:"category"`
	Stock       int64              `bson:"stock"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func toProductDocument(p *domain.Product) productDocument {
	return productDocument{
		Name:        p.Name,
		Price:       p.Price.InexactFloat64(),
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

func (d productDocument) toDomain() domain.Product {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Price:       decimal.NewFromFloat(d.Price),
		Fabric:      d.Fabric,
		Color:       d.Color,
		Occasion:    d.Occasion,
		Description: d.Description,
		Images:      images,
		Video:       d.Video,
		Category:    domain.Category(d.Category),
		Stock:       d.Stock,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoProducts коллекция товаров
type MongoProducts struct{ coll *mongo.Collection }

func (r *MongoProducts) Create(ctx context.Context, p *domain.Product) error {
	if err := prepareProduct(p); err != nil {
		return err
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	doc := toProductDocument(p)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (r *MongoProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, findErr(err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *MongoProducts) Update(ctx context.Context, p *domain.Product) error {
	oid, err := objectID(p.ID)
	if err != nil {
		return err
	}
	if err := prepareProduct(p); err != nil {
		return err
	}
	p.UpdatedAt = now()
	doc := toProductDocument(p)
	doc.ID = oid
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("replace product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProducts) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProducts) List(ctx context.Context) ([]domain.Product, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	out := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *MongoProducts) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}

type orderItemDocument struct {
	Product primitive.ObjectID `bson:"product"`
	Name    string             `bson:"name"`
	Image   string             `bson:"image"`
	Price   float64            `bson:"price"`
	Qty     int64              `bson:"qty"`
}

type shippingDocument struct {
	Name       string `bson:"name"`
	Address    string `bson:"address"`
	City       string `bson:"city"`
	PostalCode string `bson:"postalCode"`
	Country    string `bson:"country"`
	Phone      string `bson:"phone"`
}

type orderDocument struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty"`
	OrderItems      []orderItemDocument `bson:"orderItems"`
	User            *primitive.ObjectID `bson:"user"`
	ShippingAddress shippingDocument    `bson:"shippingAddress"`
	PaymentMethod   string              `bson:"paymentMethod"`
	ItemsPrice      float64             `bson:"itemsPrice"`
	TaxPrice        float64             `bson:"taxPrice"`
	ShippingPrice   float64             `bson:"shippingPrice"`
	TotalPrice      float64             `bson:"totalPrice"`
	CreatedAt       time.Time           `bson:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt"`
}

func toOrderDocument(o *domain.Order) (orderDocument, error) {
	doc := orderDocument{
		OrderItems:      make([]orderItemDocument, 0, len(o.OrderItems)),
		ShippingAddress: shippingDocument(o.ShippingAddress),
		PaymentMethod:   o.PaymentMethod,
		ItemsPrice:      o.ItemsPrice.InexactFloat64(),
		TaxPrice:        o.TaxPrice.InexactFloat64(),
		ShippingPrice:   o.ShippingPrice.InexactFloat64(),
		TotalPrice:      o.TotalPrice.InexactFloat64(),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for i, it := range o.OrderItems {
		pid, err := primitive.ObjectIDFromHex(it.Product)
		if err != nil {
			return doc, &ValidationError{Entity: "order", Problems: []string{fmt.Sprintf("orderItems[%d].product: invalid id", i)}}
		}
		doc.OrderItems = append(doc.OrderItems, orderItemDocument{
			Product: pid,
			Name:    it.Name,
			Image:   it.Image,
			Price:   it.Price.InexactFloat64(),
			Qty:     it.Qty,
		})
	}
	if o.User != nil {
		uid, err := primitive.ObjectIDFromHex(*o.User)
		if err != nil {
			return doc, &ValidationError{Entity: "order", Problems: []string{"user: invalid id"}}
		}
		doc.User = &uid
	}
	return doc, nil
}

func (d orderDocument) toDomain() domain.Order {
	o := domain.Order{
		ID:              d.ID.Hex(),
		OrderItems:      make([]domain.OrderItem, 0, len(d.OrderItems)),
		ShippingAddress: domain.ShippingAddress(d.ShippingAddress),
		PaymentMethod:   d.PaymentMethod,
		ItemsPrice:      decimal.NewFromFloat(d.ItemsPrice),
		TaxPrice:        decimal.NewFromFloat(d.TaxPrice),
		ShippingPrice:   decimal.NewFromFloat(d.ShippingPrice),
		TotalPrice:      decimal.NewFromFloat(d.TotalPrice),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	for _, it := range d.OrderItems {
		o.OrderItems = append(o.OrderItems, domain.OrderItem{
			Product: it.Product.Hex(),
			Name:    it.Name,
			Image:   it.Image,
			Price:   decimal.NewFromFloat(it.Price),
			Qty:     it.Qty,
		})
	}
	if d.User != nil {
		uid := d.User.Hex()
		o.User = &uid
	}
	return o
}

// MongoOrders коллекция заказов
type MongoOrders struct{ coll *mongo.Collection }

func (r *MongoOrders) Create(ctx context.Context, o *domain.Order) error {
	if err := prepareOrder(o); err != nil {
		return err
	}
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt
	doc, err := toOrderDocument(o)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	o.ID = doc.ID.Hex()
	return nil
}

func (r *MongoOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, findErr(err)
	}
	o := doc.toDomain()
	return &o, nil
}

func (r *MongoOrders) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	IsAdmin   bool               `bson:"isAdmin"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// MongoUsers коллекция учётных записей
type MongoUsers struct{ coll *mongo.Collection }

func (r *MongoUsers) Create(ctx context.Context, u *domain.User) error {
	if err := prepareUser(u); err != nil {
		return err
	}
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = doc.ID.Hex()
	return nil
}

func (r *MongoUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, findErr(err)
	}
	return &domain.User{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Email:     doc.Email,
		Password:  doc.Password,
		IsAdmin:   doc.IsAdmin,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (r *MongoUsers) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}
