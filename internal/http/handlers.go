package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shagun/internal/domain"
	"shagun/internal/media"
	"shagun/internal/repository"
	"shagun/internal/service"
)

type Server struct {
	engine   *gin.Engine
	products *service.ProductService
	orders   *service.OrderService
	users    *service.UserService
	uploads  media.Store
}

func NewServer(products *service.ProductService, orders *service.OrderService, users *service.UserService, uploads media.Store) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors())
	s := &Server{engine: r, products: products, orders: orders, users: users, uploads: uploads}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	s.engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "API is running...") })

	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// local uploads are served by the API itself
	if dir, ok := s.uploads.(interface{ Dir() string }); ok {
		s.engine.Static(strings.TrimSuffix(media.URLPrefix, "/"), dir.Dir())
	}

	api := s.engine.Group("/api")
	{
		products := api.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)
		products.POST("", Protect(), Admin(), s.createProduct)
		products.PUT(":id", Protect(), Admin(), s.updateProduct)
		products.DELETE(":id", Protect(), Admin(), s.deleteProduct)

		api.POST("/orders", s.createOrder)
		api.POST("/users/login", s.login)
		api.POST("/upload", s.upload)
	}
}

// Product handlers
type productReq struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Fabric      string          `json:"fabric"`
	Color       string          `json:"color"`
	Occasion    string          `json:"occasion"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Video       string          `json:"video"`
	Category    domain.Category `json:"category"`
	Stock       int64           `json:"stock"`
}

func (r productReq) product() domain.Product {
	return domain.Product{
		Name:        r.Name,
		Price:       r.Price,
		Fabric:      r.Fabric,
		Color:       r.Color,
		Occasion:    r.Occasion,
		Description: r.Description,
		Images:      r.Images,
		Video:       r.Video,
		Category:    r.Category,
		Stock:       r.Stock,
	}
}

// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Failure 500 {object} map[string]string
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	list, err := s.products.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.products.GetByID(c, c.Param("id"))
	if err != nil {
		writeError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param input body productReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product data", "error": err.Error()})
		return
	}
	p, err := s.products.Create(c, req.product())
	if err != nil {
		writeError(c, err, "Invalid product data")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body productReq true "Product"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product data", "error": err.Error()})
		return
	}
	p, err := s.products.Update(c, c.Param("id"), req.product())
	if err != nil {
		msg := "Product not found"
		var verr *repository.ValidationError
		if errors.As(err, &verr) {
			msg = "Invalid product data"
		}
		writeError(c, err, msg)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.products.Delete(c, c.Param("id")); err != nil {
		writeError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}

// Order handlers
type createOrderReq struct {
	OrderItems      []domain.OrderItem     `json:"orderItems"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ItemsPrice      decimal.Decimal        `json:"itemsPrice"`
	TaxPrice        decimal.Decimal        `json:"taxPrice"`
	ShippingPrice   decimal.Decimal        `json:"shippingPrice"`
	TotalPrice      decimal.Decimal        `json:"totalPrice"`
}

// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body createOrderReq true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order data", "error": err.Error()})
		return
	}
	o, err := s.orders.CreateOrder(c, CurrentUserID(c), domain.Order{
		OrderItems:      req.OrderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
	})
	if err != nil {
		writeError(c, err, "Invalid order data")
		return
	}
	c.JSON(http.StatusCreated, o)
}

// User handlers
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Login
// @Tags users
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} domain.Identity
// @Failure 401 {object} map[string]string
// @Router /users/login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	// an unreadable body carries no credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, service.ErrInvalidCredentials, "")
		return
	}
	id, err := s.users.Login(c, req.Email, req.Password)
	if err != nil {
		writeError(c, err, "Server Error during login")
		return
	}
	c.JSON(http.StatusOK, id)
}

// writeError maps service errors onto the {message[, error]} body.
// msg is used for the not-found and validation cases where the route picks the wording.
func writeError(c *gin.Context, err error, msg string) {
	status := mapErrorToStatus(err)
	var verr *repository.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(status, gin.H{"message": msg, "error": verr.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(status, gin.H{"message": msg})
	case errors.Is(err, service.ErrNoOrderItems):
		c.JSON(status, gin.H{"message": "No order items"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(status, gin.H{"message": "Invalid email or password"})
	case errors.Is(err, service.ErrServer):
		c.JSON(status, gin.H{"message": msg})
	default:
		c.JSON(status, gin.H{"message": "Server Error"})
	}
}

func mapErrorToStatus(err error) int {
	var verr *repository.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoOrderItems):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
