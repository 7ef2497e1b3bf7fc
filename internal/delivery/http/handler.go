package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/service"
)

// Services bundles the application services the handler dispatches to.
type Services struct {
	Auth      *service.AuthService
	Products  *service.ProductService
	Cart      *service.CartService
	Orders    *service.OrderService
	Stock     *service.StockService
	Suppliers *service.SupplierService
	Users     *service.UserService
	Reports   *service.ReportService
}

// Handler handles HTTP requests for the application.
type Handler struct {
	svc       Services
	jwtSecret string
	limiter   *redis.Client
	logger    *zap.Logger
}

func NewHandler(svc Services, jwtSecret string, limiter *redis.Client, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, jwtSecret: jwtSecret, limiter: limiter, logger: logger}
}

// RegisterRoutes wires the route tree: public auth endpoints, an
// authenticated user area, and an admin-only area.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(RequestID(), CORSMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Use(RateLimiter(h.limiter))
	auth.POST("/register", h.handleRegister)
	auth.POST("/login", h.handleLogin)

	authed := api.Group("")
	authed.Use(RequireAuth(h.jwtSecret))
	authed.GET("/user/products", h.handleListProducts)
	authed.GET("/user/profile", h.handleProfile)
	authed.GET("/cart", h.handleGetCart)
	authed.POST("/cart", h.handleAddToCart)
	authed.PUT("/cart", h.handleUpdateCartQty)
	authed.DELETE("/cart/:productId", h.handleRemoveFromCart)
	authed.POST("/user/orders/place", h.handlePlaceOrder)
	authed.GET("/user/orders/my", h.handleMyOrders)

	admin := authed.Group("")
	admin.Use(RequireAdmin())
	admin.GET("/products", h.handleListProducts)
	admin.POST("/products", h.handleCreateProduct)
	admin.PUT("/products/:id", h.handleUpdateProduct)
	admin.DELETE("/products/:id", h.handleDeleteProduct)
	admin.GET("/suppliers", h.handleListSuppliers)
	admin.POST("/suppliers", h.handleCreateSupplier)
	admin.GET("/transactions", h.handleListTransactions)
	admin.POST("/transactions", h.handleAddTransaction)
	admin.GET("/reports/summary", h.handleReportSummary)
	admin.GET("/dashboard", h.handleReportSummary)
	admin.GET("/users", h.handleListUsers)
	admin.DELETE("/users/:id", h.handleDeleteUser)
	admin.PUT("/users/make-admin/:id", h.handlePromoteUser)
}

// respondError maps the service error taxonomy onto HTTP statuses.
// Infrastructure failures were already logged with their cause and surface
// only as a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

// --- auth ---

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.svc.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	token, user, err := h.svc.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   token,
		"user":    user,
	})
}

// --- products ---

func (h *Handler) handleListProducts(c *gin.Context) {
	products, err := h.svc.Products.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) handleCreateProduct(c *gin.Context) {
	var p entity.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.svc.Products.Create(c.Request.Context(), &p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (h *Handler) handleUpdateProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var p entity.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p.ID = id
	if err := h.svc.Products.Update(c.Request.Context(), p); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) handleDeleteProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	if err := h.svc.Products.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- cart ---

func (h *Handler) handleGetCart(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	lines, err := h.svc.Cart.Lines(c.Request.Context(), identity.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

type addToCartRequest struct {
	ProductID int64 `json:"product_id"`
}

func (h *Handler) handleAddToCart(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.Cart.Add(c.Request.Context(), identity.UserID, req.ProductID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type updateCartRequest struct {
	ProductID int64 `json:"product_id"`
	Delta     int   `json:"delta"`
}

func (h *Handler) handleUpdateCartQty(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.Cart.UpdateQuantity(c.Request.Context(), identity.UserID, req.ProductID, req.Delta); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) handleRemoveFromCart(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	productID, err := pathID(c, "productId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	if err := h.svc.Cart.Remove(c.Request.Context(), identity.UserID, productID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- orders ---

func (h *Handler) handlePlaceOrder(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	orderID, err := h.svc.Orders.PlaceOrder(c.Request.Context(), identity.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orderId": orderID})
}

func (h *Handler) handleMyOrders(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	orders, err := h.svc.Orders.ListMyOrders(c.Request.Context(), identity.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// --- stock ledger ---

type addTransactionRequest struct {
	ProductID  int64  `json:"product_id"`
	SupplierID *int64 `json:"supplier_id"`
	Quantity   int    `json:"quantity"`
	Type       string `json:"type"`
}

func (h *Handler) handleAddTransaction(c *gin.Context) {
	var req addTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.svc.Stock.AddTransaction(c.Request.Context(), service.AddTransactionInput{
		ProductID:  req.ProductID,
		SupplierID: req.SupplierID,
		Quantity:   req.Quantity,
		Type:       entity.TransactionType(req.Type),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (h *Handler) handleListTransactions(c *gin.Context) {
	txns, err := h.svc.Stock.ListTransactions(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// --- suppliers ---

func (h *Handler) handleCreateSupplier(c *gin.Context) {
	var s entity.Supplier
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.svc.Suppliers.Create(c.Request.Context(), &s)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (h *Handler) handleListSuppliers(c *gin.Context) {
	suppliers, err := h.svc.Suppliers.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// --- reports ---

func (h *Handler) handleReportSummary(c *gin.Context) {
	summary, err := h.svc.Reports.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --- users ---

func (h *Handler) handleProfile(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	user, err := h.svc.Users.Profile(c.Request.Context(), identity.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) handleListUsers(c *gin.Context) {
	users, err := h.svc.Users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) handleDeleteUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if err := h.svc.Users.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) handlePromoteUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if err := h.svc.Users.Promote(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func pathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
