package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository/memory"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/service"
)

const testSecret = "test-secret"

type testEnv struct {
	router *gin.Engine
	store  *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	logger := zap.NewNop()

	svc := Services{
		Auth:      service.NewAuthService(store.Users(), testSecret, logger),
		Products:  service.NewProductService(store, nil, logger),
		Cart:      service.NewCartService(store, store, logger),
		Orders:    service.NewOrderService(store, store, nil, logger),
		Stock:     service.NewStockService(store, store, nil, logger),
		Suppliers: service.NewSupplierService(store.Suppliers(), logger),
		Users:     service.NewUserService(store.Users(), logger),
		Reports:   service.NewReportService(store, logger),
	}

	router := gin.New()
	NewHandler(svc, testSecret, nil, logger).RegisterRoutes(router)
	return &testEnv{router: router, store: store}
}

func (e *testEnv) token(t *testing.T, userID int64, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAuthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("login returns a token usable on protected routes", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "alice@example.com", "password": "s3cret",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		token, _ := decodeBody(t, rec)["token"].(string)
		require.NotEmpty(t, token)

		rec = env.do(t, http.MethodGet, "/api/user/profile", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"email": "alice@example.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("duplicate email is 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
			"name": "Imposter", "email": "alice@example.com", "password": "other",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthorization(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing token is 401", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/cart", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/cart", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-admin on an admin route is 403", func(t *testing.T) {
		token := env.token(t, 1, "user")
		rec := env.do(t, http.MethodGet, "/api/transactions", token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		token := env.token(t, 1, "admin")
		rec := env.do(t, http.MethodGet, "/api/transactions", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestOrderFlow(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, 1, "admin")
	user := env.token(t, 2, "user")

	rec := env.do(t, http.MethodPost, "/api/products", admin, entity.Product{
		Name: "Widget", Category: "Tools", Price: 100, Quantity: 10, MinQuantity: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	productID := int64(decodeBody(t, rec)["id"].(float64))

	t.Run("placing with an empty cart is 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/user/orders/place", user, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("cart to order", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			rec := env.do(t, http.MethodPost, "/api/cart", user, gin.H{"product_id": productID})
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := env.do(t, http.MethodPost, "/api/user/orders/place", user, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotZero(t, decodeBody(t, rec)["orderId"])

		rec = env.do(t, http.MethodGet, "/api/user/orders/my", user, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var orders []entity.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		require.Len(t, orders, 1)
		assert.Equal(t, 300.0, orders[0].TotalAmount)

		rec = env.do(t, http.MethodGet, "/api/cart", user, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var lines []entity.CartLine
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lines))
		assert.Empty(t, lines)
	})

	t.Run("unknown product in cart add is 404", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/cart", user, gin.H{"product_id": 9999})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("cart entry removal", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/cart", user, gin.H{"product_id": productID})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/cart/%d", productID), user, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/cart", user, nil)
		var lines []entity.CartLine
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lines))
		assert.Empty(t, lines)
	})
}

func TestTransactionEndpoints(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, 1, "admin")

	rec := env.do(t, http.MethodPost, "/api/products", admin, entity.Product{
		Name: "Widget", Category: "Tools", Price: 10, Quantity: 5, MinQuantity: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	productID := int64(decodeBody(t, rec)["id"].(float64))

	t.Run("IN movement", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/transactions", admin, gin.H{
			"product_id": productID, "quantity": 10, "type": "IN",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotZero(t, decodeBody(t, rec)["id"])
	})

	t.Run("OUT past zero is 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/transactions", admin, gin.H{
			"product_id": productID, "quantity": 1000, "type": "OUT",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/transactions", admin, gin.H{
			"product_id": 9999, "quantity": 1, "type": "IN",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad type is 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/transactions", admin, gin.H{
			"product_id": productID, "quantity": 1, "type": "SIDEWAYS",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReportSummaryEndpoint(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, 1, "admin")

	rec := env.do(t, http.MethodPost, "/api/products", admin, entity.Product{
		Name: "Low", Category: "Tools", Price: 10, Quantity: 2, MinQuantity: 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/products", admin, entity.Product{
		Name: "Plenty", Category: "Tools", Price: 20, Quantity: 100, MinQuantity: 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/reports/summary", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary entity.ReportSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, 102, summary.TotalStock)
	assert.Equal(t, 2020.0, summary.StockValue)
	require.Len(t, summary.LowStock, 1)
	assert.Equal(t, "Low", summary.LowStock[0].Name)
}
