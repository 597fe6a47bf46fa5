package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/pawhaven/internal/config"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/provider"
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type storefront struct {
	t         *testing.T
	engine    *gin.Engine
	container *provider.Container
	db        *gorm.DB
}

func newStorefront(t *testing.T) *storefront {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := filepath.Join(t.TempDir(), "router.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.AutoMigrate(db))

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "test"},
		JWT:     config.JWTConfig{SecretKey: "admin-secret-for-router-tests-0123456789", ExpireHours: 1},
		UserJWT: config.JWTConfig{SecretKey: "user-secret-for-router-tests-0123456789", ExpireHours: 1},
	}
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8}
	container, err := provider.NewContainer(cfg, db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Close()
		_ = sqlDB.Close()
	})
	return &storefront{t: t, engine: SetupRouter(cfg, container), container: container, db: db}
}

func (s *storefront) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w.Code, decodeEnvelope(s.t, w)
}

func (s *storefront) register(email string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email":       email,
		"password":    "woofwoof123",
		"displayName": "Kofi",
	})
	require.Equal(s.t, http.StatusCreated, code, env.Msg)
	token, _ := env.Data["token"].(string)
	require.NotEmpty(s.t, token)
	return token
}

func (s *storefront) adminToken(username string, roles ...string) string {
	s.t.Helper()
	hash, err := service.HashPassword("admin-pass-123")
	require.NoError(s.t, err)
	admin := &models.Admin{Username: username, PasswordHash: hash}
	require.NoError(s.t, s.db.Create(admin).Error)
	require.NoError(s.t, s.container.AuthzService.SetAdminRoles(admin.ID, roles))

	code, env := s.do(http.MethodPost, "/api/admin/login", "", gin.H{"username": username, "password": "admin-pass-123"})
	require.Equal(s.t, http.StatusOK, code, env.Msg)
	token, _ := env.Data["token"].(string)
	require.NotEmpty(s.t, token)
	return token
}

func orderFrom(t *testing.T, env envelope) map[string]interface{} {
	t.Helper()
	require.NotNil(t, env.Data)
	if order, ok := env.Data["order"].(map[string]interface{}); ok {
		return order
	}
	return env.Data
}

func TestCartCheckoutAndStatusFlow(t *testing.T) {
	s := newStorefront(t)
	product := &models.Product{Name: "Chew Rope", Category: "Toys", Price: models.MustMoney("12.50"), Stock: 20, IsActive: true}
	require.NoError(t, s.db.Create(product).Error)

	token := s.register("kofi@example.com")

	code, env := s.do(http.MethodPost, "/api/cart/items", token, gin.H{"productId": product.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, code, env.Msg)

	address := gin.H{
		"fullName":    "Kofi Boateng",
		"phone":       "+233240000000",
		"addressLine": "4 Oxford Street",
		"city":        "Accra",
		"region":      "Greater Accra",
	}
	code, env = s.do(http.MethodPost, "/api/orders/place", token, gin.H{
		"shippingAddress": address,
		"paymentMethod":   "Cash on Delivery",
	})
	require.Equal(t, http.StatusCreated, code, env.Msg)
	order := orderFrom(t, env)
	assert.Equal(t, "25.00", order["total_amount"])
	orderID := uint(order["id"].(float64))

	// 下单后购物车清空，再次下单视为空购物车
	code, _ = s.do(http.MethodPost, "/api/orders/place", token, gin.H{
		"shippingAddress": address,
		"paymentMethod":   "Cash on Delivery",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	statusPath := fmt.Sprintf("/api/orders/%d/status", orderID)
	code, _ = s.do(http.MethodPatch, statusPath, token, gin.H{"status": "Shipped"})
	assert.Equal(t, http.StatusUnauthorized, code, "user token must not change order status")

	auditor := s.adminToken("auditor", "readonly_auditor")
	code, _ = s.do(http.MethodPatch, statusPath, auditor, gin.H{"status": "Shipped"})
	assert.Equal(t, http.StatusForbidden, code)

	manager := s.adminToken("manager", "order_manager")
	code, env = s.do(http.MethodPatch, statusPath, manager, gin.H{"status": "Shipped"})
	require.Equal(t, http.StatusOK, code, env.Msg)
	assert.Equal(t, "Shipped", orderFrom(t, env)["status"])

	code, env = s.do(http.MethodPatch, statusPath, manager, gin.H{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, code, env.Msg)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), token, nil)
	assert.Equal(t, http.StatusOK, code)

	// 注册与两次管理员登录均留痕
	var events int64
	require.NoError(t, s.db.Model(&models.AuthEvent{}).Count(&events).Error)
	assert.EqualValues(t, 3, events)
}

func TestPuppyOrderRejectsSoldPuppy(t *testing.T) {
	s := newStorefront(t)
	puppy := &models.Puppy{Name: "Bella", Breed: "Beagle", Gender: "Female", Price: models.MustMoney("800"), IsAvailable: true}
	require.NoError(t, s.db.Create(puppy).Error)

	first := s.register("ama@example.com")
	second := s.register("yaw@example.com")
	body := gin.H{
		"puppyId": puppy.ID,
		"shippingAddress": gin.H{
			"fullName":    "Ama Mensah",
			"phone":       "+233200000000",
			"addressLine": "12 Ring Road",
			"city":        "Accra",
			"region":      "Greater Accra",
		},
		"paymentMethod": "Mobile Money",
	}
	code, env := s.do(http.MethodPost, "/api/orders/puppy", first, body)
	require.Equal(t, http.StatusCreated, code, env.Msg)

	code, env = s.do(http.MethodPost, "/api/orders/puppy", second, body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Puppy", env.Data["item_type"])
}

func TestUserRoutesRequireToken(t *testing.T) {
	s := newStorefront(t)
	for _, path := range []string{"/api/cart", "/api/orders/my", "/api/wishlist", "/api/users/dashboard"} {
		code, _ := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
	code, _ := s.do(http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestBuildAdminPermissionCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	noop := func(*gin.Context) {}
	r.POST("/api/admin/login", noop)
	r.GET("/api/admin/me", noop)
	r.GET("/api/admin/products", noop)
	r.PUT("/api/admin/products/:id", noop)
	r.GET("/api/admin/authz/roles", noop)
	r.PATCH("/api/orders/:id/status", noop)
	r.GET("/api/products", noop)

	items := buildAdminPermissionCatalog(r)
	permissions := make([]string, 0, len(items))
	for _, item := range items {
		permissions = append(permissions, item.Module+" "+item.Permission)
	}
	assert.Equal(t, []string{
		"authz GET:/admin/authz/roles",
		"orders PATCH:/orders/:id/status",
		"products GET:/admin/products",
		"products PUT:/admin/products/:id",
	}, permissions)
}
