package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pawhaven/internal/authz"
	"github.com/pawhaven/internal/config"
	adminhandlers "github.com/pawhaven/internal/http/handlers/admin"
	publichandlers "github.com/pawhaven/internal/http/handlers/public"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pawhaven"
	}
	redisClient := c.Cache.Client()
	newRule := func(name string) RateLimitRule {
		return RateLimitRule{
			Prefix:        fmt.Sprintf("%s:rate:%s", redisPrefix, name),
			WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
			MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
			MessageKey:    "error.rate_limited",
		}
	}
	loginLimit := RateLimitMiddleware(redisClient, newRule("login"), KeyByIPAndJSONField("email"))
	registerLimit := RateLimitMiddleware(redisClient, newRule("register"), KeyByIP)
	adminLoginLimit := RateLimitMiddleware(redisClient, newRule("admin_login"), KeyByIPAndJSONField("username"))

	userAuth := UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService)
	adminAuth := JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService)
	adminRBAC := AdminRBACMiddleware(c.AuthzService)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		// 公开接口
		api.GET("/auth/captcha", publicHandler.GetCaptcha)
		api.POST("/auth/register", registerLimit, publicHandler.Register)
		api.POST("/auth/login", loginLimit, publicHandler.Login)

		api.GET("/products", publicHandler.GetProducts)
		api.GET("/products/:id", publicHandler.GetProduct)
		api.GET("/services", publicHandler.GetServices)
		api.GET("/services/:id", publicHandler.GetService)
		api.GET("/puppies", publicHandler.GetPuppies)
		api.GET("/puppies/best-sellers", publicHandler.GetBestSellers)
		api.GET("/puppies/:id", publicHandler.GetPuppy)
		api.GET("/collections", publicHandler.GetCollections)
		api.GET("/collections/:key", publicHandler.GetCollection)

		// 状态变更挂在订单路径下，但只允许管理员调用
		api.PATCH(strings.TrimPrefix(orderStatusPath, "/api"), adminAuth, adminRBAC, adminHandler.UpdateOrderStatus)

		// 登录用户接口
		user := api.Group("")
		user.Use(userAuth)
		{
			user.GET("/auth/me", publicHandler.GetMe)
			user.PUT("/auth/me", publicHandler.UpdateMe)
			user.PUT("/auth/password", publicHandler.ChangePassword)

			user.POST("/cart", publicHandler.CreateCart)
			user.GET("/cart", publicHandler.GetCart)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PATCH("/cart/items", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items", publicHandler.RemoveCartItem)
			user.PATCH("/cart/items/delivery-option", publicHandler.UpdateCartDeliveryOption)

			user.POST("/orders/place", publicHandler.PlaceOrder)
			user.POST("/orders/puppy", publicHandler.PlacePuppyOrder)
			user.GET("/orders/my", publicHandler.GetMyOrders)
			user.GET("/orders/:id", publicHandler.GetMyOrder)

			user.GET("/wishlist", publicHandler.GetWishlist)
			user.POST("/wishlist", publicHandler.AddWishlist)
			user.DELETE("/wishlist", publicHandler.RemoveWishlist)

			user.POST("/bookings", publicHandler.CreateBooking)
			user.GET("/bookings/my", publicHandler.GetMyBookings)

			user.GET("/users/dashboard", publicHandler.GetUserDashboard)
		}

		adminGroup := api.Group("/admin")
		{
			adminGroup.POST("/login", adminLoginLimit, adminHandler.AdminLogin)

			// 自身账户接口只校验登录态
			self := adminGroup.Group("")
			self.Use(adminAuth)
			{
				self.GET("/me", adminHandler.GetAdminMe)
				self.PUT("/password", adminHandler.UpdateAdminPassword)
			}

			authorized := adminGroup.Group("")
			authorized.Use(adminAuth, adminRBAC)
			{
				authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)
				authorized.GET("/dashboard/trends", adminHandler.GetDashboardTrends)
				authorized.GET("/dashboard/rankings", adminHandler.GetDashboardRankings)

				authorized.GET("/products", adminHandler.ListProducts)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				authorized.GET("/services", adminHandler.ListServices)
				authorized.POST("/services", adminHandler.CreateService)
				authorized.GET("/services/:id", adminHandler.GetService)
				authorized.PUT("/services/:id", adminHandler.UpdateService)
				authorized.DELETE("/services/:id", adminHandler.DeleteService)

				authorized.GET("/puppies", adminHandler.ListPuppies)
				authorized.POST("/puppies", adminHandler.CreatePuppy)
				authorized.GET("/puppies/:id", adminHandler.GetPuppy)
				authorized.PUT("/puppies/:id", adminHandler.UpdatePuppy)
				authorized.PATCH("/puppies/:id/best-seller", adminHandler.SetPuppyBestSeller)
				authorized.DELETE("/puppies/:id", adminHandler.DeletePuppy)

				authorized.GET("/collections", adminHandler.ListCollections)
				authorized.POST("/collections", adminHandler.CreateCollection)
				authorized.PUT("/collections/:id", adminHandler.UpdateCollection)
				authorized.DELETE("/collections/:id", adminHandler.DeleteCollection)

				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.PATCH("/orders/:id/tracking", adminHandler.UpdateOrderTracking)

				authorized.GET("/bookings", adminHandler.ListBookings)
				authorized.PATCH("/bookings/:id/status", adminHandler.UpdateBookingStatus)
				authorized.DELETE("/bookings/:id", adminHandler.DeleteBooking)

				authorized.GET("/auth-events", adminHandler.ListAuthEvents)

				authorized.GET("/authz/roles", adminHandler.ListRoles)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantRolePolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeRolePolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

const orderStatusPath = "/api/orders/:id/status"

// rbacExemptPaths 不经过 RBAC 的后台路由
var rbacExemptPaths = map[string]struct{}{
	"/api/admin/login":    {},
	"/api/admin/me":       {},
	"/api/admin/password": {},
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/admin/") && item.Path != orderStatusPath {
			continue
		}
		if _, skip := rbacExemptPaths[item.Path]; skip {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
