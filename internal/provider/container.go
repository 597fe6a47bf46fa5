package provider

import (
	"errors"
	"fmt"

	"github.com/pawhaven/internal/authz"
	"github.com/pawhaven/internal/cache"
	"github.com/pawhaven/internal/config"
	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/queue"
	"github.com/pawhaven/internal/repository"
	"github.com/pawhaven/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	Cache       *cache.Store
	QueueClient *queue.Client

	// Repositories
	AdminRepo      repository.AdminRepository
	UserRepo       repository.UserRepository
	ProductRepo    repository.ProductRepository
	ServiceRepo    repository.ServiceRepository
	PuppyRepo      repository.PuppyRepository
	CartRepo       repository.CartRepository
	OrderRepo      repository.OrderRepository
	WishlistRepo   repository.WishlistRepository
	CollectionRepo repository.CollectionRepository
	BookingRepo    repository.BookingRepository
	DashboardRepo  repository.DashboardRepository
	AuthEventRepo  repository.AuthEventRepository

	// Services
	AuthzService             *authz.Service
	AuthService              *service.AuthService
	UserAuthService          *service.UserAuthService
	CaptchaService           *service.CaptchaService
	EmailService             *service.EmailService
	OrderNotificationService *service.OrderNotificationService
	ProductService           *service.ProductService
	OfferingService          *service.OfferingService
	PuppyService             *service.PuppyService
	CartService              *service.CartService
	OrderService             *service.OrderService
	WishlistService          *service.WishlistService
	CollectionService        *service.CollectionService
	BookingService           *service.BookingService
	UserDashboardService     *service.UserDashboardService
	DashboardService         *service.DashboardService
	AuthEventService         *service.AuthEventService
}

// NewContainer 初始化容器，db 由调用方创建并负责关闭
func NewContainer(cfg *config.Config, db *gorm.DB) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if db == nil {
		return nil, errors.New("db is nil")
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		return nil, fmt.Errorf("init queue client failed: %w", err)
	}

	c := &Container{
		Config:      cfg,
		DB:          db,
		Cache:       cache.NewStore(&cfg.Redis),
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	db := c.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ServiceRepo = repository.NewServiceRepository(db)
	c.PuppyRepo = repository.NewPuppyRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.CollectionRepo = repository.NewCollectionRepository(db)
	c.BookingRepo = repository.NewBookingRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
	c.AuthEventRepo = repository.NewAuthEventRepository(db)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}
	c.AuthzService = authzService

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo, c.Cache)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.Cache)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.OrderNotificationService = service.NewOrderNotificationService(c.OrderRepo, c.QueueClient, c.EmailService, c.Config.Order.Currency)

	c.ProductService = service.NewProductService(c.ProductRepo)
	c.OfferingService = service.NewOfferingService(c.ServiceRepo)
	c.PuppyService = service.NewPuppyService(c.PuppyRepo, c.Cache)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.ServiceRepo, c.PuppyRepo)
	c.OrderService = service.NewOrderService(c.DB, c.OrderRepo, c.CartRepo, c.PuppyRepo, c.OrderNotificationService)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo, c.PuppyRepo)
	c.CollectionService = service.NewCollectionService(c.CollectionRepo, c.ProductRepo, c.PuppyRepo, c.ServiceRepo)
	c.BookingService = service.NewBookingService(c.BookingRepo, c.ServiceRepo)
	c.UserDashboardService = service.NewUserDashboardService(c.UserRepo, c.OrderRepo, c.WishlistRepo, c.CartRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.Cache)
	c.AuthEventService = service.NewAuthEventService(c.AuthEventRepo)
	return nil
}

// Close 释放缓存与队列连接，数据库由调用方关闭
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if err := c.QueueClient.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Cache.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
