package provider

import (
	"github.com/foodiehub/internal/authz"
	"github.com/foodiehub/internal/cache"
	"github.com/foodiehub/internal/cart"
	"github.com/foodiehub/internal/config"
	"github.com/foodiehub/internal/constants"
	"github.com/foodiehub/internal/logger"
	"github.com/foodiehub/internal/models"
	"github.com/foodiehub/internal/payment/qrpay"
	"github.com/foodiehub/internal/queue"
	"github.com/foodiehub/internal/repository"
	"github.com/foodiehub/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	CartStore   cart.Store

	// Repositories
	UserRepo       repository.UserRepository
	RestaurantRepo repository.RestaurantRepository
	MenuItemRepo   repository.MenuItemRepository
	OrderRepo      repository.OrderRepository
	GiftCouponRepo repository.GiftCouponRepository
	ReviewRepo     repository.ReviewRepository

	// Services
	AuthzService      *authz.Service
	UserAuthService   *service.UserAuthService
	CaptchaService    *service.CaptchaService
	MenuService       *service.MenuService
	CartService       *service.CartService
	CheckoutService   *service.CheckoutService
	OrderService      *service.OrderService
	GiftCouponService *service.GiftCouponService
	ReviewService     *service.ReviewService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		CartStore:   cart.NewStore(),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.RestaurantRepo = repository.NewRestaurantRepository(db)
	c.MenuItemRepo = repository.NewMenuItemRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.GiftCouponRepo = repository.NewGiftCouponRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	c.syncAdminRoleBindings()

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.CaptchaService)
	c.MenuService = service.NewMenuService(c.RestaurantRepo, c.MenuItemRepo)
	c.CartService = service.NewCartService(c.CartStore, c.MenuItemRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.QueueClient)
	c.GiftCouponService = service.NewGiftCouponService(c.GiftCouponRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.RestaurantRepo)

	var qrProvider service.QRPayProvider
	if c.Config.Payment.QR.Enabled {
		qrProvider = qrpay.NewClient(c.Config.Payment.QR)
	}
	c.CheckoutService = service.NewCheckoutService(
		c.CartStore,
		c.UserRepo,
		c.MenuItemRepo,
		c.OrderRepo,
		c.GiftCouponRepo,
		qrProvider,
		c.QueueClient,
		&c.Config.Order,
	)
}

// syncAdminRoleBindings 把角色为 admin 的用户同步进 casbin 分组。
func (c *Container) syncAdminRoleBindings() {
	admins, _, err := c.UserRepo.List(repository.UserListFilter{Role: constants.UserRoleAdmin, Page: 1, PageSize: 200})
	if err != nil {
		logger.Warnw("provider_sync_admin_roles_failed", "error", err)
		return
	}
	for _, admin := range admins {
		if err := c.AuthzService.AssignRole(admin.ID, constants.UserRoleAdmin); err != nil {
			logger.Warnw("provider_assign_admin_role_failed", "user_id", admin.ID, "error", err)
		}
	}
}
