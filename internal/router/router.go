package router

import (
	"fmt"
	"strings"

	"github.com/foodiehub/internal/cache"
	"github.com/foodiehub/internal/config"
	adminhandlers "github.com/foodiehub/internal/http/handlers/admin"
	publichandlers "github.com/foodiehub/internal/http/handlers/public"
	"github.com/foodiehub/internal/logger"
	"github.com/foodiehub/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "fh"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(SessionIDMiddleware())

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/restaurants", publicHandler.ListRestaurants)
			public.GET("/restaurants/:id/menu", publicHandler.GetRestaurantMenu)
			public.GET("/restaurants/:id/reviews", publicHandler.ListReviews)
			public.GET("/menu-items/search", publicHandler.SearchMenuItems)
			public.GET("/captcha/image", publicHandler.GetCaptcha)
		}

		// 购物车接口（基于会话 Cookie，无需登录）
		cartGroup := apiV1.Group("/cart")
		{
			cartGroup.GET("", publicHandler.GetCart)
			cartGroup.POST("/items", publicHandler.AddCartItem)
			cartGroup.PUT("/items/:item_id", publicHandler.UpdateCartItem)
			cartGroup.DELETE("/items/:item_id", publicHandler.RemoveCartItem)
			cartGroup.DELETE("", publicHandler.ClearCart)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/signup", publicHandler.Signup)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.Me)
			user.GET("/me/rewards", publicHandler.MyRewards)
			user.POST("/checkout", publicHandler.Checkout)
			user.POST("/checkout/preview", publicHandler.CheckoutPreview)
			user.GET("/orders", publicHandler.ListMyOrders)
			user.GET("/orders/:id", publicHandler.GetMyOrder)
			user.GET("/orders/:id/tracking", publicHandler.GetMyOrderTracking)
			user.POST("/gift-coupons/scratch", publicHandler.ScratchGiftCoupon)
			user.GET("/gift-coupons", publicHandler.ListGiftCoupons)
			user.POST("/restaurants/:id/reviews", publicHandler.SubmitReview)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), AdminRBACMiddleware(c.AuthzService))
		{
			admin.GET("/orders", adminHandler.GetAdminOrders)
			admin.GET("/orders/:id", adminHandler.GetAdminOrder)
			admin.PATCH("/orders/:id/tracking", adminHandler.AdvanceOrderTracking)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
