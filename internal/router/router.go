package router

import (
	"net/http"

	"github.com/webild-pos/internal/cache"
	"github.com/webild-pos/internal/config"
	"github.com/webild-pos/internal/constants"
	adminhandlers "github.com/webild-pos/internal/http/handlers/admin"
	publichandlers "github.com/webild-pos/internal/http/handlers/public"
	"github.com/webild-pos/internal/http/response"
	"github.com/webild-pos/internal/i18n"
	"github.com/webild-pos/internal/logger"
	"github.com/webild-pos/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	sessionHeader := cfg.Storefront.SessionHeader
	if sessionHeader == "" {
		sessionHeader = constants.DefaultCartSessionHeader
	}
	checkoutRule := RateLimitRule{
		Prefix:        cache.Key("rate:checkout"),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}
	checkoutLimiter := RateLimitMiddleware(cache.Client(), checkoutRule, KeyByHeaderAndIP(sessionHeader))

	// 中间件
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(RecoveryMiddleware())
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		redisStatus := "disabled"
		if cache.Enabled() {
			redisStatus = "ok"
			if err := cache.Ping(ctx.Request.Context()); err != nil {
				redisStatus = "unreachable"
			}
		}
		ctx.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"redis":  redisStatus,
		})
	})

	apiV1 := r.Group("/api/v1")
	{
		// 店铺前台接口（顾客，无需登录）
		store := apiV1.Group("/public/stores/:slug")
		{
			store.GET("", publicHandler.GetStore)
			store.GET("/menu", publicHandler.GetMenu)
			store.GET("/products/:id", publicHandler.GetProduct)
			store.GET("/cart", publicHandler.GetCart)
			store.POST("/cart/items", publicHandler.AddCartItem)
			store.PUT("/cart/items/:line_id", publicHandler.UpdateCartItem)
			store.DELETE("/cart/items/:line_id", publicHandler.RemoveCartItem)
			store.DELETE("/cart", publicHandler.ClearCart)
			store.POST("/checkout/open", publicHandler.OpenCheckout)
			store.POST("/checkout/close", publicHandler.CloseCheckout)
			store.POST("/checkout/preview", publicHandler.PreviewCheckout)
			store.POST("/checkout", checkoutLimiter, publicHandler.SubmitCheckout)
		}

		// 商户后台接口（需鉴权）
		admin := apiV1.Group("/admin")
		admin.Use(OwnerJWTAuthMiddleware(cfg.Auth))
		{
			admin.GET("/store", adminHandler.GetStore)
			admin.POST("/store", adminHandler.CreateStore)
			admin.PUT("/store", adminHandler.UpdateStore)

			admin.GET("/categories", adminHandler.GetCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/products", adminHandler.GetProducts)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.PATCH("/products/:id/availability", adminHandler.SetProductAvailability)

			admin.GET("/modifiers", adminHandler.GetModifiers)
			admin.POST("/modifiers", adminHandler.CreateModifier)
			admin.PUT("/modifiers/:id", adminHandler.UpdateModifier)
			admin.DELETE("/modifiers/:id", adminHandler.DeleteModifier)
			admin.PATCH("/modifiers/:id/availability", adminHandler.SetModifierAvailability)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, i18n.T(i18n.ResolveLocale(ctx), "error.not_found"))
	})

	return r
}
