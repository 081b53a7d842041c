package provider

import (
	"time"

	"github.com/webild-pos/internal/cache"
	"github.com/webild-pos/internal/config"
	"github.com/webild-pos/internal/logger"
	"github.com/webild-pos/internal/messaging/whatsapp"
	"github.com/webild-pos/internal/models"
	"github.com/webild-pos/internal/order"
	"github.com/webild-pos/internal/queue"
	"github.com/webild-pos/internal/repository"
	"github.com/webild-pos/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	StoreRepo    repository.StoreRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	ModifierRepo repository.ModifierRepository

	// 购物车会话
	SessionStore cache.SessionStore

	// 消息通道：OrderMessenger 供结账使用，OrderSender 为实际发送器（队列消费者使用）
	OrderMessenger order.Messenger
	OrderSender    order.Messenger

	// Services
	CatalogService    *service.CatalogService
	CartService       *service.CartService
	CheckoutService   *service.CheckoutService
	StoreAdminService *service.StoreAdminService
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
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化会话与消息通道
	c.initSessionStore()
	c.initMessaging()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.StoreRepo = repository.NewStoreRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ModifierRepo = repository.NewModifierRepository(db)
}

func (c *Container) initSessionStore() {
	ttl := c.Config.Storefront.SessionTTL()
	if cache.Enabled() {
		c.SessionStore = cache.NewRedisSessionStore(cache.Client(), ttl)
		return
	}
	logger.Warnw("provider_cart_session_in_memory", "ttl_minutes", int(ttl/time.Minute))
	c.SessionStore = cache.NewMemorySessionStore(ttl)
}

func (c *Container) initMessaging() {
	deepLink := whatsapp.NewDeepLinkMessenger(c.Config.Messaging.DeepLinkBaseURL)
	c.OrderMessenger = deepLink

	if c.Config.Messaging.NormalizedProvider() != config.MessagingProviderCloudAPI {
		return
	}
	cloudCfg := c.Config.Messaging.CloudAPI
	sender, err := whatsapp.NewCloudAPISender(whatsapp.CloudAPIConfig{
		BaseURL:       cloudCfg.BaseURL,
		Token:         cloudCfg.Token,
		PhoneNumberID: cloudCfg.PhoneNumberID,
		Timeout:       time.Duration(cloudCfg.TimeoutMS) * time.Millisecond,
	})
	if err != nil {
		logger.Errorw("provider_init_cloud_api_failed_fallback_deeplink", "error", err)
		return
	}
	c.OrderSender = sender
	c.OrderMessenger = service.NewQueuedMessenger(c.QueueClient, sender)
}

func (c *Container) initServices() {
	c.CatalogService = service.NewCatalogService(
		c.StoreRepo,
		c.CategoryRepo,
		c.ProductRepo,
		c.ModifierRepo,
		c.Config.Storefront.CatalogCacheTTL(),
	)
	c.CartService = service.NewCartService(c.CatalogService, c.SessionStore)
	c.CheckoutService = service.NewCheckoutService(c.CatalogService, c.SessionStore, c.OrderMessenger, c.Config.Storefront.DefaultLocale)
	c.StoreAdminService = service.NewStoreAdminService(c.StoreRepo, c.CategoryRepo, c.ProductRepo, c.ModifierRepo, c.CatalogService)
}
