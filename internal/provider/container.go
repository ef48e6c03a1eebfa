package provider

import (
	"fmt"

	"github.com/foodgram-next/internal/authz"
	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/queue"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo          repository.UserRepository
	SubscriptionRepo  repository.SubscriptionRepository
	TagRepo           repository.TagRepository
	IngredientRepo    repository.IngredientRepository
	RecipeRepo        repository.RecipeRepository
	FavoriteRepo      repository.RecipeRelationRepository
	ShoppingCartRepo  repository.ShoppingCartRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository

	// Services
	AuthzService          *authz.Service
	UserAuthService       *service.UserAuthService
	UserService           *service.UserService
	SubscriptionService   *service.SubscriptionService
	TagService            *service.TagService
	IngredientService     *service.IngredientService
	UploadService         *service.UploadService
	RecipeService         *service.RecipeService
	RecipeRelationService *service.RecipeRelationService
	ShoppingListService   *service.ShoppingListService
	AuthzAuditService     *service.AuthzAuditService
}

// NewContainer 组装仓储与服务。缓存不可用时降级运行，权限模型初始化失败则返回错误。
func NewContainer(cfg *config.Config) (*Container, error) {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err, "fallback", "no_cache")
	}
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		return nil, fmt.Errorf("init queue client: %w", err)
	}

	c := &Container{Config: cfg, QueueClient: queueClient}
	c.initRepositories()
	if err := c.initServices(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Close 释放队列客户端与缓存连接
func (c *Container) Close() {
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_cache_failed", "error", err)
	}
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.SubscriptionRepo = repository.NewSubscriptionRepository(db)
	c.TagRepo = repository.NewTagRepository(db)
	c.IngredientRepo = repository.NewIngredientRepository(db)
	c.RecipeRepo = repository.NewRecipeRepository(db)
	c.FavoriteRepo = repository.NewFavoriteRepository(db)
	c.ShoppingCartRepo = repository.NewShoppingCartRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		return fmt.Errorf("init authz: %w", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		return fmt.Errorf("bootstrap builtin roles: %w", err)
	}
	c.AuthzService = authzService

	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo, c.SubscriptionRepo, c.AuthzService, c.AuthzAuditService)
	if err := c.UserService.SyncStaffRoles(); err != nil {
		logger.Warnw("provider_sync_staff_roles_failed", "error", err)
	}
	c.SubscriptionService = service.NewSubscriptionService(c.UserRepo, c.SubscriptionRepo, c.RecipeRepo)
	c.TagService = service.NewTagService(c.TagRepo)
	c.IngredientService = service.NewIngredientService(c.IngredientRepo, c.QueueClient)
	c.UploadService = service.NewUploadService(c.Config)
	c.RecipeService = service.NewRecipeService(service.RecipeServiceOptions{
		Config:           c.Config,
		RecipeRepo:       c.RecipeRepo,
		TagRepo:          c.TagRepo,
		IngredientRepo:   c.IngredientRepo,
		FavoriteRepo:     c.FavoriteRepo,
		CartRepo:         c.ShoppingCartRepo,
		SubscriptionRepo: c.SubscriptionRepo,
		Images:           c.UploadService,
		CleanupQueue:     c.QueueClient,
		Policy:           c.AuthzService,
	})
	c.RecipeRelationService = service.NewRecipeRelationService(c.RecipeRepo, c.FavoriteRepo, c.ShoppingCartRepo)
	c.ShoppingListService = service.NewShoppingListService(c.ShoppingCartRepo)
	return nil
}
