package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/config"
	adminhandlers "github.com/foodgram-next/internal/http/handlers/admin"
	publichandlers "github.com/foodgram-next/internal/http/handlers/public"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	r := gin.New()
	var catalog []PermissionEntry

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        cache.Key("rate:login"),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}
	secret := cfg.JWT.SecretKey
	requireUser := UserJWTAuthMiddleware(secret, c.UserRepo)
	optionalUser := OptionalUserAuthMiddleware(secret, c.UserRepo)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(MetricsMiddleware())
	r.Use(CORSMiddleware(cfg.CORS))

	// 上传的菜谱图片
	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	api := r.Group("/api")
	{
		auth := api.Group("/auth/token")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyJoin(KeyByJSONField("email"), KeyByIP)), publicHandler.UserLogin)
			auth.POST("/logout", requireUser, publicHandler.UserLogout)
		}

		users := api.Group("/users")
		{
			users.POST("", publicHandler.UserRegister)
			users.GET("", optionalUser, publicHandler.ListUsers)
			users.GET("/me", requireUser, publicHandler.GetMe)
			users.POST("/set_password", requireUser, publicHandler.SetPassword)
			users.GET("/subscriptions", requireUser, publicHandler.ListSubscriptions)
			users.GET("/:id", optionalUser, publicHandler.GetUser)
			users.POST("/:id/subscribe", requireUser, publicHandler.Subscribe)
			users.DELETE("/:id/subscribe", requireUser, publicHandler.Unsubscribe)
		}

		api.GET("/tags", publicHandler.ListTags)
		api.GET("/tags/:id", publicHandler.GetTag)
		api.GET("/ingredients", publicHandler.ListIngredients)
		api.GET("/ingredients/:id", publicHandler.GetIngredient)

		recipes := api.Group("/recipes")
		{
			recipes.GET("", optionalUser, publicHandler.ListRecipes)
			recipes.POST("", requireUser, publicHandler.CreateRecipe)
			recipes.GET("/download_shopping_cart", requireUser, publicHandler.DownloadShoppingCart)
			recipes.GET("/:id", optionalUser, publicHandler.GetRecipe)
			recipes.PATCH("/:id", requireUser, publicHandler.UpdateRecipe)
			recipes.DELETE("/:id", requireUser, publicHandler.DeleteRecipe)
			recipes.POST("/:id/favorite", requireUser, publicHandler.AddFavorite)
			recipes.DELETE("/:id/favorite", requireUser, publicHandler.RemoveFavorite)
			recipes.POST("/:id/shopping_cart", requireUser, publicHandler.AddToShoppingCart)
			recipes.DELETE("/:id/shopping_cart", requireUser, publicHandler.RemoveFromShoppingCart)
		}

		// 员工接口（需鉴权 + RBAC）
		admin := api.Group("/admin")
		admin.Use(requireUser, StaffRBACMiddleware(c.AuthzService))
		{
			admin.POST("/tags", adminHandler.CreateTag)
			admin.PUT("/tags/:id", adminHandler.UpdateTag)
			admin.DELETE("/tags/:id", adminHandler.DeleteTag)

			admin.POST("/ingredients", adminHandler.CreateIngredient)
			admin.POST("/ingredients/import", adminHandler.ImportIngredients)
			admin.PUT("/ingredients/:id", adminHandler.UpdateIngredient)
			admin.DELETE("/ingredients/:id", adminHandler.DeleteIngredient)

			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id/staff", adminHandler.SetUserStaff)

			admin.GET("/authz/me", adminHandler.GetAuthzMe)
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.POST("/authz/roles", adminHandler.CreateAuthzRole)
			admin.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			admin.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
			admin.GET("/authz/users/:id/roles", adminHandler.GetAuthzUserRoles)
			admin.PUT("/authz/users/:id/roles", adminHandler.SetAuthzUserRoles)
			admin.GET("/authz/audit-logs", adminHandler.ListAuthzAuditLogs)
			admin.DELETE("/authz/audit-logs", adminHandler.PurgeAuthzAuditLogs)
			admin.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, catalog)
			})
		}
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 健康检查
	r.GET("/healthz", healthzHandler)

	catalog = permissionCatalog(r.Routes())
	return r
}

// healthzHandler 数据库不可用返回 503，Redis 只做展示
func healthzHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{"status": "ok", "database": "ok"}
	code := http.StatusOK
	if err := models.Ping(ctx); err != nil {
		body["status"], body["database"] = "degraded", "error"
		code = http.StatusServiceUnavailable
		logger.Warnw("healthz_database_failed", "error", err)
	}
	redisStatus, err := cache.Status(ctx)
	if err != nil {
		logger.Warnw("healthz_redis_failed", "error", err)
	}
	body["redis"] = redisStatus
	c.JSON(code, body)
}
