package router

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/craftshowcase/internal/cache"
	"github.com/craftshowcase/internal/config"
	adminhandlers "github.com/craftshowcase/internal/http/handlers/admin"
	publichandlers "github.com/craftshowcase/internal/http/handlers/public"
	"github.com/craftshowcase/internal/logger"
	"github.com/craftshowcase/internal/metrics"
	"github.com/craftshowcase/internal/provider"

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
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "craft"
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(metrics.Middleware(c.Metrics))

	// 静态文件服务（上传的图片）
	publicDir := strings.TrimSpace(cfg.Upload.PublicDir)
	if publicDir == "" {
		publicDir = "public"
	}
	r.Static("/uploads", filepath.Join(publicDir, "uploads"))

	if cfg.Metrics.Enabled {
		metricsPath := strings.TrimSpace(cfg.Metrics.Path)
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.GET(metricsPath, gin.WrapH(metrics.Handler(c.Metrics)))
	}

	r.GET("/sitemap.xml", publicHandler.GetSitemap)
	r.GET("/", redirectToDefaultLocale)

	// 页面路由
	pages := r.Group("/:locale", LocaleParamMiddleware())
	{
		pages.GET("/admin/login", adminPage("admin-login", "Admin Login"))
		pages.GET("/admin/upload", AdminPageGateMiddleware(c.AuthService), adminPage("admin-upload", "Product Upload"))
	}

	api := r.Group("/api")
	{
		// 公开接口
		api.GET("/products", publicHandler.GetProducts)
		api.GET("/products/:id", publicHandler.GetProduct)
		api.GET("/categories", publicHandler.GetCategories)
		api.POST("/quote", publicHandler.SubmitQuote)

		// 管理员登录
		api.POST("/admin/login", RateLimitMiddleware(cache.Client(), adminLoginRule, KeyByIPAndJSONField("email")), adminHandler.AdminLogin)
		api.POST("/admin/logout", adminHandler.AdminLogout)

		// 需要管理员会话的接口
		authorized := api.Group("", AdminSessionMiddleware(c.AuthService), AdminRBACMiddleware(c.AuthzService))
		{
			authorized.POST("/upload", adminHandler.UploadImages)
			authorized.POST("/ai-generate", adminHandler.GenerateListing)
			authorized.PUT("/ai-generate", adminHandler.LearnFromEdit)
			authorized.POST("/products", adminHandler.CreateProduct)
			authorized.PUT("/products", adminHandler.ReplaceProducts)

			authorized.GET("/admin/me", adminHandler.GetAdminMe)
			authorized.GET("/admin/stats", adminHandler.GetStats)
			authorized.GET("/admin/products/export", adminHandler.ExportProducts)
			authorized.POST("/admin/products/import", adminHandler.ImportProducts)

			authorized.GET("/admin/emails", adminHandler.GetEmailConfig)
			authorized.POST("/admin/emails", adminHandler.AddEmailRecipient)
			authorized.PUT("/admin/emails/:index", adminHandler.UpdateEmailRecipient)
			authorized.DELETE("/admin/emails/:index", adminHandler.DeleteEmailRecipient)

			authorized.GET("/admin/ai-template", adminHandler.GetAITemplate)
			authorized.PUT("/admin/ai-template", adminHandler.UpdateAITemplate)
		}
	}

	return r
}
