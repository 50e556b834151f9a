package provider

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/craftshowcase/internal/ai"
	"github.com/craftshowcase/internal/authz"
	"github.com/craftshowcase/internal/cache"
	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/logger"
	"github.com/craftshowcase/internal/metrics"
	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/queue"
	"github.com/craftshowcase/internal/repository"
	"github.com/craftshowcase/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Metrics     *metrics.Metrics
	Store       repository.DocumentStore
	Cache       *cache.ListingCache

	// Repositories
	ListingRepo      repository.ListingRepository
	CategoryRepo     repository.CategoryRepository
	TemplateRepo     repository.TemplateRepository
	SystemConfigRepo repository.SystemConfigRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	EmailService     *service.EmailService
	UploadService    *service.UploadService
	ListingService   *service.ListingService
	CategoryService  *service.CategoryService
	SettingService   *service.SettingService
	GeneratorService *service.GeneratorService
	LearningService  *service.LearningService
	QuoteService     *service.QuoteService
	ExcelService     *service.ExcelService
	SitemapService   *service.SitemapService
}

// NewContainer 初始化容器；storage.driver 为 database 时需先调用 models.InitDB
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}
	if cache.Enabled() {
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cache.Ping(pingCtx); err != nil {
			logger.Warnw("provider_redis_unreachable", "addr", cfg.Redis.Host, "error", err)
		}
		cancel()
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient = nil
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Cache:       cache.NewListingCache(cfg.Redis.CacheTTLSeconds),
	}
	if cfg.Metrics.Enabled {
		c.Metrics = metrics.New(cfg.Metrics.Prefix)
	}

	// 1. 初始化 Repositories
	if err := c.initRepositories(); err != nil {
		return nil, err
	}

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() error {
	driver := strings.ToLower(strings.TrimSpace(c.Config.Storage.Driver))
	switch driver {
	case "", constants.StorageDriverFile:
		store, err := repository.NewFileDocumentStore(c.Config.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("open file store: %w", err)
		}
		c.useDocumentStore(store)
	case constants.StorageDriverBolt:
		path := strings.TrimSpace(c.Config.Storage.BoltPath)
		if path == "" {
			path = filepath.Join(c.Config.Storage.DataDir, "catalog.db")
		}
		store, err := repository.NewBoltDocumentStore(path)
		if err != nil {
			return fmt.Errorf("open bolt store: %w", err)
		}
		c.useDocumentStore(store)
	case constants.StorageDriverDatabase:
		db := models.DB
		if db == nil {
			return fmt.Errorf("storage driver database requires an initialized database")
		}
		c.useDatabase(db)
	default:
		return fmt.Errorf("unsupported storage driver: %s", c.Config.Storage.Driver)
	}
	logger.Infow("provider_storage_ready", "driver", driver)
	return nil
}

func (c *Container) useDocumentStore(store repository.DocumentStore) {
	c.Store = store
	c.ListingRepo = repository.NewDocumentListingRepository(store)
	c.CategoryRepo = repository.NewDocumentCategoryRepository(store)
	c.TemplateRepo = repository.NewTemplateRepository(store)
	c.SystemConfigRepo = repository.NewSystemConfigRepository(store)
}

func (c *Container) useDatabase(db *gorm.DB) {
	store := repository.NewSettingStore(db)
	c.Store = store
	c.ListingRepo = repository.NewListingRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.TemplateRepo = repository.NewTemplateRepository(store)
	c.SystemConfigRepo = repository.NewSystemConfigRepository(store)
}

func (c *Container) initServices() error {
	var authzDB *gorm.DB
	if strings.EqualFold(strings.TrimSpace(c.Config.Storage.Driver), constants.StorageDriverDatabase) {
		authzDB = models.DB
	}
	authzService, err := authz.NewService(authzDB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	if err := authzService.BootstrapAdmin(c.Config.Admin.Email); err != nil {
		logger.Errorw("provider_bootstrap_admin_role_failed", "error", err)
		return err
	}
	c.AuthzService = authzService

	c.AuthService = service.NewAuthService(&c.Config.Admin)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.UploadService = service.NewUploadService(c.Config.Upload)
	c.ListingService = service.NewListingService(c.ListingRepo, c.Cache)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.Cache)
	if err := c.CategoryService.EnsureDefaults(); err != nil {
		logger.Warnw("provider_seed_categories_failed", "error", err)
	}
	c.SettingService = service.NewSettingService(c.SystemConfigRepo, c.Config.Admin.Email)
	c.GeneratorService = service.NewGeneratorService(ai.NewOpenAIVisionClient(c.Config.AI), c.TemplateRepo)
	c.LearningService = service.NewLearningService(c.TemplateRepo)

	var enqueuer service.QuoteEnqueuer
	if c.QueueClient != nil {
		enqueuer = c.QueueClient
	}
	c.QuoteService = service.NewQuoteService(c.SettingService, c.EmailService, enqueuer)
	c.ExcelService = service.NewExcelService()
	c.SitemapService = service.NewSitemapService(c.Config.Site.BaseURL, c.Config.Site.Locales)
	return nil
}

// Close 释放存储与队列连接
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_failed", "error", err)
		}
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}
