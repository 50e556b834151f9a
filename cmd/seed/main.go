package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/logger"
	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/provider"
)

func main() {
	var excelPath, exportPath string
	flag.StringVar(&excelPath, "excel", "", "从 Excel 导入商品（整体替换）")
	flag.StringVar(&exportPath, "export", "", "导出当前商品到 Excel")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if strings.EqualFold(strings.TrimSpace(cfg.Storage.Driver), constants.StorageDriverDatabase) {
		if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		}); err != nil {
			stdLog.Fatalf("Failed to connect database: %v", err)
		}
		if err := models.AutoMigrate(models.DB); err != nil {
			stdLog.Fatalf("Failed to migrate database: %v", err)
		}
	}

	// 容器初始化时会写入默认分类
	container, err := provider.NewContainer(cfg)
	if err != nil {
		stdLog.Fatalf("Failed to init container: %v", err)
	}
	defer container.Close()

	categories, err := container.CategoryService.List()
	if err != nil {
		stdLog.Fatalf("Failed to load categories: %v", err)
	}
	for _, category := range categories {
		stdLog.Printf("Category ready: %s", category.Slug)
	}

	ctx := context.Background()
	if excelPath != "" {
		file, err := os.Open(excelPath)
		if err != nil {
			stdLog.Fatalf("Failed to open %s: %v", excelPath, err)
		}
		listings, err := container.ExcelService.Import(file)
		_ = file.Close()
		if err != nil {
			stdLog.Fatalf("Failed to read %s: %v", excelPath, err)
		}
		if err := container.ListingService.SaveAll(ctx, listings); err != nil {
			stdLog.Fatalf("Failed to save products: %v", err)
		}
		stdLog.Printf("Imported %d products from %s", len(listings), excelPath)
	}

	if exportPath != "" {
		listings, err := container.ListingService.List(ctx)
		if err != nil {
			stdLog.Fatalf("Failed to load products: %v", err)
		}
		file, err := os.Create(exportPath)
		if err != nil {
			stdLog.Fatalf("Failed to create %s: %v", exportPath, err)
		}
		if err := container.ExcelService.Export(listings, file); err != nil {
			_ = file.Close()
			stdLog.Fatalf("Failed to export products: %v", err)
		}
		if err := file.Close(); err != nil {
			stdLog.Fatalf("Failed to close %s: %v", exportPath, err)
		}
		stdLog.Printf("Exported %d products to %s", len(listings), exportPath)
	}

	stdLog.Printf("Seed completed")
}
