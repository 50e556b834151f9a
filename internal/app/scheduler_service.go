package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/logger"
	"github.com/craftshowcase/internal/metrics"
	"github.com/craftshowcase/internal/models"

	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ListingSource 导出任务读取商品的来源
type ListingSource interface {
	List(ctx context.Context) ([]models.Listing, error)
}

// ListingExporter 商品导出器
type ListingExporter interface {
	Export(listings []models.Listing, w io.Writer) error
}

// SchedulerService 定时任务服务，负责商品 Excel 定时备份
type SchedulerService struct {
	sched    *cron.Cron
	cfg      config.SchedulerConfig
	listings ListingSource
	exporter ListingExporter
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewSchedulerService 创建定时任务服务
func NewSchedulerService(cfg config.SchedulerConfig, listings ListingSource, exporter ListingExporter, m *metrics.Metrics) (*SchedulerService, error) {
	if listings == nil || exporter == nil {
		return nil, errors.New("scheduler dependencies missing")
	}
	loc := time.UTC
	if tz := strings.TrimSpace(cfg.Timezone); tz != "" {
		if loaded, err := time.LoadLocation(tz); err == nil {
			loc = loaded
		} else {
			logger.Warnw("scheduler_timezone_invalid", "timezone", tz, "error", err)
		}
	}
	s := &SchedulerService{
		sched:    cron.New(cron.WithLocation(loc), cron.WithParser(cronParser)),
		cfg:      cfg,
		listings: listings,
		exporter: exporter,
		metrics:  m,
		now:      time.Now,
	}
	spec := strings.TrimSpace(cfg.ExportCron)
	if spec == "" {
		spec = "@daily"
	}
	if _, err := s.sched.AddFunc(spec, s.exportJob); err != nil {
		return nil, fmt.Errorf("register export job: %w", err)
	}
	return s, nil
}

// Name 服务名称
func (s *SchedulerService) Name() string {
	return "scheduler"
}

// Start 启动定时器并阻塞到 ctx 结束
func (s *SchedulerService) Start(ctx context.Context) error {
	s.sched.Start()
	<-ctx.Done()
	return nil
}

// Stop 停止定时器，等待执行中的任务完成
func (s *SchedulerService) Stop(ctx context.Context) error {
	done := s.sched.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SchedulerService) exportJob() {
	defer func() {
		if err := recover(); err != nil {
			logger.Errorw("scheduler_export_panic", "error", err)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	path, err := s.RunExport(ctx)
	if err != nil {
		logger.Errorw("scheduler_export_failed", "error", err)
		return
	}
	logger.Infow("scheduler_export_done", "path", path)
}

// RunExport 导出当前商品集合到 export_dir，返回文件路径
func (s *SchedulerService) RunExport(ctx context.Context) (string, error) {
	listings, err := s.listings.List(ctx)
	if err != nil {
		return "", fmt.Errorf("load listings: %w", err)
	}
	dir := strings.TrimSpace(s.cfg.ExportDir)
	if dir == "" {
		dir = filepath.Join("data", "exports")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	name := fmt.Sprintf("products-%s.xlsx", s.now().Format("20060102-150405"))
	tmp, err := os.CreateTemp(dir, ".export-*.xlsx")
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	tmpName := tmp.Name()
	if err := s.exporter.Export(listings, tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close export file: %w", err)
	}
	target := filepath.Join(dir, name)
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("publish export file: %w", err)
	}
	s.metrics.RecordExport("scheduled")
	return target, nil
}
