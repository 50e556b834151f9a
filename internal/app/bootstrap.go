package app

import (
	"errors"

	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/provider"
	"github.com/craftshowcase/internal/router"
	"github.com/craftshowcase/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, *provider.Container, error) {
	if cfg == nil {
		return nil, nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, nil, err
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg, engine))

		if cfg.Scheduler.Enabled {
			scheduler, err := NewSchedulerService(cfg.Scheduler, container.ListingService, container.ExcelService, container.Metrics)
			if err != nil {
				_ = container.Close()
				return nil, nil, err
			}
			services = append(services, scheduler)
		}
	}

	// 初始化 Worker 服务（队列关闭时询价邮件同步发送，无需 worker）
	if (mode == ModeAll && cfg.Queue.Enabled) || mode == ModeWorker {
		consumer := worker.NewConsumer(container.QuoteService)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			_ = container.Close()
			return nil, nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		_ = container.Close()
		return nil, nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), container, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, container, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}
	defer container.Close()

	opts.Logger.Infow("app_start",
		"mode", opts.Mode,
		"services", runner.Names(),
		"storage", opts.Config.Storage.Driver,
		"queue", opts.Config.Queue.Enabled,
	)
	return RunWithOptions(runner, opts)
}
