package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/logger"

	"go.uber.org/zap"
)

// 启动模式
//   - all: 目录 API + 定时导出，队列开启时同时消费询价邮件
//   - api: 只提供 HTTP 接口与定时导出
//   - worker: 只消费询价邮件队列
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// ParseMode 解析 -mode 参数，空值视为 all
func ParseMode(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "":
		return ModeAll, nil
	case ModeAll, ModeAPI, ModeWorker:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %s, %s or %s)", raw, ModeAll, ModeAPI, ModeWorker)
	}
}

// normalizeOptions 补齐默认参数；AI 生成请求较慢，关停等待不短于 AI 超时
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.Named("app")
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
		if opts.Config != nil {
			if ai := time.Duration(opts.Config.AI.TimeoutSeconds) * time.Second; ai > opts.ShutdownTimeout {
				opts.ShutdownTimeout = ai
			}
		}
	}
	if mode, err := ParseMode(opts.Mode); err == nil {
		opts.Mode = mode
	}
	return opts
}
