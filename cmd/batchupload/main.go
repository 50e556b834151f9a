package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/craftshowcase/internal/batch"
	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/logger"
)

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

func main() {
	var (
		baseURL     string
		email       string
		password    string
		autoPublish bool
		timeout     time.Duration
	)
	flag.StringVar(&baseURL, "base", "http://localhost:8080", "服务地址")
	flag.StringVar(&email, "email", os.Getenv("ADMIN_EMAIL"), "管理员邮箱")
	flag.StringVar(&password, "password", os.Getenv("ADMIN_PASSWORD"), "管理员密码")
	flag.BoolVar(&autoPublish, "publish", true, "生成后直接发布")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "单次调用超时")
	flag.Parse()

	logger.Init("debug", logger.Options{})
	stdLog := logger.StdLogger()

	files, err := collectImages(flag.Args())
	if err != nil {
		stdLog.Fatalf("读取图片失败: %v", err)
	}
	if len(files) == 0 {
		stdLog.Fatalf("用法: batchupload [flags] <图片或目录>...")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pipeline, err := batch.NewHTTPPipeline(baseURL, nil)
	if err != nil {
		stdLog.Fatalf("初始化客户端失败: %v", err)
	}
	if err := pipeline.Login(ctx, email, password); err != nil {
		stdLog.Fatalf("登录失败: %v", err)
	}

	orchestrator := batch.NewOrchestrator(pipeline, batch.Options{
		AutoPublish: autoPublish,
		CallTimeout: timeout,
		OnUpdate: func(index int, item batch.Item) {
			switch item.Status {
			case constants.BatchStatusSuccess:
				id := ""
				if item.Listing != nil {
					id = item.Listing.ID
				}
				fmt.Printf("[%d] %s ok %s %s\n", index+1, item.Name, item.ImageURL, id)
			case constants.BatchStatusError:
				fmt.Printf("[%d] %s error: %s\n", index+1, item.Name, item.Error)
			case constants.BatchStatusProcessing:
				fmt.Printf("[%d] %s processing\n", index+1, item.Name)
			}
		},
	})
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			stdLog.Fatalf("读取 %s 失败: %v", path, err)
		}
		orchestrator.Add(filepath.Base(path), data)
	}

	summary, err := orchestrator.Run(ctx)
	fmt.Printf("success=%d error=%d pending=%d\n", summary.Success, summary.Error, summary.Pending)
	if err != nil {
		stdLog.Printf("批次中断: %v", err)
		os.Exit(1)
	}
	if summary.Error > 0 {
		os.Exit(2)
	}
}

// collectImages 展开目录，保留图片文件并按路径排序
func collectImages(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, entry := range entries {
			if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}
			found = append(found, filepath.Join(arg, entry.Name()))
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
