package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/logger"
	"github.com/craftshowcase/internal/models"
)

var (
	// ErrItemNotFound 下标越界或条目已移除
	ErrItemNotFound = errors.New("batch item not found")
	// ErrItemBusy 条目正在处理
	ErrItemBusy = errors.New("batch item is processing")
	// ErrAlreadyRunning 同一批次不允许并发运行
	ErrAlreadyRunning = errors.New("batch already running")
)

const defaultCallTimeout = 2 * time.Minute

// Pipeline 单个条目的三步处理
type Pipeline interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
	Generate(ctx context.Context, name string, data []byte) (*models.GeneratedListing, error)
	Publish(ctx context.Context, draft models.GeneratedListing, images []string) (*models.Listing, error)
}

// Item 批次条目
type Item struct {
	Name     string
	Status   string
	ImageURL string
	Draft    *models.GeneratedListing
	Listing  *models.Listing
	Error    string

	data    []byte
	removed bool
}

// Options 批次选项
type Options struct {
	AutoPublish bool
	// CallTimeout 每次上传/生成/发布调用的超时
	CallTimeout time.Duration
	// OnUpdate 条目状态变化回调，在内部锁内执行，不能再调用编排器方法
	OnUpdate func(index int, item Item)
}

// Summary 各状态数量
type Summary struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Success    int `json:"success"`
	Error      int `json:"error"`
}

// Orchestrator 顺序处理图片批次，同一时刻只处理一个条目
type Orchestrator struct {
	mu       sync.Mutex
	items    []*Item
	pipeline Pipeline
	opts     Options
	running  bool
}

// NewOrchestrator 创建批次编排器
func NewOrchestrator(pipeline Pipeline, opts Options) *Orchestrator {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultCallTimeout
	}
	return &Orchestrator{pipeline: pipeline, opts: opts}
}

// Add 追加待处理图片，返回下标
func (o *Orchestrator) Add(name string, data []byte) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items = append(o.items, &Item{Name: name, Status: constants.BatchStatusPending, data: data})
	return len(o.items) - 1
}

// Items 返回条目快照
func (o *Orchestrator) Items() []Item {
	o.mu.Lock()
	defer o.mu.Unlock()
	result := make([]Item, 0, len(o.items))
	for _, item := range o.items {
		result = append(result, item.snapshot())
	}
	return result
}

// Summary 统计各状态数量
func (o *Orchestrator) Summary() Summary {
	o.mu.Lock()
	defer o.mu.Unlock()
	var s Summary
	for _, item := range o.items {
		switch item.Status {
		case constants.BatchStatusPending:
			s.Pending++
		case constants.BatchStatusProcessing:
			s.Processing++
		case constants.BatchStatusSuccess:
			s.Success++
		case constants.BatchStatusError:
			s.Error++
		}
	}
	return s
}

// Remove 移除条目并释放图片数据
func (o *Orchestrator) Remove(index int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if index < 0 || index >= len(o.items) {
		return ErrItemNotFound
	}
	item := o.items[index]
	if item.Status == constants.BatchStatusProcessing {
		return ErrItemBusy
	}
	item.removed = true
	item.data = nil
	o.items = append(o.items[:index], o.items[index+1:]...)
	return nil
}

// Reset 把失败条目恢复为待处理，供手动重试
func (o *Orchestrator) Reset(index int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if index < 0 || index >= len(o.items) {
		return ErrItemNotFound
	}
	item := o.items[index]
	if item.Status != constants.BatchStatusError {
		return fmt.Errorf("reset item in status %s", item.Status)
	}
	item.Status = constants.BatchStatusPending
	item.Error = ""
	return nil
}

// Run 按提交顺序处理所有待处理条目；单个失败不会中断批次，ctx 取消后剩余条目保持待处理
func (o *Orchestrator) Run(ctx context.Context) (Summary, error) {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return Summary{}, ErrAlreadyRunning
	}
	o.running = true
	queue := append([]*Item(nil), o.items...)
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	for _, item := range queue {
		if ctx.Err() != nil {
			break
		}
		data, ok := o.begin(item)
		if !ok {
			continue
		}
		o.process(ctx, item, data)
	}
	return o.Summary(), ctx.Err()
}

// begin 条目仍待处理时切换为处理中
func (o *Orchestrator) begin(item *Item) ([]byte, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if item.removed || item.Status != constants.BatchStatusPending {
		return nil, false
	}
	item.Status = constants.BatchStatusProcessing
	o.notifyLocked(item)
	return item.data, true
}

func (o *Orchestrator) process(ctx context.Context, item *Item, data []byte) {
	imageURL, draft, listing, err := o.runSteps(ctx, item.Name, data)

	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case err != nil && ctx.Err() != nil:
		item.Status = constants.BatchStatusPending
		logger.Infow("batch_item_cancelled", "name", item.Name)
	case err != nil:
		item.Status = constants.BatchStatusError
		item.Error = err.Error()
		if item.Error == "" {
			item.Error = "Unknown error"
		}
		logger.Warnw("batch_item_failed", "name", item.Name, "error", err)
	default:
		item.Status = constants.BatchStatusSuccess
		item.ImageURL = imageURL
		item.Draft = draft
		item.Listing = listing
		logger.Infow("batch_item_succeeded", "name", item.Name, "image", imageURL)
	}
	o.notifyLocked(item)
}

func (o *Orchestrator) runSteps(ctx context.Context, name string, data []byte) (string, *models.GeneratedListing, *models.Listing, error) {
	var imageURL string
	err := o.call(ctx, func(callCtx context.Context) error {
		url, err := o.pipeline.Upload(callCtx, name, data)
		imageURL = url
		return err
	})
	if err != nil {
		return "", nil, nil, fmt.Errorf("upload failed: %w", err)
	}

	var draft *models.GeneratedListing
	err = o.call(ctx, func(callCtx context.Context) error {
		generated, err := o.pipeline.Generate(callCtx, name, data)
		draft = generated
		return err
	})
	if err != nil {
		return "", nil, nil, fmt.Errorf("AI generation failed: %w", err)
	}
	if draft == nil {
		return "", nil, nil, errors.New("AI generation failed: empty draft")
	}
	if !o.opts.AutoPublish {
		return imageURL, draft, nil, nil
	}

	var listing *models.Listing
	err = o.call(ctx, func(callCtx context.Context) error {
		published, err := o.pipeline.Publish(callCtx, *draft, []string{imageURL})
		listing = published
		return err
	})
	if err != nil {
		return "", nil, nil, fmt.Errorf("save product failed: %w", err)
	}
	return imageURL, draft, listing, nil
}

func (o *Orchestrator) call(ctx context.Context, fn func(context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, o.opts.CallTimeout)
	defer cancel()
	return fn(callCtx)
}

func (o *Orchestrator) notifyLocked(item *Item) {
	if o.opts.OnUpdate == nil {
		return
	}
	for idx, current := range o.items {
		if current == item {
			o.opts.OnUpdate(idx, item.snapshot())
			return
		}
	}
}

func (item *Item) snapshot() Item {
	return Item{
		Name:     item.Name,
		Status:   item.Status,
		ImageURL: item.ImageURL,
		Draft:    item.Draft,
		Listing:  item.Listing,
		Error:    item.Error,
	}
}
