package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/craftshowcase/internal/logger"
	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/queue"
	"github.com/craftshowcase/internal/service"

	"github.com/hibiken/asynq"
)

// QuoteDeliverer 询价邮件投递
type QuoteDeliverer interface {
	Deliver(req models.QuoteRequest) error
}

// Consumer 异步任务消费者
type Consumer struct {
	Quotes QuoteDeliverer
}

// NewConsumer 创建消费者
func NewConsumer(quotes QuoteDeliverer) *Consumer {
	return &Consumer{Quotes: quotes}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskQuoteEmail, c.handleQuoteEmail)
}

func (c *Consumer) handleQuoteEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Quotes == nil {
		logger.Debugw("worker_quote_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodeQuoteEmailPayload(task)
	if err != nil {
		logger.Warnw("worker_quote_email_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if err := service.ValidateQuote(&payload.Quote); err != nil {
		logger.Warnw("worker_quote_email_invalid_payload", "email", payload.Quote.Email, "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if err := c.Quotes.Deliver(payload.Quote); err != nil {
		if errors.Is(err, service.ErrNoRecipients) || errors.Is(err, service.ErrEmailDisabled) {
			logger.Warnw("worker_quote_email_dropped", "email", payload.Quote.Email, "error", err)
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		logger.Warnw("worker_quote_email_send_failed", "email", payload.Quote.Email, "error", err)
		return err
	}
	logger.Infow("worker_quote_email_sent", "email", payload.Quote.Email, "items", len(payload.Quote.Products))
	return nil
}
