package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/craftshowcase/internal/logger"
	"github.com/craftshowcase/internal/models"
)

// QuoteMailer 询价邮件发送
type QuoteMailer interface {
	SendQuote(recipients []string, req models.QuoteRequest) error
}

// QuoteEnqueuer 询价邮件异步投递
type QuoteEnqueuer interface {
	Enabled() bool
	EnqueueQuoteEmail(req models.QuoteRequest) error
}

// RecipientSource 收件人来源
type RecipientSource interface {
	EnabledRecipients() ([]string, error)
}

// QuoteService 询价服务
type QuoteService struct {
	recipients RecipientSource
	mailer     QuoteMailer
	queue      QuoteEnqueuer
}

// NewQuoteService 创建询价服务，queue 为 nil 或未启用时同步发送
func NewQuoteService(recipients RecipientSource, mailer QuoteMailer, queue QuoteEnqueuer) *QuoteService {
	return &QuoteService{recipients: recipients, mailer: mailer, queue: queue}
}

// ValidateQuote 校验并清理询价
func ValidateQuote(req *models.QuoteRequest) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Email = strings.TrimSpace(req.Email)
	if req.CustomerName == "" || req.Email == "" || len(req.Products) == 0 {
		return ErrQuoteFieldsMissing
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return ErrQuoteEmailInvalid
	}
	return nil
}

// Submit 校验询价并通知全部启用的收件人
func (s *QuoteService) Submit(ctx context.Context, req models.QuoteRequest) error {
	if err := ValidateQuote(&req); err != nil {
		return err
	}
	recipients, err := s.resolveRecipients()
	if err != nil {
		return err
	}
	if s.queue != nil && s.queue.Enabled() {
		if err := s.queue.EnqueueQuoteEmail(req); err != nil {
			logger.Warnw("quote_enqueue_failed_fallback_sync", "error", err)
		} else {
			return nil
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return s.mailer.SendQuote(recipients, req)
}

// Deliver 异步任务中投递询价邮件
func (s *QuoteService) Deliver(req models.QuoteRequest) error {
	recipients, err := s.resolveRecipients()
	if err != nil {
		return err
	}
	return s.mailer.SendQuote(recipients, req)
}

func (s *QuoteService) resolveRecipients() ([]string, error) {
	recipients, err := s.recipients.EnabledRecipients()
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}
	return recipients, nil
}
