package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/repository"

	"gopkg.in/gomail.v2"
)

type fakeMailer struct {
	calls      int
	recipients []string
	last       models.QuoteRequest
	err        error
}

func (f *fakeMailer) SendQuote(recipients []string, req models.QuoteRequest) error {
	f.calls++
	f.recipients = recipients
	f.last = req
	return f.err
}

type fakeQueue struct {
	enabled  bool
	err      error
	enqueued []models.QuoteRequest
}

func (f *fakeQueue) Enabled() bool { return f.enabled }

func (f *fakeQueue) EnqueueQuoteEmail(req models.QuoteRequest) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, req)
	return nil
}

type fakeSender struct {
	messages []*gomail.Message
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.messages = append(f.messages, m...)
	return nil
}

func newTestSettingService(t *testing.T) *SettingService {
	t.Helper()
	return NewSettingService(repository.NewSystemConfigRepository(newTestStore(t)), "sales@example.com")
}

func validQuote() models.QuoteRequest {
	return models.QuoteRequest{
		CustomerName: "  Ali  ",
		Email:        "ali@example.com",
		Company:      "Oasis Trading",
		Products:     []models.QuoteItem{{ProductID: "p-1", ProductName: "Brass Burner", Quantity: 200}},
		Message:      "Need samples",
	}
}

func TestSubmitRejectsMissingFieldsWithoutSending(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewQuoteService(newTestSettingService(t), mailer, nil)

	missingEmail := validQuote()
	missingEmail.Email = ""
	if err := svc.Submit(context.Background(), missingEmail); !errors.Is(err, ErrQuoteFieldsMissing) {
		t.Fatalf("expected ErrQuoteFieldsMissing, got %v", err)
	}
	noProducts := validQuote()
	noProducts.Products = nil
	if err := svc.Submit(context.Background(), noProducts); !errors.Is(err, ErrQuoteFieldsMissing) {
		t.Fatalf("expected ErrQuoteFieldsMissing, got %v", err)
	}
	badEmail := validQuote()
	badEmail.Email = "not-an-email"
	if err := svc.Submit(context.Background(), badEmail); !errors.Is(err, ErrQuoteEmailInvalid) {
		t.Fatalf("expected ErrQuoteEmailInvalid, got %v", err)
	}
	if mailer.calls != 0 {
		t.Fatalf("no email should be sent, got %d calls", mailer.calls)
	}
}

func TestSubmitSendsToEnabledRecipients(t *testing.T) {
	settings := newTestSettingService(t)
	if _, err := settings.AddRecipient(models.EmailRecipient{Department: "Export", Email: "export@example.com", Enabled: true}); err != nil {
		t.Fatalf("add recipient failed: %v", err)
	}
	if _, err := settings.AddRecipient(models.EmailRecipient{Department: "Muted", Email: "muted@example.com", Enabled: false}); err != nil {
		t.Fatalf("add recipient failed: %v", err)
	}
	mailer := &fakeMailer{}
	svc := NewQuoteService(settings, mailer, &fakeQueue{enabled: false})

	if err := svc.Submit(context.Background(), validQuote()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if mailer.calls != 1 {
		t.Fatalf("expected one send, got %d", mailer.calls)
	}
	if strings.Join(mailer.recipients, ",") != "sales@example.com,export@example.com" {
		t.Fatalf("unexpected recipients %v", mailer.recipients)
	}
	if mailer.last.CustomerName != "Ali" {
		t.Fatalf("customer name should be trimmed, got %q", mailer.last.CustomerName)
	}
}

func TestSubmitWithoutRecipients(t *testing.T) {
	settings := newTestSettingService(t)
	if _, err := settings.DeleteRecipient(0); err != nil {
		t.Fatalf("delete recipient failed: %v", err)
	}
	mailer := &fakeMailer{}
	svc := NewQuoteService(settings, mailer, nil)
	if err := svc.Submit(context.Background(), validQuote()); !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("expected ErrNoRecipients, got %v", err)
	}
	if mailer.calls != 0 {
		t.Fatalf("no email should be sent")
	}
}

func TestSubmitEnqueuesWhenQueueEnabled(t *testing.T) {
	mailer := &fakeMailer{}
	queue := &fakeQueue{enabled: true}
	svc := NewQuoteService(newTestSettingService(t), mailer, queue)
	if err := svc.Submit(context.Background(), validQuote()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(queue.enqueued) != 1 || mailer.calls != 0 {
		t.Fatalf("expected enqueue only, enqueued=%d sends=%d", len(queue.enqueued), mailer.calls)
	}

	queue.err = errors.New("redis down")
	if err := svc.Submit(context.Background(), validQuote()); err != nil {
		t.Fatalf("submit should fall back to sync send: %v", err)
	}
	if mailer.calls != 1 {
		t.Fatalf("expected sync fallback send, got %d", mailer.calls)
	}
}

func TestBuildQuoteEmailEscapesInput(t *testing.T) {
	req := validQuote()
	req.CustomerName = "Ali"
	req.Message = "<script>alert(1)</script>"
	subject, body, err := BuildQuoteEmail(req)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if subject != "New Quote Request - Ali | 新询价申请 - Ali" {
		t.Fatalf("unexpected subject %q", subject)
	}
	if strings.Contains(body, "<script>") || !strings.Contains(body, "&lt;script&gt;") {
		t.Fatalf("message should be escaped")
	}
	if !strings.Contains(body, "Brass Burner") || !strings.Contains(body, "200") || !strings.Contains(body, "Oasis Trading") {
		t.Fatalf("body missing quote details")
	}
	if strings.Contains(body, "Phone / 电话") {
		t.Fatalf("empty phone should be omitted")
	}
}

func TestEmailServiceSendQuoteHeaders(t *testing.T) {
	sender := &fakeSender{}
	svc := NewEmailServiceWithSender(&config.EmailConfig{Enabled: true, From: "noreply@example.com", FromName: "Catalog"}, sender)
	if err := svc.SendQuote([]string{"a@example.com", "b@example.com"}, validQuote()); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(sender.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(sender.messages))
	}
	msg := sender.messages[0]
	if to := msg.GetHeader("To"); len(to) != 2 {
		t.Fatalf("expected two recipients, got %v", to)
	}
	if reply := msg.GetHeader("Reply-To"); len(reply) != 1 || reply[0] != "ali@example.com" {
		t.Fatalf("unexpected reply-to %v", reply)
	}

	disabled := NewEmailServiceWithSender(&config.EmailConfig{Enabled: false}, sender)
	if err := disabled.SendQuote([]string{"a@example.com"}, validQuote()); !errors.Is(err, ErrEmailDisabled) {
		t.Fatalf("expected ErrEmailDisabled, got %v", err)
	}
}
