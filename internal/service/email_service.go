package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/models"

	"gopkg.in/gomail.v2"
)

// MailSender 邮件投递通道
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService 邮件发送服务
type EmailService struct {
	cfg    *config.EmailConfig
	sender MailSender
}

// NewEmailService 创建邮件服务（SMTP）
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	if cfg == nil {
		cfg = &config.EmailConfig{}
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.UseSSL
	return &EmailService{cfg: cfg, sender: dialer}
}

// NewEmailServiceWithSender 使用自定义投递通道
func NewEmailServiceWithSender(cfg *config.EmailConfig, sender MailSender) *EmailService {
	if cfg == nil {
		cfg = &config.EmailConfig{}
	}
	return &EmailService{cfg: cfg, sender: sender}
}

// SendQuote 把询价邮件一次发给全部收件人，回复地址为客户邮箱
func (s *EmailService) SendQuote(recipients []string, req models.QuoteRequest) error {
	if !s.cfg.Enabled {
		return ErrEmailDisabled
	}
	if len(recipients) == 0 {
		return ErrNoRecipients
	}
	subject, body, err := BuildQuoteEmail(req)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.fromAddress(msg))
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Reply-To", req.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := s.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send quote email: %w", err)
	}
	return nil
}

func (s *EmailService) fromAddress(msg *gomail.Message) string {
	from := strings.TrimSpace(s.cfg.From)
	if from == "" {
		from = strings.TrimSpace(s.cfg.Username)
	}
	if name := strings.TrimSpace(s.cfg.FromName); name != "" && from != "" {
		return msg.FormatAddress(from, name)
	}
	return from
}

var quoteEmailTemplate = template.Must(template.New("quote").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #333; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; background-color: #f9f9f9; }
    table { width: 100%; border-collapse: collapse; margin: 20px 0; }
    th { background-color: #333; color: white; padding: 10px; }
    td { padding: 10px; border: 1px solid #ddd; }
    .footer { text-align: center; padding: 20px; font-size: 12px; color: #666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>New Quote Request / 新的询价申请</h1></div>
    <div class="content">
      <h2>Customer / 客户信息</h2>
      <p><strong>Name / 姓名:</strong> {{.CustomerName}}</p>
      <p><strong>Email / 邮箱:</strong> {{.Email}}</p>
      {{- if .Company}}
      <p><strong>Company / 公司:</strong> {{.Company}}</p>
      {{- end}}
      {{- if .Phone}}
      <p><strong>Phone / 电话:</strong> {{.Phone}}</p>
      {{- end}}
      <h2>Products / 询价产品</h2>
      <table>
        <thead><tr><th style="text-align: left;">Product / 产品名称</th><th>Quantity / 数量</th></tr></thead>
        <tbody>
          {{- range .Products}}
          <tr><td>{{.ProductName}}</td><td style="text-align: center;">{{.Quantity}}</td></tr>
          {{- end}}
        </tbody>
      </table>
      {{- if .CustomImages}}
      <h2>Customer Images / 客户上传的图片</h2>
      <div>
        {{- range $i, $img := .CustomImages}}
        <img src="{{$img}}" alt="Customer Image {{$i}}" style="max-width: 200px; max-height: 200px; margin: 5px;" />
        {{- end}}
      </div>
      {{- end}}
      {{- if .Message}}
      <h2>Message / 客户留言</h2>
      <p style="white-space: pre-wrap;">{{.Message}}</p>
      {{- end}}
    </div>
    <div class="footer"><p>Sent automatically by the craft showcase catalog / 此邮件由工艺品展示系统自动发送</p></div>
  </div>
</body>
</html>`))

// BuildQuoteEmail 生成询价邮件主题与 HTML 正文
func BuildQuoteEmail(req models.QuoteRequest) (string, string, error) {
	name := strings.TrimSpace(req.CustomerName)
	subject := fmt.Sprintf("New Quote Request - %s | 新询价申请 - %s", name, name)
	var buf bytes.Buffer
	if err := quoteEmailTemplate.Execute(&buf, req); err != nil {
		return "", "", fmt.Errorf("render quote email: %w", err)
	}
	return subject, buf.String(), nil
}
