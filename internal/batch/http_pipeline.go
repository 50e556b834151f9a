package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/craftshowcase/internal/models"
)

// HTTPPipeline 通过管理端 HTTP 接口执行上传、生成与发布
type HTTPPipeline struct {
	baseURL string
	client  *http.Client
}

// NewHTTPPipeline 创建 HTTP 管道，client 为空时使用带 cookie jar 的默认客户端
func NewHTTPPipeline(baseURL string, client *http.Client) (*HTTPPipeline, error) {
	if client == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		client = &http.Client{Jar: jar}
	}
	if client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		client.Jar = jar
	}
	return &HTTPPipeline{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), client: client}, nil
}

// Login 登录管理端，会话 cookie 保存在 jar 中
func (p *HTTPPipeline) Login(ctx context.Context, email, password string) error {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/admin/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return p.do(req, nil)
}

// Upload 上传单张图片，返回公开地址
func (p *HTTPPipeline) Upload(ctx context.Context, name string, data []byte) (string, error) {
	req, err := p.multipartRequest(ctx, "/api/upload", "images", name, data, nil)
	if err != nil {
		return "", err
	}
	var result struct {
		Files []string `json:"files"`
	}
	if err := p.do(req, &result); err != nil {
		return "", err
	}
	if len(result.Files) == 0 {
		return "", errors.New("upload returned no files")
	}
	return result.Files[0], nil
}

// Generate 请求 AI 草稿，不在服务端自动发布
func (p *HTTPPipeline) Generate(ctx context.Context, name string, data []byte) (*models.GeneratedListing, error) {
	req, err := p.multipartRequest(ctx, "/api/ai-generate", "image", name, data, map[string]string{"autoPublish": "false"})
	if err != nil {
		return nil, err
	}
	var result struct {
		Product *models.GeneratedListing `json:"product"`
	}
	if err := p.do(req, &result); err != nil {
		return nil, err
	}
	return result.Product, nil
}

// Publish 带图片地址保存商品
func (p *HTTPPipeline) Publish(ctx context.Context, draft models.GeneratedListing, images []string) (*models.Listing, error) {
	payload := struct {
		models.GeneratedListing
		Images []string `json:"images"`
	}{GeneratedListing: draft, Images: images}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/products", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	var result struct {
		Product *models.Listing `json:"product"`
	}
	if err := p.do(req, &result); err != nil {
		return nil, err
	}
	return result.Product, nil
}

func (p *HTTPPipeline) multipartRequest(ctx context.Context, path, field, name string, data []byte, fields map[string]string) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

// do 发送请求；非 2xx 时返回响应中的 msg
func (p *HTTPPipeline) do(req *http.Request, dest interface{}) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(raw, &envelope) == nil && envelope.Msg != "" {
			return fmt.Errorf("%s (status %d)", envelope.Msg, resp.StatusCode)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if dest == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
