package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/craftshowcase/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrMissingAPIKey 未配置视觉模型密钥
	ErrMissingAPIKey = errors.New("ai api key is not configured")
	// ErrEmptyCompletion 模型未返回内容
	ErrEmptyCompletion = errors.New("no response from vision model")
)

// OpenAIVisionClient 基于 OpenAI 兼容接口的多模态补全
type OpenAIVisionClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewOpenAIVisionClient 创建客户端；未配置密钥时仍返回实例，调用时报错
func NewOpenAIVisionClient(cfg config.AIConfig) *OpenAIVisionClient {
	c := &OpenAIVisionClient{
		model:       strings.TrimSpace(cfg.Model),
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	if c.model == "" {
		c.model = openai.GPT4o
	}
	if c.maxTokens <= 0 {
		c.maxTokens = 2000
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return c
	}
	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	c.client = openai.NewClientWithConfig(clientCfg)
	return c
}

// Configured 是否已配置密钥
func (c *OpenAIVisionClient) Configured() bool {
	return c != nil && c.client != nil
}

// Complete 发送提示词与 JPEG 图片，返回模型文本
func (c *OpenAIVisionClient) Complete(ctx context.Context, prompt, imageBase64 string) (string, error) {
	if !c.Configured() {
		return "", ErrMissingAPIKey
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    "data:image/jpeg;base64," + imageBase64,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
