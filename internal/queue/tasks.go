package queue

import (
	"encoding/json"

	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/models"

	"github.com/hibiken/asynq"
)

const (
	// TaskQuoteEmail 询价邮件通知任务
	TaskQuoteEmail = constants.TaskQuoteEmail
)

// QuoteEmailPayload 询价邮件任务载荷
type QuoteEmailPayload struct {
	Quote models.QuoteRequest `json:"quote"`
}

// NewQuoteEmailTask 创建询价邮件任务
func NewQuoteEmailTask(payload QuoteEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuoteEmail, body), nil
}

// DecodeQuoteEmailPayload 解析询价邮件任务载荷
func DecodeQuoteEmailPayload(task *asynq.Task) (QuoteEmailPayload, error) {
	var payload QuoteEmailPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
