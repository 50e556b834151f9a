package admin

import (
	"strconv"

	"github.com/craftshowcase/internal/http/response"
	"github.com/craftshowcase/internal/i18n"
	"github.com/craftshowcase/internal/models"

	"github.com/gin-gonic/gin"
)

// GetEmailConfig 读取询价通知收件人配置
func (h *Handler) GetEmailConfig(c *gin.Context) {
	cfg, err := h.SettingService.GetConfig()
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"emails": cfg.Emails})
}

// AddEmailRecipient 新增收件人
func (h *Handler) AddEmailRecipient(c *gin.Context) {
	var req models.EmailRecipient
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.recipient_invalid", nil)
		return
	}
	cfg, err := h.SettingService.AddRecipient(req)
	if err != nil {
		respondWithMappedError(c, err, recipientErrorRules, response.CodeInternal, "error.config_save_failed")
		return
	}
	h.respondRecipients(c, cfg)
}

// UpdateEmailRecipient 按序号更新收件人
func (h *Handler) UpdateEmailRecipient(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	var req models.EmailRecipient
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.recipient_invalid", nil)
		return
	}
	cfg, err := h.SettingService.UpdateRecipient(index, req)
	if err != nil {
		respondWithMappedError(c, err, recipientErrorRules, response.CodeInternal, "error.config_save_failed")
		return
	}
	h.respondRecipients(c, cfg)
}

// DeleteEmailRecipient 按序号删除收件人
func (h *Handler) DeleteEmailRecipient(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	cfg, err := h.SettingService.DeleteRecipient(index)
	if err != nil {
		respondWithMappedError(c, err, recipientErrorRules, response.CodeInternal, "error.config_save_failed")
		return
	}
	h.respondRecipients(c, cfg)
}

func (h *Handler) respondRecipients(c *gin.Context, cfg *models.SystemConfig) {
	response.Success(c, gin.H{
		"message": i18n.T(i18n.ResolveLocale(c), "success.recipients_updated"),
		"emails":  cfg.Emails,
	})
}

func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return index, true
}

// GetAITemplate 读取生成模板（指引与修正样例）
func (h *Handler) GetAITemplate(c *gin.Context) {
	template, err := h.LearningService.Template()
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"template": template})
}

// UpdateAITemplateRequest 更新运营指引请求
type UpdateAITemplateRequest struct {
	Prompt string `json:"prompt"`
}

// UpdateAITemplate 更新运营指引
func (h *Handler) UpdateAITemplate(c *gin.Context) {
	var req UpdateAITemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	template, err := h.LearningService.UpdateGuidance(req.Prompt)
	if err != nil {
		respondError(c, response.CodeInternal, "error.learning_failed", err)
		return
	}
	response.Success(c, gin.H{
		"message":  i18n.T(i18n.ResolveLocale(c), "success.template_prompt_saved"),
		"template": template,
	})
}
