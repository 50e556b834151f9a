package admin

import (
	"encoding/base64"
	"io"
	"strings"

	"github.com/craftshowcase/internal/http/response"
	"github.com/craftshowcase/internal/i18n"
	"github.com/craftshowcase/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// GenerateListing 根据上传图片生成商品草稿；autoPublish 为真时直接发布（无图片）
func (h *Handler) GenerateListing(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil || header == nil {
		respondError(c, response.CodeBadRequest, "error.image_required", nil)
		return
	}
	if maxSize := h.Config.Upload.MaxSize; maxSize > 0 && header.Size > maxSize {
		respondError(c, response.CodeBadRequest, "error.upload_rejected", nil)
		return
	}
	autoPublish := cast.ToBool(strings.TrimSpace(c.PostForm("autoPublish")))
	useTemplate := true
	if raw := strings.TrimSpace(c.PostForm("useTemplate")); raw != "" {
		useTemplate = cast.ToBool(raw)
	}

	src, err := header.Open()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.image_required", err)
		return
	}
	raw, err := io.ReadAll(src)
	_ = src.Close()
	if err != nil {
		respondError(c, response.CodeInternal, "error.generate_failed", err)
		return
	}
	imageBase64 := base64.StdEncoding.EncodeToString(raw)

	draft, err := h.GeneratorService.Generate(c.Request.Context(), imageBase64, useTemplate)
	if err != nil {
		h.Metrics.RecordGeneration("failed")
		respondError(c, response.CodeInternal, "error.generate_failed", err)
		return
	}
	h.Metrics.RecordGeneration("success")

	locale := i18n.ResolveLocale(c)
	if !autoPublish {
		response.Success(c, gin.H{
			"message": i18n.T(locale, "success.product_generated"),
			"product": draft,
		})
		return
	}

	listing, err := h.ListingService.Create(c.Request.Context(), *draft, nil)
	if err != nil {
		respondWithMappedError(c, err, listingErrorRules, response.CodeInternal, "error.product_create_failed")
		return
	}
	h.Metrics.RecordListingSave("auto_publish")
	requestLog(c).Infow("admin_listing_auto_published", "listing_id", listing.ID, "category", listing.Category)
	response.Success(c, gin.H{
		"message": i18n.T(locale, "success.product_published"),
		"product": listing,
	})
}

// LearnRequest 人工修正学习请求
type LearnRequest struct {
	OriginalAI  *models.GeneratedListing `json:"originalAI"`
	UserEdited  *models.GeneratedListing `json:"userEdited"`
	ImageBase64 string                   `json:"imageBase64"`
}

// LearnFromEdit 记录人工修正，作为后续生成的参考样例
func (h *Handler) LearnFromEdit(c *gin.Context) {
	var req LearnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.learning_fields_missing", nil)
		return
	}
	if err := h.LearningService.RecordCorrection(req.OriginalAI, req.UserEdited, req.ImageBase64); err != nil {
		respondWithMappedError(c, err, learningErrorRules, response.CodeInternal, "error.learning_failed")
		return
	}
	h.Metrics.RecordCorrection()
	response.Success(c, gin.H{
		"message": i18n.T(i18n.ResolveLocale(c), "success.template_updated"),
	})
}
