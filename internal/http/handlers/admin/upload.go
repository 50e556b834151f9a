package admin

import (
	"github.com/craftshowcase/internal/http/response"
	"github.com/craftshowcase/internal/i18n"

	"github.com/gin-gonic/gin"
)

// UploadImages 上传商品图片（表单字段 images，可多个）
func (h *Handler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || form == nil || len(form.File["images"]) == 0 {
		h.Metrics.RecordUpload("rejected", 0)
		respondError(c, response.CodeBadRequest, "error.upload_no_files", nil)
		return
	}
	headers := form.File["images"]

	files, err := h.UploadService.SaveImages(headers)
	if err != nil {
		h.Metrics.RecordUpload("failed", len(headers))
		respondWithMappedError(c, err, uploadErrorRules, response.CodeInternal, "error.upload_failed")
		return
	}

	h.Metrics.RecordUpload("success", len(files))
	response.Success(c, gin.H{
		"message": i18n.T(i18n.ResolveLocale(c), "success.files_uploaded"),
		"files":   files,
	})
}
