package public

import (
	"github.com/craftshowcase/internal/http/response"
	"github.com/craftshowcase/internal/i18n"
	"github.com/craftshowcase/internal/models"

	"github.com/gin-gonic/gin"
)

// SubmitQuote 提交询价，通知全部启用的收件人
func (h *Handler) SubmitQuote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Metrics.RecordQuote("invalid")
		respondError(c, response.CodeBadRequest, "error.quote_fields_missing", nil)
		return
	}

	if err := h.QuoteService.Submit(c.Request.Context(), req); err != nil {
		h.Metrics.RecordQuote("failed")
		respondWithMappedError(c, err, quoteErrorRules, response.CodeInternal, "error.quote_send_failed")
		return
	}

	h.Metrics.RecordQuote("accepted")
	handlerLog(c).Infow("quote_submitted", "items", len(req.Products))
	response.Success(c, gin.H{
		"message": i18n.T(i18n.ResolveLocale(c), "success.quote_sent"),
	})
}
