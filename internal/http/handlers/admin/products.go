package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/craftshowcase/internal/http/response"
	"github.com/craftshowcase/internal/i18n"
	"github.com/craftshowcase/internal/models"

	"github.com/gin-gonic/gin"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CreateProductRequest 新建商品请求（id 与时间戳由服务端分配）
type CreateProductRequest struct {
	models.GeneratedListing
	Images []string `json:"images"`
}

// CreateProduct 新建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
		return
	}

	listing, err := h.ListingService.Create(c.Request.Context(), req.GeneratedListing, req.Images)
	if err != nil {
		respondWithMappedError(c, err, listingErrorRules, response.CodeInternal, "error.product_create_failed")
		return
	}
	h.Metrics.RecordListingSave("create")
	response.Created(c, gin.H{
		"message": i18n.T(i18n.ResolveLocale(c), "success.product_created"),
		"product": listing,
	})
}

// ReplaceProducts 批量替换商品集合
func (h *Handler) ReplaceProducts(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	raw := bytes.TrimSpace(body["products"])
	if len(raw) == 0 || raw[0] != '[' {
		respondError(c, response.CodeBadRequest, "error.products_not_array", nil)
		return
	}
	var listings []models.Listing
	if err := json.Unmarshal(raw, &listings); err != nil {
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
		return
	}

	if err := h.ListingService.SaveAll(c.Request.Context(), listings); err != nil {
		respondWithMappedError(c, err, listingErrorRules, response.CodeInternal, "error.products_import_failed")
		return
	}
	h.Metrics.RecordListingSave("replace")
	response.Success(c, gin.H{
		"message": i18n.Sprintf(i18n.ResolveLocale(c), "success.products_imported", len(listings)),
	})
}

// GetStats 商品统计
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.ListingService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.products_fetch_failed", err)
		return
	}
	response.Success(c, stats)
}

// ExportProducts 导出全部商品为 Excel
func (h *Handler) ExportProducts(c *gin.Context) {
	listings, err := h.ListingService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.products_fetch_failed", err)
		return
	}
	var buf bytes.Buffer
	if err := h.ExcelService.Export(listings, &buf); err != nil {
		respondError(c, response.CodeInternal, "error.excel_export_failed", err)
		return
	}
	h.Metrics.RecordExport("manual")
	filename := fmt.Sprintf("products-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, excelContentType, buf.Bytes())
}

// ImportProducts 从 Excel 导入并整体替换商品集合
func (h *Handler) ImportProducts(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil || header == nil {
		respondError(c, response.CodeBadRequest, "error.upload_no_files", nil)
		return
	}
	src, err := header.Open()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.excel_invalid", err)
		return
	}
	defer src.Close()

	listings, err := h.ExcelService.Import(src)
	if err != nil {
		respondWithMappedError(c, err, importErrorRules, response.CodeInternal, "error.products_import_failed")
		return
	}
	if err := h.ListingService.SaveAll(c.Request.Context(), listings); err != nil {
		respondWithMappedError(c, err, importErrorRules, response.CodeInternal, "error.products_import_failed")
		return
	}
	h.Metrics.RecordListingSave("import")
	requestLog(c).Infow("admin_products_imported", "count", len(listings), "file", header.Filename)
	response.Success(c, gin.H{
		"message": i18n.Sprintf(i18n.ResolveLocale(c), "success.products_imported", len(listings)),
	})
}
