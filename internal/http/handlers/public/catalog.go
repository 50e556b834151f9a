package public

import (
	"net/http"
	"strings"

	"github.com/craftshowcase/internal/http/response"
	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取商品列表，可按 category 过滤、按 q + locale 搜索
// 读取失败时返回空列表
func (h *Handler) GetProducts(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	query := strings.TrimSpace(c.Query("q"))

	ctx := c.Request.Context()
	var listings []models.Listing
	switch {
	case category != "":
		listings = service.FilterListings(h.ListingService.ListByCategoryForDisplay(category), query, c.Query("locale"))
	case query != "":
		var err error
		listings, err = h.ListingService.Search(ctx, query, c.Query("locale"))
		if err != nil {
			handlerLog(c).Errorw("listing_search_failed", "error", err)
			listings = nil
		}
	default:
		listings = h.ListingService.ListForDisplay(ctx)
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	response.Success(c, gin.H{"products": listings})
}

// GetProduct 获取单个商品；带 locale 时附带本地化价格
func (h *Handler) GetProduct(c *gin.Context) {
	listing, err := h.ListingService.GetForDisplay(c.Param("id"))
	if err != nil {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	body := gin.H{"product": listing}
	if locale := strings.TrimSpace(c.Query("locale")); locale != "" {
		body["displayPrice"] = service.FormatPrice(listing.Specifications.Price, locale)
	}
	response.Success(c, body)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListCached(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.categories_fetch_failed", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	response.Success(c, gin.H{"categories": categories})
}

// GetSitemap 输出 sitemap.xml
func (h *Handler) GetSitemap(c *gin.Context) {
	listings := h.ListingService.ListForDisplay(c.Request.Context())
	categories, err := h.CategoryService.ListCached(c.Request.Context())
	if err != nil {
		handlerLog(c).Warnw("sitemap_categories_failed", "error", err)
		categories = nil
	}
	body, err := h.SitemapService.Render(listings, categories)
	if err != nil {
		respondError(c, response.CodeInternal, "error.sitemap_failed", err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
