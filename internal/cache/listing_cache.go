package cache

import (
	"context"
	"time"

	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/logger"
	"github.com/craftshowcase/internal/models"
)

const defaultListingCacheTTL = 5 * time.Minute

// ListingCache 基于 Redis 的公开商品列表缓存，Redis 未启用时全部为空操作
type ListingCache struct {
	ttl time.Duration
}

// NewListingCache 创建商品缓存
func NewListingCache(ttlSeconds int) *ListingCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultListingCacheTTL
	}
	return &ListingCache{ttl: ttl}
}

// GetListings 读取缓存的商品列表
func (c *ListingCache) GetListings(ctx context.Context) ([]models.Listing, bool) {
	var listings []models.Listing
	hit, err := GetJSON(ctx, constants.CacheKeyListings, &listings)
	if err != nil {
		logger.Warnw("listing_cache_get_failed", "error", err)
		return nil, false
	}
	return listings, hit
}

// SetListings 写入商品列表
func (c *ListingCache) SetListings(ctx context.Context, listings []models.Listing) {
	if err := SetJSON(ctx, constants.CacheKeyListings, listings, c.ttl); err != nil {
		logger.Warnw("listing_cache_set_failed", "error", err)
	}
}

// InvalidateListings 商品变更后清除缓存
func (c *ListingCache) InvalidateListings(ctx context.Context) {
	if err := Del(ctx, constants.CacheKeyListings); err != nil {
		logger.Warnw("listing_cache_del_failed", "error", err)
	}
}

// GetCategories 读取缓存的分类
func (c *ListingCache) GetCategories(ctx context.Context) ([]models.Category, bool) {
	var categories []models.Category
	hit, err := GetJSON(ctx, constants.CacheKeyCategories, &categories)
	if err != nil {
		logger.Warnw("category_cache_get_failed", "error", err)
		return nil, false
	}
	return categories, hit
}

// SetCategories 写入分类
func (c *ListingCache) SetCategories(ctx context.Context, categories []models.Category) {
	if err := SetJSON(ctx, constants.CacheKeyCategories, categories, c.ttl); err != nil {
		logger.Warnw("category_cache_set_failed", "error", err)
	}
}

// InvalidateCategories 清除分类缓存
func (c *ListingCache) InvalidateCategories(ctx context.Context) {
	if err := Del(ctx, constants.CacheKeyCategories); err != nil {
		logger.Warnw("category_cache_del_failed", "error", err)
	}
}
