package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/craftshowcase/internal/logger"
	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/repository"
)

// ListingCache 商品列表缓存
type ListingCache interface {
	GetListings(ctx context.Context) ([]models.Listing, bool)
	SetListings(ctx context.Context, listings []models.Listing)
	InvalidateListings(ctx context.Context)
}

// ListingService 商品业务服务
type ListingService struct {
	repo  repository.ListingRepository
	cache ListingCache
	now   func() time.Time
	// writes 每次写入后递增，用于识别读取期间发生的写入
	writes atomic.Uint64
}

// NewListingService 创建商品服务，cache 可为 nil
func NewListingService(repo repository.ListingRepository, cache ListingCache) *ListingService {
	return &ListingService{repo: repo, cache: cache, now: time.Now}
}

// CatalogStats 商品统计
type CatalogStats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"byCategory"`
}

// List 返回全部商品
func (s *ListingService) List(ctx context.Context) ([]models.Listing, error) {
	if s.cache != nil {
		if listings, ok := s.cache.GetListings(ctx); ok {
			return listings, nil
		}
	}
	before := s.writes.Load()
	listings, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetListings(ctx, listings)
		// 读取后有写入，刚写入的缓存可能已过期
		if s.writes.Load() != before {
			s.cache.InvalidateListings(ctx)
		}
	}
	return listings, nil
}

// ListForDisplay 读取失败时记录日志并返回空列表
func (s *ListingService) ListForDisplay(ctx context.Context) []models.Listing {
	listings, err := s.List(ctx)
	if err != nil {
		logger.Errorw("listing_list_failed", "error", err)
		return []models.Listing{}
	}
	return listings
}

// ListByCategoryForDisplay 公开读路径的分类过滤，读取失败时为空
func (s *ListingService) ListByCategoryForDisplay(category string) []models.Listing {
	listings, err := s.GetByCategory(category)
	if err != nil {
		logger.Errorw("listing_list_by_category_failed", "category", category, "error", err)
		return []models.Listing{}
	}
	if listings == nil {
		return []models.Listing{}
	}
	return listings
}

// GetForDisplay 公开读路径的单个商品，读取失败按不存在处理
func (s *ListingService) GetForDisplay(id string) (*models.Listing, error) {
	listing, err := s.GetByID(id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		logger.Errorw("listing_get_failed", "id", id, "error", err)
		return nil, ErrNotFound
	}
	return listing, err
}

// GetByID 获取商品
func (s *ListingService) GetByID(id string) (*models.Listing, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	listing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	return listing, nil
}

// GetByCategory 按分类 key 获取商品
func (s *ListingService) GetByCategory(category string) ([]models.Listing, error) {
	return s.repo.ListByCategory(strings.TrimSpace(category))
}

// SearchLocale 搜索只覆盖 en 与 zh，其余语言按 en 处理
func SearchLocale(locale string) string {
	if strings.EqualFold(strings.TrimSpace(locale), models.LocaleZH) {
		return models.LocaleZH
	}
	return models.LocaleEN
}

// Search 在指定语言的名称、描述、关键词中做大小写不敏感的子串匹配
func (s *ListingService) Search(ctx context.Context, query, locale string) ([]models.Listing, error) {
	listings, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterListings(listings, query, locale), nil
}

// FilterListings 纯内存过滤，空查询返回原列表
func FilterListings(listings []models.Listing, query, locale string) []models.Listing {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return listings
	}
	locale = SearchLocale(locale)
	matched := make([]models.Listing, 0)
	for _, item := range listings {
		haystacks := []string{
			item.Name.Get(locale),
			item.Description.Get(locale),
			strings.Join(item.SEOKeywords, " "),
		}
		for _, text := range haystacks {
			if strings.Contains(strings.ToLower(text), needle) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}

// Create 以草稿创建商品，分配 id 与时间戳后保存
func (s *ListingService) Create(ctx context.Context, draft models.GeneratedListing, images []string) (*models.Listing, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	now := s.now()
	listing := draft.ToListing(GenerateListingID(now), images, FormatTimestamp(now))
	if err := s.Save(ctx, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// Save 按 id 更新或追加
func (s *ListingService) Save(ctx context.Context, listing *models.Listing) error {
	if listing == nil || strings.TrimSpace(listing.ID) == "" {
		return ErrListingInvalid
	}
	normalizeListing(listing)
	if err := s.repo.Upsert(listing); err != nil {
		return fmt.Errorf("save listing %s: %w", listing.ID, err)
	}
	s.invalidate(ctx)
	return nil
}

// SaveAll 整体替换商品集合
func (s *ListingService) SaveAll(ctx context.Context, listings []models.Listing) error {
	seen := make(map[string]struct{}, len(listings))
	for i := range listings {
		id := strings.TrimSpace(listings[i].ID)
		if id == "" {
			return ErrListingInvalid
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateListingID, id)
		}
		seen[id] = struct{}{}
		normalizeListing(&listings[i])
	}
	if err := s.repo.ReplaceAll(listings); err != nil {
		return fmt.Errorf("replace listings: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// Stats 统计总数与各分类数量
func (s *ListingService) Stats(ctx context.Context) (*CatalogStats, error) {
	listings, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := &CatalogStats{Total: len(listings), ByCategory: make(map[string]int)}
	for _, item := range listings {
		stats.ByCategory[item.Category]++
	}
	return stats, nil
}

func (s *ListingService) invalidate(ctx context.Context) {
	s.writes.Add(1)
	if s.cache != nil {
		s.cache.InvalidateListings(ctx)
	}
}

func normalizeListing(listing *models.Listing) {
	listing.ID = strings.TrimSpace(listing.ID)
	if listing.Images == nil {
		listing.Images = models.StringArray{}
	}
	if listing.SEOKeywords == nil {
		listing.SEOKeywords = models.StringArray{}
	}
}

func validateDraft(draft models.GeneratedListing) error {
	if draft.Name.IsEmpty() {
		return fmt.Errorf("%w: name is required", ErrListingInvalid)
	}
	return nil
}
