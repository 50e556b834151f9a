package service

import (
	"context"
	"strings"

	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/repository"
)

// DefaultCategories 预置的五个金属工艺品分类
func DefaultCategories() []models.Category {
	return []models.Category{
		{
			ID:          "incense-burner",
			Slug:        "incense-burner",
			Name:        models.LocalizedText{EN: "Incense Burner", ZH: "香炉", AR: "مبخرة"},
			Description: models.LocalizedText{EN: "Traditional and modern incense burners", ZH: "传统和现代香炉", AR: "مباخر تقليدية وحديثة"},
		},
		{
			ID:          "dry-fruit-box",
			Slug:        "dry-fruit-box",
			Name:        models.LocalizedText{EN: "Dry Fruit Box", ZH: "干果盒", AR: "صندوق الفواكه المجففة"},
			Description: models.LocalizedText{EN: "Elegant boxes for dry fruits and nuts", ZH: "优雅的干果和坚果盒", AR: "صناديق أنيقة للفواكه المجففة والمكسرات"},
		},
		{
			ID:          "glass-iron-fruit-plate",
			Slug:        "glass-iron-fruit-plate",
			Name:        models.LocalizedText{EN: "Glass & Iron Fruit Plate", ZH: "玻璃铁艺果盘", AR: "طبق فواكه من الزجاج والحديد"},
			Description: models.LocalizedText{EN: "Beautiful combination of glass and iron craftsmanship", ZH: "玻璃与铁艺的完美结合", AR: "مزيج جميل من الحرفية الزجاجية والحديدية"},
		},
		{
			ID:          "iron-dining-table",
			Slug:        "iron-dining-table",
			Name:        models.LocalizedText{EN: "Iron Dining Table", ZH: "铁艺餐桌", AR: "طاولة طعام من الحديد"},
			Description: models.LocalizedText{EN: "Durable and stylish iron dining tables", ZH: "耐用时尚的铁艺餐桌", AR: "طاولات طعام حديدية متينة وأنيقة"},
		},
		{
			ID:          "iron-ornaments",
			Slug:        "iron-ornaments",
			Name:        models.LocalizedText{EN: "Iron Ornaments", ZH: "铁艺摆件", AR: "زينة من الحديد"},
			Description: models.LocalizedText{EN: "Decorative iron ornaments for home and office", ZH: "家居和办公室装饰铁艺摆件", AR: "زينة حديدية للمنزل والمكتب"},
		},
	}
}

// CategoryCache 分类缓存
type CategoryCache interface {
	GetCategories(ctx context.Context) ([]models.Category, bool)
	SetCategories(ctx context.Context, categories []models.Category)
	InvalidateCategories(ctx context.Context)
}

// CategoryService 分类业务服务
type CategoryService struct {
	repo  repository.CategoryRepository
	cache CategoryCache
}

// NewCategoryService 创建分类服务，cache 可为 nil
func NewCategoryService(repo repository.CategoryRepository, cache CategoryCache) *CategoryService {
	return &CategoryService{repo: repo, cache: cache}
}

// EnsureDefaults 分类为空时写入预置分类
func (s *CategoryService) EnsureDefaults() error {
	categories, err := s.repo.List()
	if err != nil {
		return err
	}
	if len(categories) > 0 {
		return nil
	}
	return s.repo.ReplaceAll(DefaultCategories())
}

// List 分类列表，存储为空时返回预置分类
func (s *CategoryService) List() ([]models.Category, error) {
	categories, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return DefaultCategories(), nil
	}
	return categories, nil
}

// ListCached 公开接口使用的分类列表，优先读缓存
func (s *CategoryService) ListCached(ctx context.Context) ([]models.Category, error) {
	if s.cache != nil {
		if categories, ok := s.cache.GetCategories(ctx); ok {
			return categories, nil
		}
	}
	categories, err := s.List()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetCategories(ctx, categories)
	}
	return categories, nil
}

// GetBySlug 按 slug 获取分类
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	return s.find(func(c models.Category) bool { return c.Slug == strings.TrimSpace(slug) })
}

// GetByID 按 id 获取分类
func (s *CategoryService) GetByID(id string) (*models.Category, error) {
	return s.find(func(c models.Category) bool { return c.ID == strings.TrimSpace(id) })
}

func (s *CategoryService) find(match func(models.Category) bool) (*models.Category, error) {
	categories, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if match(categories[i]) {
			return &categories[i], nil
		}
	}
	return nil, ErrNotFound
}

// ReplaceAll 整体替换分类
func (s *CategoryService) ReplaceAll(categories []models.Category) error {
	if err := s.repo.ReplaceAll(categories); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateCategories(context.Background())
	}
	return nil
}
