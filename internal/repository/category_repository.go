package repository

import (
	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List() ([]models.Category, error)
	ReplaceAll(categories []models.Category) error
}

// DocumentCategoryRepository 文档实现
type DocumentCategoryRepository struct {
	store DocumentStore
}

// NewDocumentCategoryRepository 创建文档分类仓库
func NewDocumentCategoryRepository(store DocumentStore) *DocumentCategoryRepository {
	return &DocumentCategoryRepository{store: store}
}

// List 分类列表
func (r *DocumentCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if _, err := loadDocument(r.store, constants.DocumentCategories, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// ReplaceAll 整体替换
func (r *DocumentCategoryRepository) ReplaceAll(items []models.Category) error {
	var categories []models.Category
	return mutateDocument(r.store, constants.DocumentCategories, &categories, func(bool) error {
		categories = append([]models.Category{}, items...)
		return nil
	})
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List 分类列表
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("sort_order ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ReplaceAll 事务内整体替换
func (r *GormCategoryRepository) ReplaceAll(categories []models.Category) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if len(categories) == 0 {
			return nil
		}
		rows := make([]models.Category, len(categories))
		for i := range categories {
			rows[i] = categories[i]
			rows[i].SortOrder = i
		}
		return tx.Create(&rows).Error
	})
}
