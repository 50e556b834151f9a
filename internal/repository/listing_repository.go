package repository

import (
	"errors"

	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/models"

	"gorm.io/gorm"
)

// ListingRepository 商品数据访问接口
type ListingRepository interface {
	List() ([]models.Listing, error)
	GetByID(id string) (*models.Listing, error)
	ListByCategory(category string) ([]models.Listing, error)
	// Upsert 按 id 替换或追加
	Upsert(listing *models.Listing) error
	// ReplaceAll 整体替换商品集合
	ReplaceAll(listings []models.Listing) error
}

// DocumentListingRepository 把全部商品存为一份文档
type DocumentListingRepository struct {
	store DocumentStore
}

// NewDocumentListingRepository 创建文档商品仓库
func NewDocumentListingRepository(store DocumentStore) *DocumentListingRepository {
	return &DocumentListingRepository{store: store}
}

// List 商品列表（保持写入顺序）
func (r *DocumentListingRepository) List() ([]models.Listing, error) {
	var listings []models.Listing
	if _, err := loadDocument(r.store, constants.DocumentProducts, &listings); err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, nil
}

// GetByID 获取商品，不存在返回 nil
func (r *DocumentListingRepository) GetByID(id string) (*models.Listing, error) {
	listings, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range listings {
		if listings[i].ID == id {
			return &listings[i], nil
		}
	}
	return nil, nil
}

// ListByCategory 按分类筛选
func (r *DocumentListingRepository) ListByCategory(category string) ([]models.Listing, error) {
	listings, err := r.List()
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Listing, 0, len(listings))
	for _, item := range listings {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Upsert 更新或追加商品
func (r *DocumentListingRepository) Upsert(listing *models.Listing) error {
	if listing == nil {
		return nil
	}
	var listings []models.Listing
	return mutateDocument(r.store, constants.DocumentProducts, &listings, func(bool) error {
		for i := range listings {
			if listings[i].ID == listing.ID {
				listings[i] = *listing
				return nil
			}
		}
		listings = append(listings, *listing)
		return nil
	})
}

// ReplaceAll 整体替换
func (r *DocumentListingRepository) ReplaceAll(items []models.Listing) error {
	var listings []models.Listing
	return mutateDocument(r.store, constants.DocumentProducts, &listings, func(bool) error {
		listings = append([]models.Listing{}, items...)
		return nil
	})
}

// GormListingRepository GORM 实现
type GormListingRepository struct {
	db *gorm.DB
}

// NewListingRepository 创建商品仓库
func NewListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// List 商品列表
func (r *GormListingRepository) List() ([]models.Listing, error) {
	var listings []models.Listing
	if err := r.db.Order("position ASC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// GetByID 获取商品，不存在返回 nil
func (r *GormListingRepository) GetByID(id string) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.Where("id = ?", id).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &listing, nil
}

// ListByCategory 按分类筛选
func (r *GormListingRepository) ListByCategory(category string) ([]models.Listing, error) {
	var listings []models.Listing
	if err := r.db.Where("category = ?", category).Order("position ASC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// Upsert 已存在则保留位置覆盖，否则追加到末尾
func (r *GormListingRepository) Upsert(listing *models.Listing) error {
	if listing == nil {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Listing
		err := tx.Where("id = ?", listing.ID).First(&existing).Error
		switch {
		case err == nil:
			listing.Position = existing.Position
		case errors.Is(err, gorm.ErrRecordNotFound):
			var maxPosition int
			if err := tx.Model(&models.Listing{}).Select("COALESCE(MAX(position), -1)").Scan(&maxPosition).Error; err != nil {
				return err
			}
			listing.Position = maxPosition + 1
		default:
			return err
		}
		return tx.Save(listing).Error
	})
}

// ReplaceAll 事务内清空后按顺序写入
func (r *GormListingRepository) ReplaceAll(listings []models.Listing) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Listing{}).Error; err != nil {
			return err
		}
		if len(listings) == 0 {
			return nil
		}
		rows := make([]models.Listing, len(listings))
		for i := range listings {
			rows[i] = listings[i]
			rows[i].Position = i
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}
