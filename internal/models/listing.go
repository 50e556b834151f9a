package models

import (
	"database/sql/driver"
)

// Specifications 商品规格
type Specifications struct {
	Dimensions    LocalizedText `json:"dimensions"`
	Material      LocalizedText `json:"material"`
	Craftsmanship LocalizedText `json:"craftsmanship"`
	Price         string        `json:"price"`
	MOQ           string        `json:"moq"`
}

// Value 实现 driver.Valuer 接口
func (s Specifications) Value() (driver.Value, error) {
	return marshalValue(s)
}

// Scan 实现 sql.Scanner 接口
func (s *Specifications) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Listing 商品记录
type Listing struct {
	ID             string         `gorm:"primarykey;type:varchar(64)" json:"id"`                      // 不透明唯一标识
	Name           LocalizedText  `gorm:"type:text" json:"name"`                                      // 多语言名称
	Description    LocalizedText  `gorm:"type:text" json:"description"`                               // 多语言描述
	Category       string         `gorm:"type:varchar(64);index" json:"category"`                     // 分类 key
	Images         StringArray    `gorm:"type:text" json:"images"`                                    // 有序图片地址
	Specifications Specifications `gorm:"type:text" json:"specifications"`                            // 规格
	SEOKeywords    StringArray    `gorm:"type:text" json:"seoKeywords"`                               // SEO 关键词
	CreatedAt      string         `gorm:"type:varchar(40);autoCreateTime:false" json:"createdAt"`     // ISO-8601
	UpdatedAt      string         `gorm:"type:varchar(40);autoUpdateTime:false" json:"updatedAt"`     // ISO-8601
	Position       int            `gorm:"index" json:"-"`                                             // 集合内顺序
}

// TableName 指定表名
func (Listing) TableName() string {
	return "listings"
}

// GeneratedListing AI 生成的商品草稿（无 id、图片与时间戳）
type GeneratedListing struct {
	Name           LocalizedText  `json:"name"`
	Description    LocalizedText  `json:"description"`
	Category       string         `json:"category"`
	Specifications Specifications `json:"specifications"`
	SEOKeywords    []string       `json:"seoKeywords"`
}

// ToListing 以草稿内容构造商品记录
func (g GeneratedListing) ToListing(id string, images []string, now string) Listing {
	if images == nil {
		images = []string{}
	}
	keywords := g.SEOKeywords
	if keywords == nil {
		keywords = []string{}
	}
	return Listing{
		ID:             id,
		Name:           g.Name,
		Description:    g.Description,
		Category:       g.Category,
		Images:         StringArray(images),
		Specifications: g.Specifications,
		SEOKeywords:    StringArray(keywords),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
