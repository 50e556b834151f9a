package models

// Category 商品分类，slug 即商品上的分类 key
type Category struct {
	ID          string        `gorm:"primarykey;type:varchar(64)" json:"id"`
	Slug        string        `gorm:"uniqueIndex;type:varchar(64);not null" json:"slug"`
	Name        LocalizedText `gorm:"type:text" json:"name"`
	Description LocalizedText `gorm:"type:text" json:"description"`
	SortOrder   int           `gorm:"default:0;index" json:"-"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
