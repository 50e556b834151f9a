package repository

import (
	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/models"
)

// TemplateRepository 生成模板数据访问接口
type TemplateRepository interface {
	// Get 读取模板，不存在返回 nil
	Get() (*models.AITemplate, error)
	// Update 串行修改模板，exists 表示修改前模板是否存在
	Update(fn func(template *models.AITemplate, exists bool) error) error
}

// DocumentTemplateRepository 文档实现
type DocumentTemplateRepository struct {
	store DocumentStore
}

// NewTemplateRepository 创建模板仓库
func NewTemplateRepository(store DocumentStore) *DocumentTemplateRepository {
	return &DocumentTemplateRepository{store: store}
}

// Get 读取模板
func (r *DocumentTemplateRepository) Get() (*models.AITemplate, error) {
	var template models.AITemplate
	found, err := loadDocument(r.store, constants.DocumentAITemplate, &template)
	if err != nil || !found {
		return nil, err
	}
	return &template, nil
}

// Update 修改模板
func (r *DocumentTemplateRepository) Update(fn func(template *models.AITemplate, exists bool) error) error {
	var template models.AITemplate
	return mutateDocument(r.store, constants.DocumentAITemplate, &template, func(exists bool) error {
		return fn(&template, exists)
	})
}

// SystemConfigRepository 系统配置数据访问接口
type SystemConfigRepository interface {
	Get() (*models.SystemConfig, error)
	Update(fn func(cfg *models.SystemConfig, exists bool) error) error
}

// DocumentSystemConfigRepository 文档实现
type DocumentSystemConfigRepository struct {
	store DocumentStore
}

// NewSystemConfigRepository 创建系统配置仓库
func NewSystemConfigRepository(store DocumentStore) *DocumentSystemConfigRepository {
	return &DocumentSystemConfigRepository{store: store}
}

// Get 读取配置，不存在返回 nil
func (r *DocumentSystemConfigRepository) Get() (*models.SystemConfig, error) {
	var cfg models.SystemConfig
	found, err := loadDocument(r.store, constants.DocumentConfig, &cfg)
	if err != nil || !found {
		return nil, err
	}
	return &cfg, nil
}

// Update 修改配置
func (r *DocumentSystemConfigRepository) Update(fn func(cfg *models.SystemConfig, exists bool) error) error {
	var cfg models.SystemConfig
	return mutateDocument(r.store, constants.DocumentConfig, &cfg, func(exists bool) error {
		return fn(&cfg, exists)
	})
}
