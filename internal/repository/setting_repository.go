package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/craftshowcase/internal/models"

	"gorm.io/gorm"
)

// GormSettingStore 基于 settings 表的文档存储
type GormSettingStore struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewSettingStore 创建设置表文档存储
func NewSettingStore(db *gorm.DB) *GormSettingStore {
	return &GormSettingStore{db: db}
}

// Load 读取文档
func (s *GormSettingStore) Load(key string) ([]byte, error) {
	setting, err := getSetting(s.db, key)
	if err != nil || setting == nil {
		return nil, err
	}
	return []byte(setting.Value), nil
}

// Update 在事务内读取-修改-写回
func (s *GormSettingStore) Update(key string, fn func(current []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Transaction(func(tx *gorm.DB) error {
		setting, err := getSetting(tx, key)
		if err != nil {
			return err
		}
		var current []byte
		if setting != nil {
			current = []byte(setting.Value)
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		if setting == nil {
			setting = &models.Setting{Key: key}
		}
		setting.Value = string(next)
		setting.UpdatedAt = time.Now()
		return tx.Save(setting).Error
	})
}

// Close 数据库连接由调用方统一关闭
func (s *GormSettingStore) Close() error {
	return nil
}

func getSetting(db *gorm.DB, key string) (*models.Setting, error) {
	var setting models.Setting
	if err := db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}
