package service

import (
	"time"

	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/repository"
)

// LearningService 记录人工修正，供后续生成参考
type LearningService struct {
	templates repository.TemplateRepository
	now       func() time.Time
}

// NewLearningService 创建学习服务
func NewLearningService(templates repository.TemplateRepository) *LearningService {
	return &LearningService{templates: templates, now: time.Now}
}

// Fingerprint 取图片 base64 的前 100 个字符作为输入指纹
func Fingerprint(imageBase64 string) string {
	if len(imageBase64) <= constants.LearningFingerprintSize {
		return imageBase64
	}
	return imageBase64[:constants.LearningFingerprintSize]
}

// RecordCorrection 追加一条修正样例，只保留最近 10 条
func (s *LearningService) RecordCorrection(original, corrected *models.GeneratedListing, imageBase64 string) error {
	if original == nil || corrected == nil {
		return ErrLearningInputMissing
	}
	now := FormatTimestamp(s.now())
	return s.templates.Update(func(template *models.AITemplate, exists bool) error {
		if !exists {
			*template = models.AITemplate{
				ID:        constants.DefaultTemplateID,
				Name:      constants.DefaultTemplateName,
				Examples:  []models.LearningExample{},
				CreatedAt: now,
			}
		}
		template.Examples = append(template.Examples, models.LearningExample{
			Input:  Fingerprint(imageBase64),
			Output: *corrected,
		})
		if overflow := len(template.Examples) - constants.LearningLogCapacity; overflow > 0 {
			template.Examples = append([]models.LearningExample(nil), template.Examples[overflow:]...)
		}
		template.UpdatedAt = now
		return nil
	})
}

// Template 读取当前模板，不存在返回 nil
func (s *LearningService) Template() (*models.AITemplate, error) {
	return s.templates.Get()
}

// UpdateGuidance 更新运营指引文本
func (s *LearningService) UpdateGuidance(prompt string) (*models.AITemplate, error) {
	now := FormatTimestamp(s.now())
	var result models.AITemplate
	err := s.templates.Update(func(template *models.AITemplate, exists bool) error {
		if !exists {
			*template = models.AITemplate{
				ID:        constants.DefaultTemplateID,
				Name:      constants.DefaultTemplateName,
				Examples:  []models.LearningExample{},
				CreatedAt: now,
			}
		}
		template.Prompt = prompt
		template.UpdatedAt = now
		result = *template
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
