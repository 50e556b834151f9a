package service

import (
	"net/mail"
	"strings"

	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/repository"
)

// SettingService 系统配置服务（询价收件人）
type SettingService struct {
	repo         repository.SystemConfigRepository
	defaultEmail string
}

// NewSettingService 创建配置服务，defaultEmail 用于首次生成默认收件人
func NewSettingService(repo repository.SystemConfigRepository, defaultEmail string) *SettingService {
	return &SettingService{repo: repo, defaultEmail: strings.TrimSpace(defaultEmail)}
}

func (s *SettingService) defaultConfig() models.SystemConfig {
	return models.SystemConfig{
		Emails: []models.EmailRecipient{
			{Department: "Sales Department", Email: s.defaultEmail, Enabled: true},
		},
	}
}

// GetConfig 读取配置，不存在时写入默认配置
func (s *SettingService) GetConfig() (*models.SystemConfig, error) {
	cfg, err := s.repo.Get()
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return cfg, nil
	}
	defaults := s.defaultConfig()
	err = s.repo.Update(func(current *models.SystemConfig, exists bool) error {
		if exists {
			defaults = *current
			return repository.ErrSkipWrite
		}
		*current = defaults
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &defaults, nil
}

// EnabledRecipients 返回启用且非空的收件地址
func (s *SettingService) EnabledRecipients() ([]string, error) {
	cfg, err := s.GetConfig()
	if err != nil {
		return nil, err
	}
	recipients := make([]string, 0, len(cfg.Emails))
	for _, item := range cfg.Emails {
		if item.Enabled && strings.TrimSpace(item.Email) != "" {
			recipients = append(recipients, strings.TrimSpace(item.Email))
		}
	}
	return recipients, nil
}

// AddRecipient 追加收件人
func (s *SettingService) AddRecipient(recipient models.EmailRecipient) (*models.SystemConfig, error) {
	if err := validateRecipient(&recipient); err != nil {
		return nil, err
	}
	return s.mutate(func(cfg *models.SystemConfig) error {
		cfg.Emails = append(cfg.Emails, recipient)
		return nil
	})
}

// UpdateRecipient 按下标替换收件人
func (s *SettingService) UpdateRecipient(index int, recipient models.EmailRecipient) (*models.SystemConfig, error) {
	if err := validateRecipient(&recipient); err != nil {
		return nil, err
	}
	return s.mutate(func(cfg *models.SystemConfig) error {
		if index < 0 || index >= len(cfg.Emails) {
			return ErrRecipientIndexInvalid
		}
		cfg.Emails[index] = recipient
		return nil
	})
}

// DeleteRecipient 按下标删除收件人
func (s *SettingService) DeleteRecipient(index int) (*models.SystemConfig, error) {
	return s.mutate(func(cfg *models.SystemConfig) error {
		if index < 0 || index >= len(cfg.Emails) {
			return ErrRecipientIndexInvalid
		}
		cfg.Emails = append(cfg.Emails[:index], cfg.Emails[index+1:]...)
		return nil
	})
}

func (s *SettingService) mutate(fn func(cfg *models.SystemConfig) error) (*models.SystemConfig, error) {
	var result models.SystemConfig
	err := s.repo.Update(func(cfg *models.SystemConfig, exists bool) error {
		if !exists {
			*cfg = s.defaultConfig()
		}
		if err := fn(cfg); err != nil {
			return err
		}
		result = *cfg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func validateRecipient(recipient *models.EmailRecipient) error {
	recipient.Department = strings.TrimSpace(recipient.Department)
	recipient.Email = strings.TrimSpace(recipient.Email)
	if recipient.Email == "" {
		return ErrRecipientInvalid
	}
	if _, err := mail.ParseAddress(recipient.Email); err != nil {
		return ErrRecipientInvalid
	}
	return nil
}
