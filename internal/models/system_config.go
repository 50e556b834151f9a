package models

// EmailRecipient 询价通知收件人
type EmailRecipient struct {
	Department string `json:"department"`
	Email      string `json:"email"`
	Enabled    bool   `json:"enabled"`
}

// SMTPConfig 历史遗留字段，保留结构但不读取
type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// SystemConfig 系统配置文档
type SystemConfig struct {
	Emails     []EmailRecipient `json:"emails"`
	AITemplate *AITemplate      `json:"aiTemplate,omitempty"`
	SMTPConfig *SMTPConfig      `json:"smtpConfig,omitempty"`
}

// LearningExample 一次人工修正：图片指纹与修正后的草稿
type LearningExample struct {
	Input  string           `json:"input"`
	Output GeneratedListing `json:"output"`
}

// AITemplate 生成模板：运营指引与最近的修正样例
type AITemplate struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Prompt    string            `json:"prompt"`
	Examples  []LearningExample `json:"examples"`
	CreatedAt string            `json:"createdAt"`
	UpdatedAt string            `json:"updatedAt"`
}
