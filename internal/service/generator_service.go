package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/logger"
	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/repository"
)

// VisionCompleter 多模态补全服务
type VisionCompleter interface {
	Complete(ctx context.Context, prompt, imageBase64 string) (string, error)
}

const basePrompt = `You are a metal craft product expert specializing in Islamic and Middle Eastern decorative items. Analyze this product image and write product information in English, Chinese and Arabic.

Respond with a single JSON object of exactly this shape:
{
  "name": {"en": "English product name", "zh": "中文产品名称", "ar": "اسم المنتج بالعربية"},
  "description": {"en": "2-3 sentences, professional B2B tone", "zh": "2-3 句，专业 B2B 语气", "ar": "2-3 جمل بأسلوب احترافي"},
  "specifications": {
    "dimensions": {"en": "Estimated dimensions, e.g. 10cm x 15cm x 20cm", "zh": "预估尺寸", "ar": "الأبعاد المقدرة"},
    "material": {"en": "Material, e.g. Stainless Steel, Bronze, Iron, Brass", "zh": "材质", "ar": "المادة"},
    "craftsmanship": {"en": "Technique, e.g. Hand-forged, Cast, Welded, Engraved", "zh": "工艺", "ar": "الحرفية"},
    "price": "Contact for Quote",
    "moq": "100 pieces"
  },
  "seoKeywords": ["keyword1", "keyword2", "keyword3"],
  "category": "incense-burner"
}

Categories available: %s

Be specific and professional. Base the specifications on what you can see in the image.`

// GeneratorService 图片生成商品草稿
type GeneratorService struct {
	client    VisionCompleter
	templates repository.TemplateRepository
}

// NewGeneratorService 创建生成服务
func NewGeneratorService(client VisionCompleter, templates repository.TemplateRepository) *GeneratorService {
	return &GeneratorService{client: client, templates: templates}
}

// Generate 根据图片生成草稿；任何失败都包装为 ErrGenerationFailed
func (s *GeneratorService) Generate(ctx context.Context, imageBase64 string, useTemplate bool) (*models.GeneratedListing, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, ErrVisionNotConfigured)
	}
	var template *models.AITemplate
	if useTemplate && s.templates != nil {
		loaded, err := s.templates.Get()
		if err != nil {
			logger.Warnw("generator_template_load_failed", "error", err)
		} else {
			template = loaded
		}
	}

	content, err := s.client.Complete(ctx, BuildPrompt(template), imageBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	draft, err := ParseGeneratedListing(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return draft, nil
}

// BuildPrompt 拼接基础提示词、运营指引与最多两条样例
func BuildPrompt(template *models.AITemplate) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(basePrompt, strings.Join(constants.GeneratedCategories, ", ")))
	if template == nil {
		return b.String()
	}
	if guidance := strings.TrimSpace(template.Prompt); guidance != "" {
		b.WriteString("\n\nADDITIONAL GUIDELINES:\n")
		b.WriteString(guidance)
	}
	if len(template.Examples) > 0 {
		b.WriteString("\n\nEXAMPLES OF PREFERRED OUTPUT STYLE:\n")
		for i, example := range template.Examples {
			if i >= constants.PromptExampleLimit {
				break
			}
			raw, err := json.MarshalIndent(example.Output, "", "  ")
			if err != nil {
				continue
			}
			fmt.Fprintf(&b, "\nExample %d:\n%s\n", i+1, raw)
		}
	}
	return b.String()
}

type rawGeneratedListing struct {
	Name           *models.LocalizedText  `json:"name"`
	Description    *models.LocalizedText  `json:"description"`
	Category       string                 `json:"category"`
	Specifications *models.Specifications `json:"specifications"`
	SEOKeywords    []string               `json:"seoKeywords"`
}

var (
	errNoJSONObject       = errors.New("no json object in response")
	errMissingName        = errors.New("generated listing has no name")
	errMissingDescription = errors.New("generated listing has no description")
	errMissingSpecs       = errors.New("generated listing has no specifications")
	errUnknownCategory    = errors.New("generated listing has an unknown category")
)

// ParseGeneratedListing 截取第一个 { 到最后一个 } 之间的内容解析并校验
func ParseGeneratedListing(content string) (*models.GeneratedListing, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, errNoJSONObject
	}
	var raw rawGeneratedListing
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("decode generated listing: %w", err)
	}
	if raw.Name == nil || raw.Name.IsEmpty() {
		return nil, errMissingName
	}
	if raw.Description == nil || raw.Description.IsEmpty() {
		return nil, errMissingDescription
	}
	if raw.Specifications == nil {
		return nil, errMissingSpecs
	}
	category, ok := NormalizeGeneratedCategory(raw.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownCategory, raw.Category)
	}
	keywords := make([]string, 0, len(raw.SEOKeywords))
	for _, keyword := range raw.SEOKeywords {
		if trimmed := strings.TrimSpace(keyword); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return &models.GeneratedListing{
		Name:           *raw.Name,
		Description:    *raw.Description,
		Category:       category,
		Specifications: *raw.Specifications,
		SEOKeywords:    keywords,
	}, nil
}

// NormalizeGeneratedCategory 统一大小写与分隔符后匹配允许的分类
func NormalizeGeneratedCategory(raw string) (string, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.NewReplacer("_", "-", " ", "-").Replace(value)
	for _, category := range constants.GeneratedCategories {
		if value == category {
			return category, true
		}
	}
	return "", false
}
