package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/repository"
)

type fakeVision struct {
	content    string
	err        error
	lastPrompt string
	lastImage  string
}

func (f *fakeVision) Complete(_ context.Context, prompt, imageBase64 string) (string, error) {
	f.lastPrompt = prompt
	f.lastImage = imageBase64
	return f.content, f.err
}

const validGeneration = "Here you go:\n```json\n" + `{
  "name": {"en": "Brass Incense Burner", "zh": "黄铜香炉", "ar": "مبخرة"},
  "description": {"en": "Hand engraved.", "zh": "手工雕刻。", "ar": "منقوشة"},
  "specifications": {"dimensions": {"en": "10cm"}, "material": {"en": "Brass"}, "craftsmanship": {"en": "Engraved"}, "price": "Contact for Quote", "moq": "100 pieces"},
  "seoKeywords": ["incense", " ", "brass"],
  "category": "Incense_Burner"
}` + "\n```"

func TestParseGeneratedListingExtractsObject(t *testing.T) {
	draft, err := ParseGeneratedListing(validGeneration)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if draft.Name.EN != "Brass Incense Burner" || draft.Category != "incense-burner" {
		t.Fatalf("unexpected draft: %+v", draft)
	}
	if len(draft.SEOKeywords) != 2 || draft.Specifications.MOQ != "100 pieces" {
		t.Fatalf("unexpected keywords/specs: %+v", draft)
	}
}

func TestParseGeneratedListingRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"no json":          "I cannot help with that",
		"broken json":      "{ not json }",
		"missing name":     `{"description": {"en": "x"}, "specifications": {}, "category": "table"}`,
		"missing desc":     `{"name": {"en": "x"}, "specifications": {}, "category": "table"}`,
		"missing specs":    `{"name": {"en": "x"}, "description": {"en": "x"}, "category": "table"}`,
		"unknown category": `{"name": {"en": "x"}, "description": {"en": "x"}, "specifications": {}, "category": "sofa"}`,
	}
	for name, content := range cases {
		if _, err := ParseGeneratedListing(content); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestBuildPromptLimitsExamples(t *testing.T) {
	base := BuildPrompt(nil)
	if !strings.Contains(base, "incense-burner, dry-fruit-box") {
		t.Fatalf("base prompt should list categories: %s", base)
	}
	if strings.Contains(base, "ADDITIONAL GUIDELINES") || strings.Contains(base, "EXAMPLES OF PREFERRED") {
		t.Fatalf("base prompt should not include template sections")
	}

	template := &models.AITemplate{Prompt: "Mention hand engraving", Examples: []models.LearningExample{
		{Input: "a", Output: sampleDraft("First Example")},
		{Input: "b", Output: sampleDraft("Second Example")},
		{Input: "c", Output: sampleDraft("Third Example")},
	}}
	prompt := BuildPrompt(template)
	if !strings.Contains(prompt, "ADDITIONAL GUIDELINES:\nMention hand engraving") {
		t.Fatalf("guidance missing: %s", prompt)
	}
	if !strings.Contains(prompt, "Example 1:") || !strings.Contains(prompt, "Example 2:") {
		t.Fatalf("examples missing: %s", prompt)
	}
	if strings.Contains(prompt, "Example 3:") || strings.Contains(prompt, "Third Example") {
		t.Fatalf("only two examples expected")
	}
}

func TestGenerateUsesTemplateWhenAsked(t *testing.T) {
	templates := repository.NewTemplateRepository(newTestStore(t))
	if _, err := NewLearningService(templates).UpdateGuidance("Use formal tone"); err != nil {
		t.Fatalf("seed template failed: %v", err)
	}
	vision := &fakeVision{content: validGeneration}
	svc := NewGeneratorService(vision, templates)

	if _, err := svc.Generate(context.Background(), "aW1n", false); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if strings.Contains(vision.lastPrompt, "Use formal tone") {
		t.Fatalf("template should be ignored when useTemplate=false")
	}
	draft, err := svc.Generate(context.Background(), "aW1n", true)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(vision.lastPrompt, "Use formal tone") || vision.lastImage != "aW1n" {
		t.Fatalf("template guidance or image not forwarded")
	}
	if draft.Category != "incense-burner" {
		t.Fatalf("unexpected category %q", draft.Category)
	}
}

func TestGenerateWrapsFailures(t *testing.T) {
	upstream := errors.New("upstream 500")
	svc := NewGeneratorService(&fakeVision{err: upstream}, nil)
	_, err := svc.Generate(context.Background(), "img", false)
	if !errors.Is(err, ErrGenerationFailed) || !errors.Is(err, upstream) {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}

	svc = NewGeneratorService(&fakeVision{content: "no json here"}, nil)
	if _, err := svc.Generate(context.Background(), "img", false); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed for bad content, got %v", err)
	}

	svc = NewGeneratorService(nil, nil)
	if _, err := svc.Generate(context.Background(), "img", false); !errors.Is(err, ErrVisionNotConfigured) {
		t.Fatalf("expected ErrVisionNotConfigured, got %v", err)
	}
}
