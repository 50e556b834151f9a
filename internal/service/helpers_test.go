package service

import (
	"testing"

	"github.com/craftshowcase/internal/models"
	"github.com/craftshowcase/internal/repository"
)

func newTestStore(t *testing.T) *repository.FileDocumentStore {
	t.Helper()
	store, err := repository.NewFileDocumentStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	return store
}

func sampleDraft(name string) models.GeneratedListing {
	return models.GeneratedListing{
		Name:        models.LocalizedText{EN: name, ZH: "铜香炉", AR: "مبخرة نحاسية"},
		Description: models.LocalizedText{EN: "Hand engraved brass burner", ZH: "手工雕刻黄铜香炉", AR: "مبخرة"},
		Category:    "incense-burner",
		Specifications: models.Specifications{
			Dimensions: models.LocalizedText{EN: "10cm x 10cm x 20cm"},
			Material:   models.LocalizedText{EN: "Brass", ZH: "黄铜"},
			Price:      "Contact for Quote",
			MOQ:        "100 pieces",
		},
		SEOKeywords: []string{"Oud", "Bakhoor"},
	}
}
