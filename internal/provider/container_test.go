package provider

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/models"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Storage: config.StorageConfig{Driver: driver, DataDir: dir, BoltPath: filepath.Join(dir, "catalog.db")},
		Admin:   config.AdminConfig{Email: "admin@example.com", Password: "pw", SessionSecret: "secret"},
		Upload:  config.UploadConfig{PublicDir: filepath.Join(dir, "public")},
	}
}

func TestNewContainerWithDocumentDrivers(t *testing.T) {
	for _, driver := range []string{"file", "bolt"} {
		t.Run(driver, func(t *testing.T) {
			c, err := NewContainer(testConfig(t, driver))
			if err != nil {
				t.Fatalf("new container failed: %v", err)
			}
			defer c.Close()

			categories, err := c.CategoryService.List()
			if err != nil || len(categories) != 5 {
				t.Fatalf("categories should be seeded, got %d err=%v", len(categories), err)
			}
			draft := models.GeneratedListing{Name: models.LocalizedText{EN: "Burner"}, Category: "incense-burner"}
			if _, err := c.ListingService.Create(context.Background(), draft, nil); err != nil {
				t.Fatalf("create listing failed: %v", err)
			}
			allow, err := c.AuthzService.EnforceAdmin("admin@example.com", "/api/upload", "POST")
			if err != nil || !allow {
				t.Fatalf("configured admin should be authorized, allow=%v err=%v", allow, err)
			}
			if c.QueueClient.Enabled() {
				t.Fatalf("queue should be disabled by default")
			}
		})
	}
}

func TestNewContainerRejectsUnknownDriver(t *testing.T) {
	if _, err := NewContainer(testConfig(t, "mongo")); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}
