package service

import (
	"errors"
	"testing"

	"github.com/craftshowcase/internal/models"
)

func TestSettingServiceSeedsDefaultRecipient(t *testing.T) {
	svc := newTestSettingService(t)
	cfg, err := svc.GetConfig()
	if err != nil {
		t.Fatalf("get config failed: %v", err)
	}
	if len(cfg.Emails) != 1 || cfg.Emails[0].Department != "Sales Department" || !cfg.Emails[0].Enabled {
		t.Fatalf("unexpected default config %+v", cfg)
	}
	again, err := svc.GetConfig()
	if err != nil || len(again.Emails) != 1 {
		t.Fatalf("default should be persisted once: %+v err=%v", again, err)
	}
}

func TestSettingServiceRecipientCRUD(t *testing.T) {
	svc := newTestSettingService(t)
	cfg, err := svc.AddRecipient(models.EmailRecipient{Department: " Export ", Email: "export@example.com", Enabled: true})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(cfg.Emails) != 2 || cfg.Emails[1].Department != "Export" {
		t.Fatalf("unexpected config after add %+v", cfg)
	}

	cfg, err = svc.UpdateRecipient(1, models.EmailRecipient{Department: "Export", Email: "export2@example.com", Enabled: false})
	if err != nil || cfg.Emails[1].Email != "export2@example.com" {
		t.Fatalf("update failed: %+v err=%v", cfg, err)
	}
	recipients, err := svc.EnabledRecipients()
	if err != nil || len(recipients) != 1 || recipients[0] != "sales@example.com" {
		t.Fatalf("unexpected enabled recipients %v err=%v", recipients, err)
	}

	if _, err := svc.UpdateRecipient(5, models.EmailRecipient{Email: "x@example.com"}); !errors.Is(err, ErrRecipientIndexInvalid) {
		t.Fatalf("expected ErrRecipientIndexInvalid, got %v", err)
	}
	if _, err := svc.AddRecipient(models.EmailRecipient{Email: "broken"}); !errors.Is(err, ErrRecipientInvalid) {
		t.Fatalf("expected ErrRecipientInvalid, got %v", err)
	}

	cfg, err = svc.DeleteRecipient(0)
	if err != nil || len(cfg.Emails) != 1 || cfg.Emails[0].Email != "export2@example.com" {
		t.Fatalf("delete failed: %+v err=%v", cfg, err)
	}
	if _, err := svc.DeleteRecipient(3); !errors.Is(err, ErrRecipientIndexInvalid) {
		t.Fatalf("expected ErrRecipientIndexInvalid, got %v", err)
	}
}
