package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/metrics"
	"github.com/craftshowcase/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeListingSource struct {
	listings []models.Listing
	err      error
}

func (f *fakeListingSource) List(ctx context.Context) ([]models.Listing, error) {
	return f.listings, f.err
}

type fakeExporter struct {
	count int
}

func (f *fakeExporter) Export(listings []models.Listing, w io.Writer) error {
	f.count = len(listings)
	_, err := io.WriteString(w, "xlsx")
	return err
}

func TestSchedulerRunExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	source := &fakeListingSource{listings: []models.Listing{{ID: "a"}, {ID: "b"}}}
	exporter := &fakeExporter{}
	m := metrics.New("test")
	s, err := NewSchedulerService(config.SchedulerConfig{ExportCron: "0 3 * * *", ExportDir: dir}, source, exporter, m)
	if err != nil {
		t.Fatalf("new scheduler failed: %v", err)
	}
	s.now = func() time.Time { return time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC) }

	path, err := s.RunExport(context.Background())
	if err != nil {
		t.Fatalf("run export failed: %v", err)
	}
	if filepath.Base(path) != "products-20240501-030000.xlsx" {
		t.Fatalf("unexpected export name %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil || string(raw) != "xlsx" {
		t.Fatalf("export content mismatch: %q err=%v", raw, err)
	}
	if exporter.count != 2 {
		t.Fatalf("exporter should receive 2 listings, got %d", exporter.count)
	}
	entries, _ := os.ReadDir(dir)
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".export-") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
	if got := testutil.ToFloat64(m.ExcelExports.WithLabelValues("scheduled")); got != 1 {
		t.Fatalf("scheduled export counter want 1 got %v", got)
	}
}

func TestSchedulerRunExportSourceError(t *testing.T) {
	source := &fakeListingSource{err: errors.New("disk gone")}
	s, err := NewSchedulerService(config.SchedulerConfig{ExportDir: t.TempDir()}, source, &fakeExporter{}, nil)
	if err != nil {
		t.Fatalf("new scheduler failed: %v", err)
	}
	if _, err := s.RunExport(context.Background()); err == nil || !strings.Contains(err.Error(), "disk gone") {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestSchedulerRejectsInvalidCron(t *testing.T) {
	_, err := NewSchedulerService(config.SchedulerConfig{ExportCron: "not a cron"}, &fakeListingSource{}, &fakeExporter{}, nil)
	if err == nil {
		t.Fatalf("expected invalid cron error")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	s, err := NewSchedulerService(config.SchedulerConfig{}, &fakeListingSource{}, &fakeExporter{}, nil)
	if err != nil {
		t.Fatalf("new scheduler failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("scheduler did not stop after cancel")
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}
