package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/craftshowcase/internal/config"
)

type stubService struct {
	name     string
	startErr error
	stopped  atomic.Bool
}

func (s *stubService) Name() string {
	if s.name == "" {
		return "stub"
	}
	return s.name
}

func (s *stubService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-ctx.Done()
	return nil
}

func (s *stubService) Stop(ctx context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllServicesOnCancel(t *testing.T) {
	a, b := &stubService{}, &stubService{}
	runner := NewRunner(a, b)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancelled run should return nil, got %v", err)
	}
	if !a.stopped.Load() || !b.stopped.Load() {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerReturnsStartError(t *testing.T) {
	failing := &stubService{startErr: errors.New("bind failed")}
	other := &stubService{}
	err := NewRunner(failing, other).Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "bind failed" {
		t.Fatalf("expected start error, got %v", err)
	}
	if !other.stopped.Load() {
		t.Fatalf("remaining services should be stopped")
	}
}

type orderedStopService struct {
	stubService
	order *[]string
}

func (s *orderedStopService) Stop(ctx context.Context) error {
	*s.order = append(*s.order, s.Name())
	return s.stubService.Stop(ctx)
}

func TestRunnerStopsInReverseOrder(t *testing.T) {
	var order []string
	httpSvc := &orderedStopService{stubService: stubService{name: "http"}, order: &order}
	workerSvc := &orderedStopService{stubService: stubService{name: "worker"}, order: &order}
	runner := NewRunner(httpSvc, nil, workerSvc)
	if got := runner.Names(); len(got) != 2 || got[0] != "http" || got[1] != "worker" {
		t.Fatalf("unexpected service names %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancelled run should return nil, got %v", err)
	}
	if len(order) != 2 || order[0] != "worker" || order[1] != "http" {
		t.Fatalf("worker should stop before http, got %v", order)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{"": ModeAll, " API ": ModeAPI, "worker": ModeWorker, "all": ModeAll}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := ParseMode("cron"); err == nil {
		t.Fatalf("unknown mode should be rejected")
	}
	if _, _, err := BuildRunner(&config.Config{}, "cron"); err == nil {
		t.Fatalf("BuildRunner should reject unknown mode")
	}
}

func TestHTTPServiceTimeoutsCoverGeneration(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "9090"},
		AI:     config.AIConfig{TimeoutSeconds: 120},
	}
	svc := NewHTTPService(cfg, nil)
	if svc.server.Addr != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr %s", svc.server.Addr)
	}
	if svc.server.WriteTimeout <= 120*time.Second {
		t.Fatalf("write timeout %s should exceed the ai timeout", svc.server.WriteTimeout)
	}
	if svc.server.ReadHeaderTimeout == 0 {
		t.Fatalf("read header timeout should be set")
	}

	opts := normalizeOptions(Options{Config: cfg, Mode: "API"})
	if opts.Mode != ModeAPI || opts.ShutdownTimeout != 120*time.Second || opts.Logger == nil {
		t.Fatalf("unexpected normalized options %+v", opts)
	}
}
