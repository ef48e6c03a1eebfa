package app

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/foodgram-next/internal/config"
)

type fakeService struct {
	name     string
	startErr error
	exitNow  bool
	stopped  atomic.Bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.startErr != nil || s.exitNow {
		return s.startErr
	}
	<-ctx.Done()
	return nil
}

func (s *fakeService) Stop(ctx context.Context) error {
	s.stopped.Store(true)
	return nil
}

func runAsync(t *testing.T, ctx context.Context, runner *Runner) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx, time.Second, nil) }()
	return done
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop")
		return nil
	}
}

func TestRunnerStopsAllOnCancel(t *testing.T) {
	api := &fakeService{name: "http"}
	worker := &fakeService{name: "worker"}

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(t, ctx, NewRunner(api, worker))
	cancel()

	if err := waitRun(t, done); err != nil {
		t.Fatalf("cancel should be a clean exit, got %v", err)
	}
	if !api.stopped.Load() || !worker.stopped.Load() {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerPropagatesStartError(t *testing.T) {
	boom := errors.New("listen failed")
	failing := &fakeService{name: "http", startErr: boom}
	healthy := &fakeService{name: "worker"}

	err := waitRun(t, runAsync(t, context.Background(), NewRunner(failing, healthy)))
	if !errors.Is(err, boom) {
		t.Fatalf("expected start error, got %v", err)
	}
	if !healthy.stopped.Load() {
		t.Fatalf("healthy service should be stopped after sibling failure")
	}
}

func TestRunnerCleanExitStopsSiblings(t *testing.T) {
	quitter := &fakeService{name: "oneshot", exitNow: true}
	healthy := &fakeService{name: "http"}

	if err := waitRun(t, runAsync(t, context.Background(), NewRunner(quitter, healthy))); err != nil {
		t.Fatalf("clean exit should not be an error, got %v", err)
	}
	if !healthy.stopped.Load() {
		t.Fatalf("sibling should be stopped when one service exits")
	}
}

func TestRunnerRejectsInvalid(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); !errors.Is(err, ErrNoServices) {
		t.Fatalf("want ErrNoServices got %v", err)
	}
	if err := NewRunner(nil).Run(context.Background(), time.Second, nil); !errors.Is(err, ErrNilService) {
		t.Fatalf("want ErrNilService got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{"": ModeAll, " API ": ModeAPI, "worker": ModeWorker}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q,%v want %q", raw, got, err, want)
		}
	}
	if _, err := ParseMode("batch"); err == nil {
		t.Fatalf("expected unknown mode error")
	}
	if !ModeAPI.api() || ModeAPI.worker() || !ModeAll.worker() {
		t.Fatalf("mode service selection wrong")
	}
}

func TestRunRejectsUnknownMode(t *testing.T) {
	if err := Run(Options{Config: &config.Config{}, Mode: "batch"}); err == nil {
		t.Fatalf("expected unknown mode error")
	}
}

func TestHTTPServiceLifecycle(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	svc := NewHTTPService(config.ServerConfig{Host: "127.0.0.1", Port: "0"}, handler)
	addr, err := svc.Listen()
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(t, ctx, NewRunner(svc))

	resp, err := http.Get("http://" + addr.String() + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status want 204 got %d", resp.StatusCode)
	}

	cancel()
	if err := waitRun(t, done); err != nil {
		t.Fatalf("shutdown should be clean, got %v", err)
	}
}
