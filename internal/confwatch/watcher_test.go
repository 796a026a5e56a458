package confwatch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

type sample struct {
	Level string `yaml:"level"`
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("level: info\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() *sample { return &sample{} }, discardLogger(),
			func(s *sample) { got <- s.Level }, WithDebounce(20*time.Millisecond))
	}()

	// Keep writing until the watcher is up and reports the change.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
loop:
	for {
		select {
		case level := <-got:
			if level != "debug" {
				t.Errorf("level = %q, want %q", level, "debug")
			}
			break loop
		case <-tick.C:
			if err := os.WriteFile(path, []byte("level: debug\n"), 0o644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "absent", "config.yaml")
	err := Watch(context.Background(), path, func() *sample { return &sample{} }, discardLogger(), func(*sample) {})
	if err == nil {
		t.Fatal("expected error for a missing directory")
	}
}

func TestWatch_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Watch(ctx, path, func() *sample { return &sample{} }, discardLogger(), func(*sample) {}); err != nil {
		t.Errorf("Watch returned %v", err)
	}
}
