package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchStopsOnContextCancel(t *testing.T) {
	t.Setenv("PAIRWATCH_SERVER", "")

	path := filepath.Join(t.TempDir(), "pairwatch.yaml")
	if err := os.WriteFile(path, []byte("watch:\n  symbol_a: btcusdt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, nil, nil)
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Watch returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancellation")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	t.Setenv("PAIRWATCH_SERVER", "")

	path := filepath.Join(t.TempDir(), "pairwatch.yaml")
	if err := os.WriteFile(path, []byte("watch:\n  symbol_a: btcusdt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 1)
	go func() {
		Watch(ctx, path,
			func(cfg *Config) {
				select {
				case reloaded <- cfg:
				default:
				}
			},
			func(err error) { t.Logf("reload error: %v", err) },
		)
	}()

	// Give the watcher time to register before touching the file.
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(path, []byte("watch:\n  symbol_a: solusdt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Watch.SymbolA != "solusdt" {
			t.Fatalf("SymbolA = %q, want solusdt", cfg.Watch.SymbolA)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed after write")
	}
}
