package prompt

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSource_DefaultWhenNoPath(t *testing.T) {
	s, err := NewSource("")
	if err != nil {
		t.Fatal(err)
	}
	if s.System() != DefaultSystemPrompt {
		t.Error("expected built-in prompt")
	}
}

func TestSource_MissingOverrideFallsBack(t *testing.T) {
	s, err := NewSource(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if s.System() != DefaultSystemPrompt {
		t.Error("expected built-in prompt while override absent")
	}
}

func TestSource_OverrideFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	if err := os.WriteFile(path, []byte("custom prompt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewSource(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.System() != "custom prompt" {
		t.Errorf("prompt = %q", s.System())
	}
}

func TestSource_WatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.txt")
	if err := os.WriteFile(path, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewSource(path)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	done := make(chan struct{})
	go func() {
		_ = s.Watch(ctx, logger)
		close(done)
	}()

	// Let the watcher attach before mutating the file.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for s.System() != "second" {
		select {
		case <-deadline:
			t.Fatalf("prompt not reloaded, still %q", s.System())
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestDefaultSystemPrompt_DemandsJSONWordsPayload(t *testing.T) {
	if !strings.Contains(DefaultSystemPrompt, `"words"`) {
		t.Error("prompt does not pin the words payload key")
	}
	if !strings.Contains(DefaultSystemPrompt, "valid JSON only") {
		t.Error("prompt does not demand raw JSON output")
	}
}
