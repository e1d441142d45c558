// Package prompt manages the system prompt sent with vocabulary
// completions, with an optional file override that hot-reloads on change.
package prompt

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSystemPrompt instructs the model to return the structured
// vocabulary payload as a single JSON object.
const DefaultSystemPrompt = `You are an English vocabulary tutor helping a non-native learner build structured word notes.

The user sends a sentence or short passage containing one or more marked terms. For EVERY marked term, produce one word record.

Respond with a single JSON object of this exact shape and nothing else:

{
  "words": [
    {
      "basic": {
        "word": "the term exactly as marked",
        "phonetic": "IPA transcription without slashes",
        "partOfSpeech": "noun | verb | adjective | adverb | phrase",
        "motherLanguageTranslation": "translation into the learner's mother language"
      },
      "tags": ["new-words"],
      "definition": "a clear one-sentence definition in simple English",
      "examples": ["two or three example sentences using the term naturally"],
      "synonyms": [{"word": "...", "phonetic": "...", "partOfSpeech": "...", "motherLanguageTranslation": "..."}],
      "antonyms": [{"word": "...", "phonetic": "...", "partOfSpeech": "...", "motherLanguageTranslation": "..."}],
      "etymology": "one short sentence on origin, or empty string",
      "usageNotes": "register, collocations or common mistakes, or empty string"
    }
  ]
}

Rules:
- Output valid JSON only. No markdown fences, no commentary.
- Keep "word" exactly as the user marked it, including multi-word phrases.
- Give at least two examples per word, each a complete sentence.
- Synonyms and antonyms may be empty arrays when none are natural.
- Unknown scalar fields are empty strings, never null.`

// Source resolves the active system prompt. When a file path is
// configured the file contents override the default; the zero value
// serves DefaultSystemPrompt.
type Source struct {
	path string

	mu       sync.RWMutex
	override string
}

// NewSource creates a prompt source. path may be empty, in which case
// the built-in prompt is always served. A configured path that does not
// exist yet is not an error; the default applies until the file appears.
func NewSource(path string) (*Source, error) {
	s := &Source{path: path}
	if path == "" {
		return s, nil
	}
	if err := s.reload(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return s, nil
}

// System returns the active system prompt.
func (s *Source) System() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.override != "" {
		return s.override
	}
	return DefaultSystemPrompt
}

// Path returns the configured override path, or "" when none is set.
func (s *Source) Path() string { return s.path }

func (s *Source) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.override = strings.TrimSpace(string(data))
	s.mu.Unlock()
	return nil
}

func (s *Source) clear() {
	s.mu.Lock()
	s.override = ""
	s.mu.Unlock()
}

// Watch starts an fsnotify watcher on the override file's directory and
// reloads the prompt on change until ctx is cancelled. Watching the
// directory rather than the file keeps editor save-via-rename working.
// No-op when no path is configured.
func (s *Source) Watch(ctx context.Context, logger *slog.Logger) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("prompt: watching override", slog.String("path", s.path))

	// Editors often emit a burst of events per save; debounce them.
	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("prompt: watcher stopped")
			return nil

		case <-reloadCh:
			if err := s.reload(); err != nil {
				if os.IsNotExist(err) {
					s.clear()
					logger.Info("prompt: override removed, default restored")
					continue
				}
				logger.Warn("prompt: reload failed", slog.String("error", err.Error()))
				continue
			}
			logger.Info("prompt: override reloaded", slog.String("path", s.path))

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("prompt: watcher error", slog.String("error", err.Error()))
		}
	}
}
