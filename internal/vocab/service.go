// Package vocab orchestrates the two user-facing flows: extracting
// structured word records for a block and exporting a block's harvested
// vocabulary as flashcards.
package vocab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/blocktree"
	"github.com/starford/laguz/internal/card"
	"github.com/starford/laguz/internal/ledger"
	"github.com/starford/laguz/internal/lexicon"
	"github.com/starford/laguz/internal/llm"
	"github.com/starford/laguz/internal/marker"
	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/notice"
	"github.com/starford/laguz/internal/outline"
	"github.com/starford/laguz/internal/prompt"
)

// Sink is the flashcard destination capability.
type Sink interface {
	Ping(ctx context.Context) error
	AddNote(ctx context.Context, front, back, deck string) error
}

// Params bundles the service dependencies.
type Params struct {
	Completer llm.Completer
	Prompts   *prompt.Source
	Blocks    *blocktree.Store
	Sink      Sink
	Ledger    ledger.Store
	Broker    *notice.Broker
	Logger    *slog.Logger

	Deck          string
	AllowReexport bool
	Matching      lexicon.Options
}

// Service implements the vocabulary flows.
type Service struct {
	completer llm.Completer
	prompts   *prompt.Source
	blocks    *blocktree.Store
	sink      Sink
	ledger    ledger.Store
	broker    *notice.Broker
	logger    *slog.Logger

	deck          string
	allowReexport bool
	matching      lexicon.Options

	mu        sync.Mutex
	exporting bool
}

// New creates the vocabulary service.
func New(p Params) *Service {
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	if p.Matching == (lexicon.Options{}) {
		p.Matching = lexicon.DefaultOptions()
	}
	return &Service{
		completer:     p.Completer,
		prompts:       p.Prompts,
		blocks:        p.Blocks,
		sink:          p.Sink,
		ledger:        p.Ledger,
		broker:        p.Broker,
		logger:        p.Logger,
		deck:          p.Deck,
		allowReexport: p.AllowReexport,
		matching:      p.Matching,
	}
}

// ExtractResult reports what one extraction produced.
type ExtractResult struct {
	BlockID    string                        `json:"block_id"`
	Terms      []string                      `json:"terms"`
	Records    []models.StructuredWordRecord `json:"records"`
	CreatedIDs []string                      `json:"created_ids"`
}

// Extract collects the block's marked terms, asks the model for
// structured word records, and materializes one outline per record as
// children of the block. text may be pushed by the caller; when empty
// the block store's copy is used. Nothing is written when the model
// output cannot be parsed.
func (s *Service) Extract(ctx context.Context, blockID, text string) (*ExtractResult, error) {
	if text == "" {
		var err error
		text, err = s.blocks.GetBlockText(blockID)
		if err != nil {
			return nil, err
		}
	} else {
		s.blocks.Put(blockID, text)
	}

	terms := marker.Dedupe(marker.Tokenize(text))
	if len(terms) == 0 {
		return nil, apperr.ErrNoMarkedTerms
	}

	s.logger.Info("extract: requesting records",
		slog.String("block", blockID),
		slog.Int("terms", len(terms)))

	raw, err := s.completer.Complete(ctx, s.prompts.System(), text, llm.FormatJSON)
	if err != nil {
		s.notify(notice.LevelError, "Vocabulary extraction failed: model request error")
		return nil, fmt.Errorf("vocab: completion: %w", err)
	}

	records, err := llm.ParseWordsPayload(raw)
	if err != nil {
		s.notify(notice.LevelError, "Vocabulary extraction failed: malformed model output")
		return nil, err
	}

	res := &ExtractResult{BlockID: blockID}
	for _, t := range terms {
		res.Terms = append(res.Terms, t.Text)
	}
	res.Records = records

	for _, rec := range records {
		id, err := outline.Materialize(s.blocks, blockID, outline.FromRecord(rec))
		if err != nil {
			return nil, fmt.Errorf("vocab: materialize %q: %w", rec.Basic.Word, err)
		}
		res.CreatedIDs = append(res.CreatedIDs, id)
	}

	s.notifyf(notice.LevelSuccess, "Added %d word record%s", len(records), plural(len(records)))
	s.logger.Info("extract: done",
		slog.String("block", blockID),
		slog.Int("records", len(records)))
	return res, nil
}

// Export harvests the block's vocabulary outline and sends one flashcard
// per marked term to the sink. text may be the host's copied subtree
// dump; when empty the block store's subtree is rendered. deck overrides
// the configured deck when non-empty. One export runs at a time; a
// concurrent call fails with ErrExportInFlight instead of queueing.
func (s *Service) Export(ctx context.Context, blockID, text, deck string) (*models.ExportSummary, error) {
	s.mu.Lock()
	if s.exporting {
		s.mu.Unlock()
		return nil, apperr.ErrExportInFlight
	}
	s.exporting = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.exporting = false
		s.mu.Unlock()
	}()

	// Fail fast when the sink is down; no partial runs.
	if err := s.sink.Ping(ctx); err != nil {
		s.notify(notice.LevelError, "Anki is not reachable. Is it running with AnkiConnect?")
		return nil, err
	}

	if deck == "" {
		deck = s.deck
	}

	if text == "" {
		var err error
		text, err = s.blocks.RenderSubtree(blockID)
		if err != nil {
			return nil, err
		}
	}
	lines := strings.Split(text, "\n")

	contextLine := strings.TrimPrefix(strings.TrimSpace(lines[0]), "- ")
	terms := marker.Dedupe(marker.Tokenize(contextLine))
	if len(terms) == 0 {
		s.notify(notice.LevelWarning, "No marked words found in this block.")
		return nil, apperr.ErrNoMarkedTerms
	}
	contextHTML := marker.Render(contextLine, terms)

	// Harvest before deduplicating so the quality score can pick the
	// richer of two entries for the same term.
	entries := lexicon.Locate(lines, terms, s.matching)
	entries = lexicon.Harvest(lines, entries, s.matching)
	entries = lexicon.Dedupe(entries)

	byTerm := make(map[string]models.WordEntry, len(entries))
	for _, e := range entries {
		byTerm[strings.ToLower(e.Term)] = e
	}

	summary := &models.ExportSummary{BlockID: blockID, Deck: deck}
	for i, t := range terms {
		entry, ok := byTerm[strings.ToLower(t.Text)]
		if !ok {
			// Locate guarantees an entry per term; treat a miss as a failure
			// rather than silently dropping the card.
			summary.Failed++
			continue
		}

		if !s.allowReexport {
			seen, err := s.ledger.Has(blockID, i, t.Text)
			if err != nil {
				return nil, fmt.Errorf("vocab: ledger check: %w", err)
			}
			if seen {
				s.logger.Debug("export: already exported",
					slog.String("block", blockID),
					slog.String("term", t.Text))
				summary.Skipped++
				s.broker.PublishProgress(blockID, i+1, len(terms))
				continue
			}
		}

		fc := card.Compose(contextHTML, entry, deck)
		if err := s.sink.AddNote(ctx, fc.Front, fc.Back, fc.Deck); err != nil {
			switch {
			case errors.Is(err, apperr.ErrDuplicateCard):
				summary.Skipped++
			default:
				summary.Failed++
				s.logger.Warn("export: add note failed",
					slog.String("term", t.Text),
					slog.String("error", err.Error()))
			}
			s.broker.PublishProgress(blockID, i+1, len(terms))
			continue
		}

		if err := s.ledger.Record(blockID, i, t.Text, deck); err != nil {
			return nil, fmt.Errorf("vocab: ledger record: %w", err)
		}
		summary.Created++
		s.broker.PublishProgress(blockID, i+1, len(terms))
	}

	s.announce(summary)
	s.logger.Info("export: done",
		slog.String("block", blockID),
		slog.Int("created", summary.Created),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed))
	return summary, nil
}

// ListExports returns the ledger contents, scoped to one block when
// blockID is non-empty.
func (s *Service) ListExports(blockID string) ([]models.ExportRecord, error) {
	if blockID == "" {
		return s.ledger.ListAll()
	}
	return s.ledger.List(blockID)
}

// ResetExports forgets export history so the next export recreates the
// cards. An empty blockID clears the whole ledger.
func (s *Service) ResetExports(blockID string) (int64, error) {
	if blockID == "" {
		return s.ledger.ResetAll()
	}
	return s.ledger.Reset(blockID)
}

func (s *Service) announce(sum *models.ExportSummary) {
	switch {
	case sum.Created > 0:
		msg := fmt.Sprintf("Added %d card%s to Anki", sum.Created, plural(sum.Created))
		if sum.Skipped > 0 {
			msg += fmt.Sprintf(", skipped %d", sum.Skipped)
		}
		if sum.Failed > 0 {
			msg += fmt.Sprintf(", %d failed", sum.Failed)
		}
		s.notify(notice.LevelSuccess, msg)
	case sum.Skipped > 0 && sum.Failed == 0:
		s.notifyf(notice.LevelInfo, "All %d card%s for this block were already exported.",
			sum.Skipped, plural(sum.Skipped))
	case sum.Failed > 0:
		s.notifyf(notice.LevelWarning, "No cards were created: %d skipped, %d failed.",
			sum.Skipped, sum.Failed)
	default:
		s.notify(notice.LevelWarning, "No cards were created. Check the format of your word entries.")
	}
}

func (s *Service) notify(level, message string) {
	if s.broker != nil {
		s.broker.Notify(level, message)
	}
}

func (s *Service) notifyf(level, format string, args ...interface{}) {
	s.notify(level, fmt.Sprintf(format, args...))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
