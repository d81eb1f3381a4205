package processor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"codeberg.org/snonux/vide/internal/backend"
	"codeberg.org/snonux/vide/internal/batch"
	"codeberg.org/snonux/vide/internal/cli"
	"codeberg.org/snonux/vide/internal/history"
	"codeberg.org/snonux/vide/internal/render"
	"codeberg.org/snonux/vide/internal/translation"
)

// Processor handles the main request processing logic
type Processor struct {
	flags            *cli.Flags
	translator       *translation.Translator
	translationCache *translation.TranslationCache
	history          *history.Store // nil when history is disabled
	out              io.Writer
	logger           *zap.Logger
}

// NewProcessor creates a processor for the configured backend. The history
// database is opened unless it is disabled.
func NewProcessor(ctx context.Context, flags *cli.Flags, out io.Writer, logger *zap.Logger) (*Processor, error) {
	b, err := backend.New(ctx, cli.BackendConfig(), logger)
	if err != nil {
		return nil, err
	}

	translator := translation.NewTranslator(b,
		translation.WithPolicy(cli.RetryPolicy()),
		translation.WithLogger(logger),
		translation.WithGlossarySize(viper.GetInt("glossary.size")),
		translation.WithStrictConsistency(viper.GetBool("glossary.strict")),
	)

	var store *history.Store
	if !viper.GetBool("history.disabled") {
		if store, err = history.Open(cli.HistoryPath()); err != nil {
			return nil, err
		}
	}

	return New(flags, translator, store, out, logger), nil
}

// New creates a processor from already constructed parts. store may be nil,
// and translator may be nil for a processor that only shows history.
func New(flags *cli.Flags, translator *translation.Translator, store *history.Store, out io.Writer, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		flags:            flags,
		translator:       translator,
		translationCache: translation.NewTranslationCache(),
		history:          store,
		out:              out,
		logger:           logger,
	}
}

// Close releases the history database
func (p *Processor) Close() error {
	if p.history == nil {
		return nil
	}
	return p.history.Close()
}

// ProcessSingle translates one request and renders the result
func (p *Processor) ProcessSingle(ctx context.Context, text string, dir translation.Direction) error {
	req := translation.Request{Text: text, Direction: dir}

	result, cached, err := p.translate(ctx, req)
	if err != nil {
		return err
	}
	return p.render(req, result, cached)
}

// ProcessBatch translates every request of the batch file. Failed requests
// are reported and skipped. An error is returned only when no request
// succeeded.
func (p *Processor) ProcessBatch(ctx context.Context, defaultDir translation.Direction) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile, defaultDir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no requests found in %s", p.flags.BatchFile)
	}

	// Track statistics
	processedCount := 0
	cachedCount := 0
	errorCount := 0

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !p.flags.JSON {
			fmt.Fprintf(p.out, "\nProcessing %d/%d: %s\n", i+1, len(entries), entry.Text)
		}

		req := translation.Request{Text: entry.Text, Direction: entry.Direction}
		result, cached, err := p.translate(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error translating line %d '%s': %v\n", entry.Line, entry.Text, err)
			errorCount++
			continue
		}
		if cached {
			cachedCount++
		}
		processedCount++

		if err := p.render(req, result, cached); err != nil {
			return err
		}
	}

	if !p.flags.JSON {
		// Print summary
		fmt.Fprintf(p.out, "\n=== Batch Summary ===\n")
		fmt.Fprintf(p.out, "Total requests: %d\n", len(entries))
		fmt.Fprintf(p.out, "Translated: %d\n", processedCount)
		fmt.Fprintf(p.out, "Distinct translations: %d\n", p.translationCache.Len())
		if cachedCount > 0 {
			fmt.Fprintf(p.out, "Reused (duplicates): %d\n", cachedCount)
		}
		if errorCount > 0 {
			fmt.Fprintf(p.out, "Errors: %d\n", errorCount)
		}
		fmt.Fprintf(p.out, "=====================\n")
	}

	if processedCount == 0 {
		return fmt.Errorf("all %d requests failed", errorCount)
	}
	return nil
}

// ShowHistory prints the n most recent translations
func (p *Processor) ShowHistory(ctx context.Context, n int) error {
	if p.history == nil {
		return fmt.Errorf("history is disabled")
	}

	entries, err := p.history.Recent(ctx, n)
	if err != nil {
		return err
	}
	render.History(p.out, entries)
	return nil
}

// translate returns a cached result or asks the translator and records the outcome
func (p *Processor) translate(ctx context.Context, req translation.Request) (*translation.Result, bool, error) {
	if result, found := p.translationCache.Get(req.Text, req.Direction); found {
		p.logger.Debug("cache hit", zap.String("direction", string(req.Direction)))
		return result, true, nil
	}

	result, err := p.translator.TranslateAndSearch(ctx, req.Text, req.Direction)
	if err != nil {
		return nil, false, err
	}
	p.translationCache.Add(req.Text, req.Direction, result)

	if p.history != nil {
		if _, err := p.history.Save(ctx, req, result); err != nil {
			// History failures do not fail the request
			p.logger.Warn("failed to record translation", zap.Error(err))
		}
	}

	return result, false, nil
}

func (p *Processor) render(req translation.Request, result *translation.Result, cached bool) error {
	if p.flags.JSON {
		return render.JSON(p.out, req, result)
	}
	render.Text(p.out, req, result, render.Options{
		ImageLinks: p.flags.ImageLinks,
		Cached:     cached,
	})
	return nil
}
