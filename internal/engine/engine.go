// Package engine exposes the password generator command surface: generate,
// verify, import, export and reset over a single history store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kalilinux212222/pass-gene/internal/codec"
	"github.com/Kalilinux212222/pass-gene/internal/export"
	"github.com/Kalilinux212222/pass-gene/internal/generator"
	"github.com/Kalilinux212222/pass-gene/internal/history"
	"github.com/Kalilinux212222/pass-gene/internal/importer"
	"github.com/Kalilinux212222/pass-gene/internal/model"
)

var (
	// ErrEmptyPool is returned when no character class is enabled.
	ErrEmptyPool = generator.ErrEmptyPool
	// ErrInvalidLength is returned for a length outside 0..model.MaxLength.
	ErrInvalidLength = generator.ErrInvalidLength
	// ErrDuplicateGeneration is returned when a draw repeats the previous result.
	ErrDuplicateGeneration = errors.New("generated password matches the previous one; generate again")
	// ErrImportRead is returned when an import source cannot be read.
	ErrImportRead = errors.New("failed to read import file")
	// ErrStorageUnavailable is reported once when persistence degrades.
	ErrStorageUnavailable = history.ErrStorageUnavailable
)

// Engine owns the history store. Commands are serialized.
type Engine struct {
	mu      sync.Mutex
	gen     *generator.Generator
	history *history.Store
	log     *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerator replaces the default time-seeded generator.
func WithGenerator(g *generator.Generator) Option {
	return func(e *Engine) { e.gen = g }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New builds an Engine and restores persisted state from backend. A nil
// backend runs session-only.
func New(ctx context.Context, backend history.Backend, opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.gen == nil {
		e.gen = generator.New()
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	e.history = history.New(backend, e.log)
	e.history.Load(ctx)
	return e
}

// Generate draws a new password for cfg. An empty pool, a negative length or
// a repeat of the previous result leaves all state untouched.
func (e *Engine) Generate(ctx context.Context, cfg model.GenerationConfig) (model.Generation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	password, err := e.gen.Password(cfg)
	if err != nil {
		return model.Generation{}, err
	}
	if last, ok := e.history.LastGenerated(); ok && last == password {
		e.log.Info("duplicate generation rejected", zap.Int("length", cfg.Length))
		return model.Generation{}, ErrDuplicateGeneration
	}

	obfuscated := codec.Encode(password)
	e.history.Append(ctx, password, obfuscated)
	e.log.Debug("password generated",
		zap.Int("length", cfg.Length),
		zap.Int("history", e.history.Len()),
	)
	return model.Generation{
		Password:   password,
		Obfuscated: obfuscated,
		HistoryLen: e.history.Len(),
	}, nil
}

// VerifyOriginal checks candidate against the generation history.
func (e *Engine) VerifyOriginal(candidate string) model.OriginalVerification {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, imported := e.history.Imported(candidate)
	return model.OriginalVerification{
		Candidate: candidate,
		InHistory: e.history.Contains(candidate),
		Imported:  imported,
	}
}

// VerifyEncrypted checks an obfuscated candidate against the current pair.
// When plaintext is non-nil it also checks that the decoded current value
// equals it. Both checks are false while no password has been generated.
func (e *Engine) VerifyEncrypted(obfuscated string, plaintext *string) model.EncryptedVerification {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.history.Current()
	res := model.EncryptedVerification{
		Candidate:         obfuscated,
		PlaintextSupplied: plaintext != nil,
	}
	if !cur.HasCurrent {
		return res
	}
	res.ObfuscatedMatch = obfuscated == cur.CurrentObfuscated
	if plaintext != nil {
		res.RoundTripMatch = codec.Decode(cur.CurrentObfuscated) == *plaintext
	}
	return res
}

// ImportBatch registers every non-blank line of text with its obfuscated form.
// Imported entries do not join the generation history.
func (e *Engine) ImportBatch(ctx context.Context, text string) model.ImportSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.importBatch(ctx, text)
}

// ImportFile reads path and imports its content. If the file cannot be read
// nothing is applied.
func (e *Engine) ImportFile(ctx context.Context, path string) (model.ImportSummary, error) {
	text, err := importer.ReadFile(path)
	if err != nil {
		return model.ImportSummary{}, fmt.Errorf("%w: %v", ErrImportRead, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.importBatch(ctx, text), nil
}

// ImportReader reads r to the end and imports its content. If r fails
// nothing is applied.
func (e *Engine) ImportReader(ctx context.Context, r io.Reader) (model.ImportSummary, error) {
	text, err := importer.Read(r)
	if err != nil {
		return model.ImportSummary{}, fmt.Errorf("%w: %v", ErrImportRead, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.importBatch(ctx, text), nil
}

func (e *Engine) importBatch(ctx context.Context, text string) model.ImportSummary {
	batch := importer.Parse(text)
	pairs := make([]model.Pair, 0, len(batch.Passwords))
	for _, p := range batch.Passwords {
		pairs = append(pairs, model.Pair{Plaintext: p, Obfuscated: codec.Encode(p)})
	}
	summary := model.ImportSummary{
		BatchID:   uuid.NewString(),
		Processed: len(pairs),
		Skipped:   batch.Skipped,
	}
	if len(pairs) > 0 {
		e.history.Register(ctx, pairs)
	}
	e.log.Info("import applied",
		zap.String("batch", summary.BatchID),
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
	)
	return summary
}

// ExportSnapshot renders the current state as a text document.
func (e *Engine) ExportSnapshot() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return export.Render(e.history.Current())
}

// Reset clears history, the current pair and imported entries.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Reset(ctx)
	e.log.Info("state reset")
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Current()
}

// Phase reports whether a current pair exists.
func (e *Engine) Phase() model.Phase {
	return e.Snapshot().Phase()
}

// ImportedCount returns the number of imported entries.
func (e *Engine) ImportedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.ImportedCount()
}

// TakeNotice returns a pending ErrStorageUnavailable notice once.
func (e *Engine) TakeNotice() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.TakeNotice()
}
