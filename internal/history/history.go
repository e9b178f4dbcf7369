// Package history owns generated-password history, the current pair and
// imported entries, and keeps them in step with a durable backend.
package history

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Kalilinux212222/pass-gene/internal/model"
)

// ErrStorageUnavailable signals that persistence fell back to session-only mode.
var ErrStorageUnavailable = errors.New("storage unavailable; changes are kept for this session only")

// Backend persists history state. *store.Store implements it.
type Backend interface {
	LoadState(ctx context.Context) (model.Snapshot, error)
	SaveState(ctx context.Context, snap model.Snapshot) error
	ResetState(ctx context.Context) error
	PutImported(ctx context.Context, pairs []model.Pair) error
	ListImported(ctx context.Context) ([]model.Pair, error)
}

// Store holds the in-memory state. A nil backend or a failed backend call
// switches it to session-only mode; no further writes are attempted.
type Store struct {
	backend  Backend
	log      *zap.Logger
	state    model.Snapshot
	imported map[string]string
	degraded bool
	notice   error
}

// New returns an empty Store. Call Load to restore persisted state.
func New(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		backend:  backend,
		log:      log,
		imported: map[string]string{},
	}
	if backend == nil {
		s.degrade("open", errors.New("no backend"))
	}
	return s
}

// Load replaces in-memory state with the persisted state.
func (s *Store) Load(ctx context.Context) {
	if s.degraded {
		return
	}
	snap, err := s.backend.LoadState(ctx)
	if err != nil {
		s.degrade("load state", err)
		return
	}
	pairs, err := s.backend.ListImported(ctx)
	if err != nil {
		s.degrade("load imports", err)
		return
	}
	s.state = snap
	s.imported = make(map[string]string, len(pairs))
	for _, p := range pairs {
		s.imported[p.Plaintext] = p.Obfuscated
	}
	s.log.Debug("history loaded",
		zap.Int("history", len(snap.History)),
		zap.Int("imported", len(pairs)),
	)
}

// Save writes the current pair and history to the backend.
func (s *Store) Save(ctx context.Context) {
	s.persist("save state", func() error {
		return s.backend.SaveState(ctx, s.state)
	})
}

// Append records password as the newest history entry and the current pair,
// then saves.
func (s *Store) Append(ctx context.Context, password, obfuscated string) {
	s.state.History = append(s.state.History, password)
	s.state.CurrentPassword = password
	s.state.CurrentObfuscated = obfuscated
	s.state.LastGenerated = password
	s.state.HasCurrent = true
	s.Save(ctx)
}

// All returns history in insertion order.
func (s *Store) All() []string {
	return append([]string(nil), s.state.History...)
}

// Len returns the number of history entries.
func (s *Store) Len() int {
	return len(s.state.History)
}

// Contains reports whether candidate was ever generated.
func (s *Store) Contains(candidate string) bool {
	for _, p := range s.state.History {
		if p == candidate {
			return true
		}
	}
	return false
}

// Current returns a copy of the state.
func (s *Store) Current() model.Snapshot {
	return s.state.Clone()
}

// LastGenerated returns the most recent generated password, if any.
func (s *Store) LastGenerated() (string, bool) {
	return s.state.LastGenerated, s.state.HasCurrent
}

// Register stores imported pairs, overwriting entries with the same plaintext.
func (s *Store) Register(ctx context.Context, pairs []model.Pair) {
	for _, p := range pairs {
		s.imported[p.Plaintext] = p.Obfuscated
	}
	s.persist("put imported", func() error {
		return s.backend.PutImported(ctx, pairs)
	})
}

// Imported returns the obfuscated form registered for plaintext.
func (s *Store) Imported(plaintext string) (string, bool) {
	v, ok := s.imported[plaintext]
	return v, ok
}

// ImportedCount returns the number of imported entries.
func (s *Store) ImportedCount() int {
	return len(s.imported)
}

// Reset clears history, the current pair and imported entries in memory and
// in the backend.
func (s *Store) Reset(ctx context.Context) {
	s.state = model.Snapshot{}
	s.imported = map[string]string{}
	s.persist("reset", func() error {
		return s.backend.ResetState(ctx)
	})
}

// Degraded reports whether the store is in session-only mode.
func (s *Store) Degraded() bool {
	return s.degraded
}

// TakeNotice returns the pending storage notice once, then nil.
func (s *Store) TakeNotice() error {
	n := s.notice
	s.notice = nil
	return n
}

func (s *Store) persist(op string, write func() error) {
	if s.degraded {
		return
	}
	if err := write(); err != nil {
		s.degrade(op, err)
	}
}

func (s *Store) degrade(op string, err error) {
	s.degraded = true
	s.notice = fmt.Errorf("%w (%s: %v)", ErrStorageUnavailable, op, err)
	s.log.Warn("persistence disabled for this session", zap.String("op", op), zap.Error(err))
}
