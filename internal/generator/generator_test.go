package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/Kalilinux212222/pass-gene/internal/model"
)

type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}

func TestBuildPoolOrder(t *testing.T) {
	pool := BuildPool([]model.CharacterClass{model.Symbols, model.Letters, model.Digits})
	want := model.LetterAlphabet + model.DigitAlphabet + model.SymbolAlphabet
	if pool != want {
		t.Fatalf("expected %q, got %q", want, pool)
	}
	if got := BuildPool(nil); got != "" {
		t.Fatalf("expected empty pool, got %q", got)
	}
}

func TestPasswordLettersOnly(t *testing.T) {
	gen := New()
	cfg := model.GenerationConfig{Length: 8, Letters: true}
	for i := 0; i < 50; i++ {
		pw, err := gen.Password(cfg)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(pw) != 8 {
			t.Fatalf("expected length 8, got %d (%q)", len(pw), pw)
		}
		for _, r := range pw {
			if r < 'a' || r > 'z' {
				t.Fatalf("unexpected rune %q in %q", r, pw)
			}
		}
	}
}

func TestPasswordDrawsFromPool(t *testing.T) {
	gen := New()
	cfg := model.GenerationConfig{Length: 64, Numbers: true, Symbols: true}
	pool := BuildPool(cfg.Classes())
	pw, err := gen.Password(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, r := range pw {
		if !strings.ContainsRune(pool, r) {
			t.Fatalf("rune %q not in pool", r)
		}
	}
}

func TestPasswordZeroLength(t *testing.T) {
	pw, err := New().Password(model.GenerationConfig{Length: 0, Letters: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pw != "" {
		t.Fatalf("expected empty password, got %q", pw)
	}
}

func TestPasswordErrors(t *testing.T) {
	gen := New()
	if _, err := gen.Password(model.GenerationConfig{Length: 5}); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	if _, err := gen.Password(model.GenerationConfig{Length: -1, Letters: true}); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	if _, err := gen.Password(model.GenerationConfig{Length: model.MaxLength + 1, Letters: true}); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength above the maximum, got %v", err)
	}
}

func TestPasswordDeterministicSource(t *testing.T) {
	gen := NewWithSource(zeroSource{})
	pw, err := gen.Password(model.GenerationConfig{Length: 4, Letters: true, Numbers: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if pw != "aaaa" {
		t.Fatalf("expected aaaa, got %q", pw)
	}
}
