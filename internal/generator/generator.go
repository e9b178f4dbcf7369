// Package generator builds character pools and draws random passwords.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Kalilinux212222/pass-gene/internal/model"
)

var (
	// ErrEmptyPool is returned when no character class is enabled.
	ErrEmptyPool = errors.New("please select at least one character type")
	// ErrInvalidLength is returned for a length outside 0..model.MaxLength.
	ErrInvalidLength = fmt.Errorf("password length must be between 0 and %d", model.MaxLength)
)

// Generator produces pseudo-random passwords. It is not a cryptographic source.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// BuildPool concatenates the alphabets of the given classes in letters,
// digits, symbols order. An empty result is valid; callers must check it.
func BuildPool(classes []model.CharacterClass) string {
	enabled := map[model.CharacterClass]bool{}
	for _, c := range classes {
		enabled[c] = true
	}
	var b strings.Builder
	for _, c := range []model.CharacterClass{model.Letters, model.Digits, model.Symbols} {
		if enabled[c] {
			b.WriteString(c.Alphabet())
		}
	}
	return b.String()
}

// Password draws cfg.Length characters uniformly with replacement from the
// pool built for cfg.
func (g *Generator) Password(cfg model.GenerationConfig) (string, error) {
	if cfg.Length < 0 || cfg.Length > model.MaxLength {
		return "", ErrInvalidLength
	}
	pool := BuildPool(cfg.Classes())
	if pool == "" {
		return "", ErrEmptyPool
	}
	return g.Draw([]rune(pool), cfg.Length), nil
}

// Draw selects count runes from pool. pool must be non-empty.
func (g *Generator) Draw(pool []rune, count int) string {
	out := make([]rune, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, pool[g.rnd.Intn(len(pool))])
	}
	return string(out)
}
