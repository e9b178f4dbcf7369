// Package model defines shared data structures.
package model

// CharacterClass names a fixed alphabet that can contribute to the draw pool.
type CharacterClass int

// Character classes in pool order.
const (
	Letters CharacterClass = iota
	Digits
	Symbols
)

// Fixed alphabets for each character class.
const (
	LetterAlphabet = "abcdefghijklmnopqrstuvwxyz"
	DigitAlphabet  = "1234567890"
	SymbolAlphabet = "!@#$%^&*()_+[]{}|;:,.<>?"
)

// Alphabet returns the fixed alphabet for the class.
func (c CharacterClass) Alphabet() string {
	switch c {
	case Letters:
		return LetterAlphabet
	case Digits:
		return DigitAlphabet
	case Symbols:
		return SymbolAlphabet
	default:
		return ""
	}
}

func (c CharacterClass) String() string {
	switch c {
	case Letters:
		return "letters"
	case Digits:
		return "digits"
	case Symbols:
		return "symbols"
	default:
		return "unknown"
	}
}

// GenerationConfig defines password generation settings.
type GenerationConfig struct {
	Length  int
	Letters bool
	Numbers bool
	Symbols bool
}

// MaxLength bounds GenerationConfig.Length.
const MaxLength = 4096

// Classes returns the enabled classes in pool order.
func (c GenerationConfig) Classes() []CharacterClass {
	classes := make([]CharacterClass, 0, 3)
	if c.Letters {
		classes = append(classes, Letters)
	}
	if c.Numbers {
		classes = append(classes, Digits)
	}
	if c.Symbols {
		classes = append(classes, Symbols)
	}
	return classes
}

// Phase is the engine-level state.
type Phase int

// Engine phases.
const (
	PhaseEmpty Phase = iota
	PhaseReady
)

func (p Phase) String() string {
	if p == PhaseReady {
		return "ready"
	}
	return "empty"
}

// Snapshot captures the current pair and the ordered generation history.
// HasCurrent separates "nothing generated yet" from a generated empty password.
type Snapshot struct {
	CurrentPassword   string
	CurrentObfuscated string
	LastGenerated     string
	HasCurrent        bool
	History           []string
}

// Phase reports the state machine position for the snapshot.
func (s Snapshot) Phase() Phase {
	if s.HasCurrent {
		return PhaseReady
	}
	return PhaseEmpty
}

// Clone returns a copy that does not share the history slice.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.History = append([]string(nil), s.History...)
	return out
}

// Generation is the result of a successful generate command.
type Generation struct {
	Password   string
	Obfuscated string
	HistoryLen int
}

// OriginalVerification reports whether a plaintext candidate was generated.
type OriginalVerification struct {
	Candidate string
	InHistory bool
	Imported  bool
}

// EncryptedVerification reports the two independent checks of an obfuscated candidate.
type EncryptedVerification struct {
	Candidate         string
	ObfuscatedMatch   bool
	PlaintextSupplied bool
	RoundTripMatch    bool
}

// Pair is a plaintext password with its obfuscated form.
type Pair struct {
	Plaintext  string
	Obfuscated string
}

// ImportSummary describes a bulk import.
type ImportSummary struct {
	BatchID   string
	Processed int
	Skipped   int
}
