package modes

import (
	"fmt"
	"strings"
)

// UnknownModeError is returned by Canon when a token matches no alias.
// It is a configuration error: surface it to the caller, do not retry.
type UnknownModeError struct {
	Token string
}

func (e *UnknownModeError) Error() string {
	if strings.TrimSpace(e.Token) == "" {
		return "empty mode token"
	}
	return fmt.Sprintf("unknown mode token: %q", e.Token)
}

// Canonicalizer maps arbitrary mode tokens to canonical modes using an
// immutable alias table built once at construction. Safe for concurrent use.
type Canonicalizer struct {
	aliases map[string]Mode
	specs   map[Mode]Spec
}

// New builds a Canonicalizer with the standard alias table:
// canonical keys, Korean labels, English synonyms and single-letter
// abbreviations. Every alias maps to exactly one mode.
func New() *Canonicalizer {
	aliases := map[string]Mode{
		// 문법
		"grammar":  ModeGrammar,
		"gram":     ModeGrammar,
		"g":        ModeGrammar,
		"문법":       ModeGrammar,
		"문법설명":     ModeGrammar,
		// 문장
		"sentence": ModeSentence,
		"sent":     ModeSentence,
		"s":        ModeSentence,
		"문장":       ModeSentence,
		"문장분석":     ModeSentence,
		// 지문
		"passage": ModePassage,
		"reading": ModePassage,
		"read":    ModePassage,
		"p":       ModePassage,
		"지문":      ModePassage,
		"지문설명":    ModePassage,
	}
	return &Canonicalizer{aliases: aliases, specs: specTable()}
}

// Canon resolves a token to a canonical mode. The token is trimmed and
// lower-cased before lookup; the raw trimmed token is tried second so
// case-sensitive aliases still resolve. Empty or unknown tokens return
// an *UnknownModeError.
func (c *Canonicalizer) Canon(token string) (Mode, error) {
	raw := strings.TrimSpace(token)
	if raw == "" {
		return "", &UnknownModeError{Token: token}
	}
	if m, ok := c.aliases[strings.ToLower(raw)]; ok {
		return m, nil
	}
	if m, ok := c.aliases[raw]; ok {
		return m, nil
	}
	return "", &UnknownModeError{Token: token}
}

// CanonOrDefault resolves a token like Canon but silently falls back to
// grammar mode. Kept as a distinct operation for legacy callers that
// predate strict canonicalization; new call sites should use Canon.
func (c *Canonicalizer) CanonOrDefault(token string) Mode {
	m, err := c.Canon(token)
	if err != nil {
		return ModeGrammar
	}
	return m
}

// Spec returns the contract for a canonical mode.
func (c *Canonicalizer) Spec(m Mode) (Spec, bool) {
	s, ok := c.specs[m]
	return s, ok
}

// EnabledModes returns the UI-visible modes in display order.
func (c *Canonicalizer) EnabledModes() []Spec {
	out := make([]Spec, 0, len(displayOrder))
	for _, m := range displayOrder {
		if s, ok := c.specs[m]; ok && s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// FindByLabel returns the mode spec whose UI label matches exactly.
func (c *Canonicalizer) FindByLabel(label string) (Spec, bool) {
	for _, m := range displayOrder {
		if s, ok := c.specs[m]; ok && s.Label == label {
			return s, true
		}
	}
	return Spec{}, false
}
