// Package prompt turns per-mode template entries into the system prompt
// sent to the answering model. Templates live in prompts.yaml (with an
// embedded fallback set), are cached in SQLite so a broken edit cannot
// take the service down, and can be hot-reloaded via a file watcher.
package prompt

import (
	"fmt"

	"maic/internal/modes"
)

// RoutingHints carry optional per-mode model routing preferences.
// They are advisory; the LLM collaborator decides what to honor.
type RoutingHints struct {
	Model       string   `yaml:"model,omitempty"`
	MaxTokens   *int     `yaml:"max_tokens,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
}

// TemplateEntry is one mode's prompt template. Persona,
// SystemInstructions and CitationsPolicy are required; composition
// fails hard without them. Guardrails and RoutingHints are optional.
type TemplateEntry struct {
	Persona            string            `yaml:"persona"`
	SystemInstructions string            `yaml:"system_instructions"`
	CitationsPolicy    string            `yaml:"citations_policy"`
	Guardrails         map[string]string `yaml:"guardrails,omitempty"`
	RoutingHints       RoutingHints      `yaml:"routing_hints,omitempty"`
}

// File is a parsed prompts.yaml: a version marker plus mode-keyed entries.
type File struct {
	Version int                      `yaml:"version"`
	Modes   map[string]TemplateEntry `yaml:"modes"`
}

// Entry returns the template entry for a canonical mode.
func (f *File) Entry(m modes.Mode) (TemplateEntry, bool) {
	e, ok := f.Modes[m.Key()]
	return e, ok
}

// MissingFieldError reports an absent required template field. It is a
// configuration error: surface immediately, never retry.
type MissingFieldError struct {
	Mode  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("mode %q: missing required template field %q", e.Mode, e.Field)
}
