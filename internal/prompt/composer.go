package prompt

import (
	"fmt"
	"sort"
	"strings"

	"maic/internal/modes"
)

// DefaultModel is used when a template entry carries no routing hint.
const DefaultModel = "gpt-5-pro"

// noGuardrailsLine is emitted when an entry defines no guardrail switches.
const noGuardrailsLine = "No additional safety switches."

// Compose renders the system prompt for one mode from its template
// entry. Section order is fixed: role, instructions, citations,
// guardrails, then a trailing mode marker. Pure function: no shared
// state between calls.
func Compose(mode modes.Mode, entry TemplateEntry) (string, error) {
	persona := strings.TrimSpace(entry.Persona)
	if persona == "" {
		return "", &MissingFieldError{Mode: mode.Key(), Field: "persona"}
	}
	sysins := strings.TrimSpace(entry.SystemInstructions)
	if sysins == "" {
		return "", &MissingFieldError{Mode: mode.Key(), Field: "system_instructions"}
	}
	cpol := strings.TrimSpace(entry.CitationsPolicy)
	if cpol == "" {
		return "", &MissingFieldError{Mode: mode.Key(), Field: "citations_policy"}
	}

	lines := []string{
		"[ROLE]",
		persona,
		"",
		"[INSTRUCTIONS]",
		sysins,
		"",
		"[CITATIONS]",
		fmt.Sprintf("출처 표시는 다음 라벨 중 하나를 사용합니다: %s", cpol),
		"",
		"[GUARDRAILS]",
		guardrailText(entry.Guardrails),
		"",
		fmt.Sprintf("[MODE] %s", mode.Key()),
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// guardrailText renders guardrails as one bullet per switch, sorted by
// key so output is deterministic across runs.
func guardrailText(guard map[string]string) string {
	if len(guard) == 0 {
		return noGuardrailsLine
	}
	keys := make([]string, 0, len(guard))
	for k := range guard {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("- %s: %s", k, guard[k]))
	}
	return strings.Join(parts, "\n")
}

// BuildResult is the assembled prompt plus routing information handed
// to the LLM collaborator.
type BuildResult struct {
	SystemPrompt string
	Model        string
	MaxTokens    *int
	Temperature  *float64
	Guardrails   map[string]string
	ModeKey      string
}

// BuildForMode looks up a mode's entry in the template file and
// composes its system prompt with routing hints resolved.
func BuildForMode(f *File, mode modes.Mode) (*BuildResult, error) {
	if f == nil || f.Modes == nil {
		return nil, fmt.Errorf("no template file loaded")
	}
	entry, ok := f.Entry(mode)
	if !ok {
		return nil, fmt.Errorf("no template entry for mode %q", mode.Key())
	}

	sys, err := Compose(mode, entry)
	if err != nil {
		return nil, err
	}

	model := strings.TrimSpace(entry.RoutingHints.Model)
	if model == "" {
		model = DefaultModel
	}

	return &BuildResult{
		SystemPrompt: sys,
		Model:        model,
		MaxTokens:    entry.RoutingHints.MaxTokens,
		Temperature:  entry.RoutingHints.Temperature,
		Guardrails:   entry.Guardrails,
		ModeKey:      mode.Key(),
	}, nil
}
