package retrieval

import "strings"

// Provenance labels shown to the student ahead of an answer. These are
// the canonical forms; CanonLabel folds legacy spellings onto them.
const (
	ReasonLabel = "[이유문법]" // sourced from reason-grammar materials
	BookLabel   = "[문법책]"  // sourced from grammar books / textbooks
	AILabel     = "[AI지식]"  // model knowledge only, no attached index
)

// labelAliases maps legacy/external spellings to canonical labels.
var labelAliases = map[string]string{
	"[문법서적]": BookLabel,
	"[문법책]":  BookLabel,
	"[이유문법]": ReasonLabel,
	"[AI지식]": AILabel,
}

// CanonLabel normalizes a provenance label. Empty input folds to the
// model-knowledge label; unrecognized labels pass through unchanged.
func CanonLabel(label string) string {
	s := strings.TrimSpace(label)
	if s == "" {
		return AILabel
	}
	if canon, ok := labelAliases[s]; ok {
		return canon
	}
	return s
}

// reasonSources and bookSources are the "source" field values that mark
// a hit as reason-grammar or book material.
var (
	reasonSources = map[string]struct{}{
		"iyu":            {},
		"reason-grammar": {},
		"iyu-grammar":    {},
	}
	bookSources = map[string]struct{}{
		"book":     {},
		"textbook": {},
	}
)

// DecideLabel picks the provenance label for a hit list by inspecting
// the lower-cased "source" values across all hits. Priority is
// reason > book > model knowledge. An empty list returns defaultLabel.
// This is a best-effort annotation: it never fails, so downstream
// composition never blocks on it.
func DecideLabel(hits []Hit, defaultLabel string) string {
	if len(hits) == 0 {
		return defaultLabel
	}

	srcSet := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		srcSet[strings.ToLower(h.Str("source"))] = struct{}{}
	}

	for s := range srcSet {
		if _, ok := reasonSources[s]; ok {
			return ReasonLabel
		}
	}
	for s := range srcSet {
		if _, ok := bookSources[s]; ok {
			return BookLabel
		}
	}
	return AILabel
}
