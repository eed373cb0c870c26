// Package validation checks model output against the labeled-bracket
// notation contract used for sentence structure analysis. Answers mark
// grammatical-role spans as "[LABEL content]" groups; this package
// verifies balance, label vocabulary and required labels. Malformed
// input always yields a report, never an error.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DefaultLabels is the standard grammatical-role label vocabulary.
func DefaultLabels() []string {
	return []string{"S", "V", "O", "C", "M", "Sub", "Rel", "ToInf", "Ger", "Part", "Appo", "Conj"}
}

// RequireSV is the standard minimum: every analysis names a subject and a verb.
func RequireSV() []string {
	return []string{"S", "V"}
}

var bracketRe = regexp.MustCompile(`\[([A-Za-z]+)\s+.+?\]`)

// Report is the immutable result of a bracket validation pass.
type Report struct {
	OK     bool
	Errors []string
	Counts map[string]int // occurrences per label
	Groups int            // total well-formed bracket groups
}

// Validate checks text against the bracket contract:
//   - opening and closing bracket counts must match,
//   - every group label must be in allowed (nil means DefaultLabels),
//   - every label in required must occur at least once.
//
// Counts and Groups may be partial for malformed input but are always
// populated as far as extraction got.
func Validate(text string, allowed, required []string) Report {
	if allowed == nil {
		allowed = DefaultLabels()
	}
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, l := range allowed {
		allowedSet[l] = struct{}{}
	}

	var errs []string

	left := strings.Count(text, "[")
	right := strings.Count(text, "]")
	if left != right {
		errs = append(errs, fmt.Sprintf("bracket-unbalanced: left=%d, right=%d", left, right))
	}

	counts := make(map[string]int)
	groups := 0
	for _, m := range bracketRe.FindAllStringSubmatch(text, -1) {
		groups++
		label := m[1]
		counts[label]++
		if _, ok := allowedSet[label]; !ok {
			errs = append(errs, fmt.Sprintf("unknown-label: %s", label))
		}
	}

	// Deterministic error order for required labels.
	req := make([]string, len(required))
	copy(req, required)
	sort.Strings(req)
	for _, l := range req {
		if counts[l] == 0 {
			errs = append(errs, fmt.Sprintf("missing-label: %s", l))
		}
	}

	return Report{
		OK:     len(errs) == 0,
		Errors: errs,
		Counts: counts,
		Groups: groups,
	}
}
