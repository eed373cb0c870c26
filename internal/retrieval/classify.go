package retrieval

import (
	"path"
	"strings"
)

// EvidenceLabel classifies where a hit's evidence comes from. It only
// influences the score boost during reranking; it is not persisted.
type EvidenceLabel string

const (
	LabelReason EvidenceLabel = "reason" // 이유문법/깨알문법 materials
	LabelBook   EvidenceLabel = "book"   // grammar books / textbooks
	LabelOther  EvidenceLabel = "other"
)

// Classifier maps a hit to an evidence label. A classifier may fail
// (broken metadata, remote lookup, ...); the reranker treats any error
// as "no boost". The error surfaces here instead of being swallowed
// inside the classifier.
type Classifier func(Hit) (EvidenceLabel, error)

// FilenameClassifier labels a hit from filename/path/title hints:
//   - 이유문법* / [깨알문법]* name prefixes (or iyu/reason-grammar) → reason
//   - .pdf extension, book/grammar path hints, 문법서/문법서적/문법책 → book
//   - anything else → other
func FilenameClassifier(h Hit) (EvidenceLabel, error) {
	p := h.Str("path")
	title := h.Str("title")

	name := title
	if p != "" {
		name = path.Base(p)
	}

	if isReasonGrammar(name) {
		return LabelReason, nil
	}
	if isBookMaterial(p, firstNonEmpty(name, title)) {
		return LabelBook, nil
	}
	return LabelOther, nil
}

func isReasonGrammar(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, "이유문법") || strings.HasPrefix(name, "[깨알문법") {
		return true
	}
	low := strings.ToLower(name)
	return strings.HasPrefix(low, "iyu") || strings.HasPrefix(low, "reason-grammar")
}

func isBookMaterial(p, title string) bool {
	ext := strings.ToLower(path.Ext(firstNonEmpty(p, title)))
	if ext == ".pdf" {
		return true
	}

	lowPath := strings.ToLower(p)
	lowTitle := strings.ToLower(title)

	if strings.Contains(lowPath, "/book/") ||
		strings.HasSuffix(lowPath, "/book") ||
		strings.HasPrefix(lowPath, "book/") {
		return true
	}
	if strings.Contains(lowPath, "grammar") || strings.Contains(lowTitle, "grammar") {
		return true
	}

	for _, k := range []string{"문법서", "문법서적", "문법책"} {
		if strings.Contains(p, k) || strings.Contains(title, k) {
			return true
		}
	}
	return false
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
