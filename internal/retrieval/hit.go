// Package retrieval ranks and labels evidence snippets ("hits") returned by
// an external search index. It deduplicates hits per document, scores them
// with a provenance-aware boost and derives the source label shown to the
// student. The index itself lives outside this package; only hit lists and
// their attributes are handled here.
package retrieval

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Hit is one candidate evidence snippet. Hits arrive as loose attribute
// maps from the search collaborator; no key is guaranteed to be present.
// Recognized keys: path, doc_id, source, title, url, file, name, score.
type Hit map[string]any

// Str returns the hit's value for key as a trimmed string, or "" when the
// key is absent or nil. This is the single accessor all identity and
// labeling code goes through, so absent fields are tolerated everywhere.
func (h Hit) Str(key string) string {
	v, ok := h[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// BaseScore reads the numeric "score" field. Absent or non-numeric values
// score 0.0 rather than failing: a missing score is a data-quality issue,
// not an error.
func (h Hit) BaseScore() float64 {
	v, ok := h["score"]
	if !ok || v == nil {
		return 0.0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0.0
		}
		return f
	default:
		return 0.0
	}
}

// docKeyFields is the identity preference order for deduplication.
// Two hits with the same derived key refer to the same document.
var docKeyFields = []string{"path", "doc_id", "source", "title", "url", "file", "name"}

// DocKey derives the document identity of a hit. The first non-empty
// field in the preference order wins; a hit with none of the identity
// fields falls back to a canonical serialization of its key set.
func DocKey(h Hit) string {
	for _, k := range docKeyFields {
		if v := h.Str(k); v != "" {
			return v
		}
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "keys:" + strings.Join(keys, ",")
}
