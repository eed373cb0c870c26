package retrieval

import "strings"

// Searcher returns candidate hits for a question. The real document
// index is an external collaborator; this interface is how it plugs in.
type Searcher interface {
	Search(query string, topK int) ([]Hit, error)
}

// DemoSearcher is a keyword-triggered stand-in used by the chat UI until
// a real index is wired. It returns a single canned hit when the query
// mentions the reason-grammar or textbook materials, otherwise nothing.
type DemoSearcher struct{}

// Search implements Searcher.
func (DemoSearcher) Search(query string, topK int) ([]Hit, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || topK < 1 {
		return []Hit{}, nil
	}
	if strings.Contains(q, "이유문법") {
		return []Hit{{"source": "iyu", "title": "이유문법(데모)", "score": 1.0}}, nil
	}
	if strings.Contains(q, "문법책") || strings.Contains(q, "교과서") || strings.Contains(q, "textbook") {
		return []Hit{{"source": "book", "title": "문법책(데모)", "score": 1.0}}, nil
	}
	return []Hit{}, nil
}
