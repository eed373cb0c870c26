package retrieval

import "testing"

func TestDecideLabel_EmptyReturnsDefault(t *testing.T) {
	if got := DecideLabel(nil, AILabel); got != AILabel {
		t.Errorf("DecideLabel(nil) = %q, want %q", got, AILabel)
	}
	if got := DecideLabel([]Hit{}, "[custom]"); got != "[custom]" {
		t.Errorf("DecideLabel([]) = %q, want %q", got, "[custom]")
	}
}

func TestDecideLabel_ReasonBeatsBook(t *testing.T) {
	book := Hit{"source": "book"}
	reason := Hit{"source": "iyu"}

	// Priority holds regardless of ordering.
	if got := DecideLabel([]Hit{book, reason}, AILabel); got != ReasonLabel {
		t.Errorf("DecideLabel(book,reason) = %q, want %q", got, ReasonLabel)
	}
	if got := DecideLabel([]Hit{reason, book}, AILabel); got != ReasonLabel {
		t.Errorf("DecideLabel(reason,book) = %q, want %q", got, ReasonLabel)
	}
}

func TestDecideLabel_SourceVariants(t *testing.T) {
	cases := []struct {
		name string
		hits []Hit
		want string
	}{
		{"iyu", []Hit{{"source": "iyu"}}, ReasonLabel},
		{"reason-grammar upper", []Hit{{"source": "Reason-Grammar"}}, ReasonLabel},
		{"iyu-grammar", []Hit{{"source": "iyu-grammar"}}, ReasonLabel},
		{"book", []Hit{{"source": "book"}}, BookLabel},
		{"textbook", []Hit{{"source": "TEXTBOOK"}}, BookLabel},
		{"unknown source", []Hit{{"source": "web"}}, AILabel},
		{"missing source field", []Hit{{"title": "no source"}}, AILabel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecideLabel(tc.hits, AILabel); got != tc.want {
				t.Errorf("DecideLabel = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCanonLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"[문법서적]", BookLabel},
		{"[문법책]", BookLabel},
		{"[이유문법]", ReasonLabel},
		{"[AI지식]", AILabel},
		{"", AILabel},
		{"   ", AILabel},
		{"[기타라벨]", "[기타라벨]"},
	}
	for _, tc := range cases {
		if got := CanonLabel(tc.in); got != tc.want {
			t.Errorf("CanonLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFilenameClassifier(t *testing.T) {
	cases := []struct {
		name string
		hit  Hit
		want EvidenceLabel
	}{
		{"reason prefix", Hit{"path": "prepared/이유문법_5형식.md"}, LabelReason},
		{"kkae prefix", Hit{"path": "prepared/[깨알문법] 가정법.md"}, LabelReason},
		{"iyu ascii", Hit{"title": "iyu-materials"}, LabelReason},
		{"reason-grammar ascii", Hit{"title": "Reason-Grammar v2"}, LabelReason},
		{"pdf", Hit{"path": "docs/중학영문법.pdf"}, LabelBook},
		{"book dir", Hit{"path": "book/usage.txt"}, LabelBook},
		{"grammar in path", Hit{"path": "refs/grammar-notes.txt"}, LabelBook},
		{"korean book hint", Hit{"title": "고등 문법책 요약"}, LabelBook},
		{"plain", Hit{"path": "misc/todo.txt"}, LabelOther},
		{"empty hit", Hit{}, LabelOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FilenameClassifier(tc.hit)
			if err != nil {
				t.Fatalf("FilenameClassifier error: %v", err)
			}
			if got != tc.want {
				t.Errorf("FilenameClassifier = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDemoSearcher(t *testing.T) {
	var s DemoSearcher

	hits, err := s.Search("이유문법으로 설명해줘", 5)
	if err != nil || len(hits) != 1 || hits[0].Str("source") != "iyu" {
		t.Errorf("Search(이유문법...) = %v, %v; want one iyu hit", hits, err)
	}

	hits, _ = s.Search("문법책에 나온 예문", 5)
	if len(hits) != 1 || hits[0].Str("source") != "book" {
		t.Errorf("Search(문법책...) = %v; want one book hit", hits)
	}

	hits, _ = s.Search("What is a gerund?", 5)
	if len(hits) != 0 {
		t.Errorf("Search(plain) = %v; want no hits", hits)
	}
}
