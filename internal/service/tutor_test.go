package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"maic/internal/modes"
	"maic/internal/prompt"
	"maic/internal/retrieval"
)

// fixedTemplates serves a static template set.
type fixedTemplates struct{ file *prompt.File }

func (f fixedTemplates) Current() *prompt.File { return f.file }

func testTemplates() TemplateSource {
	return fixedTemplates{file: &prompt.File{
		Version: 1,
		Modes: map[string]prompt.TemplateEntry{
			"grammar": {
				Persona:            "문법 선생님",
				SystemInstructions: "규칙→근거→예문",
				CitationsPolicy:    "[이유문법], [문법책], [AI지식]",
			},
			"sentence": {
				Persona:            "구문 분석가",
				SystemInstructions: "괄호규칙 분석",
				CitationsPolicy:    "[이유문법], [AI지식]",
			},
		},
	}}
}

func TestComposePrompt_FullPipeline(t *testing.T) {
	tut := NewTutor(TutorConfig{Templates: testTemplates(), TopK: 3})

	hits := []retrieval.Hit{
		{"path": "notes.txt", "source": "web", "score": 0.9},
		{"path": "이유문법_분사.md", "source": "iyu", "score": 0.4},
		{"path": "이유문법_분사.md", "source": "iyu", "score": 0.2}, // duplicate doc
	}

	res, err := tut.ComposePrompt(context.Background(), ComposeRequest{
		Question:  "분사구문이 뭐예요?",
		ModeToken: "Grammar",
		Hits:      hits,
	})
	if err != nil {
		t.Fatalf("ComposePrompt error: %v", err)
	}

	if res.Mode != modes.ModeGrammar {
		t.Errorf("Mode = %v, want grammar", res.Mode)
	}
	if res.RequestID == "" {
		t.Error("RequestID empty")
	}
	if len(res.RankedHits) != 2 {
		t.Errorf("RankedHits = %d, want 2 (deduplicated)", len(res.RankedHits))
	}
	if res.SourceLabel != retrieval.ReasonLabel {
		t.Errorf("SourceLabel = %q, want %q", res.SourceLabel, retrieval.ReasonLabel)
	}
	if !strings.Contains(res.Prompt.SystemPrompt, "[ROLE]") ||
		!strings.HasSuffix(res.Prompt.SystemPrompt, "[MODE] grammar") {
		t.Errorf("SystemPrompt malformed:\n%s", res.Prompt.SystemPrompt)
	}
}

func TestComposePrompt_NoHitsLabelsModelKnowledge(t *testing.T) {
	tut := NewTutor(TutorConfig{Templates: testTemplates()})

	res, err := tut.ComposePrompt(context.Background(), ComposeRequest{
		Question:  "What is a gerund?",
		ModeToken: "sentence",
	})
	if err != nil {
		t.Fatalf("ComposePrompt error: %v", err)
	}
	if res.SourceLabel != retrieval.AILabel {
		t.Errorf("SourceLabel = %q, want %q", res.SourceLabel, retrieval.AILabel)
	}
	if len(res.RankedHits) != 0 {
		t.Errorf("RankedHits = %v, want empty", res.RankedHits)
	}
}

func TestComposePrompt_StrictVsDefault(t *testing.T) {
	tut := NewTutor(TutorConfig{Templates: testTemplates()})
	ctx := context.Background()

	// Legacy behavior: unknown token quietly becomes grammar.
	res, err := tut.ComposePrompt(ctx, ComposeRequest{ModeToken: "unknown-mode"})
	if err != nil {
		t.Fatalf("ComposePrompt error: %v", err)
	}
	if res.Mode != modes.ModeGrammar {
		t.Errorf("Mode = %v, want grammar fallback", res.Mode)
	}

	// Strict callers get the configuration error instead.
	_, err = tut.ComposePrompt(ctx, ComposeRequest{ModeToken: "unknown-mode", Strict: true})
	var ume *modes.UnknownModeError
	if !errors.As(err, &ume) {
		t.Errorf("strict error = %v (%T), want *UnknownModeError", err, err)
	}
}

func TestComposePrompt_MissingTemplateEntry(t *testing.T) {
	tut := NewTutor(TutorConfig{Templates: testTemplates()})

	// passage has no entry in the fixture set.
	_, err := tut.ComposePrompt(context.Background(), ComposeRequest{ModeToken: "passage", Strict: true})
	if err == nil {
		t.Fatal("ComposePrompt(passage) = nil error, want missing-entry error")
	}
}

func TestComposePrompt_MissingRequiredField(t *testing.T) {
	broken := fixedTemplates{file: &prompt.File{Modes: map[string]prompt.TemplateEntry{
		"grammar": {SystemInstructions: "i", CitationsPolicy: "c"}, // no persona
	}}}
	tut := NewTutor(TutorConfig{Templates: broken})

	_, err := tut.ComposePrompt(context.Background(), ComposeRequest{ModeToken: "grammar"})
	var mfe *prompt.MissingFieldError
	if !errors.As(err, &mfe) {
		t.Fatalf("error = %v (%T), want *MissingFieldError", err, err)
	}
	if mfe.Field != "persona" {
		t.Errorf("Field = %q, want persona", mfe.Field)
	}
}

func TestSearchHits(t *testing.T) {
	tut := NewTutor(TutorConfig{Templates: testTemplates(), Searcher: retrieval.DemoSearcher{}})

	if hits := tut.SearchHits("이유문법 알려줘"); len(hits) != 1 {
		t.Errorf("SearchHits = %v, want one demo hit", hits)
	}

	// No searcher configured: no hits, no failure.
	bare := NewTutor(TutorConfig{Templates: testTemplates()})
	if hits := bare.SearchHits("anything"); hits != nil {
		t.Errorf("SearchHits without searcher = %v, want nil", hits)
	}
}

func TestReviewAnswerAndParseEvaluation(t *testing.T) {
	tut := NewTutor(TutorConfig{Templates: testTemplates()})

	rep := tut.ReviewAnswer("[S I] [V stayed] [M at home]")
	if !rep.OK || rep.Groups != 3 {
		t.Errorf("ReviewAnswer = %+v, want ok with 3 groups", rep)
	}

	res := tut.ParseEvaluation("- 섹션: OK\n[한 줄 총평]\n- 좋아요.")
	if res.Sections.State != "OK" || res.Summary != "좋아요." {
		t.Errorf("ParseEvaluation = %+v", res)
	}
}
