package modes

import (
	"errors"
	"testing"
)

func TestCanon_AliasTable(t *testing.T) {
	c := New()

	cases := []struct {
		token string
		want  Mode
	}{
		{"grammar", ModeGrammar},
		{"Grammar", ModeGrammar},
		{"GRAM", ModeGrammar},
		{"g", ModeGrammar},
		{"문법", ModeGrammar},
		{"문법설명", ModeGrammar},
		{"sentence", ModeSentence},
		{"  sent  ", ModeSentence},
		{"S", ModeSentence},
		{"문장분석", ModeSentence},
		{"passage", ModePassage},
		{"Reading", ModePassage},
		{"read", ModePassage},
		{"p", ModePassage},
		{"지문", ModePassage},
	}
	for _, tc := range cases {
		got, err := c.Canon(tc.token)
		if err != nil {
			t.Fatalf("Canon(%q) error: %v", tc.token, err)
		}
		if got != tc.want {
			t.Errorf("Canon(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestCanon_Idempotent(t *testing.T) {
	c := New()
	for _, m := range []Mode{ModeGrammar, ModeSentence, ModePassage} {
		got, err := c.Canon(m.Key())
		if err != nil {
			t.Fatalf("Canon(%q) error: %v", m.Key(), err)
		}
		if got != m {
			t.Errorf("Canon(%q) = %v, want %v", m.Key(), got, m)
		}
		// Canonicalizing the canonical key again must be a fixed point.
		again, err := c.Canon(got.Key())
		if err != nil || again != m {
			t.Errorf("Canon(Canon(%q)) = %v, %v; want %v, nil", m.Key(), again, err, m)
		}
	}
}

func TestCanon_UnknownAndEmpty(t *testing.T) {
	c := New()

	for _, token := range []string{"", "   ", "essay", "이야기쓰기", "story-time"} {
		_, err := c.Canon(token)
		if err == nil {
			t.Fatalf("Canon(%q) = nil error, want *UnknownModeError", token)
		}
		var ume *UnknownModeError
		if !errors.As(err, &ume) {
			t.Errorf("Canon(%q) error type = %T, want *UnknownModeError", token, err)
		}
	}
}

func TestCanon_StoryHasNoAliases(t *testing.T) {
	c := New()
	if _, err := c.Canon("story"); err == nil {
		t.Fatal("Canon(\"story\") resolved; reserved mode must not have aliases")
	}
	// The mode's contract entry still exists, just disabled.
	s, ok := c.Spec(ModeStory)
	if !ok {
		t.Fatal("Spec(ModeStory) missing")
	}
	if s.Enabled {
		t.Error("ModeStory.Enabled = true, want false")
	}
}

func TestCanonOrDefault(t *testing.T) {
	c := New()

	if got := c.CanonOrDefault("지문설명"); got != ModePassage {
		t.Errorf("CanonOrDefault(지문설명) = %v, want %v", got, ModePassage)
	}
	// Legacy behavior: unknown and empty tokens fall back to grammar.
	if got := c.CanonOrDefault("???"); got != ModeGrammar {
		t.Errorf("CanonOrDefault(???) = %v, want %v", got, ModeGrammar)
	}
	if got := c.CanonOrDefault(""); got != ModeGrammar {
		t.Errorf("CanonOrDefault(\"\") = %v, want %v", got, ModeGrammar)
	}
}

func TestEnabledModes_Order(t *testing.T) {
	c := New()
	specs := c.EnabledModes()

	want := []Mode{ModeGrammar, ModeSentence, ModePassage}
	if len(specs) != len(want) {
		t.Fatalf("EnabledModes() len = %d, want %d", len(specs), len(want))
	}
	for i, m := range want {
		if specs[i].Key != m {
			t.Errorf("EnabledModes()[%d] = %v, want %v", i, specs[i].Key, m)
		}
	}
}

func TestFindByLabel(t *testing.T) {
	c := New()
	s, ok := c.FindByLabel("문장")
	if !ok || s.Key != ModeSentence {
		t.Errorf("FindByLabel(문장) = %v, %v; want sentence spec", s.Key, ok)
	}
	if _, ok := c.FindByLabel("없는라벨"); ok {
		t.Error("FindByLabel(없는라벨) ok = true, want false")
	}
}
