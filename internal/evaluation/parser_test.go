package evaluation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const fullFeedback = `[형식 체크]
- 섹션: OK (모두 충족)
- 괄호규칙: FAIL (라벨 누락 S/V/O/C)
- 사실성: WARN (추정 표현 과다)
[피드백]
- 분석 순서는 좋았어요.
[한 줄 총평]
- 구조는 정확하니 라벨 표기만 보완하면 완성도가 높아져요.
`

func TestParse_FullBlock(t *testing.T) {
	got := Parse(fullFeedback)

	want := Result{
		Sections: Field{State: "OK", Reason: "모두 충족"},
		Bracket:  Field{State: "FAIL", Reason: "라벨 누락 S/V/O/C"},
		Factual:  Field{State: "WARN", Reason: "추정 표현 과다"},
		Summary:  "구조는 정확하니 라벨 표기만 보완하면 완성도가 높아져요.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_StateWithoutReason(t *testing.T) {
	got := Parse("- 섹션: OK\n- 괄호규칙: OK\n- 사실성: OK\n")

	if got.Sections.State != "OK" || got.Sections.Reason != "" {
		t.Errorf("Sections = %+v, want state OK with empty reason", got.Sections)
	}
	if got.Bracket.State != "OK" || got.Factual.State != "OK" {
		t.Errorf("Bracket/Factual = %+v/%+v, want OK/OK", got.Bracket, got.Factual)
	}
}

func TestParse_MissingSummary(t *testing.T) {
	got := Parse("[형식 체크]\n- 섹션: FAIL (항목 누락)\n")

	if got.Summary != "" {
		t.Errorf("Summary = %q, want empty", got.Summary)
	}
	if got.Sections.State != "FAIL" || got.Sections.Reason != "항목 누락" {
		t.Errorf("Sections = %+v", got.Sections)
	}
	// Criteria absent from the text stay at their zero value.
	if got.Bracket != (Field{}) || got.Factual != (Field{}) {
		t.Errorf("Bracket/Factual = %+v/%+v, want empty", got.Bracket, got.Factual)
	}
}

func TestParse_EmptyAndGarbage(t *testing.T) {
	for _, text := range []string{"", "completely unrelated text", "섹션 OK 괄호규칙 FAIL"} {
		got := Parse(text)
		if got != (Result{}) {
			t.Errorf("Parse(%q) = %+v, want zero result", text, got)
		}
	}
}

func TestParse_InvalidStateTokenIgnored(t *testing.T) {
	// MAYBE is outside the 사실성 vocabulary (OK|WARN); the line must not match.
	got := Parse("- 사실성: MAYBE (근거 부족)\n")
	if got.Factual != (Field{}) {
		t.Errorf("Factual = %+v, want empty for out-of-vocabulary state", got.Factual)
	}
}

func TestParse_SummaryWithoutDash(t *testing.T) {
	got := Parse("[한 줄 총평]\n아주 좋아요.\n")
	if got.Summary != "아주 좋아요." {
		t.Errorf("Summary = %q, want %q", got.Summary, "아주 좋아요.")
	}
}
