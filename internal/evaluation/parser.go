// Package evaluation parses the reviewer model's free-text feedback into a
// structured result. The reviewer answers with a fixed-format block:
//
//	[형식 체크]
//	- 섹션: OK (모두 충족)
//	- 괄호규칙: FAIL (라벨 누락 S/V/O/C)
//	- 사실성: WARN (추정 표현 과다)
//	[피드백]
//	- ...
//	[한 줄 총평]
//	- ...
//
// The text is model-generated and not guaranteed to be well-formed, so the
// parser is deliberately forgiving: anything it cannot find stays at its
// empty default and parsing never fails.
package evaluation

import (
	"regexp"
	"strings"
)

// Field is one criterion verdict: a state token plus an optional reason.
type Field struct {
	State  string
	Reason string
}

// Result is the structured form of a reviewer response. State vocabularies:
// Sections OK|FAIL, Bracket OK|FAIL, Factual OK|WARN.
type Result struct {
	Sections Field
	Bracket  Field
	Factual  Field
	Summary  string
}

var (
	sectionsRe = regexp.MustCompile(`(?m)^-?\s*섹션:\s*(OK|FAIL)\s*(?:\((.*?)\))?`)
	bracketRe  = regexp.MustCompile(`(?m)^-?\s*괄호규칙:\s*(OK|FAIL)\s*(?:\((.*?)\))?`)
	factualRe  = regexp.MustCompile(`(?m)^-?\s*사실성:\s*(OK|WARN)\s*(?:\((.*?)\))?`)
	summaryRe  = regexp.MustCompile(`\[한 줄 총평\]\s*\n-?\s*(.+)`)
)

// Parse extracts the three criterion fields and the one-line summary.
func Parse(text string) Result {
	var res Result
	res.Sections = capture(sectionsRe, text)
	res.Bracket = capture(bracketRe, text)
	res.Factual = capture(factualRe, text)

	if m := summaryRe.FindStringSubmatch(text); m != nil {
		res.Summary = strings.TrimSpace(m[1])
	}
	return res
}

func capture(re *regexp.Regexp, text string) Field {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return Field{}
	}
	return Field{State: strings.TrimSpace(m[1]), Reason: strings.TrimSpace(m[2])}
}
