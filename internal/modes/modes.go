// Package modes defines the canonical instructional modes of the tutor
// (grammar, sentence, passage) and the canonicalizer that maps user-facing
// tokens (abbreviations, Korean labels, synonyms) onto them.
package modes

// Mode is an app-wide canonical instructional mode. Keep the keys stable
// across UI, service and LLM layers.
type Mode string

const (
	ModeGrammar  Mode = "grammar"
	ModeSentence Mode = "sentence"
	ModePassage  Mode = "passage"
	// ModeStory is reserved for oral/creative narration training.
	// It has a spec entry but no aliases and is disabled by default.
	ModeStory Mode = "story"
)

// Key returns the stable internal key of the mode.
func (m Mode) Key() string { return string(m) }

// Spec describes a mode's contract: display label, goal, expected output
// sections and the rubric the evaluator focuses on.
type Spec struct {
	Key         Mode
	Label       string   // UI label (Korean)
	Goal        string
	OutputShape []string // output section order
	EvalFocus   []string // evaluator rubric
	PromptRules []string // core prompt rules
	Enabled     bool     // exposed to the UI
}

// specTable holds the per-mode contracts. Rubric text mirrors the
// teaching material the tutor was designed around.
func specTable() map[Mode]Spec {
	return map[Mode]Spec{
		ModeGrammar: {
			Key:         ModeGrammar,
			Label:       "문법",
			Goal:        "이유문법/깨알문법 근거로 규칙 설명 + 오류 교정",
			OutputShape: []string{"핵심규칙", "근거(국어↔영어)", "예문", "역예문(선택)", "한 줄 요약"},
			EvalFocus:   []string{"정확도", "근거 제시", "간결성"},
			PromptRules: []string{
				"근거 출처를 「이유문법」「깨알문법」에서 우선 인용(있으면)",
				"불필요한 창작 예시는 최소화, 반례는 1개 이내",
				"단계: 규칙→근거→예문→역예문→요약",
			},
			Enabled: true,
		},
		ModeSentence: {
			Key:         ModeSentence,
			Label:       "문장",
			Goal:        "사용자 괄호규칙/기타 규칙에 따른 문장 구조·어감 분석",
			OutputShape: []string{"토큰화", "구문(괄호규칙)", "의미해석", "개선 제안(선택)"},
			EvalFocus:   []string{"규칙 준수", "분석 일관성", "재현성"},
			PromptRules: []string{
				"사용자 제공 괄호규칙/분석 규칙을 최우선으로 적용",
				"단계: 원문→토큰화→구문→해석→개선 제안",
			},
			Enabled: true,
		},
		ModePassage: {
			Key:         ModePassage,
			Label:       "지문",
			Goal:        "수능형 지문을 쉬운 예시로 설명하고 주제/제목 정리",
			OutputShape: []string{"핵심 요지", "쉬운 예시/비유", "주제", "제목", "오답 포인트(선택)"},
			EvalFocus:   []string{"평이화", "정보 보존", "집중도"},
			PromptRules: []string{
				"순서: 요지→예시→주제→제목(→오답 포인트)",
				"문단이 길면 문단별 한 줄 요지 후 전체 요지",
			},
			Enabled: true,
		},
		ModeStory: {
			Key:         ModeStory,
			Label:       "이야기",
			Goal:        "창작/구술형 서술 훈련",
			OutputShape: []string{"상황·등장인물", "전개", "마무리", "교정 포인트(선택)"},
			EvalFocus:   []string{"전개", "연결성", "몰입감", "어휘 다양성"},
			PromptRules: []string{"친근한 톤, 비유 적극 사용, 장문 허용"},
			Enabled:     false,
		},
	}
}

// displayOrder is the stable UI ordering: 문법→문장→지문→이야기.
var displayOrder = []Mode{ModeGrammar, ModeSentence, ModePassage, ModeStory}
