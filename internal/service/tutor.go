// Package service wires the tutoring pipeline together: mode
// canonicalization, evidence reranking, provenance labeling and prompt
// composition on the way in; bracket validation and evaluation parsing
// on the way back. All state is read-only after construction, so one
// Tutor serves any number of concurrent requests.
package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"maic/internal/evaluation"
	"maic/internal/modes"
	"maic/internal/prompt"
	"maic/internal/retrieval"
	"maic/internal/validation"
)

// TemplateSource supplies the active template set. prompt.Source is the
// production implementation; tests inject fixtures.
type TemplateSource interface {
	Current() *prompt.File
}

// TutorConfig holds dependencies and knobs for the Tutor.
type TutorConfig struct {
	Templates TemplateSource
	Searcher  retrieval.Searcher  // optional; nil disables SearchHits
	Reranker  *retrieval.Reranker // nil gets the default reranker
	TopK      int                 // clamped to >= 1
	Logger    *zap.Logger         // nil gets zap.NewNop()
}

// Tutor is the composition root of the prompt pipeline.
type Tutor struct {
	canon     *modes.Canonicalizer
	reranker  *retrieval.Reranker
	templates TemplateSource
	searcher  retrieval.Searcher
	topK      int
	log       *zap.Logger
}

// NewTutor creates a Tutor from the given config.
func NewTutor(cfg TutorConfig) *Tutor {
	r := cfg.Reranker
	if r == nil {
		r = retrieval.NewReranker(retrieval.DefaultRerankerConfig())
	}
	topK := cfg.TopK
	if topK < 1 {
		topK = 1
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Tutor{
		canon:     modes.New(),
		reranker:  r,
		templates: cfg.Templates,
		searcher:  cfg.Searcher,
		topK:      topK,
		log:       log,
	}
}

// Modes exposes the canonicalizer for UI listings.
func (t *Tutor) Modes() *modes.Canonicalizer { return t.canon }

// ComposeRequest carries one learner question through the pipeline.
type ComposeRequest struct {
	Question  string
	ModeToken string
	Hits      []retrieval.Hit

	// Strict rejects unknown mode tokens instead of falling back to
	// grammar. Legacy callers leave it false.
	Strict bool
}

// ComposeResponse is the assembled prompt plus everything the caller
// needs to invoke and present the model answer.
type ComposeResponse struct {
	RequestID   string
	Mode        modes.Mode
	RankedHits  []retrieval.Hit
	SourceLabel string
	Prompt      *prompt.BuildResult
}

// ComposePrompt runs the inbound pipeline: canonicalize the mode token,
// rerank and deduplicate the hits, decide the provenance label, and
// compose the mode's system prompt. Configuration defects (unknown mode
// under Strict, missing template fields) fail hard; data-quality issues
// in hits never do.
func (t *Tutor) ComposePrompt(ctx context.Context, req ComposeRequest) (*ComposeResponse, error) {
	reqID := uuid.NewString()
	log := t.log.With(zap.String("request_id", reqID))

	var mode modes.Mode
	if req.Strict {
		m, err := t.canon.Canon(req.ModeToken)
		if err != nil {
			log.Warn("mode canonicalization failed", zap.String("token", req.ModeToken), zap.Error(err))
			return nil, err
		}
		mode = m
	} else {
		mode = t.canon.CanonOrDefault(req.ModeToken)
	}

	ranked := t.reranker.Rerank(ctx, req.Hits, t.topK)
	label := retrieval.DecideLabel(ranked, retrieval.AILabel)

	built, err := prompt.BuildForMode(t.templates.Current(), mode)
	if err != nil {
		log.Error("prompt composition failed", zap.String("mode", mode.Key()), zap.Error(err))
		return nil, err
	}

	log.Info("composed system prompt",
		zap.String("mode", mode.Key()),
		zap.String("source_label", label),
		zap.Int("hits_in", len(req.Hits)),
		zap.Int("hits_ranked", len(ranked)),
		zap.String("model", built.Model),
	)

	return &ComposeResponse{
		RequestID:   reqID,
		Mode:        mode,
		RankedHits:  ranked,
		SourceLabel: label,
		Prompt:      built,
	}, nil
}

// SearchHits queries the configured searcher. Without one it returns no
// hits: the pipeline then simply labels the answer as model knowledge.
func (t *Tutor) SearchHits(query string) []retrieval.Hit {
	if t.searcher == nil {
		return nil
	}
	hits, err := t.searcher.Search(query, t.topK)
	if err != nil {
		t.log.Warn("hit search failed", zap.Error(err))
		return nil
	}
	return hits
}

// ReviewAnswer validates a model answer against the bracket contract.
func (t *Tutor) ReviewAnswer(text string) validation.Report {
	return validation.Validate(text, nil, validation.RequireSV())
}

// ParseEvaluation parses the reviewer model's feedback block.
func (t *Tutor) ParseEvaluation(text string) evaluation.Result {
	return evaluation.Parse(text)
}
