package retrieval

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"maic/internal/logging"
)

// Boost weights added on top of the search engine's base score.
const (
	BoostReason = 0.50
	BoostBook   = 0.20
)

// RerankerConfig holds configuration for the reranker.
type RerankerConfig struct {
	// Classifier labels hits for the provenance boost. Nil disables boosts.
	Classifier Classifier

	// BoostReason/BoostBook are the boost weights. Zero is a valid
	// "no boost" setting; negative values are clamped to zero.
	BoostReason float64
	BoostBook   float64

	// Parallelism bounds concurrent per-hit classification. Values < 2
	// classify sequentially. Results are deterministic either way.
	Parallelism int
}

// DefaultRerankerConfig returns sensible defaults: filename-hint
// classification, standard boosts, sequential classification.
func DefaultRerankerConfig() *RerankerConfig {
	return &RerankerConfig{
		Classifier:  FilenameClassifier,
		BoostReason: BoostReason,
		BoostBook:   BoostBook,
		Parallelism: 1,
	}
}

// Reranker deduplicates hits by document identity and orders them by
// evidence score. It never mutates or copies the hits it is given.
type Reranker struct {
	classifier  Classifier
	boostReason float64
	boostBook   float64
	parallelism int
}

// NewReranker creates a reranker with the given config.
func NewReranker(cfg *RerankerConfig) *Reranker {
	if cfg == nil {
		cfg = DefaultRerankerConfig()
	}
	r := &Reranker{
		classifier:  cfg.Classifier,
		boostReason: cfg.BoostReason,
		boostBook:   cfg.BoostBook,
		parallelism: cfg.Parallelism,
	}
	if r.boostReason < 0 {
		r.boostReason = 0
	}
	if r.boostBook < 0 {
		r.boostBook = 0
	}
	if r.parallelism < 1 {
		r.parallelism = 1
	}
	return r
}

// boost converts a classification into a score increment. A classifier
// error means no boost: evidence labeling is an enhancement, not a
// correctness requirement.
func (r *Reranker) boost(h Hit) float64 {
	if r.classifier == nil {
		return 0.0
	}
	label, err := r.classifier(h)
	if err != nil {
		logging.Get(logging.CategoryRetrieval).Warn("classifier failed for %q: %v (no boost)", DocKey(h), err)
		return 0.0
	}
	switch label {
	case LabelReason:
		return r.boostReason
	case LabelBook:
		return r.boostBook
	default:
		return 0.0
	}
}

// EvidenceScore computes base score + provenance boost for a single hit.
func (r *Reranker) EvidenceScore(h Hit) float64 {
	return h.BaseScore() + r.boost(h)
}

// scoreAll computes evidence scores index-aligned with hits. Per-hit
// classification is independent, so it may run concurrently; the slice
// layout keeps the downstream dedup/sort deterministic.
func (r *Reranker) scoreAll(ctx context.Context, hits []Hit) []float64 {
	scores := make([]float64, len(hits))
	if r.parallelism < 2 || len(hits) < 2 {
		for i, h := range hits {
			scores[i] = r.EvidenceScore(h)
		}
		return scores
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for i, h := range hits {
		g.Go(func() error {
			scores[i] = r.EvidenceScore(h)
			return nil
		})
	}
	// Workers never return errors; classification failures are already
	// folded into a zero boost.
	_ = g.Wait()
	return scores
}

// scoredHit pairs a hit with its score and original position.
type scoredHit struct {
	hit   Hit
	score float64
	order int
}

// Dedupe removes duplicate documents, keeping within each DocKey group
// only the hit with the strictly greatest evidence score. Ties keep the
// first hit encountered; output preserves first-seen document order.
func (r *Reranker) Dedupe(ctx context.Context, hits []Hit) []Hit {
	deduped := r.dedupeScored(ctx, hits)
	out := make([]Hit, len(deduped))
	for i, sh := range deduped {
		out[i] = sh.hit
	}
	return out
}

func (r *Reranker) dedupeScored(ctx context.Context, hits []Hit) []scoredHit {
	scores := r.scoreAll(ctx, hits)

	best := make(map[string]int) // DocKey -> index into kept
	kept := make([]scoredHit, 0, len(hits))
	for i, h := range hits {
		key := DocKey(h)
		sh := scoredHit{hit: h, score: scores[i], order: i}
		if j, ok := best[key]; ok {
			if sh.score > kept[j].score {
				kept[j] = sh
			}
			continue
		}
		best[key] = len(kept)
		kept = append(kept, sh)
	}
	return kept
}

// Rerank runs the full pipeline: dedupe by document, stable sort by
// evidence score descending (post-dedup order breaks ties), return the
// first topK hits. topK is clamped to at least 1. Empty input yields
// empty output.
func (r *Reranker) Rerank(ctx context.Context, hits []Hit, topK int) []Hit {
	timer := logging.StartTimer(logging.CategoryRetrieval, "Rerank")
	defer timer.Stop()

	if len(hits) == 0 {
		return []Hit{}
	}

	kept := r.dedupeScored(ctx, hits)
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})

	if topK < 1 {
		topK = 1
	}
	if topK > len(kept) {
		topK = len(kept)
	}

	out := make([]Hit, topK)
	for i := 0; i < topK; i++ {
		out[i] = kept[i].hit
	}
	logging.Get(logging.CategoryRetrieval).Debug("reranked %d hits -> %d unique, returning %d", len(hits), len(kept), topK)
	return out
}
