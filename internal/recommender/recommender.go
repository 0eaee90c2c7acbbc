// Package recommender ranks catalog layouts for a content bundle. It runs
// the analyzer once per request, scores every layout in the active catalog,
// and returns the top entries in a deterministic order.
package recommender

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/slideforge/layout-engine/internal/analyzer"
	"github.com/slideforge/layout-engine/internal/catalog"
	"github.com/slideforge/layout-engine/internal/domain"
	"github.com/slideforge/layout-engine/internal/logging"
	"github.com/slideforge/layout-engine/internal/scoring"
	"github.com/slideforge/layout-engine/internal/telemetry"
)

// DefaultTopN is the number of recommendations returned when a caller does
// not say how many it wants.
const DefaultTopN = 3

// Recorder persists a trace of served recommendations. Recording is an
// observability concern: failures are logged and never surfaced to the
// caller.
type Recorder interface {
	Record(ctx context.Context, entry RecordEntry) error
}

// RecordEntry is one served recommendation, flattened for storage.
type RecordEntry struct {
	ContentType   string
	Structure     string
	TopLayoutID   string
	TopScore      float64
	Returned      int
	DurationMs    float64
	RecommendedAt time.Time
}

// LayoutDetails pairs a descriptor with its placeholder aggregate.
type LayoutDetails struct {
	Layout  domain.LayoutDescriptor   `json:"layout"`
	Summary domain.PlaceholderSummary `json:"placeholder_summary"`
}

// Recommender is the engine facade used by both transports.
type Recommender struct {
	analyzer *analyzer.Analyzer
	scorer   *scoring.Scorer
	store    *catalog.Store
	recorder Recorder
	tel      *telemetry.Provider
	logger   logging.Logger
}

// New assembles a recommender. recorder may be nil when history is disabled.
func New(
	an *analyzer.Analyzer,
	store *catalog.Store,
	recorder Recorder,
	tel *telemetry.Provider,
	logger logging.Logger,
) *Recommender {
	return &Recommender{
		analyzer: an,
		scorer:   scoring.NewScorer(),
		store:    store,
		recorder: recorder,
		tel:      tel,
		logger:   logger,
	}
}

// Analyze classifies a bundle without ranking layouts.
func (r *Recommender) Analyze(ctx context.Context, bundle domain.Bundle) domain.ContentAnalysis {
	_, span := r.tel.Tracer.Start(ctx, "recommender.Analyze")
	defer span.End()

	started := time.Now()
	analysis := r.analyzer.Analyze(bundle)
	r.tel.Metrics.AnalyzeDuration.Observe(time.Since(started).Seconds())

	return analysis
}

// Recommend scores every layout in the active catalog against bundle and
// returns the topN best, ordered by descending score and, on ties, by
// ascending layout id. topN must be positive.
func (r *Recommender) Recommend(ctx context.Context, bundle domain.Bundle, topN int) ([]domain.Recommendation, error) {
	if topN <= 0 {
		return nil, &domain.InvalidArgumentError{Reason: fmt.Sprintf("top_n must be positive, got %d", topN)}
	}

	ctx, span := r.tel.Tracer.Start(ctx, "recommender.Recommend")
	defer span.End()

	started := time.Now()

	analysis := r.Analyze(ctx, bundle)
	cat := r.store.Current()

	recs := make([]domain.Recommendation, 0, cat.Len())
	for _, id := range cat.IDs() {
		layout, err := cat.Get(id)
		if err != nil {
			continue
		}
		score := r.scorer.Score(analysis, layout)
		recs = append(recs, domain.Recommendation{
			LayoutID: id,
			Score:    score,
			Reason:   scoring.Reason(analysis, layout, score),
		})
	}

	// IDs() is already ascending, so a stable sort on score alone keeps
	// equal-score entries in ascending id order.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > topN {
		recs = recs[:topN]
	}

	elapsed := time.Since(started)
	r.tel.Metrics.RecommendDuration.Observe(elapsed.Seconds())
	r.tel.Metrics.RecommendationsTotal.WithLabelValues(analysis.ContentType).Inc()

	r.logger.Debug("recommendations ranked",
		logging.String("content_type", analysis.ContentType),
		logging.Int("returned", len(recs)),
		logging.Duration("elapsed", elapsed),
	)

	r.record(ctx, analysis, recs, elapsed)

	return recs, nil
}

// GetLayoutDetails returns the descriptor and placeholder summary for id.
func (r *Recommender) GetLayoutDetails(id string) (LayoutDetails, error) {
	cat := r.store.Current()

	layout, err := cat.Get(id)
	if err != nil {
		return LayoutDetails{}, err
	}
	summary, err := cat.Summarize(id)
	if err != nil {
		return LayoutDetails{}, err
	}

	return LayoutDetails{Layout: layout, Summary: summary}, nil
}

func (r *Recommender) record(ctx context.Context, analysis domain.ContentAnalysis, recs []domain.Recommendation, elapsed time.Duration) {
	if r.recorder == nil || len(recs) == 0 {
		return
	}

	entry := RecordEntry{
		ContentType:   analysis.ContentType,
		Structure:     analysis.Structure,
		TopLayoutID:   recs[0].LayoutID,
		TopScore:      recs[0].Score,
		Returned:      len(recs),
		DurationMs:    float64(elapsed.Microseconds()) / 1000.0,
		RecommendedAt: time.Now().UTC(),
	}

	if err := r.recorder.Record(ctx, entry); err != nil {
		r.logger.Warn("failed to record recommendation", logging.Error(err))
	}
}
