package scoring

import (
	"strings"
	"testing"

	"github.com/slideforge/layout-engine/internal/domain"
)

func chartLayout(slots int) domain.LayoutDescriptor {
	placeholders := map[string]domain.PlaceholderSpec{
		"title": {Type: domain.PlaceholderTypeTitle},
	}
	names := []string{"chart_a", "chart_b", "chart_c"}
	for i := 0; i < slots; i++ {
		placeholders[names[i]] = domain.PlaceholderSpec{Type: domain.PlaceholderTypeChart}
	}
	return domain.LayoutDescriptor{ID: "chart_layout", Placeholders: placeholders}
}

func TestScore_CategoryMatches(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name     string
		analysis domain.ContentAnalysis
		layout   domain.LayoutDescriptor
		want     float64
	}{
		{
			name:     "data visualization category",
			analysis: domain.ContentAnalysis{ContentType: domain.ContentTypeDataVisualization},
			layout:   domain.LayoutDescriptor{Category: "data_visualization"},
			want:     3.0,
		},
		{
			name:     "narrative maps to content category",
			analysis: domain.ContentAnalysis{ContentType: domain.ContentTypeNarrative},
			layout:   domain.LayoutDescriptor{Category: "content"},
			want:     3.0,
		},
		{
			name:     "dashboard matches subcategory substring",
			analysis: domain.ContentAnalysis{ContentType: domain.ContentTypeDashboard},
			layout:   domain.LayoutDescriptor{Category: "data_visualization", Subcategory: "kpi_dashboard"},
			want:     3.0,
		},
		{
			name:     "no category match",
			analysis: domain.ContentAnalysis{ContentType: domain.ContentTypeGeneralContent},
			layout:   domain.LayoutDescriptor{Category: "data_visualization"},
			want:     0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Score(tt.analysis, tt.layout); got != tt.want {
				t.Errorf("expected %.1f, got %.1f", tt.want, got)
			}
		})
	}
}

func TestScore_StructureMatches(t *testing.T) {
	s := NewScorer()

	comparison := domain.ContentAnalysis{Structure: domain.StructureComparison}
	single := domain.ContentAnalysis{Structure: domain.StructureSingleTopic}

	if got := s.Score(comparison, domain.LayoutDescriptor{Structure: "two_column_comparison"}); got != 2.0 {
		t.Errorf("comparison vs two_column: expected 2.0, got %.1f", got)
	}
	if got := s.Score(single, domain.LayoutDescriptor{Structure: "single_column"}); got != 2.0 {
		t.Errorf("single_topic vs single_column: expected 2.0, got %.1f", got)
	}
	if got := s.Score(comparison, domain.LayoutDescriptor{Structure: "single_column"}); got != 0.0 {
		t.Errorf("structure mismatch: expected 0.0, got %.1f", got)
	}
}

func TestScore_ChartTerms(t *testing.T) {
	s := NewScorer()

	withCharts := domain.ContentAnalysis{HasCharts: true, DataPoints: 3}
	if got := s.Score(withCharts, chartLayout(1)); got != 2.0 {
		t.Errorf("chart support: expected 2.0, got %.1f", got)
	}

	// The multi-chart bonus needs more than five data points and at least
	// two chart slots.
	dataHeavy := domain.ContentAnalysis{HasCharts: true, DataPoints: 6}
	if got := s.Score(dataHeavy, chartLayout(2)); got != 3.0 {
		t.Errorf("multi-chart bonus: expected 3.0, got %.1f", got)
	}
	if got := s.Score(dataHeavy, chartLayout(1)); got != 2.0 {
		t.Errorf("single slot never earns multi-chart bonus: expected 2.0, got %.1f", got)
	}
	exactlyFive := domain.ContentAnalysis{HasCharts: true, DataPoints: 5}
	if got := s.Score(exactlyFive, chartLayout(2)); got != 2.0 {
		t.Errorf("five data points is not enough: expected 2.0, got %.1f", got)
	}

	noCharts := domain.ContentAnalysis{HasCharts: false}
	if got := s.Score(noCharts, chartLayout(1)); got != -1.0 {
		t.Errorf("chart mismatch penalty: expected -1.0, got %.1f", got)
	}
	if got := s.Score(noCharts, domain.LayoutDescriptor{}); got != 0.0 {
		t.Errorf("no chart slots, no penalty: expected 0.0, got %.1f", got)
	}
}

func TestScore_DensityFit(t *testing.T) {
	s := NewScorer()

	twoText := domain.LayoutDescriptor{Placeholders: map[string]domain.PlaceholderSpec{
		"body":    {Type: domain.PlaceholderTypeBody},
		"bullets": {Type: domain.PlaceholderTypeBullets},
	}}
	oneText := domain.LayoutDescriptor{Placeholders: map[string]domain.PlaceholderSpec{
		"body": {Type: domain.PlaceholderTypeBody},
	}}

	high := domain.ContentAnalysis{TextDensity: domain.DensityHigh}
	low := domain.ContentAnalysis{TextDensity: domain.DensityLow}
	medium := domain.ContentAnalysis{TextDensity: domain.DensityMedium}

	if got := s.Score(high, twoText); got != 1.0 {
		t.Errorf("high density with two text slots: expected 1.0, got %.1f", got)
	}
	if got := s.Score(low, oneText); got != 1.0 {
		t.Errorf("low density with one text slot: expected 1.0, got %.1f", got)
	}
	if got := s.Score(low, twoText); got != 0.0 {
		t.Errorf("low density with two text slots: expected 0.0, got %.1f", got)
	}
	if got := s.Score(medium, oneText); got != 0.0 {
		t.Errorf("medium density never earns the bonus: expected 0.0, got %.1f", got)
	}
}

func TestScore_UseCaseMatch(t *testing.T) {
	s := NewScorer()

	layout := domain.LayoutDescriptor{UseCases: []string{"data visualization", "quarterly results"}}
	analysis := domain.ContentAnalysis{ContentType: domain.ContentTypeDataVisualization}

	if got := s.Score(analysis, layout); got != 1.0 {
		t.Errorf("use case match via space-to-underscore: expected 1.0, got %.1f", got)
	}

	other := domain.ContentAnalysis{ContentType: domain.ContentTypeNarrative}
	if got := s.Score(other, layout); got != 0.0 {
		t.Errorf("no use case match: expected 0.0, got %.1f", got)
	}
}

func TestScore_TermsAccumulate(t *testing.T) {
	s := NewScorer()

	layout := domain.LayoutDescriptor{
		ID:           "metric_highlight",
		Category:     "data_visualization",
		Structure:    "single_column",
		UseCases:     []string{"data visualization"},
		Placeholders: map[string]domain.PlaceholderSpec{
			"title": {Type: domain.PlaceholderTypeTitle},
			"chart": {Type: domain.PlaceholderTypeChart},
			"body":  {Type: domain.PlaceholderTypeBody},
		},
	}
	analysis := domain.ContentAnalysis{
		ContentType: domain.ContentTypeDataVisualization,
		HasCharts:   true,
		TextDensity: domain.DensityLow,
		Structure:   domain.StructureSingleTopic,
		DataPoints:  4,
	}

	// +3 category, +2 structure, +2 chart support, +1 density, +1 use case.
	if got := s.Score(analysis, layout); got != 9.0 {
		t.Errorf("expected 9.0, got %.1f", got)
	}
}

func TestReason_Labels(t *testing.T) {
	analysis := domain.ContentAnalysis{ContentType: domain.ContentTypeDataVisualization}
	layout := domain.LayoutDescriptor{ID: "metric_highlight", SemanticName: "Metric Highlight"}

	tests := []struct {
		score float64
		want  string
	}{
		{4.5, "Perfect match for data_visualization"},
		{3.0, "Perfect match for data_visualization"},
		{2.5, "Good fit for data_visualization"},
		{1.0, "Suitable for data_visualization"},
		{0.5, "Partial match"},
		{-1.0, "Partial match"},
	}

	for _, tt := range tests {
		reason := Reason(analysis, layout, tt.score)
		if !strings.Contains(reason, tt.want) {
			t.Errorf("score %.1f: expected %q in %q", tt.score, tt.want, reason)
		}
		if !strings.HasPrefix(reason, "Metric Highlight: ") {
			t.Errorf("expected display name prefix, got %q", reason)
		}
	}
}

func TestReason_ChartAndComparisonClauses(t *testing.T) {
	layout := domain.LayoutDescriptor{
		ID:        "financial_dashboard",
		Structure: "two_column",
		Placeholders: map[string]domain.PlaceholderSpec{
			"left":  {Type: domain.PlaceholderTypeChart},
			"right": {Type: domain.PlaceholderTypeChart},
		},
	}
	analysis := domain.ContentAnalysis{
		ContentType: domain.ContentTypeDashboard,
		HasCharts:   true,
		Structure:   domain.StructureComparison,
	}

	reason := Reason(analysis, layout, 5.0)

	if !strings.Contains(reason, "Supports 2 chart(s)") {
		t.Errorf("expected chart clause in %q", reason)
	}
	if !strings.Contains(reason, "Ideal for comparisons") {
		t.Errorf("expected comparison clause in %q", reason)
	}

	// Without chart content the chart clause is omitted even though slots
	// exist.
	noCharts := domain.ContentAnalysis{ContentType: domain.ContentTypeGeneralContent}
	reason = Reason(noCharts, layout, 0.0)
	if strings.Contains(reason, "chart(s)") {
		t.Errorf("did not expect chart clause in %q", reason)
	}
}

func TestReason_FallsBackToTitleCasedID(t *testing.T) {
	layout := domain.LayoutDescriptor{ID: "side_by_side_comparison"}
	analysis := domain.ContentAnalysis{ContentType: domain.ContentTypeComparison}

	reason := Reason(analysis, layout, 0.0)
	if !strings.HasPrefix(reason, "Side By Side Comparison: ") {
		t.Errorf("expected title-cased id prefix, got %q", reason)
	}
}
