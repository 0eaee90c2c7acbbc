package analyzer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/slideforge/layout-engine/internal/domain"
	"github.com/slideforge/layout-engine/internal/logging"
)

func newTestAnalyzer() *Analyzer {
	return New(DefaultVocabulary(), logging.NewNop())
}

// filler builds an n-word corpus of vocabulary-neutral words.
func filler(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "lorem"
	}
	return strings.Join(words, " ")
}

func TestAnalyze_EmptyBundle(t *testing.T) {
	a := newTestAnalyzer()

	analysis := a.Analyze(domain.Mapping(nil))

	if analysis.ContentType != domain.ContentTypeGeneralContent {
		t.Errorf("expected general_content, got %s", analysis.ContentType)
	}
	if analysis.TextDensity != domain.DensityLow {
		t.Errorf("expected low density, got %s", analysis.TextDensity)
	}
	if analysis.DataPoints != 0 {
		t.Errorf("expected 0 data points, got %d", analysis.DataPoints)
	}
	if analysis.HasCharts || analysis.HasTables || analysis.HasImages {
		t.Error("expected no feature flags on empty input")
	}
}

func TestAnalyze_DensityBoundaries(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		words int
		want  string
	}{
		{0, domain.DensityLow},
		{19, domain.DensityLow},
		{20, domain.DensityMedium},
		{99, domain.DensityMedium},
		{100, domain.DensityHigh},
		{250, domain.DensityHigh},
	}

	for _, tt := range tests {
		analysis := a.Analyze(domain.Text(filler(tt.words)))
		if analysis.TextDensity != tt.want {
			t.Errorf("words=%d: expected density %s, got %s", tt.words, tt.want, analysis.TextDensity)
		}
	}
}

func TestAnalyze_FeatureDetection(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name      string
		text      string
		hasCharts bool
		hasTables bool
		hasImages bool
	}{
		{"chart keyword", "quarterly chart overview", true, false, false},
		{"table keyword", "summary table of results", false, true, false},
		{"image keyword", "team photo from the offsite", false, false, true},
		{"case insensitive", "REVENUE OVERVIEW", true, false, false},
		{"substring hit inside larger word", "datasets for the quarter", true, false, false},
		{"vs inside versus counts as table indicator", "option one versus option two", false, true, false},
		{"neutral text", "lorem ipsum dolor", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := a.Analyze(domain.Text(tt.text))
			if analysis.HasCharts != tt.hasCharts {
				t.Errorf("has_charts: expected %v, got %v", tt.hasCharts, analysis.HasCharts)
			}
			if analysis.HasTables != tt.hasTables {
				t.Errorf("has_tables: expected %v, got %v", tt.hasTables, analysis.HasTables)
			}
			if analysis.HasImages != tt.hasImages {
				t.Errorf("has_images: expected %v, got %v", tt.hasImages, analysis.HasImages)
			}
		})
	}
}

func TestAnalyze_StructurePrecedence(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name   string
		bundle domain.Bundle
		want   string
	}{
		{
			// The key hint outranks the list cue in the text.
			name: "comparison key beats list text",
			bundle: domain.Mapping(map[string]domain.Bundle{
				"before": domain.Text("first item of several"),
			}),
			want: domain.StructureComparison,
		},
		{
			name: "sequence value means list",
			bundle: domain.Mapping(map[string]domain.Bundle{
				"items": domain.Sequence(domain.Text("one"), domain.Text("two")),
			}),
			want: domain.StructureList,
		},
		{
			name:   "comparison word in text",
			bundle: domain.Text("costs rose while margins held"),
			want:   domain.StructureComparison,
		},
		{
			name:   "list word in text",
			bundle: domain.Text("first we stabilize the core"),
			want:   domain.StructureList,
		},
		{
			name:   "many sentences mean narrative",
			bundle: domain.Text("one. two. three. four"),
			want:   domain.StructureNarrative,
		},
		{
			name:   "plain text is single topic",
			bundle: domain.Text("quarterly update"),
			want:   domain.StructureSingleTopic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := a.Analyze(tt.bundle)
			if analysis.Structure != tt.want {
				t.Errorf("expected structure %s, got %s", tt.want, analysis.Structure)
			}
		})
	}
}

func TestAnalyze_ContentTypePrecedence(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name   string
		bundle domain.Bundle
		want   string
	}{
		{"charts and tables", domain.Text("chart and table"), domain.ContentTypeDashboard},
		{"charts only", domain.Text("growth chart"), domain.ContentTypeDataVisualization},
		{"tables only", domain.Text("pricing table"), domain.ContentTypeDataTable},
		{"high density narrative", domain.Text(filler(120)), domain.ContentTypeNarrative},
		{"comparison structure", domain.Text("slower while safer"), domain.ContentTypeComparison},
		{"list structure", domain.Text("first do no harm"), domain.ContentTypeBulletPoints},
		{"fallback", domain.Text("hello world"), domain.ContentTypeGeneralContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := a.Analyze(tt.bundle)
			if analysis.ContentType != tt.want {
				t.Errorf("expected %s, got %s", tt.want, analysis.ContentType)
			}
		})
	}
}

func TestAnalyze_DataPoints(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		text string
		want int
	}{
		{"no numbers here", 0},
		{"grew 15% to $45M", 2}, // 15% and $45; the M is dropped
		{"3.5 units and 12 units", 2},
		{"Q3 Results", 1},
		{"100% of $1 targets, 2.75 avg", 3},
	}

	for _, tt := range tests {
		analysis := a.Analyze(domain.Text(tt.text))
		if analysis.DataPoints != tt.want {
			t.Errorf("%q: expected %d data points, got %d", tt.text, tt.want, analysis.DataPoints)
		}
	}
}

func TestAnalyze_KeyMetricsVocabularyOrder(t *testing.T) {
	a := newTestAnalyzer()

	// Mentioned out of vocabulary order; the result must follow the
	// vocabulary, not the text.
	analysis := a.Analyze(domain.Text("cost per unit fell as revenue and margin improved, margin twice"))

	want := []string{"revenue", "margin", "cost"}
	if !reflect.DeepEqual(analysis.KeyMetrics, want) {
		t.Errorf("expected metrics %v, got %v", want, analysis.KeyMetrics)
	}
}

func TestAnalyze_QuarterlyResultsExample(t *testing.T) {
	a := newTestAnalyzer()

	bundle := domain.Mapping(map[string]domain.Bundle{
		"title":         domain.Text("Q3 Results"),
		"revenue_chart": domain.Text("Revenue grew 15% to $45M"),
		"cost_analysis": domain.Text("Costs down 8%"),
	})

	analysis := a.Analyze(bundle)

	if !analysis.HasCharts {
		t.Error("expected has_charts for revenue content")
	}
	if analysis.HasTables {
		t.Error("did not expect table indicators")
	}
	if analysis.ContentType != domain.ContentTypeDataVisualization {
		t.Errorf("expected data_visualization, got %s", analysis.ContentType)
	}
	if analysis.DataPoints < 2 {
		t.Errorf("expected at least 2 data points, got %d", analysis.DataPoints)
	}
	if analysis.TextDensity != domain.DensityLow {
		t.Errorf("expected low density, got %s", analysis.TextDensity)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := newTestAnalyzer()

	bundle := domain.Mapping(map[string]domain.Bundle{
		"alpha": domain.Text("revenue trend 12%"),
		"beta":  domain.Sequence(domain.Text("first"), domain.Text("second")),
		"gamma": domain.Text("while costs held"),
	})

	first := a.Analyze(bundle)
	for i := 0; i < 10; i++ {
		if got := a.Analyze(bundle); !reflect.DeepEqual(got, first) {
			t.Fatalf("analysis not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestFlatten_SortsMappingKeys(t *testing.T) {
	bundle := domain.Mapping(map[string]domain.Bundle{
		"b": domain.Text("second"),
		"a": domain.Text("first"),
		"c": domain.Sequence(domain.Text("third"), domain.Text("fourth")),
	})

	got := Flatten(bundle)
	want := "first second third fourth"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLoadVocabulary_MissingFile(t *testing.T) {
	_, err := LoadVocabulary("does-not-exist.yml")
	if err == nil {
		t.Fatal("expected error for missing vocabulary file")
	}
}
