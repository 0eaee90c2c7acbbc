// Package scoring computes how well a layout fits an analyzed piece of
// content. The score is a sum of independent additive terms, so it is pure
// and deterministic and may be negative.
package scoring

import (
	"strings"

	"github.com/slideforge/layout-engine/internal/domain"
)

// Additive score terms. Terms are independent; several may fire for the
// same layout.
const (
	categoryMatchBonus      = 3.0
	structureMatchBonus     = 2.0
	chartSupportBonus       = 2.0
	multiChartBonus         = 1.0
	chartMismatchPenalty    = 1.0
	densityFitBonus         = 1.0
	useCaseBonus            = 1.0
	multiChartMinDataPoints = 5
)

// Scorer evaluates layouts against a content analysis.
type Scorer struct{}

// NewScorer returns a scorer.
func NewScorer() *Scorer { return &Scorer{} }

// Score returns the fit of layout for analysis. Identical inputs always
// produce identical output.
func (s *Scorer) Score(analysis domain.ContentAnalysis, layout domain.LayoutDescriptor) float64 {
	score := 0.0

	score += categoryTerm(analysis, layout)
	score += structureTerm(analysis, layout)
	score += chartTerms(analysis, layout)
	score += densityTerm(analysis, layout)
	score += useCaseTerm(analysis, layout)

	return score
}

func categoryTerm(analysis domain.ContentAnalysis, layout domain.LayoutDescriptor) float64 {
	switch {
	case analysis.ContentType == domain.ContentTypeDataVisualization && layout.Category == "data_visualization":
		return categoryMatchBonus
	case analysis.ContentType == domain.ContentTypeNarrative && layout.Category == "content":
		return categoryMatchBonus
	case analysis.ContentType == domain.ContentTypeDashboard && strings.Contains(layout.Subcategory, "dashboard"):
		return categoryMatchBonus
	}
	return 0
}

func structureTerm(analysis domain.ContentAnalysis, layout domain.LayoutDescriptor) float64 {
	switch {
	case analysis.Structure == domain.StructureComparison && strings.Contains(layout.Structure, "two_column"):
		return structureMatchBonus
	case analysis.Structure == domain.StructureSingleTopic && strings.Contains(layout.Structure, "single_column"):
		return structureMatchBonus
	}
	return 0
}

// chartTerms rewards layouts that can host detected chart content and
// penalizes chart layouts when the content has none.
func chartTerms(analysis domain.ContentAnalysis, layout domain.LayoutDescriptor) float64 {
	chartSlots := layout.ChartPlaceholderCount()

	if !analysis.HasCharts {
		if chartSlots > 0 {
			return -chartMismatchPenalty
		}
		return 0
	}

	score := 0.0
	if chartSlots > 0 {
		score += chartSupportBonus
	}
	if analysis.DataPoints > multiChartMinDataPoints && chartSlots >= 2 {
		score += multiChartBonus
	}
	return score
}

func densityTerm(analysis domain.ContentAnalysis, layout domain.LayoutDescriptor) float64 {
	textSlots := layout.TextPlaceholderCount()

	switch {
	case analysis.TextDensity == domain.DensityHigh && textSlots >= 2:
		return densityFitBonus
	case analysis.TextDensity == domain.DensityLow && textSlots == 1:
		return densityFitBonus
	}
	return 0
}

// useCaseTerm matches the detected content type against the layout's
// declared use cases. Use cases are written with spaces; content types with
// underscores.
func useCaseTerm(analysis domain.ContentAnalysis, layout domain.LayoutDescriptor) float64 {
	for _, useCase := range layout.UseCases {
		if strings.ReplaceAll(useCase, " ", "_") == analysis.ContentType {
			return useCaseBonus
		}
	}
	return 0
}
