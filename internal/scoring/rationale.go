package scoring

import (
	"fmt"
	"strings"

	"github.com/slideforge/layout-engine/internal/domain"
)

// Qualitative label boundaries. They clamp only the wording, never the
// numeric score.
const (
	perfectMatchMinScore = 3.0
	goodFitMinScore      = 2.0
	suitableMinScore     = 1.0
)

// Reason renders a human-readable rationale for a scored layout, for
// example "Financial Dashboard: Perfect match for dashboard, Supports 2
// chart(s), Ideal for comparisons".
func Reason(analysis domain.ContentAnalysis, layout domain.LayoutDescriptor, score float64) string {
	clauses := []string{qualitativeLabel(analysis.ContentType, score)}

	if analysis.HasCharts {
		if chartSlots := layout.ChartPlaceholderCount(); chartSlots > 0 {
			clauses = append(clauses, fmt.Sprintf("Supports %d chart(s)", chartSlots))
		}
	}

	if analysis.Structure == domain.StructureComparison && strings.Contains(layout.Structure, "two_column") {
		clauses = append(clauses, "Ideal for comparisons")
	}

	return fmt.Sprintf("%s: %s", layout.DisplayName(), strings.Join(clauses, ", "))
}

func qualitativeLabel(contentType string, score float64) string {
	switch {
	case score >= perfectMatchMinScore:
		return "Perfect match for " + contentType
	case score >= goodFitMinScore:
		return "Good fit for " + contentType
	case score >= suitableMinScore:
		return "Suitable for " + contentType
	default:
		return "Partial match"
	}
}
