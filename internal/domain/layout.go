package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholder types used by the catalog. The set is open; these are the
// values the scoring engine cares about.
const (
	PlaceholderTypeTitle   = "title"
	PlaceholderTypeBody    = "body"
	PlaceholderTypeChart   = "chart"
	PlaceholderTypeTable   = "table"
	PlaceholderTypeBullets = "bullets"
)

// ColumnNone is the summary bucket for placeholders without a column tag.
const ColumnNone = "none"

// PlaceholderSpec describes one named content slot within a layout.
// Purely metadata: the document writer maps bundle fields onto these.
type PlaceholderSpec struct {
	SemanticName      string `json:"semantic_name"`
	Type              string `json:"type"`
	ContentGuidelines string `json:"content_guidelines,omitempty"`
	Required          bool   `json:"required"`
	Column            string `json:"column,omitempty"`
}

// LayoutDescriptor is one catalog entry. Read-only for the process lifetime
// once the catalog is loaded.
type LayoutDescriptor struct {
	ID           string                     `json:"id"`
	SemanticName string                     `json:"semantic_name"`
	Category     string                     `json:"category"`
	Subcategory  string                     `json:"subcategory,omitempty"`
	Structure    string                     `json:"structure,omitempty"`
	UseCases     []string                   `json:"use_cases,omitempty"`
	Placeholders map[string]PlaceholderSpec `json:"placeholders"`
}

// ChartPlaceholderCount returns the number of chart-typed placeholders.
func (l LayoutDescriptor) ChartPlaceholderCount() int {
	n := 0
	for _, p := range l.Placeholders {
		if p.Type == PlaceholderTypeChart {
			n++
		}
	}
	return n
}

// TextPlaceholderCount returns the number of text-typed (body or bullets)
// placeholders.
func (l LayoutDescriptor) TextPlaceholderCount() int {
	n := 0
	for _, p := range l.Placeholders {
		if p.Type == PlaceholderTypeBody || p.Type == PlaceholderTypeBullets {
			n++
		}
	}
	return n
}

var titleCaser = cases.Title(language.English)

// DisplayName returns the layout's human-readable name, falling back to a
// title-cased rendering of the id when the catalog omits a semantic name.
func (l LayoutDescriptor) DisplayName() string {
	if l.SemanticName != "" {
		return l.SemanticName
	}
	return titleCaser.String(strings.ReplaceAll(l.ID, "_", " "))
}

// PlaceholderSummary aggregates a layout's placeholders for API consumers.
type PlaceholderSummary struct {
	TotalCount    int            `json:"total_count"`
	RequiredCount int            `json:"required_count"`
	ByType        map[string]int `json:"by_type"`
	ByColumn      map[string]int `json:"by_column"`
}

// Recommendation is one ranked result: a layout id, its match score, and a
// human-readable rationale derived from the same signals as the score.
// Scores are unbounded sums of the documented bonus and penalty terms and
// may be negative.
type Recommendation struct {
	LayoutID string  `json:"layout_id"`
	Score    float64 `json:"score"`
	Reason   string  `json:"reason"`
}
