package analyzer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slideforge/layout-engine/internal/domain"
)

// Vocabulary is the versioned keyword table that drives feature detection.
// It is externalized so vocabulary tuning does not require recompilation;
// the scoring formula itself stays fixed. All terms are matched as
// case-insensitive substrings of the flattened corpus, without stemming.
type Vocabulary struct {
	Version string `yaml:"version" json:"version"`

	// Feature detection terms.
	Charts []string `yaml:"charts" json:"charts"`
	Tables []string `yaml:"tables" json:"tables"`
	Images []string `yaml:"images" json:"images"`

	// Structure cues. ComparisonKeys are matched against mapping key names,
	// not corpus text.
	ComparisonKeys  []string `yaml:"comparison_keys" json:"comparison_keys"`
	ComparisonWords []string `yaml:"comparison_words" json:"comparison_words"`
	ListWords       []string `yaml:"list_words" json:"list_words"`

	// Metrics are collected in this order, each at most once.
	Metrics []string `yaml:"metrics" json:"metrics"`
}

// DefaultVocabulary returns the compiled-in keyword table.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Version: "1",
		Charts:  []string{"chart", "graph", "revenue", "growth", "trend", "data", "metric", "kpi"},
		Tables:  []string{"table", "comparison", "vs", "versus", "compare"},
		Images:  []string{"image", "photo", "picture", "visual", "diagram"},

		ComparisonKeys:  []string{"left", "right", "before", "after", "vs"},
		ComparisonWords: []string{"versus", "compared to", "vs", "while"},
		ListWords:       []string{"first", "second", "third", "finally"},

		Metrics: []string{
			"revenue", "profit", "ebitda", "growth", "margin", "roi", "kpi",
			"cost", "efficiency", "utilization", "occupancy", "satisfaction",
		},
	}
}

// LoadVocabulary reads a vocabulary table from a YAML file. Empty sections
// fall back to the compiled-in defaults so a partial override stays valid.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, &domain.ConfigurationError{Source: path, Err: err}
	}

	vocab := DefaultVocabulary()
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return Vocabulary{}, &domain.ConfigurationError{Source: path, Err: fmt.Errorf("parse vocabulary: %w", err)}
	}

	return vocab, nil
}
