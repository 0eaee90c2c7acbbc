// Package analyzer turns an arbitrary content bundle into a fixed-shape
// feature record. Analysis is a total function: malformed or empty input
// degrades to the lowest-confidence classification instead of failing,
// because classification is best-effort content introspection, not a
// validation gate.
package analyzer

import (
	"regexp"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/slideforge/layout-engine/internal/domain"
	"github.com/slideforge/layout-engine/internal/logging"
)

// Word-count boundaries for text density. A 19-word corpus is low,
// 20-99 is medium, 100 and up is high.
const (
	mediumDensityMinWords = 20
	highDensityMinWords   = 100
)

// narrativeSegmentThreshold is the number of dot-separated segments above
// which free text is classified as narrative.
const narrativeSegmentThreshold = 3

// dataPointPattern matches decimal numbers with an optional percent sign,
// or a currency symbol followed by digits. Matches are non-overlapping.
var dataPointPattern = regexp.MustCompile(`\d+\.?\d*%?|\$\d+`)

// termSet is a bitmask of the vocabulary sets a term belongs to. A single
// term such as "vs" may participate in several sets.
type termSet uint8

const (
	setCharts termSet = 1 << iota
	setTables
	setImages
	setComparisonWords
	setListWords
	setMetrics
)

// Analyzer classifies content bundles using a vocabulary compiled once into
// an Aho-Corasick automaton, so a single pass over the corpus answers every
// keyword question. Substring semantics match the vocabulary contract:
// "vs" inside "versus" counts.
type Analyzer struct {
	vocab          Vocabulary
	matcher        *ahocorasick.Matcher
	terms          []string
	masks          []termSet
	termIndex      map[string]int
	comparisonKeys map[string]struct{}
	logger         logging.Logger
}

// New builds an analyzer from the given vocabulary.
func New(vocab Vocabulary, logger logging.Logger) *Analyzer {
	a := &Analyzer{
		vocab:          vocab,
		termIndex:      make(map[string]int),
		comparisonKeys: make(map[string]struct{}, len(vocab.ComparisonKeys)),
		logger:         logger,
	}

	a.addTerms(vocab.Charts, setCharts)
	a.addTerms(vocab.Tables, setTables)
	a.addTerms(vocab.Images, setImages)
	a.addTerms(vocab.ComparisonWords, setComparisonWords)
	a.addTerms(vocab.ListWords, setListWords)
	a.addTerms(vocab.Metrics, setMetrics)

	if len(a.terms) > 0 {
		a.matcher = ahocorasick.NewStringMatcher(a.terms)
	}

	for _, key := range vocab.ComparisonKeys {
		a.comparisonKeys[strings.ToLower(strings.TrimSpace(key))] = struct{}{}
	}

	logger.Debug("analyzer initialized",
		logging.String("vocabulary_version", vocab.Version),
		logging.Int("terms", len(a.terms)),
	)

	return a
}

func (a *Analyzer) addTerms(terms []string, set termSet) {
	for _, term := range terms {
		normalized := strings.ToLower(strings.TrimSpace(term))
		if normalized == "" {
			continue
		}
		if idx, ok := a.termIndex[normalized]; ok {
			a.masks[idx] |= set
			continue
		}
		a.termIndex[normalized] = len(a.terms)
		a.terms = append(a.terms, normalized)
		a.masks = append(a.masks, set)
	}
}

// Analyze derives the feature record for a bundle. It never fails: an empty
// bundle yields low density, zero data points, and general_content.
func (a *Analyzer) Analyze(bundle domain.Bundle) domain.ContentAnalysis {
	corpus := Flatten(bundle)
	lower := strings.ToLower(corpus)

	hits := a.match(lower)

	hasCharts := a.anyHit(hits, setCharts)
	hasTables := a.anyHit(hits, setTables)
	hasImages := a.anyHit(hits, setImages)

	structure := a.classifyStructure(bundle, corpus, hits)
	density := classifyDensity(len(strings.Fields(corpus)))
	dataPoints := len(dataPointPattern.FindAllString(corpus, -1))
	metrics := a.collectMetrics(hits)
	contentType := classifyContentType(hasCharts, hasTables, density, structure)

	analysis := domain.ContentAnalysis{
		ContentType: contentType,
		HasCharts:   hasCharts,
		HasTables:   hasTables,
		HasImages:   hasImages,
		TextDensity: density,
		Structure:   structure,
		DataPoints:  dataPoints,
		KeyMetrics:  metrics,
	}

	a.logger.Debug("content analyzed",
		logging.String("content_type", analysis.ContentType),
		logging.String("structure", analysis.Structure),
		logging.String("text_density", analysis.TextDensity),
		logging.Int("data_points", analysis.DataPoints),
	)

	return analysis
}

// Flatten concatenates every text leaf in a bundle into one
// whitespace-joined corpus. Mapping keys are not part of the corpus; they
// are inspected separately for structural hints. Mappings are walked in
// ascending key order so the corpus is deterministic.
func Flatten(bundle domain.Bundle) string {
	var parts []string
	flattenInto(bundle, &parts)
	return strings.Join(parts, " ")
}

func flattenInto(bundle domain.Bundle, parts *[]string) {
	switch bundle.Kind() {
	case domain.KindText:
		if bundle.TextValue() != "" {
			*parts = append(*parts, bundle.TextValue())
		}
	case domain.KindSequence:
		for _, item := range bundle.Items() {
			flattenInto(item, parts)
		}
	case domain.KindMapping:
		for _, key := range bundle.Keys() {
			value, _ := bundle.Value(key)
			flattenInto(value, parts)
		}
	}
}

// match runs the automaton once and returns the set of matched term indices.
func (a *Analyzer) match(lower string) map[int]bool {
	if a.matcher == nil || lower == "" {
		return nil
	}
	found := a.matcher.Match([]byte(lower))
	hits := make(map[int]bool, len(found))
	for _, idx := range found {
		hits[idx] = true
	}
	return hits
}

func (a *Analyzer) anyHit(hits map[int]bool, set termSet) bool {
	for idx := range hits {
		if a.masks[idx]&set != 0 {
			return true
		}
	}
	return false
}

// collectMetrics returns matched metric terms in vocabulary order, each at
// most once, regardless of where they appear in the corpus.
func (a *Analyzer) collectMetrics(hits map[int]bool) []string {
	metrics := make([]string, 0, len(a.vocab.Metrics))
	seen := make(map[string]bool, len(a.vocab.Metrics))

	for _, term := range a.vocab.Metrics {
		normalized := strings.ToLower(strings.TrimSpace(term))
		if normalized == "" || seen[normalized] {
			continue
		}
		idx, ok := a.termIndex[normalized]
		if !ok || !hits[idx] {
			continue
		}
		seen[normalized] = true
		metrics = append(metrics, normalized)
	}

	return metrics
}

// classifyStructure applies the structural precedence rules: mapping key
// hints outrank sequence values, which outrank text cues. The key-based
// hint wins even when the corpus text suggests otherwise.
func (a *Analyzer) classifyStructure(bundle domain.Bundle, corpus string, hits map[int]bool) string {
	if bundle.Kind() == domain.KindMapping {
		for _, key := range bundle.Keys() {
			if _, ok := a.comparisonKeys[strings.ToLower(key)]; ok {
				return domain.StructureComparison
			}
		}
		for _, key := range bundle.Keys() {
			if value, ok := bundle.Value(key); ok && value.Kind() == domain.KindSequence {
				return domain.StructureList
			}
		}
	}

	if a.anyHit(hits, setComparisonWords) {
		return domain.StructureComparison
	}
	if a.anyHit(hits, setListWords) {
		return domain.StructureList
	}
	if len(strings.Split(corpus, ".")) > narrativeSegmentThreshold {
		return domain.StructureNarrative
	}
	return domain.StructureSingleTopic
}

func classifyDensity(wordCount int) string {
	switch {
	case wordCount < mediumDensityMinWords:
		return domain.DensityLow
	case wordCount < highDensityMinWords:
		return domain.DensityMedium
	default:
		return domain.DensityHigh
	}
}

// classifyContentType applies the content type precedence: dashboard wins
// over either data type alone, data beats density, density beats structure.
func classifyContentType(hasCharts, hasTables bool, density, structure string) string {
	switch {
	case hasCharts && hasTables:
		return domain.ContentTypeDashboard
	case hasCharts:
		return domain.ContentTypeDataVisualization
	case hasTables:
		return domain.ContentTypeDataTable
	case density == domain.DensityHigh:
		return domain.ContentTypeNarrative
	case structure == domain.StructureComparison:
		return domain.ContentTypeComparison
	case structure == domain.StructureList:
		return domain.ContentTypeBulletPoints
	default:
		return domain.ContentTypeGeneralContent
	}
}
