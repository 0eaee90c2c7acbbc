package domain

// Content types, in classification precedence order.
const (
	ContentTypeDashboard         = "dashboard"
	ContentTypeDataVisualization = "data_visualization"
	ContentTypeDataTable         = "data_table"
	ContentTypeNarrative         = "narrative"
	ContentTypeComparison        = "comparison"
	ContentTypeBulletPoints      = "bullet_points"
	ContentTypeGeneralContent    = "general_content"
)

// Text density buckets derived from corpus word count.
const (
	DensityLow    = "low"
	DensityMedium = "medium"
	DensityHigh   = "high"
)

// Structure classifications.
const (
	StructureComparison  = "comparison"
	StructureList        = "list"
	StructureNarrative   = "narrative"
	StructureSingleTopic = "single_topic"
)

// ContentAnalysis is the fixed-shape feature record derived from a bundle.
// It is a plain value created fresh per call and owned by the caller.
type ContentAnalysis struct {
	ContentType string   `json:"content_type"`
	HasCharts   bool     `json:"has_charts"`
	HasTables   bool     `json:"has_tables"`
	HasImages   bool     `json:"has_images"`
	TextDensity string   `json:"text_density"`
	Structure   string   `json:"structure"`
	DataPoints  int      `json:"data_points"`
	KeyMetrics  []string `json:"key_metrics"`
}
