package mcp

// getAllTools returns the tool definitions exposed by the layout engine.
func getAllTools() []Tool {
	return []Tool{
		{
			Name:        "analyze_content",
			Description: "Classify slide content: detects charts, tables, images, text density, structure, data points, and key business metrics.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"content": map[string]any{
						"type":        "object",
						"description": "The slide content bundle: a mapping of field names to strings, lists, or nested mappings",
					},
				},
				"required": []string{"content"},
			},
		},
		{
			Name:        "recommend_layout",
			Description: "Rank slide layouts for a content bundle. Returns the top matches with scores and human-readable rationale.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"content": map[string]any{
						"type":        "object",
						"description": "The slide content bundle to rank layouts for",
					},
					"top_n": map[string]any{
						"type":        "integer",
						"description": "Number of recommendations to return (default 3)",
					},
				},
				"required": []string{"content"},
			},
		},
		{
			Name:        "get_layout_details",
			Description: "Get the full descriptor and placeholder summary for a layout id.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"layout_id": map[string]any{
						"type":        "string",
						"description": "The layout id to look up",
					},
				},
				"required": []string{"layout_id"},
			},
		},
		{
			Name:        "query_layouts",
			Description: "List the layouts in the active catalog, optionally filtered by category, placeholder type, or use case.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"category": map[string]any{
						"type":        "string",
						"description": "Only return layouts in this category",
					},
					"placeholder_type": map[string]any{
						"type":        "string",
						"description": "Only return layouts with at least one placeholder of this type",
					},
					"use_case": map[string]any{
						"type":        "string",
						"description": "Only return layouts listing this use case",
					},
				},
			},
		},
	}
}
