package mcp

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/slideforge/layout-engine/internal/domain"
	"github.com/slideforge/layout-engine/internal/recommender"
)

// toolResult wraps payload in the MCP tool result envelope: a single text
// content block holding the payload as JSON.
func toolResult(id any, payload any) *Response {
	data, err := json.Marshal(payload)
	if err != nil {
		return errorResponse(id, InternalError, fmt.Sprintf("Failed to marshal result: %v", err))
	}

	result := map[string]any{
		"content": []map[string]any{
			{
				"type": "text",
				"text": string(data),
			},
		},
		"isError": false,
	}

	return resultResponse(id, result)
}

// toolError maps engine errors onto JSON-RPC codes: bad input and unknown
// ids are the caller's fault, everything else is internal.
func toolError(id any, err error) *Response {
	var notFound *domain.NotFoundError
	var invalid *domain.InvalidArgumentError
	if errors.As(err, &notFound) || errors.As(err, &invalid) {
		return errorResponse(id, InvalidParams, err.Error())
	}
	return errorResponse(id, InternalError, err.Error())
}

func (s *Server) handleAnalyzeContent(id any, arguments json.RawMessage) *Response {
	var args struct {
		Content domain.Bundle `json:"content"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}

	analysis := s.recommender.Analyze(context.Background(), args.Content)

	return toolResult(id, map[string]any{"analysis": analysis})
}

func (s *Server) handleRecommendLayout(id any, arguments json.RawMessage) *Response {
	var args struct {
		Content domain.Bundle `json:"content"`
		TopN    *int          `json:"top_n"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}

	topN := recommender.DefaultTopN
	if args.TopN != nil {
		topN = *args.TopN
	}

	recs, err := s.recommender.Recommend(context.Background(), args.Content, topN)
	if err != nil {
		return toolError(id, err)
	}

	analysis := s.recommender.Analyze(context.Background(), args.Content)

	return toolResult(id, map[string]any{
		"analysis":        analysis,
		"recommendations": recs,
	})
}

func (s *Server) handleGetLayoutDetails(id any, arguments json.RawMessage) *Response {
	var args struct {
		LayoutID string `json:"layout_id"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResponse(id, InvalidParams, "Invalid arguments: layout_id is required")
	}
	if args.LayoutID == "" {
		return errorResponse(id, InvalidParams, "layout_id cannot be empty")
	}

	details, err := s.recommender.GetLayoutDetails(args.LayoutID)
	if err != nil {
		return toolError(id, err)
	}

	return toolResult(id, details)
}

func (s *Server) handleQueryLayouts(id any, arguments json.RawMessage) *Response {
	var args struct {
		Category        string `json:"category"`
		PlaceholderType string `json:"placeholder_type"`
		UseCase         string `json:"use_case"`
	}
	if len(arguments) > 0 {
		if err := json.Unmarshal(arguments, &args); err != nil {
			return errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
		}
	}

	cat := s.store.Current()

	type layoutEntry struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		Category    string `json:"category"`
		Structure   string `json:"structure"`
	}

	entries := make([]layoutEntry, 0, cat.Len())
	for _, layoutID := range cat.IDs() {
		layout, err := cat.Get(layoutID)
		if err != nil {
			continue
		}
		if args.Category != "" && layout.Category != args.Category {
			continue
		}
		if args.PlaceholderType != "" && !hasPlaceholderType(layout, args.PlaceholderType) {
			continue
		}
		if args.UseCase != "" && !hasUseCase(layout, args.UseCase) {
			continue
		}
		entries = append(entries, layoutEntry{
			ID:          layoutID,
			DisplayName: layout.DisplayName(),
			Category:    layout.Category,
			Structure:   layout.Structure,
		})
	}

	return toolResult(id, map[string]any{
		"layouts": entries,
		"total":   len(entries),
	})
}

func hasPlaceholderType(layout domain.LayoutDescriptor, placeholderType string) bool {
	for _, p := range layout.Placeholders {
		if p.Type == placeholderType {
			return true
		}
	}
	return false
}

func hasUseCase(layout domain.LayoutDescriptor, useCase string) bool {
	for _, uc := range layout.UseCases {
		if uc == useCase {
			return true
		}
	}
	return false
}
