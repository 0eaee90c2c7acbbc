package mcp

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/slideforge/layout-engine/internal/catalog"
	"github.com/slideforge/layout-engine/internal/logging"
	"github.com/slideforge/layout-engine/internal/recommender"
)

const protocolVersion = "2024-11-05"

// Server dispatches MCP protocol requests to the layout engine.
type Server struct {
	recommender *recommender.Recommender
	store       *catalog.Store
	logger      logging.Logger
	name        string
	version     string
}

// NewServer creates an MCP server. The logger must write to stderr; stdout
// carries only protocol JSON.
func NewServer(rec *recommender.Recommender, store *catalog.Store, logger logging.Logger, name, version string) *Server {
	return &Server{
		recommender: rec,
		store:       store,
		logger:      logger,
		name:        name,
		version:     version,
	}
}

// HandleRequest processes one request. It returns nil for notifications,
// which must not receive a response.
func (s *Server) HandleRequest(req *Request) *Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req.ID)
	case "tools/list":
		return s.handleToolsList(req.ID)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  json.RawMessage(`"pong"`),
		}
	}

	if req.ID == nil {
		return nil
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Error: &ErrorObject{
			Code:    MethodNotFound,
			Message: "Method not found",
		},
	}
}

func (s *Server) handleInitialize(id any) *Response {
	result := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    s.name,
			"version": s.version,
		},
	}

	return resultResponse(id, result)
}

func (s *Server) handleToolsList(id any) *Response {
	return resultResponse(id, map[string]any{"tools": getAllTools()})
}

func (s *Server) handleToolsCall(req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, InvalidParams, "Invalid parameters")
	}

	s.logger.Debug("tool call", logging.String("tool", params.Name))

	switch params.Name {
	case "analyze_content":
		return s.handleAnalyzeContent(req.ID, params.Arguments)
	case "recommend_layout":
		return s.handleRecommendLayout(req.ID, params.Arguments)
	case "get_layout_details":
		return s.handleGetLayoutDetails(req.ID, params.Arguments)
	case "query_layouts":
		return s.handleQueryLayouts(req.ID, params.Arguments)
	default:
		return errorResponse(req.ID, InvalidParams, "Unknown tool: "+params.Name)
	}
}

// resultResponse marshals result into a success response.
func resultResponse(id any, result any) *Response {
	data, err := json.Marshal(result)
	if err != nil {
		return errorResponse(id, InternalError, fmt.Sprintf("Failed to marshal result: %v", err))
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  json.RawMessage(data),
	}
}

func errorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &ErrorObject{
			Code:    code,
			Message: message,
		},
	}
}
