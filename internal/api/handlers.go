package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slideforge/layout-engine/internal/catalog"
	"github.com/slideforge/layout-engine/internal/domain"
	"github.com/slideforge/layout-engine/internal/history"
	"github.com/slideforge/layout-engine/internal/logging"
	"github.com/slideforge/layout-engine/internal/recommender"
	"github.com/slideforge/layout-engine/internal/telemetry"
)

// StatsProvider aggregates recommendation history for the stats endpoint.
type StatsProvider interface {
	Stats(ctx context.Context) (history.Stats, error)
}

// Handler handles HTTP requests for the layout engine API.
type Handler struct {
	recommender *recommender.Recommender
	store       *catalog.Store
	catalogPath string
	stats       StatsProvider
	tel         *telemetry.Provider
	logger      logging.Logger
	service     string
	version     string
}

// NewHandler creates a new API handler. stats may be nil when history is
// disabled.
func NewHandler(
	rec *recommender.Recommender,
	store *catalog.Store,
	catalogPath string,
	stats StatsProvider,
	tel *telemetry.Provider,
	logger logging.Logger,
	service, version string,
) *Handler {
	return &Handler{
		recommender: rec,
		store:       store,
		catalogPath: catalogPath,
		stats:       stats,
		tel:         tel,
		logger:      logger,
		service:     service,
		version:     version,
	}
}

// AnalyzeRequest carries the content bundle to classify.
type AnalyzeRequest struct {
	Content domain.Bundle `json:"content"`
}

// AnalyzeResponse returns the classification record.
type AnalyzeResponse struct {
	Analysis domain.ContentAnalysis `json:"analysis"`
}

// RecommendRequest carries the bundle to rank layouts for. TopN defaults
// to 3 when omitted.
type RecommendRequest struct {
	Content domain.Bundle `json:"content"`
	TopN    *int          `json:"top_n"`
}

// RecommendResponse pairs the ranked layouts with the analysis that
// produced them.
type RecommendResponse struct {
	Analysis        domain.ContentAnalysis  `json:"analysis"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// LayoutListEntry is one row of the layout listing.
type LayoutListEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
	Structure   string `json:"structure"`
}

// LayoutListResponse lists every layout in the active catalog.
type LayoutListResponse struct {
	Layouts []LayoutListEntry `json:"layouts"`
	Total   int               `json:"total"`
}

// Analyze handles POST /api/v1/analyze.
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid analyze request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": codeInvalidArgument})
		return
	}

	analysis := h.recommender.Analyze(c.Request.Context(), req.Content)

	c.JSON(http.StatusOK, AnalyzeResponse{Analysis: analysis})
}

// Recommend handles POST /api/v1/recommend.
func (h *Handler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid recommend request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": codeInvalidArgument})
		return
	}

	topN := recommender.DefaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}

	recs, err := h.recommender.Recommend(c.Request.Context(), req.Content, topN)
	if err != nil {
		writeError(c, err)
		return
	}

	analysis := h.recommender.Analyze(c.Request.Context(), req.Content)

	c.JSON(http.StatusOK, RecommendResponse{
		Analysis:        analysis,
		Recommendations: recs,
	})
}

// ListLayouts handles GET /api/v1/layouts.
func (h *Handler) ListLayouts(c *gin.Context) {
	cat := h.store.Current()

	entries := make([]LayoutListEntry, 0, cat.Len())
	for _, id := range cat.IDs() {
		layout, err := cat.Get(id)
		if err != nil {
			continue
		}
		entries = append(entries, LayoutListEntry{
			ID:          id,
			DisplayName: layout.DisplayName(),
			Category:    layout.Category,
			Structure:   layout.Structure,
		})
	}

	c.JSON(http.StatusOK, LayoutListResponse{Layouts: entries, Total: len(entries)})
}

// GetLayout handles GET /api/v1/layouts/:id.
func (h *Handler) GetLayout(c *gin.Context) {
	id := c.Param("id")

	details, err := h.recommender.GetLayoutDetails(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// ReloadCatalog handles POST /api/v1/catalog/reload. The new catalog is
// swapped in atomically; on failure the previous catalog stays active.
func (h *Handler) ReloadCatalog(c *gin.Context) {
	cat, err := catalog.Load(h.catalogPath)
	if err != nil {
		h.logger.Error("Catalog reload failed",
			logging.String("path", h.catalogPath),
			logging.Error(err),
		)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"code":  "CATALOG_INVALID",
		})
		return
	}

	h.store.Swap(cat)
	h.tel.Metrics.CatalogSize.Set(float64(cat.Len()))
	h.tel.Metrics.CatalogReloads.Inc()

	h.logger.Info("Catalog reloaded",
		logging.String("path", h.catalogPath),
		logging.Int("layouts", cat.Len()),
	)

	c.JSON(http.StatusOK, gin.H{"status": "reloaded", "layouts": cat.Len()})
}

// GetStats handles GET /api/v1/stats.
func (h *Handler) GetStats(c *gin.Context) {
	if h.stats == nil {
		c.JSON(http.StatusOK, history.Stats{})
		return
	}

	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to aggregate stats", logging.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.service,
		"version": h.version,
	})
}

// ReadyCheck handles GET /ready. The service is ready once a catalog is
// loaded.
func (h *Handler) ReadyCheck(c *gin.Context) {
	cat := h.store.Current()
	if cat == nil || cat.Len() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": gin.H{
			"catalog": "ok",
		},
	})
}
