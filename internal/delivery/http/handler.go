package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flipradar/backend/internal/domain"
	"github.com/flipradar/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analysis *usecase.AnalysisService
	matcher  *usecase.Matcher
}

// NewHandler creates a new HTTP handler
func NewHandler(analysis *usecase.AnalysisService, matcher *usecase.Matcher) *Handler {
	return &Handler{
		analysis: analysis,
		matcher:  matcher,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "flipradar-backend",
		"version": "1.0.0",
	})
}

// Scan scrapes one retailer for discounted products and returns the analyzed
// deals
func (h *Handler) Scan(c *gin.Context) {
	var req domain.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "retailer is required"})
		return
	}

	deals, err := h.analysis.ScanRetailer(c.Request.Context(), req.Retailer, req.Query)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownRetailer):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrRetailerUnavailable),
			errors.Is(err, domain.ErrAmazonUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "scan failed"})
		}
		return
	}

	if deals == nil {
		deals = []domain.DealAnalysis{}
	}
	c.JSON(http.StatusOK, gin.H{"deals": deals})
}

// Match exposes the matching engine directly: given a target and a candidate
// list, return the best match or null. Null is a valid response body, not an
// error.
func (h *Handler) Match(c *gin.Context) {
	var req domain.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match request"})
		return
	}
	if req.Target.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target title is required"})
		return
	}

	opts := req.Options
	if req.MinScore != nil {
		if opts == nil {
			opts = &domain.MatchOptions{}
		}
		opts.MinScore = req.MinScore
	}

	match := h.matcher.PickBestMatch(req.Candidates, req.Target, opts)
	c.JSON(http.StatusOK, gin.H{"match": match})
}

// AmazonLookup resolves an Amazon listing by ASIN or search query
func (h *Handler) AmazonLookup(c *gin.Context) {
	var req domain.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lookup request"})
		return
	}
	if req.ASIN == "" && req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asin or query is required"})
		return
	}

	result, err := h.analysis.LookupListing(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no matching listing found"})
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrAmazonUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
