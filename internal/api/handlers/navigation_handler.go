package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sunnyway/internal/domain/entities"
	"sunnyway/internal/services"
)

type NavigationHandler struct {
	navigationService *services.NavigationService
}

func NewNavigationHandler(navigationService *services.NavigationService) *NavigationHandler {
	return &NavigationHandler{
		navigationService: navigationService,
	}
}

// NavigationRequest is the body of POST /api/nav. CurTime is the departure
// in Unix milliseconds; zero means now.
type NavigationRequest struct {
	From         *entities.GeoPoint `json:"from" binding:"required"`
	To           *entities.GeoPoint `json:"to" binding:"required"`
	Algorithm    string             `json:"algorithm" binding:"required"`
	CurTime      int64              `json:"curTime"`
	PreferShadow bool               `json:"preferShadow"`
	MaxFactor    float64            `json:"maxFactor"`
}

type navigationEdgeResponse struct {
	FromPoint   entities.GeoPoint `json:"fromPoint"`
	ToPoint     entities.GeoPoint `json:"toPoint"`
	EdgeID      int               `json:"edgeId"`
	ToVertexID  int               `json:"toVertexId"`
	Distance    float64           `json:"distance"`
	TimeMs      int64             `json:"time"`
	Factor      float64           `json:"factor"`
	LeftShadow  float64           `json:"leftShadow"`
	RightShadow float64           `json:"rightShadow"`
}

// Navigate handles POST /api/nav
func (h *NavigationHandler) Navigate(c *gin.Context) {
	var req NavigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	algorithm, err := entities.ParseAlgorithm(req.Algorithm)
	if err != nil {
		respondError(c, services.ErrInvalidAlgorithm)
		return
	}

	var departure time.Time
	if req.CurTime != 0 {
		departure = time.UnixMilli(req.CurTime)
	}

	result, err := h.navigationService.Navigate(c.Request.Context(), services.NavigateRequest{
		From:         *req.From,
		To:           *req.To,
		Algorithm:    algorithm,
		Departure:    departure,
		PreferShadow: req.PreferShadow,
		MaxFactor:    req.MaxFactor,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	path := make([]navigationEdgeResponse, len(result.Path))
	for i, e := range result.Path {
		path[i] = navigationEdgeResponse{
			FromPoint:   e.From,
			ToPoint:     e.To,
			EdgeID:      e.EdgeID,
			ToVertexID:  e.ToVertexID,
			Distance:    e.Distance,
			TimeMs:      e.TraverseTime.Milliseconds(),
			Factor:      e.Factor,
			LeftShadow:  e.LeftShadow,
			RightShadow: e.RightShadow,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"path":          path,
		"distance":      result.Distance,
		"duration":      result.Duration.Milliseconds(),
		"computeTimeMs": result.ComputeTime.Milliseconds(),
	})
}
