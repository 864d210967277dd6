package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sunnyway/internal/domain/entities"
	"sunnyway/internal/services"
)

// MapHandler serves the read-only overlays of the map UI: the service area,
// the shadow map and the sun position.
type MapHandler struct {
	shadowMapService   *services.ShadowMapService
	serviceAreaService *services.ServiceAreaService
}

func NewMapHandler(shadowMapService *services.ShadowMapService, serviceAreaService *services.ServiceAreaService) *MapHandler {
	return &MapHandler{
		shadowMapService:   shadowMapService,
		serviceAreaService: serviceAreaService,
	}
}

type ShadowMapRequest struct {
	Center       *entities.GeoPoint `json:"center" binding:"required"`
	Radius       float64            `json:"radius"`
	CurTime      int64              `json:"curTime"`
	PreferShadow bool               `json:"preferShadow"`
	MaxFactor    float64            `json:"maxFactor"`
}

type SunRequest struct {
	Center  *entities.GeoPoint `json:"center"`
	CurTime int64              `json:"curTime"`
}

func unixMilliOrNow(ms int64) time.Time {
	if ms == 0 {
		return time.Now()
	}
	return time.UnixMilli(ms)
}

// ServiceArea handles GET /api/service-area
func (h *MapHandler) ServiceArea(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"polygon": h.serviceAreaService.Area(),
		"center":  h.serviceAreaService.Center(),
	})
}

// ShadowMap handles POST /api/shadow-map
func (h *MapHandler) ShadowMap(c *gin.Context) {
	var req ShadowMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	edges, err := h.shadowMapService.ShadowMap(c.Request.Context(), services.ShadowMapRequest{
		Center:       *req.Center,
		Radius:       req.Radius,
		Time:         unixMilliOrNow(req.CurTime),
		PreferShadow: req.PreferShadow,
		MaxFactor:    req.MaxFactor,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"edges": edges})
}

// Sun handles POST /api/sun. Without a center the middle of the service
// area is used.
func (h *MapHandler) Sun(c *gin.Context) {
	var req SunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	center := h.serviceAreaService.Center()
	if req.Center != nil {
		if !req.Center.Valid() {
			respondError(c, services.ErrInvalidPoint)
			return
		}
		center = *req.Center
	}

	pos := h.shadowMapService.Sun(center, unixMilliOrNow(req.CurTime))
	c.JSON(http.StatusOK, gin.H{
		"center":           center,
		"elevation":        pos.Elevation,
		"azimuth":          pos.Azimuth,
		"elevationDegrees": pos.ElevationDegrees(),
		"azimuthDegrees":   pos.AzimuthDegrees(),
		"sunUp":            pos.IsSunUp(),
		"sunrise":          pos.Sunrise,
		"sunset":           pos.Sunset,
	})
}
