package handlers

import (
	"log"
	"net/http"

	"smartgrid/internal/api/models"
	"smartgrid/internal/grid"

	"github.com/gin-gonic/gin"
)

// GridStatusHandler serves the aggregated grid snapshot
type GridStatusHandler struct {
	service *grid.Service
}

// NewGridStatusHandler creates a new grid status handler
func NewGridStatusHandler(service *grid.Service) *GridStatusHandler {
	return &GridStatusHandler{service: service}
}

// GetGridStatus handles GET /api/gridstatus
func (h *GridStatusHandler) GetGridStatus(c *gin.Context) {
	snap, err := h.service.ComputeGridStatus(c.Request.Context())
	if err != nil {
		log.Printf("[GridStatus] Aggregation failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "Internal server error",
			},
		})
		return
	}

	c.JSON(http.StatusOK, buildStatusResponse(snap))
}

func buildStatusResponse(snap *grid.Snapshot) models.GridStatusResponse {
	nodes := make([]models.NodeStatusResponse, len(snap.Nodes))
	for i, n := range snap.Nodes {
		nodes[i] = models.NodeStatusResponse{
			NodeID:             n.NodeID,
			Region:             n.Region,
			CurrentLoad:        n.CurrentLoad,
			Capacity:           n.Capacity,
			UtilizationPercent: n.UtilizationPercent,
			LastUpdated:        n.LastUpdated,
		}
	}
	return models.GridStatusResponse{
		Timestamp:          snap.Timestamp,
		TotalNodes:         snap.TotalNodes,
		TotalLoad:          snap.TotalLoad,
		TotalCapacity:      snap.TotalCapacity,
		AverageUtilization: snap.AverageUtilization,
		OverloadedNodes:    snap.OverloadedNodes,
		Nodes:              nodes,
	}
}
