package handlers

import (
	"fmt"
	"log"
	"net/http"

	"smartgrid/internal/api/models"
	"smartgrid/internal/grid"

	"github.com/gin-gonic/gin"
)

// ControlHandler handles optimization-action ingestion requests
type ControlHandler struct {
	service *grid.Service
}

// NewControlHandler creates a new control handler
func NewControlHandler(service *grid.Service) *ControlHandler {
	return &ControlHandler{service: service}
}

// PostOptimizationActions handles POST /api/control/optimize
func (h *ControlHandler) PostOptimizationActions(c *gin.Context) {
	var body []models.OptimizationActionDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "EMPTY_BATCH",
				Message: "Optimization actions cannot be empty",
			},
		})
		return
	}

	inputs := make([]grid.ActionInput, len(body))
	for i, dto := range body {
		inputs[i] = grid.ActionInput{
			FromNodeID: dto.FromNodeID,
			ToNodeID:   dto.ToNodeID,
			Amount:     dto.Amount,
			ActionType: dto.ActionType,
			Timestamp:  dto.Timestamp,
		}
	}

	res, err := h.service.IngestOptimizationBatch(c.Request.Context(), inputs)
	if err != nil {
		log.Printf("[Control] Ingestion failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "Internal server error",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Successfully processed %d optimization actions", res.Processed),
	})
}
