package handlers

import (
	"fmt"
	"log"
	"net/http"

	"smartgrid/internal/api/models"
	"smartgrid/internal/grid"

	"github.com/gin-gonic/gin"
)

// SensorDataHandler handles sensor telemetry ingestion requests
type SensorDataHandler struct {
	service *grid.Service
}

// NewSensorDataHandler creates a new sensor data handler
func NewSensorDataHandler(service *grid.Service) *SensorDataHandler {
	return &SensorDataHandler{service: service}
}

// PostSensorData handles POST /api/sensordata
func (h *SensorDataHandler) PostSensorData(c *gin.Context) {
	var body []models.SensorReadingDTO
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
				Message: "Sensor data cannot be empty",
			},
		})
		return
	}

	inputs := make([]grid.SensorInput, len(body))
	for i, dto := range body {
		inputs[i] = grid.SensorInput{
			SensorID:    dto.SensorID,
			NodeID:      dto.NodeID,
			Timestamp:   dto.Timestamp,
			LoadReading: dto.LoadReading,
			Voltage:     dto.Voltage,
			Frequency:   dto.Frequency,
		}
	}

	res, err := h.service.IngestSensorBatch(c.Request.Context(), inputs)
	if err != nil {
		log.Printf("[SensorData] Ingestion failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "Internal server error",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Successfully processed %d sensor readings", res.Processed),
	})
}
