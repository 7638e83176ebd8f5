package models

import "time"

// MessageResponse is the success body of the ingestion endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// GridStatusResponse is the body of GET /api/gridstatus.
type GridStatusResponse struct {
	Timestamp          time.Time            `json:"timestamp"`
	TotalNodes         int                  `json:"totalNodes"`
	TotalLoad          float64              `json:"totalLoad"`
	TotalCapacity      float64              `json:"totalCapacity"`
	AverageUtilization float64              `json:"averageUtilization"`
	OverloadedNodes    int                  `json:"overloadedNodes"`
	Nodes              []NodeStatusResponse `json:"nodes"`
}

// NodeStatusResponse is one node's slice of the grid status.
type NodeStatusResponse struct {
	NodeID             string    `json:"nodeId"`
	Region             string    `json:"region"`
	CurrentLoad        float64   `json:"currentLoad"`
	Capacity           float64   `json:"capacity"`
	UtilizationPercent float64   `json:"utilizationPercent"`
	LastUpdated        time.Time `json:"lastUpdated"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
