package models

// SensorReadingDTO is one element of the POST /api/sensordata body.
// Timestamp stays a string here; ingestion parses it per item so one bad
// value cannot reject the whole batch at the binding layer.
type SensorReadingDTO struct {
	SensorID    string  `json:"sensorId"`
	NodeID      string  `json:"nodeId"`
	Timestamp   string  `json:"timestamp"`
	LoadReading float64 `json:"loadReading"`
	Voltage     float64 `json:"voltage"`
	Frequency   float64 `json:"frequency"`
}

// OptimizationActionDTO is one element of the POST /api/control/optimize body.
type OptimizationActionDTO struct {
	FromNodeID string  `json:"fromNodeId"`
	ToNodeID   string  `json:"toNodeId"`
	Amount     float64 `json:"amount"`
	ActionType string  `json:"actionType"`
	Timestamp  string  `json:"timestamp"`
}
