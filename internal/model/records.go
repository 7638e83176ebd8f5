package model

import "time"

// GridNode is a substation in the grid network. Nodes are auto-provisioned on
// first sight of a sensor reading that references an unknown node id.
type GridNode struct {
	ID          int64
	NodeID      string
	Region      string
	Capacity    float64
	LastUpdated time.Time
}

// Defaults applied when a node is auto-provisioned from a sensor reading.
const (
	DefaultRegion   = "Unknown"
	DefaultCapacity = 100.0
)

// SensorReading is one telemetry sample from a sensor attached to a node.
// Readings are never mutated after insertion.
type SensorReading struct {
	ID          int64
	SensorID    string
	NodeID      string
	Timestamp   time.Time
	LoadReading float64
	Voltage     float64
	Frequency   float64
}

// LoadEvent is derived from a sensor reading at ingestion time.
type LoadEvent struct {
	ID                 int64
	NodeID             string
	Timestamp          time.Time
	LoadValue          float64
	UtilizationPercent float64
	EventType          EventType
}

// EventType classifies a load event.
// Keep these values stable; they are stored as-is.
type EventType string

const (
	EventNormal    EventType = "NORMAL"
	EventOverload  EventType = "OVERLOAD"
	EventUnderload EventType = "UNDERLOAD"
)

// OptimizationAction is a recorded load-transfer instruction between two
// nodes. Actions are accepted and stored; nothing replays them.
type OptimizationAction struct {
	ID         int64
	FromNodeID string
	ToNodeID   string
	Amount     float64
	ActionType string
	Timestamp  time.Time
}
