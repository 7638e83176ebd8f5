// Package grid holds the telemetry ingestion and status aggregation logic.
package grid

import (
	"time"

	"smartgrid/internal/store"
)

// OverloadThresholdPercent is the utilization above which a node counts as
// overloaded. The comparison is strict: exactly 85% is not overloaded.
const OverloadThresholdPercent = 85.0

// Service implements ingestion and aggregation over a Store. It carries no
// mutable state of its own; every call is an independent request.
type Service struct {
	store store.Store
	now   func() time.Time
}

// NewService creates a grid service on top of the given store.
func NewService(s store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

// SensorInput is one item of a sensor ingestion batch, as received on the
// wire. Timestamp is an ISO-8601 string and is parsed per item.
type SensorInput struct {
	SensorID    string
	NodeID      string
	Timestamp   string
	LoadReading float64
	Voltage     float64
	Frequency   float64
}

// ActionInput is one item of an optimization-action batch.
type ActionInput struct {
	FromNodeID string
	ToNodeID   string
	Amount     float64
	ActionType string
	Timestamp  string
}

// SkippedItem records one batch item that was dropped instead of persisted.
type SkippedItem struct {
	Index  int
	Reason string
}

// Result reports the outcome of an ingestion batch. Skipped items are an
// expected, recoverable condition and never fail the batch.
type Result struct {
	Processed int
	Skipped   []SkippedItem
}
