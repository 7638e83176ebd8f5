package store

import (
	"context"

	"smartgrid/internal/model"
)

// Store is the persistence surface for grid records. Implementations must be
// safe for concurrent use; each call is an independent scoped operation and
// callers never share transaction state across calls.
type Store interface {
	// EnsureNode inserts the node if no row with the same NodeID exists.
	// It is an idempotent upsert: a concurrent duplicate insert must not
	// return an error. Reports whether a new row was created.
	EnsureNode(ctx context.Context, node model.GridNode) (bool, error)

	// ListNodes returns all grid nodes.
	ListNodes(ctx context.Context) ([]model.GridNode, error)

	// SaveSensorBatch persists readings and their derived load events in a
	// single flush. Either everything is written or nothing is.
	SaveSensorBatch(ctx context.Context, readings []model.SensorReading, events []model.LoadEvent) error

	// SaveOptimizationActions persists actions in a single flush.
	SaveOptimizationActions(ctx context.Context, actions []model.OptimizationAction) error

	// LatestReadings returns, per node id, the reading with the greatest
	// timestamp. Timestamp ties resolve to the earliest-inserted row.
	LatestReadings(ctx context.Context) (map[string]model.SensorReading, error)
}
