package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartgrid/internal/model"
)

func TestMemoryEnsureNodeIdempotent(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	node := model.GridNode{NodeID: "N1", Region: "Unknown", Capacity: 100, LastUpdated: time.Now()}

	created, err := mem.EnsureNode(ctx, node)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = mem.EnsureNode(ctx, node)
	require.NoError(t, err)
	assert.False(t, created)

	nodes, err := mem.ListNodes(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	// The first write wins; a duplicate must not overwrite anything.
	assert.Equal(t, "Unknown", nodes[0].Region)
}

func TestMemoryLatestReadingsTieBreak(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	err := mem.SaveSensorBatch(ctx, []model.SensorReading{
		{SensorID: "first", NodeID: "N1", Timestamp: ts, LoadReading: 10},
		{SensorID: "second", NodeID: "N1", Timestamp: ts, LoadReading: 20},
	}, nil)
	require.NoError(t, err)

	latest, err := mem.LatestReadings(ctx)
	require.NoError(t, err)
	require.Contains(t, latest, "N1")
	// Equal timestamps resolve to the earliest-inserted row.
	assert.Equal(t, "first", latest["N1"].SensorID)
	assert.Equal(t, 10.0, latest["N1"].LoadReading)
}

func TestMemoryLatestReadingsPerNode(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	err := mem.SaveSensorBatch(ctx, []model.SensorReading{
		{SensorID: "a", NodeID: "N1", Timestamp: ts, LoadReading: 10},
		{SensorID: "b", NodeID: "N1", Timestamp: ts.Add(time.Minute), LoadReading: 30},
		{SensorID: "c", NodeID: "N2", Timestamp: ts, LoadReading: 50},
	}, nil)
	require.NoError(t, err)

	latest, err := mem.LatestReadings(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, 30.0, latest["N1"].LoadReading)
	assert.Equal(t, 50.0, latest["N2"].LoadReading)
}

func TestMemorySaveBatchesAssignIDs(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	ts := time.Now()

	require.NoError(t, mem.SaveSensorBatch(ctx,
		[]model.SensorReading{{SensorID: "s", NodeID: "N1", Timestamp: ts}},
		[]model.LoadEvent{{NodeID: "N1", Timestamp: ts, EventType: model.EventNormal}},
	))
	require.NoError(t, mem.SaveOptimizationActions(ctx,
		[]model.OptimizationAction{{FromNodeID: "N1", ToNodeID: "N2", Amount: 1, ActionType: "LOAD_TRANSFER", Timestamp: ts}},
	))

	readings := mem.Readings()
	events := mem.LoadEvents()
	actions := mem.Actions()
	require.Len(t, readings, 1)
	require.Len(t, events, 1)
	require.Len(t, actions, 1)
	assert.NotZero(t, readings[0].ID)
	assert.NotZero(t, events[0].ID)
	assert.NotZero(t, actions[0].ID)
}
