package store

import (
	"context"
	"sync"

	"smartgrid/internal/model"
)

// Memory is an in-process Store. It backs the API when no database DSN is
// configured and is the fixture store for tests.
type Memory struct {
	mu       sync.Mutex
	nextID   int64
	nodes    []model.GridNode
	readings []model.SensorReading
	events   []model.LoadEvent
	actions  []model.OptimizationAction
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

// EnsureNode inserts the node unless its NodeID is already present.
func (m *Memory) EnsureNode(_ context.Context, node model.GridNode) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.nodes {
		if n.NodeID == node.NodeID {
			return false, nil
		}
	}
	node.ID = m.id()
	m.nodes = append(m.nodes, node)
	return true, nil
}

// ListNodes returns a copy of all nodes.
func (m *Memory) ListNodes(_ context.Context) ([]model.GridNode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.GridNode, len(m.nodes))
	copy(out, m.nodes)
	return out, nil
}

// SaveSensorBatch appends readings and events under one lock acquisition.
func (m *Memory) SaveSensorBatch(_ context.Context, readings []model.SensorReading, events []model.LoadEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range readings {
		r.ID = m.id()
		m.readings = append(m.readings, r)
	}
	for _, e := range events {
		e.ID = m.id()
		m.events = append(m.events, e)
	}
	return nil
}

// SaveOptimizationActions appends actions under one lock acquisition.
func (m *Memory) SaveOptimizationActions(_ context.Context, actions []model.OptimizationAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range actions {
		a.ID = m.id()
		m.actions = append(m.actions, a)
	}
	return nil
}

// LatestReadings returns the max-timestamp reading per node id. A later row
// replaces an earlier one only on a strictly greater timestamp, so ties keep
// the earliest-inserted row.
func (m *Memory) LatestReadings(_ context.Context) (map[string]model.SensorReading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	latest := make(map[string]model.SensorReading)
	for _, r := range m.readings {
		cur, ok := latest[r.NodeID]
		if !ok || r.Timestamp.After(cur.Timestamp) {
			latest[r.NodeID] = r
		}
	}
	return latest, nil
}

// Readings returns a copy of all stored sensor readings.
func (m *Memory) Readings() []model.SensorReading {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.SensorReading, len(m.readings))
	copy(out, m.readings)
	return out
}

// LoadEvents returns a copy of all stored load events.
func (m *Memory) LoadEvents() []model.LoadEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.LoadEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Actions returns a copy of all stored optimization actions.
func (m *Memory) Actions() []model.OptimizationAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.OptimizationAction, len(m.actions))
	copy(out, m.actions)
	return out
}
