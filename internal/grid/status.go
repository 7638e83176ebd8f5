package grid

import (
	"context"
	"fmt"
	"time"
)

// NodeStatus is the per-node slice of a grid snapshot.
type NodeStatus struct {
	NodeID             string
	Region             string
	CurrentLoad        float64
	Capacity           float64
	UtilizationPercent float64
	LastUpdated        time.Time
}

// Snapshot is the grid-wide status at one instant. Node order is whatever the
// store returned; callers must not rely on it.
type Snapshot struct {
	Timestamp          time.Time
	TotalNodes         int
	TotalLoad          float64
	TotalCapacity      float64
	AverageUtilization float64
	OverloadedNodes    int
	Nodes              []NodeStatus
}

// ComputeGridStatus joins every node to its latest sensor reading and derives
// utilization metrics. A node with no readings yet reports zero load with its
// own LastUpdated as the display timestamp. Pure read; nothing is mutated.
func (s *Service) ComputeGridStatus(ctx context.Context) (*Snapshot, error) {
	nodes, err := s.store.ListNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	latest, err := s.store.LatestReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest readings: %w", err)
	}

	snap := &Snapshot{
		Timestamp: s.now().UTC(),
		Nodes:     make([]NodeStatus, 0, len(nodes)),
	}

	for _, node := range nodes {
		currentLoad := 0.0
		lastUpdated := node.LastUpdated
		if r, ok := latest[node.NodeID]; ok {
			currentLoad = r.LoadReading
			lastUpdated = r.Timestamp
		}

		// Guard the divisor: a zero-capacity node reports 0%, never NaN.
		utilization := 0.0
		if node.Capacity > 0 {
			utilization = (currentLoad / node.Capacity) * 100
		}
		if utilization > OverloadThresholdPercent {
			snap.OverloadedNodes++
		}

		snap.Nodes = append(snap.Nodes, NodeStatus{
			NodeID:             node.NodeID,
			Region:             node.Region,
			CurrentLoad:        currentLoad,
			Capacity:           node.Capacity,
			UtilizationPercent: utilization,
			LastUpdated:        lastUpdated,
		})

		snap.TotalLoad += currentLoad
		snap.TotalCapacity += node.Capacity
	}

	snap.TotalNodes = len(nodes)
	if snap.TotalCapacity > 0 {
		snap.AverageUtilization = (snap.TotalLoad / snap.TotalCapacity) * 100
	}
	return snap, nil
}
