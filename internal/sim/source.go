package sim

import (
	"fmt"
	"math/rand"
)

// Source types. Consumers draw load, producers (e.g. rooftop solar) feed the
// grid and contribute negative load.
const (
	SourceConsumer = "CONSUMER"
	SourceProducer = "PRODUCER"
)

// Source is a load source attached to the grid.
type Source struct {
	SourceID          string
	Type              string
	BaseLoad          float64 // MW
	VariabilityFactor float64 // 0.0 to 1.0
}

// NewSource creates a load source, clamping variability to [0, 1].
func NewSource(sourceID, typ string, baseLoad, variability float64) *Source {
	if variability < 0 {
		variability = 0
	}
	if variability > 1 {
		variability = 1
	}
	return &Source{
		SourceID:          sourceID,
		Type:              typ,
		BaseLoad:          baseLoad,
		VariabilityFactor: variability,
	}
}

// CurrentLoad returns the load with a random fluctuation proportional to the
// variability factor. Producers always report negative load.
func (s *Source) CurrentLoad() float64 {
	variation := (rand.Float64() - 0.5) * 2 * s.VariabilityFactor
	load := s.BaseLoad * (1 + variation)
	if s.Type == SourceProducer {
		if load < 0 {
			return load
		}
		return -load
	}
	if load < 0 {
		return -load
	}
	return load
}

func (s *Source) String() string {
	return fmt.Sprintf("Source[id=%s, type=%s, baseLoad=%.2f MW]", s.SourceID, s.Type, s.BaseLoad)
}

// Node is a simulated grid node. The engine serializes all phases that touch
// node state, so no locking is needed here.
type Node struct {
	NodeID      string
	Region      string
	Capacity    float64 // MW
	CurrentLoad float64 // MW
}

// UtilizationPercent returns load as a percentage of capacity.
func (n *Node) UtilizationPercent() float64 {
	if n.Capacity <= 0 {
		return 0
	}
	return (n.CurrentLoad / n.Capacity) * 100
}

// AvailableCapacity returns the headroom in MW, never negative.
func (n *Node) AvailableCapacity() float64 {
	avail := n.Capacity - n.CurrentLoad
	if avail < 0 {
		return 0
	}
	return avail
}

// Overloaded reports whether utilization strictly exceeds the threshold.
func (n *Node) Overloaded(threshold float64) bool {
	return n.UtilizationPercent() > threshold
}

func (n *Node) String() string {
	return fmt.Sprintf("Node[id=%s, region=%s, load=%.2f/%.2f MW, utilization=%.1f%%]",
		n.NodeID, n.Region, n.CurrentLoad, n.Capacity, n.UtilizationPercent())
}
