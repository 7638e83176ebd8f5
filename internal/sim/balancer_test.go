package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOverloadedStrictBoundary(t *testing.T) {
	b := NewBalancer(85, 40)
	nodes := []*Node{
		{NodeID: "AT", Capacity: 100, CurrentLoad: 85},
		{NodeID: "OVER", Capacity: 100, CurrentLoad: 85.01},
		{NodeID: "LOW", Capacity: 100, CurrentLoad: 10},
	}

	overloaded := b.DetectOverloaded(nodes)
	require.Len(t, overloaded, 1)
	assert.Equal(t, "OVER", overloaded[0].NodeID)
}

func TestOptimizeTransfersExcessLoad(t *testing.T) {
	b := NewBalancer(85, 40)
	src := &Node{NodeID: "SRC", Capacity: 100, CurrentLoad: 95}
	dst := &Node{NodeID: "DST", Capacity: 100, CurrentLoad: 10}

	transfers := b.Optimize([]*Node{src, dst})
	require.Len(t, transfers, 1)
	tr := transfers[0]
	assert.Equal(t, "SRC", tr.FromNodeID)
	assert.Equal(t, "DST", tr.ToNodeID)
	assert.Equal(t, ActionLoadTransfer, tr.ActionType)
	// Excess above the 85% line is 10 MW; receiver headroom halves at 45 MW,
	// so the whole excess moves.
	assert.InDelta(t, 10.0, tr.Amount, 1e-9)
	assert.InDelta(t, 85.0, src.CurrentLoad, 1e-9)
	assert.InDelta(t, 20.0, dst.CurrentLoad, 1e-9)
}

func TestOptimizeCapsTransferAtHalfAvailable(t *testing.T) {
	b := NewBalancer(85, 40)
	src := &Node{NodeID: "SRC", Capacity: 100, CurrentLoad: 100}
	dst := &Node{NodeID: "DST", Capacity: 100, CurrentLoad: 30}

	transfers := b.Optimize([]*Node{src, dst})
	require.Len(t, transfers, 1)
	// 15 MW excess, but only half of the 70 MW headroom is eligible per
	// transfer; 15 < 35 so the excess still moves in full.
	assert.InDelta(t, 15.0, transfers[0].Amount, 1e-9)

	// With tight headroom the transfer is capped.
	src2 := &Node{NodeID: "SRC2", Capacity: 100, CurrentLoad: 120}
	dst2 := &Node{NodeID: "DST2", Capacity: 100, CurrentLoad: 39}
	transfers = b.Optimize([]*Node{src2, dst2})
	require.Len(t, transfers, 1)
	assert.InDelta(t, 30.5, transfers[0].Amount, 1e-9) // half of 61 MW headroom
	assert.InDelta(t, 89.5, src2.CurrentLoad, 1e-9)
}

func TestOptimizeNoOverload(t *testing.T) {
	b := NewBalancer(85, 40)
	nodes := []*Node{
		{NodeID: "N1", Capacity: 100, CurrentLoad: 50},
		{NodeID: "N2", Capacity: 100, CurrentLoad: 20},
	}
	assert.Empty(t, b.Optimize(nodes))
}

func TestOptimizeWorstOffenderFirst(t *testing.T) {
	b := NewBalancer(85, 40)
	mild := &Node{NodeID: "MILD", Capacity: 100, CurrentLoad: 90}
	severe := &Node{NodeID: "SEVERE", Capacity: 100, CurrentLoad: 99}
	sink := &Node{NodeID: "SINK", Capacity: 1000, CurrentLoad: 0}

	transfers := b.Optimize([]*Node{mild, severe, sink})
	require.NotEmpty(t, transfers)
	assert.Equal(t, "SEVERE", transfers[0].FromNodeID)
}

func TestNodeHelpers(t *testing.T) {
	n := &Node{NodeID: "N1", Capacity: 0, CurrentLoad: 50}
	assert.Equal(t, 0.0, n.UtilizationPercent())
	assert.Equal(t, 0.0, n.AvailableCapacity())

	n = &Node{NodeID: "N2", Capacity: 100, CurrentLoad: 40}
	assert.Equal(t, 40.0, n.UtilizationPercent())
	assert.Equal(t, 60.0, n.AvailableCapacity())
	assert.False(t, n.Overloaded(85))
}

func TestSourceProducerReportsNegativeLoad(t *testing.T) {
	producer := NewSource("SOURCE-1", SourceProducer, 20, 0.5)
	consumer := NewSource("SOURCE-2", SourceConsumer, 20, 0.5)
	for i := 0; i < 100; i++ {
		assert.LessOrEqual(t, producer.CurrentLoad(), 0.0)
		assert.GreaterOrEqual(t, consumer.CurrentLoad(), 0.0)
	}
}

func TestSourceClampsVariability(t *testing.T) {
	assert.Equal(t, 1.0, NewSource("S", SourceConsumer, 10, 7).VariabilityFactor)
	assert.Equal(t, 0.0, NewSource("S", SourceConsumer, 10, -1).VariabilityFactor)
}
