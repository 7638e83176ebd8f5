package sim

import (
	"log"
	"sort"
)

// ActionLoadTransfer is the action type recorded for load moved between nodes.
const ActionLoadTransfer = "LOAD_TRANSFER"

// Transfer is one load movement decided by the balancer.
type Transfer struct {
	FromNodeID string
	ToNodeID   string
	Amount     float64
	ActionType string
}

// Balancer redistributes load from overloaded to underloaded nodes.
// Thresholds are utilization percentages.
type Balancer struct {
	OverloadThreshold  float64
	UnderloadThreshold float64
}

// NewBalancer creates a balancer with the given thresholds.
func NewBalancer(overload, underload float64) *Balancer {
	return &Balancer{
		OverloadThreshold:  overload,
		UnderloadThreshold: underload,
	}
}

// DetectOverloaded returns the nodes whose utilization strictly exceeds the
// overload threshold.
func (b *Balancer) DetectOverloaded(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.Overloaded(b.OverloadThreshold) {
			out = append(out, n)
		}
	}
	return out
}

// Optimize moves load off overloaded nodes into nodes below the underload
// threshold, worst offenders first, and returns the transfers performed. Each
// transfer takes at most half of the receiver's available capacity.
func (b *Balancer) Optimize(nodes []*Node) []Transfer {
	var overloaded, underloaded []*Node
	for _, n := range nodes {
		util := n.UtilizationPercent()
		switch {
		case util > b.OverloadThreshold:
			overloaded = append(overloaded, n)
		case util < b.UnderloadThreshold && n.AvailableCapacity() > 0:
			underloaded = append(underloaded, n)
		}
	}

	if len(overloaded) == 0 {
		return nil
	}

	sort.Slice(overloaded, func(i, j int) bool {
		return overloaded[i].UtilizationPercent() > overloaded[j].UtilizationPercent()
	})
	sort.Slice(underloaded, func(i, j int) bool {
		return underloaded[i].AvailableCapacity() > underloaded[j].AvailableCapacity()
	})

	var transfers []Transfer
	for _, src := range overloaded {
		excess := src.CurrentLoad - src.Capacity*(b.OverloadThreshold/100)
		if excess <= 0 {
			continue
		}

		for _, dst := range underloaded {
			if excess <= 0 {
				break
			}
			avail := dst.AvailableCapacity()
			if avail <= 0 {
				continue
			}

			amount := avail * 0.5
			if excess < amount {
				amount = excess
			}

			src.CurrentLoad -= amount
			dst.CurrentLoad += amount
			excess -= amount

			transfers = append(transfers, Transfer{
				FromNodeID: src.NodeID,
				ToNodeID:   dst.NodeID,
				Amount:     amount,
				ActionType: ActionLoadTransfer,
			})

			log.Printf("[Balancer] Transferred %.2f MW from %s to %s", amount, src.NodeID, dst.NodeID)
		}
	}

	return transfers
}
