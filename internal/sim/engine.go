package sim

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"smartgrid/internal/api/models"
	"smartgrid/internal/client"
	"smartgrid/internal/config"
)

var regions = []string{"North", "South", "East", "West", "Central"}

// Engine drives the grid simulation: periodic load updates across all nodes,
// periodic optimization, and periodic telemetry reporting to the API.
type Engine struct {
	cfg      *config.Config
	nodes    []*Node
	sources  []*Source
	balancer *Balancer
	api      *client.Client
}

// NewEngine builds the simulated grid from the configuration.
func NewEngine(cfg *config.Config, api *client.Client) *Engine {
	e := &Engine{
		cfg:      cfg,
		balancer: NewBalancer(cfg.Grid.OverloadThreshold, cfg.Grid.UnderloadThreshold),
		api:      api,
	}

	for i := 0; i < cfg.Grid.Nodes; i++ {
		e.nodes = append(e.nodes, &Node{
			NodeID:   fmt.Sprintf("NODE-%d", i+1),
			Region:   regions[i%len(regions)],
			Capacity: cfg.Grid.NodeBaseCapacity + rand.Float64()*50,
		})
	}

	for i := 0; i < cfg.Grid.LoadSources; i++ {
		typ := SourceConsumer
		if i%5 == 0 {
			typ = SourceProducer
		}
		e.sources = append(e.sources, NewSource(
			fmt.Sprintf("SOURCE-%d", i+1),
			typ,
			10+rand.Float64()*30,
			0.3+rand.Float64()*0.4,
		))
	}

	log.Printf("[Engine] Initialized grid with %d nodes and %d load sources", len(e.nodes), len(e.sources))
	return e
}

// Nodes returns the simulated nodes.
func (e *Engine) Nodes() []*Node {
	return e.nodes
}

// Run executes the simulation loop until the context is cancelled. All phases
// run on this goroutine, so node state never needs locking; only the per-node
// load computation inside a phase fans out.
func (e *Engine) Run(ctx context.Context) error {
	log.Printf("[Engine] Starting simulation engine...")

	loadTick := time.NewTicker(e.cfg.Simulation.LoadUpdateInterval())
	defer loadTick.Stop()
	optimizeTick := time.NewTicker(e.cfg.Simulation.OptimizationInterval())
	defer optimizeTick.Stop()
	reportTick := time.NewTicker(e.cfg.Simulation.ReportingInterval())
	defer reportTick.Stop()

	e.updateLoads(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[Engine] Simulation engine stopped")
			return ctx.Err()
		case <-loadTick.C:
			e.updateLoads(ctx)
		case <-optimizeTick.C:
			e.runOptimization()
		case <-reportTick.C:
			e.reportStatus()
		}
	}
}

// updateLoads recomputes every node's load from its slice of the load
// sources, one goroutine per node.
func (e *Engine) updateLoads(ctx context.Context) {
	g, _ := errgroup.WithContext(ctx)

	perNode := len(e.sources) / len(e.nodes)
	for i, node := range e.nodes {
		i, node := i, node
		g.Go(func() error {
			start := i * perNode
			end := start + perNode
			if end > len(e.sources) {
				end = len(e.sources)
			}

			total := 0.0
			for _, src := range e.sources[start:end] {
				total += src.CurrentLoad()
			}
			if total < 0 {
				total = 0
			}
			node.CurrentLoad = total
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("[Engine] Error updating loads: %v", err)
	}
}

func (e *Engine) runOptimization() {
	log.Printf("[Engine] Running optimization...")

	overloaded := e.balancer.DetectOverloaded(e.nodes)
	if len(overloaded) > 0 {
		log.Printf("[Engine] Detected %d overloaded nodes", len(overloaded))
		for _, n := range overloaded {
			log.Printf("[Engine]   - %s", n)
		}
	}

	transfers := e.balancer.Optimize(e.nodes)
	if len(transfers) == 0 {
		return
	}
	log.Printf("[Engine] Applied %d optimization actions", len(transfers))

	now := time.Now().UTC().Format(time.RFC3339Nano)
	actions := make([]models.OptimizationActionDTO, len(transfers))
	for i, t := range transfers {
		actions[i] = models.OptimizationActionDTO{
			FromNodeID: t.FromNodeID,
			ToNodeID:   t.ToNodeID,
			Amount:     t.Amount,
			ActionType: t.ActionType,
			Timestamp:  now,
		}
	}
	if err := e.api.SendOptimizationActions(actions); err != nil {
		log.Printf("[Engine] Failed to send optimization actions: %v", err)
	}
}

func (e *Engine) reportStatus() {
	log.Printf("[Engine] === Grid Status Report ===")

	totalLoad, totalCapacity := 0.0, 0.0
	for _, n := range e.nodes {
		totalLoad += n.CurrentLoad
		totalCapacity += n.Capacity
		log.Printf("[Engine]   %s", n)
	}
	if totalCapacity > 0 {
		log.Printf("[Engine] Total Load: %.2f MW / %.2f MW (%.1f%% utilization)",
			totalLoad, totalCapacity, (totalLoad/totalCapacity)*100)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	readings := make([]models.SensorReadingDTO, len(e.nodes))
	for i, n := range e.nodes {
		readings[i] = models.SensorReadingDTO{
			SensorID:    "SENSOR-" + n.NodeID,
			NodeID:      n.NodeID,
			Timestamp:   now,
			LoadReading: n.CurrentLoad,
			Voltage:     400 + rand.Float64()*20,
			Frequency:   60 + rand.Float64()*0.5,
		}
	}
	if err := e.api.SendSensorData(readings); err != nil {
		log.Printf("[Engine] Failed to send sensor data: %v", err)
	}
}
