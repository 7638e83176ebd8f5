package grid

import (
	"context"
	"fmt"
	"log"
	"time"

	"smartgrid/internal/model"
)

// Timestamp layouts accepted on the wire. The simulator serializes local
// datetimes without an offset; those are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// IngestSensorBatch validates and persists a batch of sensor readings.
//
// Items are processed independently: a malformed timestamp skips that item
// and the rest of the batch proceeds. Nodes referenced for the first time are
// auto-provisioned with default region and capacity. All surviving readings
// and their derived load events are written in a single flush at the end; a
// store failure fails the whole call.
func (s *Service) IngestSensorBatch(ctx context.Context, inputs []SensorInput) (*Result, error) {
	res := &Result{}
	readings := make([]model.SensorReading, 0, len(inputs))
	events := make([]model.LoadEvent, 0, len(inputs))

	for i, in := range inputs {
		ts, err := parseTimestamp(in.Timestamp)
		if err != nil {
			log.Printf("[Ingest] Skipping sensor item %d (sensor=%s, node=%s): %v", i, in.SensorID, in.NodeID, err)
			res.Skipped = append(res.Skipped, SkippedItem{Index: i, Reason: err.Error()})
			continue
		}

		created, err := s.store.EnsureNode(ctx, model.GridNode{
			NodeID:      in.NodeID,
			Region:      model.DefaultRegion,
			Capacity:    model.DefaultCapacity,
			LastUpdated: s.now().UTC(),
		})
		if err != nil {
			return nil, fmt.Errorf("provision node %s: %w", in.NodeID, err)
		}
		if created {
			log.Printf("[Ingest] Auto-provisioned node %s (region=%s, capacity=%.1f)",
				in.NodeID, model.DefaultRegion, model.DefaultCapacity)
		}

		readings = append(readings, model.SensorReading{
			SensorID:    in.SensorID,
			NodeID:      in.NodeID,
			Timestamp:   ts,
			LoadReading: in.LoadReading,
			Voltage:     in.Voltage,
			Frequency:   in.Frequency,
		})
		// The event's utilization and type are written as placeholders; the
		// aggregator computes utilization from capacity at read time.
		events = append(events, model.LoadEvent{
			NodeID:             in.NodeID,
			Timestamp:          ts,
			LoadValue:          in.LoadReading,
			UtilizationPercent: 0,
			EventType:          model.EventNormal,
		})
		res.Processed++
	}

	if err := s.store.SaveSensorBatch(ctx, readings, events); err != nil {
		return nil, fmt.Errorf("flush sensor batch: %w", err)
	}

	log.Printf("[Ingest] Processed %d sensor readings (%d skipped)", res.Processed, len(res.Skipped))
	return res, nil
}

// IngestOptimizationBatch persists a batch of optimization actions with the
// same per-item isolation policy as sensor ingestion. Actions are stored
// verbatim; no node-existence checks are made.
func (s *Service) IngestOptimizationBatch(ctx context.Context, inputs []ActionInput) (*Result, error) {
	res := &Result{}
	actions := make([]model.OptimizationAction, 0, len(inputs))

	for i, in := range inputs {
		ts, err := parseTimestamp(in.Timestamp)
		if err != nil {
			log.Printf("[Ingest] Skipping action item %d (%s -> %s): %v", i, in.FromNodeID, in.ToNodeID, err)
			res.Skipped = append(res.Skipped, SkippedItem{Index: i, Reason: err.Error()})
			continue
		}
		actions = append(actions, model.OptimizationAction{
			FromNodeID: in.FromNodeID,
			ToNodeID:   in.ToNodeID,
			Amount:     in.Amount,
			ActionType: in.ActionType,
			Timestamp:  ts,
		})
		res.Processed++
	}

	if err := s.store.SaveOptimizationActions(ctx, actions); err != nil {
		return nil, fmt.Errorf("flush action batch: %w", err)
	}

	log.Printf("[Ingest] Processed %d optimization actions (%d skipped)", res.Processed, len(res.Skipped))
	return res, nil
}
