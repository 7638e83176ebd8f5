package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"smartgrid/internal/model"
)

// Postgres is a Store backed by PostgreSQL via database/sql. Node uniqueness
// is enforced by the schema, so concurrent auto-provisioning of the same node
// cannot produce duplicate rows or user-visible errors.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to the database, verifies the connection and creates
// the schema if it does not exist yet.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS grid_nodes (
			id BIGSERIAL PRIMARY KEY,
			node_id TEXT NOT NULL UNIQUE,
			region TEXT NOT NULL,
			capacity DOUBLE PRECISION NOT NULL,
			last_updated TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sensor_readings (
			id BIGSERIAL PRIMARY KEY,
			sensor_id TEXT NOT NULL,
			node_id TEXT NOT NULL,
			ts TIMESTAMPTZ NOT NULL,
			load_reading DOUBLE PRECISION NOT NULL,
			voltage DOUBLE PRECISION NOT NULL,
			frequency DOUBLE PRECISION NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_readings_node_ts ON sensor_readings (node_id, ts)`,
		`CREATE TABLE IF NOT EXISTS load_events (
			id BIGSERIAL PRIMARY KEY,
			node_id TEXT NOT NULL,
			ts TIMESTAMPTZ NOT NULL,
			load_value DOUBLE PRECISION NOT NULL,
			utilization_percent DOUBLE PRECISION NOT NULL,
			event_type TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_load_events_node_ts ON load_events (node_id, ts)`,
		`CREATE TABLE IF NOT EXISTS optimization_actions (
			id BIGSERIAL PRIMARY KEY,
			from_node_id TEXT NOT NULL,
			to_node_id TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			action_type TEXT NOT NULL,
			ts TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_optimization_actions_ts ON optimization_actions (ts)`,
	}
	for _, stmt := range stmts {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// EnsureNode inserts the node if absent. ON CONFLICT DO NOTHING makes the
// check-then-create race harmless under concurrent batches.
func (p *Postgres) EnsureNode(ctx context.Context, node model.GridNode) (bool, error) {
	res, err := p.db.ExecContext(ctx,
		`INSERT INTO grid_nodes (node_id, region, capacity, last_updated)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (node_id) DO NOTHING`,
		node.NodeID, node.Region, node.Capacity, node.LastUpdated,
	)
	if err != nil {
		return false, fmt.Errorf("ensure node %s: %w", node.NodeID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ensure node %s: %w", node.NodeID, err)
	}
	return n > 0, nil
}

// ListNodes returns all grid nodes.
func (p *Postgres) ListNodes(ctx context.Context) ([]model.GridNode, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, node_id, region, capacity, last_updated FROM grid_nodes`)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	defer rows.Close()

	var nodes []model.GridNode
	for rows.Next() {
		var n model.GridNode
		if err := rows.Scan(&n.ID, &n.NodeID, &n.Region, &n.Capacity, &n.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// SaveSensorBatch writes readings and events in one transaction.
func (p *Postgres) SaveSensorBatch(ctx context.Context, readings []model.SensorReading, events []model.LoadEvent) error {
	if len(readings) == 0 && len(events) == 0 {
		return nil
	}
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sensor batch: %w", err)
	}
	defer tx.Rollback()

	for _, r := range readings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sensor_readings (sensor_id, node_id, ts, load_reading, voltage, frequency)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			r.SensorID, r.NodeID, r.Timestamp, r.LoadReading, r.Voltage, r.Frequency,
		); err != nil {
			return fmt.Errorf("insert reading for %s: %w", r.NodeID, err)
		}
	}
	for _, e := range events {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO load_events (node_id, ts, load_value, utilization_percent, event_type)
			 VALUES ($1, $2, $3, $4, $5)`,
			e.NodeID, e.Timestamp, e.LoadValue, e.UtilizationPercent, string(e.EventType),
		); err != nil {
			return fmt.Errorf("insert load event for %s: %w", e.NodeID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sensor batch: %w", err)
	}
	return nil
}

// SaveOptimizationActions writes actions in one transaction.
func (p *Postgres) SaveOptimizationActions(ctx context.Context, actions []model.OptimizationAction) error {
	if len(actions) == 0 {
		return nil
	}
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin action batch: %w", err)
	}
	defer tx.Rollback()

	for _, a := range actions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO optimization_actions (from_node_id, to_node_id, amount, action_type, ts)
			 VALUES ($1, $2, $3, $4, $5)`,
			a.FromNodeID, a.ToNodeID, a.Amount, a.ActionType, a.Timestamp,
		); err != nil {
			return fmt.Errorf("insert action %s->%s: %w", a.FromNodeID, a.ToNodeID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit action batch: %w", err)
	}
	return nil
}

// LatestReadings returns the max-timestamp reading per node. The trailing id
// sort keeps timestamp ties on the earliest-inserted row.
func (p *Postgres) LatestReadings(ctx context.Context) (map[string]model.SensorReading, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT DISTINCT ON (node_id)
			id, sensor_id, node_id, ts, load_reading, voltage, frequency
		 FROM sensor_readings
		 ORDER BY node_id, ts DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("latest readings: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]model.SensorReading)
	for rows.Next() {
		var r model.SensorReading
		if err := rows.Scan(&r.ID, &r.SensorID, &r.NodeID, &r.Timestamp, &r.LoadReading, &r.Voltage, &r.Frequency); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		latest[r.NodeID] = r
	}
	return latest, rows.Err()
}
