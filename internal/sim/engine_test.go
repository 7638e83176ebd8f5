package sim

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartgrid/internal/api/models"
	"smartgrid/internal/client"
	"smartgrid/internal/config"
)

func TestNewEngineBuildsGridFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Nodes = 5
	cfg.Grid.LoadSources = 25

	e := NewEngine(cfg, client.New(""))
	require.Len(t, e.Nodes(), 5)
	require.Len(t, e.sources, 25)

	seen := make(map[string]bool)
	for _, n := range e.Nodes() {
		assert.GreaterOrEqual(t, n.Capacity, cfg.Grid.NodeBaseCapacity)
		seen[n.Region] = true
	}
	assert.Equal(t, 5, len(seen)) // one node per region at this size

	producers := 0
	for _, s := range e.sources {
		if s.Type == SourceProducer {
			producers++
		}
	}
	assert.Equal(t, 5, producers) // every fifth source produces
}

func TestUpdateLoadsNeverNegative(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Nodes = 4
	cfg.Grid.LoadSources = 20

	e := NewEngine(cfg, client.New(""))
	for i := 0; i < 10; i++ {
		e.updateLoads(context.Background())
		for _, n := range e.Nodes() {
			assert.GreaterOrEqual(t, n.CurrentLoad, 0.0)
		}
	}
}

func TestReportStatusPostsOneReadingPerNode(t *testing.T) {
	var got []models.SensorReadingDTO
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sensordata", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "ok"})
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Grid.Nodes = 3
	cfg.Grid.LoadSources = 9

	e := NewEngine(cfg, client.New(srv.URL))
	e.updateLoads(context.Background())
	e.reportStatus()

	require.Len(t, got, 3)
	for i, dto := range got {
		assert.Equal(t, e.Nodes()[i].NodeID, dto.NodeID)
		assert.Equal(t, "SENSOR-"+dto.NodeID, dto.SensorID)
		assert.NotEmpty(t, dto.Timestamp)
		assert.InDelta(t, 410, dto.Voltage, 10.01)
		assert.InDelta(t, 60.25, dto.Frequency, 0.2501)
	}
}

func TestRunOptimizationPostsTransfers(t *testing.T) {
	var got []models.OptimizationActionDTO
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/control/optimize", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "ok"})
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Grid.Nodes = 2
	cfg.Grid.LoadSources = 10

	e := NewEngine(cfg, client.New(srv.URL))
	e.nodes[0].Capacity = 100
	e.nodes[0].CurrentLoad = 99
	e.nodes[1].Capacity = 100
	e.nodes[1].CurrentLoad = 5

	e.runOptimization()

	require.Len(t, got, 1)
	assert.Equal(t, e.nodes[0].NodeID, got[0].FromNodeID)
	assert.Equal(t, e.nodes[1].NodeID, got[0].ToNodeID)
	assert.Equal(t, ActionLoadTransfer, got[0].ActionType)
	assert.Greater(t, got[0].Amount, 0.0)
}
