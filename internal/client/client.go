package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"smartgrid/internal/api/models"
)

// Client talks to the smart grid API over HTTP. The simulator uses it to push
// telemetry and optimization actions.
type Client struct {
	BaseURL string
	Client  *http.Client
}

// New creates an API client.
// If baseURL is empty, defaults to "http://localhost:8080".
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents a non-2xx response from the grid API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("grid api: %s (status %d)", e.Message, e.StatusCode)
}

// SendSensorData posts a batch of sensor readings.
func (c *Client) SendSensorData(readings []models.SensorReadingDTO) error {
	return c.post("/api/sensordata", readings)
}

// SendOptimizationActions posts a batch of optimization actions.
func (c *Client) SendOptimizationActions(actions []models.OptimizationActionDTO) error {
	return c.post("/api/control/optimize", actions)
}

// FetchGridStatus retrieves the current aggregated grid snapshot.
func (c *Client) FetchGridStatus() (*models.GridStatusResponse, error) {
	url := c.BaseURL + "/api/gridstatus"

	start := time.Now()
	resp, err := c.Client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch grid status: %w", err)
	}
	defer resp.Body.Close()
	log.Printf("[Client] GET /api/gridstatus -> %d (%v)", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp)
	}

	var status models.GridStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode grid status: %w", err)
	}
	return &status, nil
}

func (c *Client) post(path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	start := time.Now()
	resp, err := c.Client.Post(c.BaseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()
	log.Printf("[Client] POST %s -> %d (%v)", path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return c.decodeError(resp)
	}

	var msg models.MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err == nil && msg.Message != "" {
		log.Printf("[Client] %s", msg.Message)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       "API_ERROR",
		Message:    fmt.Sprintf("API returned status %d", resp.StatusCode),
	}
	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Code != "" {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	return apiErr
}
