// Package travel provides an HTTP travel-time provider compatible with
// Valhalla-style matrix endpoints. The planner treats it as best-effort: any
// failure surfaces as an error and the caller falls back to the straight-line
// estimate.
package travel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
)

// Config holds the endpoint settings for the travel-time service.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the travel-time HTTP API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a travel-time client. Timeout defaults to 10s.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{},
	}
}

type matrixLocation struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type matrixRequest struct {
	Sources []matrixLocation `json:"sources"`
	Targets []matrixLocation `json:"targets"`
	Costing string           `json:"costing"`
}

type matrixResponse struct {
	SourcesToTargets [][]struct {
		Time *float64 `json:"time"` // seconds, null when unroutable
	} `json:"sources_to_targets"`
}

// costingFor maps the planner's travel mode onto the API costing model.
func costingFor(mode domain.TravelMode) string {
	switch mode {
	case domain.ModeDrive:
		return "auto"
	case domain.ModeTransit, domain.ModeMetro:
		return "multimodal"
	default:
		return "pedestrian"
	}
}

// Duration implements timematrix.Provider: one ordered pair per call, minutes
// rounded up from the API's seconds.
func (c *Client) Duration(ctx context.Context, from, to domain.Point, mode domain.TravelMode) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body := matrixRequest{
		Sources: []matrixLocation{{Lat: from.Lat, Lon: from.Lng}},
		Targets: []matrixLocation{{Lat: to.Lat, Lon: to.Lng}},
		Costing: costingFor(mode),
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("encoding matrix request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/sources_to_targets", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("building matrix request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("calling travel-time service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("travel-time service returned %d", resp.StatusCode)
	}

	var out matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decoding matrix response: %w", err)
	}
	if len(out.SourcesToTargets) == 0 || len(out.SourcesToTargets[0]) == 0 ||
		out.SourcesToTargets[0][0].Time == nil {
		return 0, fmt.Errorf("travel-time service returned no route")
	}

	return int(math.Ceil(*out.SourcesToTargets[0][0].Time / 60)), nil
}
