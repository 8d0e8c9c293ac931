package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything tunable about the planner: transport policy,
// pacing, cache TTLs, provider endpoints, and the country bounding boxes
// used by the reverse geocoder. Defaults apply field by field; a YAML file
// and environment variables override.
type Config struct {
	DBPath string `yaml:"db_path"`

	Transport TransportConfig `yaml:"transport"`
	Cache     CacheConfig     `yaml:"cache"`
	Provider  ProviderConfig  `yaml:"provider"`
	Trace     TraceConfig     `yaml:"trace"`

	// Countries lists bounding boxes for reverse geocoding, checked in order.
	Countries []CountryBox `yaml:"countries"`
}

type TransportConfig struct {
	BufferFactor       float64        `yaml:"buffer_factor"`
	FixedBufferMin     int            `yaml:"fixed_buffer_min"`
	CrossRegionCostMin int            `yaml:"cross_region_cost_min"`
	SwitchCostMin      map[string]int `yaml:"switch_cost_min"` // key "from>to"
}

type CacheConfig struct {
	SelectionTTLWithMonth time.Duration `yaml:"selection_ttl_with_month"`
	SelectionTTLNoMonth   time.Duration `yaml:"selection_ttl_no_month"`
	PoolTTLSignature      time.Duration `yaml:"pool_ttl_signature"`
	PoolTTLTrivial        time.Duration `yaml:"pool_ttl_trivial"`
}

type ProviderConfig struct {
	TravelTimeURL string        `yaml:"travel_time_url"`
	Timeout       time.Duration `yaml:"timeout"`
}

type TraceConfig struct {
	StoreCap int `yaml:"store_cap"`
}

type CountryBox struct {
	Code   string  `yaml:"code"`
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
	MinLng float64 `yaml:"min_lng"`
	MaxLng float64 `yaml:"max_lng"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Transport: TransportConfig{
			BufferFactor:       1.2,
			FixedBufferMin:     15,
			CrossRegionCostMin: 8,
			SwitchCostMin: map[string]int{
				"walk>metro": 8,
				"metro>walk": 5,
			},
		},
		Cache: CacheConfig{
			SelectionTTLWithMonth: 6 * time.Hour,
			SelectionTTLNoMonth:   1 * time.Hour,
			PoolTTLSignature:      24 * time.Hour,
			PoolTTLTrivial:        6 * time.Hour,
		},
		Provider: ProviderConfig{
			Timeout: 10 * time.Second,
		},
		Trace: TraceConfig{
			StoreCap: 256,
		},
		Countries: []CountryBox{
			{Code: "JP", MinLat: 24.0, MaxLat: 45.6, MinLng: 122.9, MaxLng: 146.1},
			{Code: "CH", MinLat: 45.8, MaxLat: 47.9, MinLng: 5.9, MaxLng: 10.6},
			{Code: "IS", MinLat: 63.2, MaxLat: 66.6, MinLng: -24.6, MaxLng: -13.4},
			{Code: "NZ", MinLat: -47.4, MaxLat: -34.3, MinLng: 166.3, MaxLng: 178.6},
			{Code: "NO", MinLat: 57.9, MaxLat: 71.3, MinLng: 4.5, MaxLng: 31.2},
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (if non-empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if v := os.Getenv("ITINERA_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ITINERA_TRAVEL_URL"); v != "" {
		cfg.Provider.TravelTimeURL = v
	}
	if v := os.Getenv("ITINERA_BUFFER_FACTOR"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing ITINERA_BUFFER_FACTOR: %w", err)
		}
		cfg.Transport.BufferFactor = f
	}
	if v := os.Getenv("ITINERA_TRACE_CAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parsing ITINERA_TRACE_CAP: %w", err)
		}
		cfg.Trace.StoreCap = n
	}

	return cfg, nil
}
