package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/rangescope/market"
	"gopkg.in/yaml.v3"
)

// Config represents the complete analysis configuration
type Config struct {
	Data     DataConfig     `json:"data" yaml:"data"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Output   OutputConfig   `json:"output" yaml:"output"`
}

// DataConfig says where the candles come from
type DataConfig struct {
	// Path is a .csv, .csv.xz or .json file, or a SQLite database written by
	// the import command.
	Path       string `json:"path" yaml:"path"`
	Instrument string `json:"instrument" yaml:"instrument"`
}

// AnalysisConfig holds the thresholds the passes filter on
type AnalysisConfig struct {
	Bins             int     `json:"bins" yaml:"bins"`
	FirstPeakVolume  float64 `json:"first_peak_volume" yaml:"first_peak_volume"`
	SecondPeakVolume float64 `json:"second_peak_volume" yaml:"second_peak_volume"`
	VolumeDropOff    float64 `json:"volume_drop_off" yaml:"volume_drop_off"`
	PriceThreshold   float64 `json:"price_threshold" yaml:"price_threshold"`
}

// OutputConfig controls charts, console text and logging
type OutputConfig struct {
	Charts   bool    `json:"charts" yaml:"charts"`
	Dir      string  `json:"dir" yaml:"dir"`
	WidthIn  float64 `json:"width_in" yaml:"width_in"`
	HeightIn float64 `json:"height_in" yaml:"height_in"`
	Detailed bool    `json:"detailed" yaml:"detailed"`
	Color    bool    `json:"color" yaml:"color"`
	LogLevel string  `json:"log_level" yaml:"log_level"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Start from defaults so a partial file only overrides what it names.
	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if _, ok := market.LookupInstrument(c.Data.Instrument); !ok {
		return fmt.Errorf("unknown instrument: %s", c.Data.Instrument)
	}
	a := c.Analysis
	if a.Bins <= 0 {
		return fmt.Errorf("analysis.bins must be positive")
	}
	if a.FirstPeakVolume <= 0 {
		return fmt.Errorf("analysis.first_peak_volume must be positive")
	}
	if a.SecondPeakVolume <= a.FirstPeakVolume {
		return fmt.Errorf("analysis.second_peak_volume must be greater than first_peak_volume")
	}
	if a.VolumeDropOff <= a.SecondPeakVolume {
		return fmt.Errorf("analysis.volume_drop_off must be greater than second_peak_volume")
	}
	if a.PriceThreshold <= 0 {
		return fmt.Errorf("analysis.price_threshold must be positive")
	}
	if c.Output.Charts {
		if c.Output.Dir == "" {
			return fmt.Errorf("output.dir required when charts are enabled")
		}
		if c.Output.WidthIn <= 0 || c.Output.HeightIn <= 0 {
			return fmt.Errorf("output chart size must be positive")
		}
	}
	if _, err := zerolog.ParseLevel(c.Output.LogLevel); err != nil {
		return fmt.Errorf("output.log_level: %w", err)
	}
	return nil
}

// Default returns the thresholds read off the 2010-2016 EUR/USD 15m charts
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path:       "EURUSD_15m_BID_01.01.2010-31.12.2016.csv",
			Instrument: "EUR_USD",
		},
		Analysis: AnalysisConfig{
			Bins:             500,
			FirstPeakVolume:  1.06e9,
			SecondPeakVolume: 3.4e9,
			VolumeDropOff:    6.0e9,
			PriceThreshold:   1.394,
		},
		Output: OutputConfig{
			Charts:   true,
			Dir:      "./charts",
			WidthIn:  14,
			HeightIn: 7,
			Detailed: false,
			Color:    true,
			LogLevel: "info",
		},
	}
}
