package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nikbrunner/vs/internal/scroller"
)

// Backend selects the item store.
type Backend string

const (
	BackendAuto   Backend = "auto"
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// Config holds application configuration.
type Config struct {
	// ItemHeight, Amount and Tolerance feed the scroller; the index range comes
	// from the loaded items.
	ItemHeight int `json:"itemHeight"`
	Amount     int `json:"amount"`
	Tolerance  int `json:"tolerance"`
	StartIndex int `json:"startIndex"`

	// AutoAmount fits Amount to the terminal height.
	AutoAmount bool    `json:"autoAmount"`
	Backend    Backend `json:"backend"`
	SeedCount  int     `json:"seedCount"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	d := scroller.DefaultSettings()
	return Config{
		ItemHeight: d.ItemHeight,
		Amount:     d.Amount,
		Tolerance:  d.Tolerance,
		StartIndex: d.StartIndex,
		AutoAmount: true,
		Backend:    BackendAuto,
		SeedCount:  d.MaxIndex,
	}
}

// Validate checks the fields that do not depend on the item range.
func (c Config) Validate() error {
	switch {
	case c.ItemHeight < 1:
		return &scroller.ConfigError{Field: "itemHeight", Bound: scroller.BoundMin, Value: c.ItemHeight, Limit: 1}
	case c.Amount < 1:
		return &scroller.ConfigError{Field: "amount", Bound: scroller.BoundMin, Value: c.Amount, Limit: 1}
	case c.Tolerance < 0:
		return &scroller.ConfigError{Field: "tolerance", Bound: scroller.BoundMin, Value: c.Tolerance, Limit: 0}
	}
	switch c.Backend {
	case BackendAuto, BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}

// Settings builds scroller settings for the index range [minIndex, maxIndex].
// A StartIndex outside the range is moved to the nearest end and logged, not
// rejected. The other fields are validated as given.
func (c Config) Settings(minIndex, maxIndex int) (scroller.Settings, error) {
	start := min(max(c.StartIndex, minIndex), maxIndex)
	if start != c.StartIndex && minIndex <= maxIndex {
		log.Printf("startIndex %d outside [%d, %d], using %d", c.StartIndex, minIndex, maxIndex, start)
	}
	s := scroller.Settings{
		MinIndex:   minIndex,
		MaxIndex:   maxIndex,
		StartIndex: start,
		ItemHeight: c.ItemHeight,
		Amount:     c.Amount,
		Tolerance:  c.Tolerance,
	}
	if err := s.Validate(); err != nil {
		return scroller.Settings{}, err
	}
	return s, nil
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	// Missing fields keep their defaults.
	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: <data dir>/config.json
func DefaultConfigFilePath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
