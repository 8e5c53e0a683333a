// Package scroller implements fixed-height list windowing: it maps a scroll
// offset onto the range of items to render and the heights of the two padding
// regions that stand in for the rows that are not rendered.
package scroller

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is matched by every ConfigError.
var ErrInvalidSettings = errors.New("invalid scroller settings")

// Settings describes the list and viewport. Heights are in host units
// (terminal lines in the TUI).
type Settings struct {
	MinIndex   int `json:"minIndex"`
	MaxIndex   int `json:"maxIndex"`
	StartIndex int `json:"startIndex"`
	ItemHeight int `json:"itemHeight"`
	Amount     int `json:"amount"`
	Tolerance  int `json:"tolerance"`
}

// DefaultSettings returns a sixteen item list showing five rows with two rows
// of tolerance on each side.
func DefaultSettings() Settings {
	return Settings{
		MinIndex:   1,
		MaxIndex:   16,
		StartIndex: 1,
		ItemHeight: 1,
		Amount:     5,
		Tolerance:  2,
	}
}

// Bound names the side of a constraint that was violated.
type Bound string

const (
	BoundMin Bound = "min"
	BoundMax Bound = "max"
)

// ConfigError reports the first settings field that violates its constraint.
type ConfigError struct {
	Field string
	Bound Bound
	Value int
	Limit int
}

func (e *ConfigError) Error() string {
	op := ">="
	if e.Bound == BoundMax {
		op = "<="
	}
	return fmt.Sprintf("%s: %s must be %s %d, got %d", ErrInvalidSettings, e.Field, op, e.Limit, e.Value)
}

// Is makes errors.Is(err, ErrInvalidSettings) hold.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidSettings
}

// Count returns the number of valid indices.
func (s Settings) Count() int {
	return s.MaxIndex - s.MinIndex + 1
}

// MaxTolerance returns the largest tolerance the other fields allow.
func (s Settings) MaxTolerance() int {
	return floorDiv(s.MaxIndex-s.MinIndex-s.Amount+1, 2)
}

// Validate checks every field in declaration order and returns the first
// violation as a *ConfigError.
func (s Settings) Validate() error {
	checks := []struct {
		field string
		bound Bound
		value int
		limit int
		ok    bool
	}{
		{"maxIndex", BoundMin, s.MaxIndex, s.MinIndex, s.MaxIndex >= s.MinIndex},
		{"startIndex", BoundMin, s.StartIndex, s.MinIndex, s.StartIndex >= s.MinIndex},
		{"startIndex", BoundMax, s.StartIndex, s.MaxIndex, s.StartIndex <= s.MaxIndex},
		{"itemHeight", BoundMin, s.ItemHeight, 1, s.ItemHeight > 0},
		{"amount", BoundMin, s.Amount, 1, s.Amount >= 1},
		{"amount", BoundMax, s.Amount, s.Count(), s.Amount <= s.Count()},
		{"tolerance", BoundMin, s.Tolerance, 0, s.Tolerance >= 0},
		{"tolerance", BoundMax, s.Tolerance, s.MaxTolerance(), s.Tolerance <= s.MaxTolerance()},
	}
	for _, c := range checks {
		if !c.ok {
			return &ConfigError{Field: c.field, Bound: c.bound, Value: c.value, Limit: c.limit}
		}
	}
	return nil
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
