package engine

import "fmt"

// SimConfig describes one simulation setup loaded from JSON.
type SimConfig struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BoardWidth  float64 `json:"board_width"`
	BoardHeight float64 `json:"board_height"`
	Welcome     string  `json:"welcome,omitempty"`
}

// DefaultSimConfig returns the built-in 5x5 setup used when no config
// directory provides one.
func DefaultSimConfig() *SimConfig {
	return &SimConfig{
		Name:        "default",
		Description: "Default 5x5 simulation board",
		BoardWidth:  DefaultBoardWidth,
		BoardHeight: DefaultBoardHeight,
		Welcome:     "Starting Rover Simulator.",
	}
}

// ValidateSimConfig checks that a configuration can host a simulation.
func ValidateSimConfig(cfg *SimConfig) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if cfg.Name == "" {
		return fmt.Errorf("config name is required")
	}
	if cfg.BoardWidth < 0 || cfg.BoardHeight < 0 {
		return fmt.Errorf("board dimensions must be non-negative, got %gx%g", cfg.BoardWidth, cfg.BoardHeight)
	}
	return nil
}

// BoardFromConfig builds the board described by the configuration.
func BoardFromConfig(cfg *SimConfig) *Board {
	if cfg == nil {
		return NewBoard(DefaultBoardWidth, DefaultBoardHeight)
	}
	return NewBoard(cfg.BoardWidth, cfg.BoardHeight)
}
