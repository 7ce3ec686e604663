// Package config provides configuration management for the rover
// simulator.
//
// Simulation configurations are stored as JSON files in a config
// directory. Each configuration defines a board (width and height of the
// valid region) plus display metadata:
//
//	{
//	  "name": "wide",
//	  "description": "A wide 10x3 board",
//	  "board_width": 10,
//	  "board_height": 3,
//	  "welcome": "Starting Rover Simulator on the wide board."
//	}
//
// The manager caches loaded configurations and falls back to a built-in
// 5x5 default when the directory provides no "default" config.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	cfg, err := manager.LoadConfig("wide")
package config
