// Package engine provides the core simulation logic for the rover
// simulator.
//
// The engine package implements:
//   - Board: the immutable rectangular bounds of the simulation space
//   - Rover: the simulated agent, owning a position and a unit-length
//     heading, validated against the board on every mutation
//   - Controller: the dispatch state machine that applies parsed commands
//     to the rover, creates it lazily on the first valid PLACE, and
//     executes command files line by line
//
// Usage:
//
//	board := engine.NewBoard(5, 5)
//	ctrl := engine.NewController(board, os.Stdout)
//	ctrl.Run(os.Stdin)
//
// Simulation rules:
//
// The rover may never leave the board. A PLACE outside the bounds and a
// MOVE whose target lies outside the bounds are rejected whole (never
// clamped to the edge) with a diagnostic printed to the controller's
// output, and the simulation continues. Only the EXIT command or end of
// input terminates a session.
package engine
