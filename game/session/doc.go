// Package session provides session management for the rover simulator.
//
// A session hosts one engine.Controller, and therefore at most one rover.
// The manager stores sessions by case-insensitive ID, generates unique
// IDs, tracks last-access times and optionally snapshots sessions to
// disk through a SessionPersistence implementation so a hosted simulation
// survives a server restart.
package session
