// Package service provides the orchestration layer for the rover
// simulator.
//
// The service package sits between the transport layer (HTTP, WebSocket,
// MCP) and the simulation engine, providing session isolation and
// configuration management. Each session owns one engine.Controller, and
// therefore at most one rover; hosting several rovers means hosting
// several sessions.
//
// Core Interfaces:
//
// SimService is the main service interface exposing session lifecycle and
// command execution. SessionManager handles session storage and
// retrieval. ConfigManager loads board configurations.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	simService := service.NewSimService(sessionMgr, configMgr)
//
//	info, _ := simService.CreateSession(ctx, "")
//	result, _ := simService.Exec(ctx, info.ID, "PLACE 1,1,NORTH")
package service
