// Package api provides the REST surface of the rover simulator.
//
// The server exposes session management, command execution and report
// endpoints over JSON, plus a websocket upgrade endpoint for live state
// updates. It delegates all simulation work to the service layer and
// broadcasts a rover snapshot to the websocket hub after every executed
// command.
package api
