// Package mcp provides the Model Context Protocol interface for the
// rover simulator.
//
// The package exposes a thin MCP client that proxies every tool call to
// the REST API, so the MCP surface and the HTTP surface always agree on
// behavior. Tools:
//   - create_session: create a new simulation session
//   - get_session: get details of one session
//   - list_sessions: list all hosted sessions
//   - rover_command: execute one command line against a session
//   - run_script: execute a command file against a session
//   - rover_report: get the current rover report
//   - list_configs: list available board configurations
//   - command_reference: describe the command language
//
// The underlying MCP server can be served over stdio or mounted as an
// HTTP endpoint; main.go wires both modes.
package mcp
