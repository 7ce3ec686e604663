package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/rover-sim/game/command"
	"github.com/wricardo/rover-sim/game/engine"
	"github.com/wricardo/rover-sim/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Rover Grid Simulator",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Rover Grid Simulator - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A rover lives on a closed rectangular board. Place it with
PLACE x,y,direction, drive it with MOVE (one unit forward), turn it
with LEFT/RIGHT (90 degrees), and read its state with REPORT. Moves
that would leave the board are rejected whole, never clamped.

AVAILABLE TOOLS:
- create_session: Create a new simulation session
- get_session: Get session details
- list_sessions: List all hosted sessions
- rover_command: Execute one command line (PLACE, MOVE, LEFT, RIGHT, REPORT, ...)
- run_script: Execute a file of commands, one per line
- rover_report: Get the current rover position and heading
- list_configs: List available board configurations
- command_reference: Full description of the command language

Invalid input never fails a tool call: the simulator answers with a
diagnostic line instead, exactly as it would on a console.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new simulation session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the board config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all hosted simulation sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Simulation operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rover_command",
		Description: "Execute one command line against a session. Commands: PLACE x,y,direction | MOVE | LEFT | RIGHT | REPORT | FILE path | HELP | EXIT. Input is case-insensitive; malformed input returns a diagnostic, never an error.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"line": map[string]interface{}{
					"type":        "string",
					"description": "Command line to execute, e.g. 'PLACE 1,2,NORTH' or 'MOVE'",
				},
			},
			Required: []string{"session_id", "line"},
		},
	}, c.handleRoverCommand)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_script",
		Description: "Execute a file of commands, one per line, against a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the command file on the server",
				},
			},
			Required: []string{"session_id", "path"},
		},
	}, c.handleRunScript)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rover_report",
		Description: "Get the current rover position and heading for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRoverReport)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "command_reference",
		Description: "Get the full description of the simulator command language",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleCommandReference)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Hosted Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRoverCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	line, _ := args["line"].(string)

	body := map[string]string{"line": line}

	var result service.ExecResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/command", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatExecResult(line, &result)), nil
}

func (c *Client) handleRunScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	path, _ := args["path"].(string)

	body := map[string]string{"path": path}

	var result service.ExecResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/script", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatExecResult("FILE "+path, &result)), nil
}

func (c *Client) handleRoverReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Report string `json:"report"`
	}
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/report", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response.Report), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                  `json:"count"`
		Configs []service.ConfigInfo `json:"configs"`
	}
	err := c.apiCall("GET", "/api/configs", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range response.Configs {
		result += fmt.Sprintf("• %s\n  %s\n  Board: %.0fx%.0f\n\n",
			config.Name, config.Description, config.BoardWidth, config.BoardHeight)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCommandReference(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	b.WriteString("Rover Grid Simulator - Command Reference\n\n")
	b.WriteString("Commands are case-insensitive, one per line. A command and its\n")
	b.WriteString("argument are separated by a single space; PLACE arguments are\n")
	b.WriteString("separated by commas with no spaces.\n\n")
	for _, cmd := range command.All() {
		fmt.Fprintf(&b, "%s\n  %s\n\n", cmd, cmd.Description())
	}
	b.WriteString("Malformed input is answered with a diagnostic line and the\n")
	b.WriteString("simulation continues; nothing short of EXIT ends a session.\n")

	return mcp.NewToolResultText(b.String()), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", session.ID)
	fmt.Fprintf(&b, "Config: %s\n", session.ConfigName)
	fmt.Fprintf(&b, "Created: %s\n", session.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Last accessed: %s\n", session.LastAccessedAt.Format(time.RFC3339))
	b.WriteString("\n")
	b.WriteString(formatSnapshot(&session.State))
	return b.String()
}

func formatSnapshot(state *engine.Snapshot) string {
	if !state.Placed {
		return "No rover placed yet. Use rover_command with 'PLACE x,y,direction' to start.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", state.Report)
	fmt.Fprintf(&b, "Direction vector: %s\n", state.Direction)
	return b.String()
}

func formatExecResult(line string, result *service.ExecResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "> %s\n", line)
	for _, out := range result.Lines {
		b.WriteString(out)
		b.WriteString("\n")
	}
	if len(result.Lines) == 0 {
		b.WriteString("(ok)\n")
	}
	if result.Done {
		b.WriteString("\nSession finished (EXIT).\n")
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(formatSnapshot(&result.State))
	return b.String()
}
