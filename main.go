// Command rover-sim runs the rover grid simulator.
//
// It supports four modes:
//  1. "repl" (default) – interactive console session on stdin/stdout
//  2. "exec" – run a command file and exit
//  3. "serve" – HTTP server exposing REST API, WebSocket, and an /mcp endpoint
//  4. "mcp" – MCP stdio server, spinning up an internal HTTP API if none is available
//
// Flags control host/port, the config and sessions directories, and debug
// logging. A .env file in the working directory is honored.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/rover-sim/api"
	"github.com/wricardo/rover-sim/game/config"
	"github.com/wricardo/rover-sim/game/engine"
	"github.com/wricardo/rover-sim/game/service"
	"github.com/wricardo/rover-sim/game/session"
	"github.com/wricardo/rover-sim/transport/mcp"
	"github.com/wricardo/rover-sim/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Rover Grid Simulator"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	cmd := &cli.Command{
		Name:    "rover-sim",
		Usage:   "drive a rover around a closed rectangular board",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing board configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Value:   "sessions",
				Usage:   "directory for persisted sessions",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			replCommand(),
			execCommand(),
			serveCommand(),
			mcpCommand(),
			validateConfigsCommand(),
		},
		DefaultCommand: "repl",
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// boardFlags are shared by repl and exec, overriding the configured board.
func boardFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "name of the board config to use",
		},
		&cli.FloatFlag{
			Name:  "board-width",
			Value: engine.DefaultBoardWidth,
			Usage: "board width (upper X bound, inclusive)",
		},
		&cli.FloatFlag{
			Name:  "board-height",
			Value: engine.DefaultBoardHeight,
			Usage: "board height (upper Y bound, inclusive)",
		},
	}
}

// resolveConfig picks the simulation config from the --config flag, falling
// back to the config directory default, and applies board size overrides.
func resolveConfig(cmd *cli.Command) (*engine.SimConfig, error) {
	manager := newConfigManager(cmd.String("config-dir"))

	cfg := manager.GetDefault()
	if name := cmd.String("config"); name != "" {
		loaded, err := manager.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("load config %q: %w", name, err)
		}
		cfg = loaded
	}

	// Explicit size flags win over the config file.
	override := *cfg
	if cmd.IsSet("board-width") {
		override.BoardWidth = cmd.Float("board-width")
	}
	if cmd.IsSet("board-height") {
		override.BoardHeight = cmd.Float("board-height")
	}
	return &override, nil
}

// newConfigManager builds a config manager for the directory, falling back
// to built-in defaults when the directory does not exist.
func newConfigManager(dir string) *config.Manager {
	manager, err := config.NewManager(dir)
	if err != nil {
		return config.NewManagerWithDefaults()
	}
	return manager
}

// repl runs an interactive console simulation on stdin/stdout.
func replCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "interactive simulation on the console (default)",
		Flags: boardFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			out := os.Stdout
			controller := engine.NewController(engine.BoardFromConfig(cfg), out)

			if cfg.Welcome != "" {
				fmt.Fprintln(out, cfg.Welcome)
			}

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Fprint(out, "Enter Command > ")
				if !scanner.Scan() {
					break
				}
				if controller.ExecLine(scanner.Text()) == engine.Stop {
					break
				}
			}
			return scanner.Err()
		},
	}
}

// exec runs a command file through a fresh simulation and exits.
func execCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "run a command file and exit",
		ArgsUsage: "<file>",
		Flags:     boardFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("exec requires a command file argument")
			}

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open command file: %w", err)
			}
			defer f.Close()

			controller := engine.NewController(engine.BoardFromConfig(cfg), os.Stdout)
			return controller.Run(f)
		},
	}
}

// serve runs the HTTP server with REST API, WebSocket hub, and /mcp endpoint.
func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server with REST API, WebSocket, and MCP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			simService, err := initializeServices(cmd)
			if err != nil {
				return err
			}

			addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
			return runHTTPServer(simService, addr)
		},
	}
}

// mcp runs an MCP stdio server backed by the REST API.
func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "run an MCP stdio server (starts an internal HTTP API if needed)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-url",
				Value: "http://localhost:8080",
				Usage: "external REST API to reuse if reachable",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			simService, err := initializeServices(cmd)
			if err != nil {
				return err
			}
			return runStdioMCP(simService, cmd.String("api-url"))
		},
	}
}

// validate-configs lints every config file in the config directory.
func validateConfigsCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate-configs",
		Usage: "validate all board configuration files",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("config-dir")
			files, err := filepath.Glob(filepath.Join(dir, "*.json"))
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no config files found in %s", dir)
			}

			invalid := 0
			for _, file := range files {
				if err := validateConfigFile(file); err != nil {
					fmt.Printf("❌ %s: %v\n", filepath.Base(file), err)
					invalid++
					continue
				}
				fmt.Printf("✅ %s\n", filepath.Base(file))
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d config files are invalid", invalid, len(files))
			}
			fmt.Printf("All %d config files are valid.\n", len(files))
			return nil
		},
	}
}

func validateConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var cfg engine.SimConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return engine.ValidateSimConfig(&cfg)
}

// initializeServices wires the config manager, session persistence, and the
// simulation service.
func initializeServices(cmd *cli.Command) (service.SimService, error) {
	configManager := newConfigManager(cmd.String("config-dir"))

	persistence, err := session.NewFilePersistence(cmd.String("sessions-dir"), configManager)
	if err != nil {
		return nil, fmt.Errorf("create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)
	if err := sessionManager.LoadAll(); err != nil {
		log.Printf("Warning: Failed to load persisted sessions: %v", err)
	}

	return service.NewSimService(sessionManager, configManager), nil
}

// runHTTPServer starts the HTTP server and blocks until a shutdown signal.
func runHTTPServer(simService service.SimService, addr string) error {
	hub := websocket.NewHub()
	go hub.Run()

	apiServer := api.NewServer(simService, hub)

	// MCP endpoint proxies through the REST API so both surfaces agree.
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return nil
}

// mcpHandler serves MCP-over-HTTP requests through the given client.
func mcpHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// runStdioMCP runs an MCP stdio server. It reuses an already-running REST
// API when one answers at apiURL; otherwise it starts a minimal internal
// HTTP API on a random loopback port and targets that.
func runStdioMCP(simService service.SimService, apiURL string) error {
	baseURL := apiURL

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(apiURL + "/api/configs")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", apiURL)
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("get available port: %w", err)
		}

		internalAddr := fmt.Sprintf("127.0.0.1:%d", listener.Addr().(*net.TCPAddr).Port)
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		httpServer := &http.Server{Handler: api.NewServer(simService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Give the server a moment to come up.
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	log.Println("MCP stdio server ready")
	if err := mcpserver.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server: %w", err)
	}
	return nil
}
