// Command pathgrid runs the path-network puzzle.
//
// Subcommands:
//  1. "serve" – runs the HTTP server exposing REST API, WebSocket, metrics and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "validate", "solve", "eval" – offline checks against config files or raw layouts
//
// Environment variables may be supplied through a .env file. Logging goes to
// stderr so stdio MCP traffic on stdout stays clean.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/plan-systems/klog"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/pathgrid/api"
	"github.com/wricardo/mcp-training/pathgrid/game/config"
	"github.com/wricardo/mcp-training/pathgrid/game/engine"
	"github.com/wricardo/mcp-training/pathgrid/game/service"
	"github.com/wricardo/mcp-training/pathgrid/game/session"
	"github.com/wricardo/mcp-training/pathgrid/transport/mcp"
	"github.com/wricardo/mcp-training/pathgrid/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Pathgrid Puzzle Server"
)

const (
	defaultPort     = 8080
	sessionMaxAge   = 24 * time.Hour
	cleanupInterval = time.Hour
	defaultAPIURL   = "http://localhost:8080"
)

var errInvalidConfigs = errors.New("some configurations have errors")

func main() {
	// Load .env file if it exists (ignore error if not found)
	envErr := godotenv.Load()

	cmd := newApp()
	err := cmd.Run(context.Background(), os.Args)

	if envErr != nil && !os.IsNotExist(envErr) {
		klog.Warningf("Error loading .env file: %v", envErr)
	}
	if err != nil {
		klog.Errorf("%v", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

// newApp builds the command tree. It is separate from main so tests can run
// subcommands in-process.
func newApp() *cli.Command {
	configDirFlag := &cli.StringFlag{
		Name:    "config-dir",
		Value:   "configs",
		Usage:   "Directory containing puzzle configurations",
		Sources: cli.EnvVars("CONFIG_DIR"),
	}

	return &cli.Command{
		Name:    "pathgrid",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "verbosity",
				Value: 0,
				Usage: "klog verbosity level",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			initLogging(cmd.Int("verbosity"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"server", "http"},
				Usage:   "Run HTTP server with API, WebSocket, metrics and MCP endpoint",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "port", Value: defaultPort, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
					&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host"},
					configDirFlag,
					&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
					&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
					&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
				},
				Action: runServe,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server, starting an internal HTTP API if none is reachable",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "api-url", Value: defaultAPIURL, Usage: "REST API to proxy to", Sources: cli.EnvVars("PATHGRID_API_URL")},
					configDirFlag,
				},
				Action: runStdioMCP,
			},
			{
				Name:      "validate",
				Usage:     "Validate every configuration file",
				ArgsUsage: "[dir]",
				Flags:     []cli.Flag{configDirFlag},
				Action:    runValidate,
			},
			{
				Name:      "solve",
				Usage:     "List rotation-only solutions of a configuration",
				ArgsUsage: "<config>",
				Flags: []cli.Flag{
					configDirFlag,
					&cli.IntFlag{Name: "limit", Value: 5, Usage: "Maximum solutions to print (0 for all)"},
				},
				Action: runSolve,
			},
			{
				Name:      "eval",
				Usage:     "Evaluate a layout given as three rows",
				ArgsUsage: "<row> <row> <row>",
				Action:    runEval,
			},
		},
	}
}

// initLogging routes klog to stderr with the given verbosity.
func initLogging(verbosity int) {
	fset := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", fmt.Sprint(verbosity))
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
}

// initializeServices wires session/config managers and the game service.
// It also starts a background cleanup routine to prune stale sessions.
func initializeServices(ctx context.Context, configDir string) (service.GameService, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	klog.Infof("Loaded %d configurations from %s", configManager.Count(), configDir)

	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager, configManager)

	go sessionCleanupRoutine(ctx, sessionManager, cleanupInterval, sessionMaxAge)

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the provided retention window.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				klog.Infof("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// newRouter mounts the REST API and an /mcp JSON-RPC endpoint that proxies
// back to the API at baseURL.
func newRouter(apiServer http.Handler, baseURL string) http.Handler {
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
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
	})
	return mainRouter
}

// runServe starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled it also provisions a public tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gameService, err := initializeServices(ctx, cmd.String("config-dir"))
	if err != nil {
		return err
	}

	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Close()

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	handler := newRouter(api.NewServer(gameService, hub), "http://"+addr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		klog.Infof("%s v%s listening on %s", AppName, Version, addr)
		klog.Infof("REST API: http://%s/api", addr)
		klog.Infof("WebSocket: ws://%s/ws?session=<session_id>", addr)
		klog.Infof("MCP endpoint: http://%s/mcp", addr)
		klog.Infof("Metrics: http://%s/metrics", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), handler)
		}()
	}

	var runErr error
	select {
	case sig := <-stop:
		klog.Infof("Received signal: %v. Shutting down...", sig)
	case runErr = <-serveErr:
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		klog.Errorf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	klog.Infof("Server stopped")
	return runErr
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is done.
func runNgrokTunnel(ctx context.Context, authToken, domain string, handler http.Handler) {
	if authToken == "" {
		klog.Warningf("Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	klog.Infof("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		klog.Infof("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		klog.Errorf("Failed to start ngrok tunnel: %v", err)
		return
	}
	go func() {
		<-ctx.Done()
		tun.Close()
	}()

	ngrokURL := tun.URL()
	klog.Infof("Ngrok tunnel established: %s", ngrokURL)
	klog.Infof("  REST API (ngrok): %s/api", ngrokURL)
	klog.Infof("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		klog.Errorf("Ngrok server error: %v", err)
	}
	klog.Infof("Ngrok tunnel closed")
}

// apiReachable reports whether a REST API answers health checks at baseURL.
func apiReachable(baseURL string) bool {
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(strings.TrimRight(baseURL, "/") + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// startInternalAPI serves the REST API on a random loopback port and returns
// its base URL.
func startInternalAPI(gameService service.GameService) (string, *http.Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to get available port: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
	go func() {
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			klog.Errorf("Internal HTTP server error: %v", err)
		}
	}()

	return "http://" + listener.Addr().String(), httpServer, nil
}

// runStdioMCP runs an MCP stdio server. It reuses the API at --api-url when
// one answers; otherwise it starts a minimal internal HTTP API bound to a
// random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	baseURL := cmd.String("api-url")
	klog.Infof("Checking for external API server at %s...", baseURL)

	if apiReachable(baseURL) {
		klog.Infof("External API server found at %s, using it for MCP", baseURL)
	} else {
		klog.Infof("No external API server found, starting internal HTTP server")

		gameService, err := initializeServices(ctx, cmd.String("config-dir"))
		if err != nil {
			return err
		}

		var httpServer *http.Server
		baseURL, httpServer, err = startInternalAPI(gameService)
		if err != nil {
			return err
		}
		defer httpServer.Close()
		klog.Infof("Internal HTTP server on %s for MCP stdio", baseURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	klog.Infof("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// runValidate checks every config file in a directory and fails if any is invalid.
func runValidate(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("config-dir")
	if cmd.Args().Present() {
		dir = cmd.Args().First()
	}

	reports, err := config.ValidateDir(dir)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	allValid := true
	for _, report := range reports {
		fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), report.File)

		if report.Valid {
			fmt.Fprintln(out, "✅ VALID")
			for _, note := range report.Notes {
				fmt.Fprintln(out, "  "+note)
			}
			continue
		}

		allValid = false
		fmt.Fprintln(out, "❌ INVALID")
		for _, problem := range report.Errors {
			fmt.Fprintln(out, "  ❌ "+problem)
		}
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		fmt.Fprintln(out, "❌ Some configurations have errors")
		return errInvalidConfigs
	}
	fmt.Fprintf(out, "✅ All %d configurations are valid!\n", len(reports))
	return nil
}

// runSolve prints the rotation-only solutions of a named configuration.
func runSolve(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("solve takes exactly one config name, got %d arguments", cmd.NArg())
	}

	configManager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}
	puzzle, err := configManager.LoadConfig(cmd.Args().First())
	if err != nil {
		return err
	}

	grid, err := engine.ParseLayout(puzzle.Layout)
	if err != nil {
		return err
	}
	solutions, err := engine.Solve(grid, engine.LockedSet(puzzle.LockedSlots), cmd.Int("limit"))
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	fmt.Fprintf(out, "%s: %s\n", puzzle.Name, puzzle.Description)
	printLayout(out, "", puzzle.Layout)
	if len(solutions) == 0 {
		fmt.Fprintln(out, "No rotation-only solution.")
		return nil
	}

	for i, solution := range solutions {
		fmt.Fprintf(out, "\nSolution %d (%d quarter turns):\n", i+1, solution.Steps)
		printLayout(out, "  ", solution.Layout)
		for _, move := range solution.Moves {
			fmt.Fprintf(out, "  - %s\n", move)
		}
	}
	return nil
}

// runEval reports the network and violations of a layout without a session.
func runEval(ctx context.Context, cmd *cli.Command) error {
	rows := cmd.Args().Slice()
	if len(rows) != engine.GridSide {
		return fmt.Errorf("eval takes %d rows, got %d", engine.GridSide, len(rows))
	}

	grid, err := engine.ParseLayout(rows)
	if err != nil {
		return err
	}
	network, err := engine.CalculatePathNetwork(grid)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	printLayout(out, "", engine.FormatLayout(grid))

	for _, group := range network.ConnectedEntities() {
		names := make([]string, len(group))
		for i, e := range group {
			names[i] = fmt.Sprintf("E%d", e)
		}
		fmt.Fprintf(out, "connects %s\n", strings.Join(names, " "))
	}

	violations := engine.Validate(network)
	if len(violations) == 0 {
		fmt.Fprintln(out, "VALID")
		return nil
	}

	fmt.Fprintf(out, "INVALID (%d violations)\n", len(violations))
	for _, v := range violations {
		fmt.Fprintf(out, "  point %d: %s (degree %d)\n", v.Point, v.Reason, v.Degree)
	}
	return nil
}

func printLayout(out io.Writer, indent string, rows []string) {
	for _, row := range rows {
		fmt.Fprintf(out, "%s  %s\n", indent, row)
	}
}
