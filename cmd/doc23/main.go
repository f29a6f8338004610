package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/alexvargashn/doc23/internal/api"
	"github.com/alexvargashn/doc23/internal/config"
	"github.com/alexvargashn/doc23/internal/doc"
	"github.com/alexvargashn/doc23/internal/extract"
	"github.com/alexvargashn/doc23/internal/mcp"
	"github.com/alexvargashn/doc23/internal/schema"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the server mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, redirect log output to stderr to avoid interfering with MCP protocol
		log.SetOutput(os.Stderr)
		// Reduce log verbosity in stdio mode unless debug is enabled
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		// In server mode, use normal stdout logging with more detail
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// newDocService builds the document service from the configuration.
func newDocService(cfg *config.Config) (*doc.Service, error) {
	mode, err := extract.ParseScanMode(cfg.ScanMode)
	if err != nil {
		return nil, err
	}
	opts := extract.Options{
		Mode:        mode,
		OCRLanguage: cfg.OCRLanguage,
	}
	var logger *log.Logger
	if cfg.IsDebug() {
		logger = log.Default()
	}
	return doc.NewService(opts, logger), nil
}

// runServerMode handles HTTP server mode execution with signal handling
func runServerMode(ctx context.Context, cancel context.CancelFunc, server *api.Server, cfg *config.Config) {
	// Set up signal handling for graceful shutdown
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Start server in a goroutine
	serverErrCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", cfg.Address())
		serverErrCh <- server.Run(ctx)
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Initiating graceful shutdown...")
		cancel()

		// Wait for server to shutdown
		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Server stopped successfully")
}

// runStdioMode handles stdio mode execution
func runStdioMode(ctx context.Context, server *mcp.Server) {
	// In stdio mode, the parent process controls our lifecycle
	// We should exit cleanly when stdin is closed or we get an error
	if err := server.Run(ctx); err != nil {
		// Only log to stderr in debug mode to avoid protocol interference
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

// runOnce structures a single document and prints the result as JSON
func runOnce(cfg *config.Config, docService *doc.Service) error {
	sch, err := schema.LoadFile(cfg.SchemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	result, err := docService.StructureFile(cfg.InputPath, sch)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging based on mode
	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsServerMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	// Create document service
	docService, err := newDocService(cfg)
	if err != nil {
		log.Fatalf("Failed to create document service: %v", err)
	}

	if cfg.IsOnceMode() {
		if err := runOnce(cfg, docService); err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("Failed to structure document: %v", err)
		}
		return
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsServerMode() {
		server := api.NewServer(docService, log.Default(), cfg)
		runServerMode(ctx, cancel, server, cfg)
	} else {
		server, err := mcp.NewServer(cfg, docService)
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}
		runStdioMode(ctx, server)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("doc23 document structuring server\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
