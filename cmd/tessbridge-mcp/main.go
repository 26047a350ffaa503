package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/tessbridge/internal/config"
	"github.com/ironsheep/tessbridge/internal/frame"
	"github.com/ironsheep/tessbridge/internal/ocr"
	"github.com/ironsheep/tessbridge/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	configPath := ""
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("tessbridge-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("tessbridge-mcp - MCP server for tesseract OCR")
			fmt.Println()
			fmt.Println("Usage: tessbridge-mcp [--config file.yaml]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --config FILE    Read settings from a YAML file")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Println("  TESSERACT_CMD          tesseract executable (default: tesseract)")
			fmt.Println("  TESSBRIDGE_LANG        default language, e.g. eng")
			fmt.Println("  TESSBRIDGE_CONFIG      default extra tesseract arguments")
			fmt.Println("  TESSBRIDGE_TIMEOUT     per-run timeout, e.g. 30s")
			fmt.Println("  TESSBRIDGE_NICE        nice level for tesseract")
			fmt.Println("  TESSBRIDGE_BACKGROUND  flatten colour for transparent images")
			fmt.Println("  TESSBRIDGE_TEMP_DIR    directory for temporary files")
			fmt.Println("  LOG_LEVEL=DEBUG        Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		case "--config":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "--config requires a file argument")
				os.Exit(2)
			}
			configPath = os.Args[2]
		}
	}

	cfg, err := config.Load(configPath, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Logging goes to stderr (stdout is for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)
	logger.Debug("starting", "server", server.ServerName, "version", Version, "built", BuildTime, "commit", GitCommit)

	cc, err := cfg.ClientConfig(logger)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	cc.Frames = &frame.Parser{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(ocr.NewClient(cc), cfg.Options(), logger)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		stop()
		os.Exit(1)
	}
}
