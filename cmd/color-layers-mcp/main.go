package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/color-layers-mcp/internal/cfg"
	"github.com/ironsheep/color-layers-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("color-layers-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("color-layers-mcp - MCP server that splits images into printable color layers")
			fmt.Println()
			fmt.Println("Usage: color-layers-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  COLOR_LAYERS_LOG_LEVEL=debug      Enable debug logging")
			fmt.Println("  COLOR_LAYERS_WORKERS=<n>          Goroutines per image pass (default: CPU count)")
			fmt.Println("  COLOR_LAYERS_MAX_SIZE=<px>        Default cap on the longer image side")
			fmt.Println("  COLOR_LAYERS_ISLAND_SIZE=<px>     Default island smoothing threshold")
			fmt.Println("  COLOR_LAYERS_OUTPUT_DIR=<dir>     Default directory for STL files")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg.LoadEnv()
	if Version != "dev" {
		server.Version = Version
	}
	if cfg.Debug {
		log.Printf("Color Layers MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New()
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
