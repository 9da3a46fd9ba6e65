package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/wmgeom/internal/mcp"
	"github.com/1broseidon/wmgeom/internal/screen"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wmgeom mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wmgeom mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	if isHelpArg(args) {
		fmt.Fprintln(os.Stdout, "Usage: wmgeom mcp serve")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Start the MCP server on stdio. Designed to be invoked by MCP clients.")
		fmt.Fprintln(os.Stdout, "Without a display the geometry tools still answer for an empty")
		fmt.Fprintln(os.Stdout, "screen and preview tools fail.")
		return 0
	}

	res, err := loadConfig("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := res.Config
	logger := newLogger(cfg)

	var scr *screen.Context
	if d, err := openDisplay(cfg, logger); err != nil {
		logger.Warn("no display, serving geometry only", "error", err)
		scr = screen.New(screen.Options{
			Workspaces: workspaceOptions(cfg),
			CornerSize: cfg.HotCorners.Size,
			Logger:     logger,
		})
	} else {
		defer d.Close()
		scr = d.screen
		// Expose and crossing events for the preview and corner windows.
		go d.conn.EventLoop()
	}

	server := mcp.NewServer(scr, cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
	return 0
}
