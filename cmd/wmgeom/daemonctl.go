package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/1broseidon/wmgeom/internal/ipc"
)

// daemonClient returns a client for the daemon serving the configured
// display.
func daemonClient(path string) (*ipc.Client, error) {
	res, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	return ipc.NewClient(res.Config.Display), nil
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wmgeom status")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	client, err := daemonClient(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("screen:   %d (%dx%d)\n", status.Screen, status.Bounds.Width, status.Bounds.Height)
	fmt.Printf("monitors: %d\n", status.MonitorCount)
	preview := "hidden"
	if status.PreviewVisible {
		preview = "visible"
	}
	if status.PreviewAlpha {
		preview += " (alpha)"
	} else {
		preview += " (outline)"
	}
	fmt.Printf("preview:  %s\n", preview)
	fmt.Printf("uptime:   %s\n", time.Duration(status.UptimeSeconds)*time.Second)

	corners, err := client.GetCorners()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("corners:  actions %t\n", corners.ActionsEnabled)
	for _, c := range corners.Corners {
		if !c.Enabled {
			continue
		}
		r := c.TriggerRect
		fmt.Printf("  %-13s %dx%d+%d+%d armed=%t inside=%t\n", c.Corner, r.Width, r.Height, r.X, r.Y, c.ActionEnabled, c.Inside)
	}
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	client, err := daemonClient(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("reloaded")
	return 0
}

func runHide(args []string) int {
	fs := flag.NewFlagSet("hide", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	client, err := daemonClient(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := client.HidePreview(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// previewViaDaemon asks a running daemon to show the preview. It reports
// false when no daemon answers so the caller can fall back to a direct
// connection.
func previewViaDaemon(path string, payload ipc.PreviewSnapPayload) (*ipc.PreviewData, bool, error) {
	client, err := daemonClient(path)
	if err != nil {
		return nil, false, err
	}
	if client.Ping() != nil {
		return nil, false, nil
	}
	data, err := client.PreviewSnap(payload)
	return data, true, err
}
