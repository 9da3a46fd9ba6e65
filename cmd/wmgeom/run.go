package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/1broseidon/wmgeom/internal/config"
	"github.com/1broseidon/wmgeom/internal/daemon"
	"github.com/1broseidon/wmgeom/internal/ipc"
	"github.com/1broseidon/wmgeom/internal/runtimepath"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

// snapCycler steps the tile preview through the snap modes at the pointer.
type snapCycler struct {
	d   *display
	mu  sync.Mutex
	cfg *config.Config
	pos int
}

func (s *snapCycler) next() {
	s.mu.Lock()
	mode := tiling.SnapModes[s.pos%len(tiling.SnapModes)]
	s.pos++
	delay := s.cfg.ShowDelay()
	s.mu.Unlock()

	p, err := s.d.conn.Pointer()
	if err != nil {
		s.d.logger.Warn("snap preview: pointer unavailable", "error", err)
		return
	}
	_, target, err := s.d.screen.SnapPreview(p, mode, delay)
	if err != nil {
		s.d.logger.Warn("snap preview failed", "mode", mode, "error", err)
		return
	}
	s.d.logger.Debug("snap preview", "mode", mode, "target", target)
}

func (s *snapCycler) hide() {
	s.mu.Lock()
	s.pos = 0
	s.mu.Unlock()
	if err := s.d.screen.TilePreviewHide(); err != nil {
		s.d.logger.Warn("hide preview failed", "error", err)
	}
}

func (s *snapCycler) setConfig(cfg *config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
	snapKey := fs.String("snap-key", "Mod4-s", "Key that previews the next snap mode at the pointer")
	hideKey := fs.String("hide-key", "Mod4-Escape", "Key that hides the tile preview")
	interval := fs.Duration("reconcile-interval", 10*time.Second, "How often to re-check the monitor layout")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wmgeom run [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Track monitors and hot corners and drive the tile preview from key bindings.")
		fmt.Fprintln(os.Stderr, "SIGHUP reloads the config and re-reads the monitor layout.")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := res.Config
	logger := newLogger(cfg)

	d, err := openDisplay(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	logger.Info("wmgeom started",
		"screen", d.screen.Number(),
		"monitors", d.screen.Monitors().Len(),
		"corners", cfg.HotCorners.Enabled,
	)

	cycler := &snapCycler{d: d, cfg: cfg}
	if err := d.conn.BindKey(*snapKey, cycler.next); err != nil {
		log.Fatalf("Failed to register snap key: %v", err)
	}
	if *hideKey != "" {
		if err := d.conn.BindKey(*hideKey, cycler.hide); err != nil {
			logger.Warn("failed to register hide key", "key", *hideKey, "error", err)
		}
	}

	reload := func() error {
		next, err := loadConfig(*path)
		if err != nil {
			return err
		}
		newCfg := next.Config
		cycler.setConfig(newCfg)
		d.screen.SetWorkspaceOptions(workspaceOptions(newCfg))
		d.applyCorners(newCfg)
		if err := d.screen.ThemeChanged(newCfg.Theme()); err != nil {
			logger.Warn("theme update failed", "error", err)
		}
		if err := d.refreshMonitors(); err != nil {
			logger.Warn("monitor refresh failed", "error", err)
		}
		return nil
	}

	socketPath, err := runtimepath.SocketPath(cfg.Display)
	if err != nil {
		log.Fatalf("Failed to resolve IPC socket path: %v", err)
	}
	ipcServer, err := ipc.NewServer(d.screen, ipc.ServerOptions{
		SocketPath: socketPath,
		Reload:     reload,
		Pointer:    d.conn.Pointer,
		ShowDelay: func() time.Duration {
			cycler.mu.Lock()
			defer cycler.mu.Unlock()
			return cycler.cfg.ShowDelay()
		},
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}

	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: *interval,
		Logger:   logger,
	}, d.screen, d.conn.GetMonitors)
	reconcilerCtx, reconcilerCancel := context.WithCancel(context.Background())
	defer reconcilerCancel()
	go reconciler.Run(reconcilerCtx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				logger.Info("received SIGHUP, reloading config")
				if err := reload(); err != nil {
					logger.Error("config reload failed", "error", err)
					continue
				}
				logger.Info("config reloaded")

			case os.Interrupt, syscall.SIGTERM:
				logger.Info("shutting down")
				reconcilerCancel()
				ipcServer.Stop()
				d.Close()
				os.Exit(0)
			}
		}
	}()

	logger.Debug("entering event loop")
	d.conn.EventLoop()
	return 0
}
