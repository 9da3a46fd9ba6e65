// Package tui is an interactive explorer for the geometry core: it walks the
// workspace grid, inspects monitor neighbors and snap targets, and edits the
// configuration.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/wmgeom/internal/config"
	"github.com/1broseidon/wmgeom/internal/monitor"
)

// Run starts the explorer. monitors may be nil when no display is available.
func Run(configPath string, monitors *monitor.Set) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	if configPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		configPath = path
	}

	// A broken config is shown in the status bar so it can be fixed from
	// the settings tab.
	var cfg *config.Config
	res, err := config.LoadFromPath(configPath)
	if err == nil {
		cfg = res.Config
	}

	_, err = tea.NewProgram(newModel(configPath, cfg, err, monitors), tea.WithAltScreen()).Run()
	return err
}
