package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/wmgeom/internal/config"
	"github.com/1broseidon/wmgeom/internal/monitor"
	"github.com/1broseidon/wmgeom/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "hide":
		os.Exit(runHide(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "snap":
		os.Exit(runSnap(os.Args[2:]))
	case "preview":
		os.Exit(runPreview(os.Args[2:]))
	case "corners":
		os.Exit(runCorners(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wmgeom <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Track monitors, hot corners and snap previews (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Make the daemon reload its config")
	fmt.Fprintln(w, "  hide                Hide the daemon's tile preview")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  monitors            List monitors and their neighbors")
	fmt.Fprintln(w, "  layout              Print the workspace grid")
	fmt.Fprintln(w, "  snap                Print the snap target under the pointer")
	fmt.Fprintln(w, "  preview             Show the tile preview for a snap mode")
	fmt.Fprintln(w, "  corners             Print hot corner trigger zones")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate config")
	fmt.Fprintln(w, "  config print        Print effective config")
	fmt.Fprintln(w, "  config explain      Show where a config value comes from")
	fmt.Fprintln(w, "  config init         Write the default config file")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Interactive workspace and monitor browser")
	fmt.Fprintln(w, "  mcp serve           Start the MCP server (stdio)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wmgeom <command> --help' for command-specific options.")
}

func isHelpArg(args []string) bool {
	return len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help")
}

func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func runConfig(args []string) int {
	if len(args) == 0 || isHelpArg(args) {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  wmgeom config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  wmgeom config print [--path PATH] [--effective|--defaults]")
		fmt.Fprintln(os.Stderr, "  wmgeom config explain [--path PATH] <yaml.path>")
		fmt.Fprintln(os.Stderr, "  wmgeom config init [--path PATH] [--force]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("config: ok (%d file(s))\n", len(res.Files))
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		_ = fs.Bool("effective", false, "Print effective config (default)")
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Known paths:")
			for _, p := range config.Paths() {
				fmt.Fprintf(os.Stderr, "  %s\n", p)
			}
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", formatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return 0

	case "init":
		fs := flag.NewFlagSet("init", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
		force := fs.Bool("force", false, "Overwrite an existing file")
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}

		target := *path
		if target == "" {
			p, err := config.DefaultConfigPath()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			target = p
		}
		if _, err := os.Stat(target); err == nil && !*force {
			fmt.Fprintf(os.Stderr, "%s already exists (use --force to overwrite)\n", target)
			return 1
		}
		if err := config.DefaultConfig().SaveTo(target); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("wrote %s\n", target)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")

	if isHelpArg(args) {
		fmt.Fprintln(os.Stderr, "Usage: wmgeom tui [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Browse the workspace grid and monitor layout, and edit settings.")
		fmt.Fprintln(os.Stderr, "Works without a display; the monitors tab is then empty.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  1/2/3, Tab  Switch tabs")
		fmt.Fprintln(os.Stderr, "  h/j/k/l     Move between workspaces")
		fmt.Fprintln(os.Stderr, "  H/J/K/L     Jump to the neighboring monitor")
		fmt.Fprintln(os.Stderr, "  c/v/w       Cycle starting corner, toggle vertical fill, toggle wrap")
		fmt.Fprintln(os.Stderr, "  +/-         Change workspace count")
		fmt.Fprintln(os.Stderr, "  Ctrl+S      Review and save config changes")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C   Quit")
		return 0
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	// Monitors are optional: the grid views work offline.
	var monitors *monitor.Set
	cfg := config.DefaultConfig()
	if res, err := loadConfig(*path); err == nil {
		cfg = res.Config
	}
	if d, err := openDisplay(cfg, newLogger(&config.Config{LogLevel: "error"})); err == nil {
		monitors = d.screen.Monitors()
		d.Close()
	}

	if err := tui.Run(*path, monitors); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	default:
		return string(src.Kind)
	}
}
