package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/1broseidon/wmgeom/internal/config"
	"github.com/1broseidon/wmgeom/internal/ipc"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

// withDisplay loads config, connects and runs fn against the live screen.
func withDisplay(path string, fn func(cfg *config.Config, d *display) int) int {
	res, err := loadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	d, err := openDisplay(res.Config, newLogger(res.Config))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to display: %v\n", err)
		return 1
	}
	defer d.Close()
	return fn(res.Config, d)
}

type rectJSON struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r rectJSON) String() string {
	return tiling.Rect(r).String()
}

type monitorJSON struct {
	Index     int            `json:"index"`
	Name      string         `json:"name,omitempty"`
	Rect      rectJSON       `json:"rect"`
	WorkArea  rectJSON       `json:"work_area"`
	Neighbors map[string]int `json:"neighbors,omitempty"`
}

var directions = []tiling.Direction{tiling.DirUp, tiling.DirDown, tiling.DirLeft, tiling.DirRight}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
	asJSON := fs.Bool("json", false, "Output JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wmgeom monitors [--json]")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	return withDisplay(*path, func(_ *config.Config, d *display) int {
		set := d.screen.Monitors()
		var out []monitorJSON
		for _, info := range set.All() {
			m := monitorJSON{
				Index:    info.Index,
				Name:     info.Name,
				Rect:     rectJSON(info.Rect),
				WorkArea: rectJSON(info.Rect),
			}
			if wa, err := d.conn.WorkArea(info.Rect); err == nil {
				m.WorkArea = rectJSON(wa)
			}
			for _, dir := range directions {
				if n, ok := set.Neighbor(info.Index, dir); ok {
					if m.Neighbors == nil {
						m.Neighbors = make(map[string]int)
					}
					m.Neighbors[dir.String()] = n.Index
				}
			}
			out = append(out, m)
		}

		if *asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			return 0
		}

		if len(out) == 0 {
			fmt.Println("no monitors")
			return 0
		}
		fmt.Printf("screen %d: %s\n", d.screen.Number(), d.screen.Bounds())
		for _, m := range out {
			var neighbors []string
			for _, dir := range directions {
				if n, ok := m.Neighbors[dir.String()]; ok {
					neighbors = append(neighbors, fmt.Sprintf("%s=%d", dir, n))
				}
			}
			fmt.Printf("  %d  %-10s %-22s work=%-22s %s\n", m.Index, m.Name, m.Rect, m.WorkArea, strings.Join(neighbors, " "))
		}
		return 0
	})
}

func runLayout(args []string) int {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
	count := fs.Int("count", 0, "Number of workspaces (default: workspaces.count)")
	current := fs.Int("current", 0, "Index of the current workspace")
	rows := fs.Int("rows", -1, "Grid rows, 0 derives from count (default: workspaces.rows)")
	cols := fs.Int("cols", -1, "Grid columns, 0 derives from count (default: workspaces.cols)")
	corner := fs.String("corner", "", "Starting corner (default: workspaces.starting_corner)")
	vertical := fs.Bool("vertical", false, "Fill columns first")
	fromDesktop := fs.Bool("from-desktop", false, "Read count, current and layout from the running window manager")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wmgeom layout [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the grid used for directional workspace switching.")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	n := cfg.Workspaces.Count
	cur := *current
	opts := workspaceOptions(cfg)
	opts.Vertical = opts.Vertical || *vertical

	if *fromDesktop {
		d, err := openDisplay(cfg, newLogger(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to display: %v\n", err)
			return 1
		}
		defer d.Close()
		if dl, err := d.conn.DesktopLayout(); err == nil {
			opts.Rows, opts.Cols = dl.Rows, dl.Cols
			opts.StartingCorner, opts.Vertical = dl.StartingCorner, dl.Vertical
		} else {
			d.logger.Debug("no desktop layout hint", "error", err)
		}
		if c, err := d.conn.GetDesktopCount(); err == nil {
			n = c
		}
		if c, err := d.conn.GetCurrentDesktop(); err == nil {
			cur = c
		}
	}

	if *count > 0 {
		n = *count
	}
	if *rows >= 0 {
		opts.Rows = *rows
	}
	if *cols >= 0 {
		opts.Cols = *cols
	}
	if *corner != "" {
		c, err := tiling.ParseCorner(*corner)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		opts.StartingCorner = c
	}

	layout, err := tiling.CalculateWorkspaceLayoutWithGrid(n, cur, opts.Rows, opts.Cols, opts.StartingCorner, opts.Vertical)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("%d workspaces, %dx%d grid, from %s\n", n, layout.Rows, layout.Cols, opts.StartingCorner)
	for r := 0; r < layout.Rows; r++ {
		var cells []string
		for c := 0; c < layout.Cols; c++ {
			idx := layout.Index(r, c)
			switch {
			case idx == tiling.NoWorkspace:
				cells = append(cells, "  . ")
			case r == layout.CurrentRow && c == layout.CurrentCol:
				cells = append(cells, fmt.Sprintf("[%2d]", idx+1))
			default:
				cells = append(cells, fmt.Sprintf(" %2d ", idx+1))
			}
		}
		fmt.Println(strings.Join(cells, " "))
	}
	return 0
}

// pointerOrFlag returns the point given by --x/--y, or the live pointer when
// either is negative.
func pointerOrFlag(d *display, x, y int) (tiling.Point, error) {
	if x >= 0 && y >= 0 {
		return tiling.Point{X: x, Y: y}, nil
	}
	return d.conn.Pointer()
}

func runSnap(args []string) int {
	fs := flag.NewFlagSet("snap", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
	x := fs.Int("x", -1, "Pointer X (default: current pointer)")
	y := fs.Int("y", -1, "Pointer Y (default: current pointer)")
	all := fs.Bool("all", false, "Print every snap mode")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wmgeom snap [--x X --y Y] [--all] [mode]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintf(os.Stderr, "Modes: %s\n", snapModeNames())
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	modes := tiling.SnapModes
	if !*all {
		name := string(tiling.SnapMaximize)
		if fs.NArg() > 0 {
			name = fs.Arg(0)
		}
		mode, err := tiling.ParseSnapMode(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		modes = []tiling.SnapMode{mode}
	}

	return withDisplay(*path, func(_ *config.Config, d *display) int {
		p, err := pointerOrFlag(d, *x, *y)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, mode := range modes {
			mon, target, err := d.screen.SnapTarget(p, mode)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			fmt.Printf("%-13s monitor %d  %s\n", mode, mon.Index, target)
		}
		return 0
	})
}

func runPreview(args []string) int {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
	x := fs.Int("x", -1, "Pointer X (default: current pointer)")
	y := fs.Int("y", -1, "Pointer Y (default: current pointer)")
	duration := fs.Duration("duration", 3*time.Second, "How long to keep the preview visible")
	delay := fs.Duration("delay", -1, "Show delay (default: tile_preview.show_delay_ms)")
	direct := fs.Bool("direct", false, "Draw the preview from this process even when the daemon runs")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wmgeom preview [--x X --y Y] [--duration D] [--delay D] [--direct] [mode]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "With 'wmgeom run' active the daemon shows the preview until 'wmgeom hide';")
		fmt.Fprintln(os.Stderr, "otherwise it is drawn here for --duration.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintf(os.Stderr, "Modes: %s\n", snapModeNames())
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	name := string(tiling.SnapMaximize)
	if fs.NArg() > 0 {
		name = fs.Arg(0)
	}
	mode, err := tiling.ParseSnapMode(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if !*direct {
		payload := ipc.PreviewSnapPayload{Mode: string(mode)}
		if *x >= 0 && *y >= 0 {
			payload.X, payload.Y = x, y
		}
		if *delay >= 0 {
			ms := int(delay.Milliseconds())
			payload.DelayMS = &ms
		}
		data, handled, err := previewViaDaemon(*path, payload)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if handled {
			t := data.Target
			fmt.Printf("daemon preview on monitor %d at %dx%d+%d+%d\n", data.Monitor, t.Width, t.Height, t.X, t.Y)
			return 0
		}
	}

	return withDisplay(*path, func(cfg *config.Config, d *display) int {
		p, err := pointerOrFlag(d, *x, *y)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		showDelay := cfg.ShowDelay()
		if *delay >= 0 {
			showDelay = *delay
		}

		_, target, err := d.screen.SnapPreview(p, mode, showDelay)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		st, _ := d.screen.TilePreviewState()
		style := "outline"
		if st.HasAlpha {
			style = "alpha"
		}
		fmt.Printf("%s preview at %s\n", style, target)

		// Expose events only reach the surface while the loop runs.
		go d.conn.EventLoop()
		time.Sleep(showDelay + *duration)
		return 0
	})
}

func runCorners(args []string) int {
	fs := flag.NewFlagSet("corners", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wmgeom/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wmgeom corners")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the hot corner trigger zones for the configured corners.")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	return withDisplay(*path, func(_ *config.Config, d *display) int {
		m := d.screen.Corners()
		fmt.Printf("actions enabled: %t\n", m.ActionsEnabled())
		for _, corner := range tiling.Corners {
			st := m.State(corner)
			if !st.Enabled {
				fmt.Printf("  %-13s disabled\n", corner)
				continue
			}
			fmt.Printf("  %-13s %s armed=%t\n", corner, st.TriggerRect, st.ActionEnabled)
		}
		return 0
	})
}

func snapModeNames() string {
	names := make([]string, len(tiling.SnapModes))
	for i, m := range tiling.SnapModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
