package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/wmgeom/internal/monitor"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

// monitorItem implements list.Item for the monitor sidebar.
type monitorItem struct {
	info monitor.Info
}

func (i monitorItem) Title() string {
	name := i.info.Name
	if name == "" {
		name = "monitor"
	}
	return fmt.Sprintf("%d: %s", i.info.Index, name)
}

func (i monitorItem) Description() string { return i.info.Rect.String() }
func (i monitorItem) FilterValue() string { return i.info.Name }

var neighborDirections = []tiling.Direction{tiling.DirLeft, tiling.DirRight, tiling.DirUp, tiling.DirDown}

// MonitorsTab lists the monitors and shows neighbors and snap targets of the
// selected one.
type MonitorsTab struct {
	list     list.Model
	monitors *monitor.Set

	width  int
	height int
	ready  bool
}

// NewMonitorsTab creates a MonitorsTab over set, which may be nil.
func NewMonitorsTab(set *monitor.Set) MonitorsTab {
	var items []list.Item
	if set != nil {
		for _, info := range set.All() {
			items = append(items, monitorItem{info: info})
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Monitors"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return MonitorsTab{list: l, monitors: set}
}

// Update implements tea.Model.
func (mt MonitorsTab) Update(msg tea.Msg) (MonitorsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		mt.width = msg.Width
		mt.height = msg.Height
		mt.list.SetSize(mt.sidebarWidth(), max(1, mt.height-2))
		mt.ready = true
		return mt, nil

	case tea.KeyMsg:
		// Jump to the neighbor in the pressed direction.
		dir, ok := map[string]tiling.Direction{
			"H": tiling.DirLeft, "L": tiling.DirRight, "K": tiling.DirUp, "J": tiling.DirDown,
		}[msg.String()]
		if ok {
			if sel, found := mt.selected(); found {
				if next, found := mt.monitors.Neighbor(sel.Index, dir); found {
					mt.list.Select(next.Index)
				}
			}
			return mt, nil
		}
	}

	var cmd tea.Cmd
	mt.list, cmd = mt.list.Update(msg)
	return mt, cmd
}

func (mt MonitorsTab) sidebarWidth() int {
	// Sidebar takes ~35% of width, min 20, max 40
	return min(40, max(20, mt.width*35/100))
}

func (mt MonitorsTab) selected() (monitor.Info, bool) {
	item, ok := mt.list.SelectedItem().(monitorItem)
	if !ok {
		return monitor.Info{}, false
	}
	return item.info, true
}

// View implements tea.Model.
func (mt MonitorsTab) View() string {
	if !mt.ready || mt.width == 0 || mt.height == 0 {
		return ""
	}
	if mt.monitors == nil || mt.monitors.Len() == 0 {
		return lipgloss.NewStyle().
			Width(mt.width).
			Height(mt.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No monitors (is DISPLAY set?)")
	}

	sidebarWidth := mt.sidebarWidth()
	sidebar := lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(mt.height - 2).
		Render(mt.list.View())

	sep := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Render(strings.Repeat("│\n", max(1, mt.height-2)))

	detailWidth := max(10, mt.width-sidebarWidth-3)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " "+sep, mt.renderDetail(detailWidth))

	status := renderTabStatus("", "up/down:select  H/J/K/L:go to neighbor", mt.width)
	return lipgloss.JoinVertical(lipgloss.Left, columns, status)
}

func (mt MonitorsTab) renderDetail(width int) string {
	sel, ok := mt.selected()
	if !ok {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Render(fmt.Sprintf(" %s  %s", monitorItem{info: sel}.Title(), sel.Rect))

	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	var lines []string
	for _, dir := range neighborDirections {
		value := dimStyle.Render("none")
		if n, found := mt.monitors.Neighbor(sel.Index, dir); found {
			value = monitorItem{info: n}.Title()
		}
		lines = append(lines, " "+label.Render(dir.String())+value)
	}
	lines = append(lines, "")
	for _, mode := range tiling.SnapModes {
		target, err := tiling.SnapTarget(sel.Rect, mode)
		if err != nil {
			continue
		}
		lines = append(lines, " "+label.Render(string(mode))+target.String())
	}

	mapHeight := max(3, mt.height-len(lines)-6)
	minimap := renderMonitorMap(mt.monitors, sel.Index, width-2, mapHeight)

	return lipgloss.JoinVertical(lipgloss.Left, title, "", strings.Join(lines, "\n"), "", indent(minimap, 1))
}

// renderMonitorMap scales the screen into a width x height character grid and
// fills each monitor with its index digit. The selected monitor is
// highlighted.
func renderMonitorMap(set *monitor.Set, selected, width, height int) string {
	bounds := set.Bounds()
	if bounds.Empty() || width <= 0 || height <= 0 {
		return ""
	}

	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", width))
	}

	owner := make([][]int, height)
	for y := range owner {
		owner[y] = make([]int, width)
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}

	for _, info := range set.All() {
		x0 := (info.Rect.X - bounds.X) * width / bounds.Width
		x1 := (info.Rect.Right() - bounds.X) * width / bounds.Width
		y0 := (info.Rect.Y - bounds.Y) * height / bounds.Height
		y1 := (info.Rect.Bottom() - bounds.Y) * height / bounds.Height
		glyph := rune('0' + info.Index%10)
		for y := y0; y < y1 && y < height; y++ {
			for x := x0; x < x1 && x < width; x++ {
				cells[y][x] = glyph
				owner[y][x] = info.Index
			}
		}
	}

	hi := lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	lo := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	out := make([]string, height)
	for y := range cells {
		var b strings.Builder
		for x, r := range cells[y] {
			if owner[y][x] == selected {
				b.WriteString(hi.Render(string(r)))
			} else {
				b.WriteString(lo.Render(string(r)))
			}
		}
		out[y] = b.String()
	}
	return strings.Join(out, "\n")
}
