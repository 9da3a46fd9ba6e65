package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/wmgeom/internal/config"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

// WorkspacesTab shows the workspace grid and lets the user walk it with the
// arrow keys.
type WorkspacesTab struct {
	cfg *config.Config

	current int
	layout  tiling.WorkspaceLayout
	err     error

	statusText string

	width  int
	height int
}

// NewWorkspacesTab creates a WorkspacesTab bound to cfg. Option changes are
// written back to cfg so they can be saved.
func NewWorkspacesTab(cfg *config.Config) WorkspacesTab {
	wt := WorkspacesTab{cfg: cfg}
	wt.relayout()
	return wt
}

// syncFromConfig recomputes the grid after cfg was edited elsewhere.
func (wt *WorkspacesTab) syncFromConfig() {
	wt.relayout()
}

func (wt *WorkspacesTab) relayout() {
	w := wt.cfg.Workspaces
	if wt.current >= w.Count {
		wt.current = max(0, w.Count-1)
	}
	wt.layout, wt.err = tiling.CalculateWorkspaceLayoutWithGrid(w.Count, wt.current, w.Rows, w.Cols, wt.cfg.StartingCorner(), w.Vertical)
}

// Update implements tea.Model.
func (wt WorkspacesTab) Update(msg tea.Msg) (WorkspacesTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		wt.width = msg.Width
		wt.height = msg.Height
		return wt, nil

	case tea.KeyMsg:
		ws := &wt.cfg.Workspaces
		switch msg.String() {
		case "up", "k":
			wt.move(tiling.DirUp)
		case "down", "j":
			wt.move(tiling.DirDown)
		case "left", "h":
			wt.move(tiling.DirLeft)
		case "right", "l":
			wt.move(tiling.DirRight)
		case "c":
			next := tiling.Corners[(indexOfCorner(wt.cfg.StartingCorner())+1)%len(tiling.Corners)]
			ws.StartingCorner = next.String()
			wt.statusText = "starting corner: " + ws.StartingCorner
			wt.relayout()
		case "v":
			ws.Vertical = !ws.Vertical
			wt.statusText = fmt.Sprintf("vertical: %v", ws.Vertical)
			wt.relayout()
		case "w":
			ws.Wrap = !ws.Wrap
			wt.statusText = fmt.Sprintf("wrap: %v", ws.Wrap)
		case "+", "=":
			ws.Count++
			wt.statusText = fmt.Sprintf("workspaces: %d", ws.Count)
			wt.relayout()
		case "-":
			if ws.Count > 1 {
				ws.Count--
				wt.statusText = fmt.Sprintf("workspaces: %d", ws.Count)
				wt.relayout()
			}
		case "]":
			ws.Cols = max(ws.Cols, wt.layout.Cols) + 1
			ws.Rows = 0
			wt.statusText = fmt.Sprintf("columns: %d", ws.Cols)
			wt.relayout()
		case "[":
			if c := max(ws.Cols, wt.layout.Cols) - 1; c >= 1 {
				ws.Cols = c
				ws.Rows = 0
				wt.statusText = fmt.Sprintf("columns: %d", ws.Cols)
				wt.relayout()
			}
		case "0":
			ws.Rows, ws.Cols = 0, 0
			wt.statusText = "grid: automatic"
			wt.relayout()
		}
	}
	return wt, nil
}

func (wt *WorkspacesTab) move(dir tiling.Direction) {
	if wt.err != nil {
		return
	}
	next, ok := wt.layout.Neighbor(dir, wt.cfg.Workspaces.Wrap)
	if !ok {
		wt.statusText = fmt.Sprintf("no workspace %s of %d", dir, wt.current+1)
		return
	}
	wt.current = next
	wt.statusText = ""
	wt.relayout()
}

func indexOfCorner(c tiling.Corner) int {
	for i, corner := range tiling.Corners {
		if corner == c {
			return i
		}
	}
	return 0
}

// View implements tea.Model.
func (wt WorkspacesTab) View() string {
	if wt.width == 0 || wt.height == 0 {
		return ""
	}

	w := wt.cfg.Workspaces
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Render(fmt.Sprintf(" Workspace %d of %d", wt.current+1, w.Count))
	summary := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Render(fmt.Sprintf(" %dx%d  start:%s  vertical:%v  wrap:%v", wt.layout.Rows, wt.layout.Cols, w.StartingCorner, w.Vertical, w.Wrap))

	var grid string
	if wt.err != nil {
		grid = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(" " + wt.err.Error())
	} else {
		grid = renderWorkspaceGrid(wt.layout, wt.accent(), wt.width-2)
	}

	status := renderTabStatus(wt.statusText, "arrows/hjkl:move  c:corner  v:vertical  w:wrap  +/-:count  [/]:cols  0:auto", wt.width)
	body := lipgloss.JoinVertical(lipgloss.Left, title, summary, "", grid)
	body = lipgloss.NewStyle().Height(max(1, wt.height-1)).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}

func (wt WorkspacesTab) accent() lipgloss.Color {
	if wt.cfg.TilePreview.AccentColor == "" {
		return lipgloss.Color(config.DefaultAccentColor)
	}
	return lipgloss.Color(wt.cfg.TilePreview.AccentColor)
}

// renderWorkspaceGrid draws one box per grid cell. The current workspace is
// highlighted and empty cells are drawn dimmed.
func renderWorkspaceGrid(layout tiling.WorkspaceLayout, accent lipgloss.Color, width int) string {
	if layout.Cols == 0 {
		return ""
	}
	cellWidth := min(12, max(5, width/layout.Cols-2))

	cell := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Width(cellWidth).
		Align(lipgloss.Center)
	current := cell.
		BorderForeground(accent).
		Foreground(accent).
		Bold(true)
	empty := cell.Foreground(lipgloss.Color("238"))

	rows := make([]string, 0, layout.Rows)
	for r := 0; r < layout.Rows; r++ {
		cells := make([]string, 0, layout.Cols)
		for c := 0; c < layout.Cols; c++ {
			idx := layout.Index(r, c)
			switch {
			case idx == tiling.NoWorkspace:
				cells = append(cells, empty.Render("·"))
			case r == layout.CurrentRow && c == layout.CurrentCol:
				cells = append(cells, current.Render(fmt.Sprint(idx+1)))
			default:
				cells = append(cells, cell.Render(fmt.Sprint(idx+1)))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return indent(lipgloss.JoinVertical(lipgloss.Left, rows...), 1)
}

func indent(block string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}
