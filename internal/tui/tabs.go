package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/wmgeom/internal/monitor"
)

// Tab identifies a TUI tab.
type Tab int

const (
	TabWorkspaces Tab = iota
	TabMonitors
	TabSettings
	tabCount // sentinel for iteration
)

func (t Tab) String() string {
	switch t {
	case TabWorkspaces:
		return "Workspaces"
	case TabMonitors:
		return "Monitors"
	case TabSettings:
		return "Settings"
	default:
		return "?"
	}
}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			MarginBottom(1)

	tabGap = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		SetString(" ")

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// renderTabBar renders the tab bar with the given active tab and width.
func renderTabBar(active Tab, width int) string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		label := fmt.Sprintf("%d:%s", int(i)+1, i)
		if i == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(tabs, tabGap.Render())...)
	return tabBarStyle.Width(width).Render(row)
}

// intersperse inserts sep between each element of items.
func intersperse(items []string, sep string) []string {
	if len(items) <= 1 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

// renderStatusBar shows the monitor snapshot and the config file in use.
func renderStatusBar(monitors *monitor.Set, configPath, loadErr string, width int) string {
	var parts []string
	if monitors != nil && monitors.Len() > 0 {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		b := monitors.Bounds()
		parts = append(parts, fmt.Sprintf("%s %d monitor(s)  %dx%d", dot, monitors.Len(), b.Right(), b.Bottom()))
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		parts = append(parts, dot+" no display")
	}
	if configPath != "" {
		parts = append(parts, "config:"+configPath)
	}
	if loadErr != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(loadErr))
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(strings.Join(parts, "  "))
}

// renderHelpBar renders the bottom help/keybinding bar.
func renderHelpBar(width int) string {
	help := "tab/shift-tab: switch tabs  1-3: jump to tab  ctrl-s: save  q/ctrl-c: quit"
	return dimStyle.Width(width).Padding(0, 1).Render(help)
}

// renderTabStatus renders a tab's own footer: a transient status on the left
// and its key hints on the right.
func renderTabStatus(status, hints string, width int) string {
	left := ""
	if status != "" {
		left = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render(status)
	}
	right := dimStyle.Render(hints)

	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(left + strings.Repeat(" ", gap) + right)
}
