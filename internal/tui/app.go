package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/wmgeom/internal/config"
	"github.com/1broseidon/wmgeom/internal/monitor"
)

// model is the root bubbletea model for the TUI.
type model struct {
	configPath string
	cfg        *config.Config
	loadErr    string
	monitors   *monitor.Set

	// Tab navigation
	activeTab Tab

	// Sub-models
	workspacesTab WorkspacesTab
	monitorsTab   MonitorsTab
	settingsTab   SettingsTab

	// Save overlay
	originalConfig *config.Config
	saveOverlay    SaveOverlay

	// Terminal dimensions
	width  int
	height int
}

func newModel(configPath string, cfg *config.Config, loadErr error, monitors *monitor.Set) model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := model{
		configPath:     configPath,
		cfg:            cfg,
		monitors:       monitors,
		activeTab:      TabWorkspaces,
		originalConfig: cloneConfig(cfg),
		workspacesTab:  NewWorkspacesTab(cfg),
		monitorsTab:    NewMonitorsTab(monitors),
		settingsTab:    NewSettingsTab(cfg),
	}
	if loadErr != nil {
		m.loadErr = loadErr.Error()
	}
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// resize forwards the content area size to every tab.
func (m model) resize() model {
	used := 1 + 2 + 1 // status bar, tab bar with margin, help bar
	subMsg := tea.WindowSizeMsg{Width: m.width, Height: max(1, m.height-used)}
	m.workspacesTab, _ = m.workspacesTab.Update(subMsg)
	m.monitorsTab, _ = m.monitorsTab.Update(subMsg)
	m.settingsTab, _ = m.settingsTab.Update(subMsg)
	return m
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
		m.height = ws.Height
		return m.resize(), nil
	}

	if _, ok := msg.(configChangedMsg); ok {
		m.workspacesTab.syncFromConfig()
		return m, nil
	}

	// Save overlay captures all input when active
	if m.saveOverlay.Active() {
		if km, ok := msg.(tea.KeyMsg); ok {
			if km.String() == "ctrl+c" {
				return m, tea.Quit
			}
			m.saveOverlay = m.saveOverlay.Update(km, m.cfg)
			if m.saveOverlay.SaveSucceeded() {
				m.originalConfig = cloneConfig(m.cfg)
			}
		}
		return m, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+s" {
		m.saveOverlay.Show(m.originalConfig, m.cfg, m.configPath)
		return m, nil
	}

	// The settings form consumes keys; only ctrl+c escapes to quit.
	if m.activeTab == TabSettings && m.settingsTab.editing {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.settingsTab, cmd = m.settingsTab.Update(msg)
		return m, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1":
			m.activeTab = TabWorkspaces
			return m, nil
		case "2":
			m.activeTab = TabMonitors
			return m, nil
		case "3":
			m.activeTab = TabSettings
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case TabWorkspaces:
		m.workspacesTab, cmd = m.workspacesTab.Update(msg)
	case TabMonitors:
		m.monitorsTab, cmd = m.monitorsTab.Update(msg)
	case TabSettings:
		m.settingsTab, cmd = m.settingsTab.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.monitors, m.configPath, m.loadErr, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := max(1, m.height-usedHeight)

	var content string
	if m.saveOverlay.Active() {
		content = m.saveOverlay.View(m.width, contentHeight)
	} else {
		switch m.activeTab {
		case TabWorkspaces:
			content = m.workspacesTab.View()
		case TabMonitors:
			content = m.monitorsTab.View()
		case TabSettings:
			content = m.settingsTab.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
