package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/wmgeom/internal/config"
	"github.com/1broseidon/wmgeom/internal/preview"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

// configChangedMsg tells other tabs that the settings form was applied.
type configChangedMsg struct{}

// SettingsTab displays the effective configuration and edits it with a form.
type SettingsTab struct {
	cfg *config.Config

	width  int
	height int

	editing bool
	form    *huh.Form

	// Form-bound values (strings for huh, converted on submit)
	fCount          string
	fRows           string
	fCols           string
	fCorner         string
	fVertical       bool
	fWrap           bool
	fCornerSize     string
	fEnabledCorners []string
	fActions        bool
	fAccent         string
	fOpacity        string
	fDelay          string
	fForceOutline   bool
}

// NewSettingsTab creates a SettingsTab from the loaded config.
func NewSettingsTab(cfg *config.Config) SettingsTab {
	return SettingsTab{cfg: cfg}
}

// Update implements tea.Model.
func (s SettingsTab) Update(msg tea.Msg) (SettingsTab, tea.Cmd) {
	if s.editing {
		return s.updateEditing(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" {
			s.startEditing()
			return s, s.form.Init()
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}
	return s, nil
}

func (s SettingsTab) updateEditing(msg tea.Msg) (SettingsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			s.editing = false
			s.form = nil
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.applyForm()
		s.editing = false
		s.form = nil
		return s, func() tea.Msg { return configChangedMsg{} }
	}

	return s, cmd
}

func (s *SettingsTab) startEditing() {
	cfg := s.cfg

	s.fCount = strconv.Itoa(cfg.Workspaces.Count)
	s.fRows = strconv.Itoa(cfg.Workspaces.Rows)
	s.fCols = strconv.Itoa(cfg.Workspaces.Cols)
	s.fCorner = cfg.Workspaces.StartingCorner
	s.fVertical = cfg.Workspaces.Vertical
	s.fWrap = cfg.Workspaces.Wrap
	s.fCornerSize = strconv.Itoa(cfg.HotCorners.Size)
	s.fEnabledCorners = append([]string(nil), cfg.HotCorners.Enabled...)
	s.fActions = cfg.HotCorners.ActionsEnabled
	s.fAccent = cfg.TilePreview.AccentColor
	s.fOpacity = strconv.FormatFloat(cfg.TilePreview.Opacity, 'f', -1, 64)
	s.fDelay = strconv.Itoa(cfg.TilePreview.ShowDelayMS)
	s.fForceOutline = cfg.TilePreview.ForceOutline

	cornerOpts := make([]huh.Option[string], 0, len(tiling.Corners))
	for _, c := range tiling.Corners {
		cornerOpts = append(cornerOpts, huh.NewOption(c.String(), c.String()))
	}

	w := max(40, s.width-4)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("count").
				Title("Workspaces").
				Description("Number of workspaces in the grid").
				Validate(positiveInt).
				Value(&s.fCount),
			huh.NewInput().
				Key("rows").
				Title("Rows").
				Description("0 derives rows from the count").
				Validate(nonNegativeInt).
				Value(&s.fRows),
			huh.NewInput().
				Key("cols").
				Title("Columns").
				Description("0 derives columns from the count").
				Validate(nonNegativeInt).
				Value(&s.fCols),
			huh.NewSelect[string]().
				Key("starting_corner").
				Title("Starting Corner").
				Description("Where workspace 1 sits").
				Options(cornerOpts...).
				Value(&s.fCorner),
			huh.NewConfirm().
				Key("vertical").
				Title("Fill columns first").
				Value(&s.fVertical),
			huh.NewConfirm().
				Key("wrap").
				Title("Wrap navigation at grid edges").
				Value(&s.fWrap),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("corner_size").
				Title("Hot Corner Size").
				Description("Trigger square side in pixels").
				Validate(positiveInt).
				Value(&s.fCornerSize),
			huh.NewMultiSelect[string]().
				Key("enabled_corners").
				Title("Enabled Hot Corners").
				Options(cornerOpts...).
				Value(&s.fEnabledCorners),
			huh.NewConfirm().
				Key("actions").
				Title("Hot corner actions enabled").
				Value(&s.fActions),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("accent").
				Title("Accent Color").
				Description("Hex color of the tile preview").
				Validate(func(v string) error {
					_, err := preview.ParseColor(v, 1)
					return err
				}).
				Value(&s.fAccent),
			huh.NewInput().
				Key("opacity").
				Title("Opacity").
				Description("Fill opacity with a compositor, in (0, 1]").
				Validate(func(v string) error {
					f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
					if err != nil || f <= 0 || f > 1 {
						return fmt.Errorf("opacity must be in (0, 1]")
					}
					return nil
				}).
				Value(&s.fOpacity),
			huh.NewInput().
				Key("show_delay").
				Title("Show Delay (ms)").
				Validate(nonNegativeInt).
				Value(&s.fDelay),
			huh.NewConfirm().
				Key("force_outline").
				Title("Always draw the outline preview").
				Value(&s.fForceOutline),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	s.editing = true
}

func positiveInt(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func nonNegativeInt(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return fmt.Errorf("must be zero or a positive number")
	}
	return nil
}

// applyForm copies the form values into cfg. Values that fail to parse keep
// their previous setting.
func (s *SettingsTab) applyForm() {
	cfg := s.cfg
	atoi := func(v string) (int, bool) {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}

	if v, ok := atoi(s.fCount); ok && v > 0 {
		cfg.Workspaces.Count = v
	}
	if v, ok := atoi(s.fRows); ok && v >= 0 {
		cfg.Workspaces.Rows = v
	}
	if v, ok := atoi(s.fCols); ok && v >= 0 {
		cfg.Workspaces.Cols = v
	}
	if _, err := tiling.ParseCorner(s.fCorner); err == nil {
		cfg.Workspaces.StartingCorner = s.fCorner
	}
	cfg.Workspaces.Vertical = s.fVertical
	cfg.Workspaces.Wrap = s.fWrap

	if v, ok := atoi(s.fCornerSize); ok && v > 0 {
		cfg.HotCorners.Size = v
	}
	cfg.HotCorners.Enabled = append([]string{}, s.fEnabledCorners...)
	cfg.HotCorners.ActionsEnabled = s.fActions

	if _, err := preview.ParseColor(s.fAccent, 1); err == nil {
		cfg.TilePreview.AccentColor = strings.TrimSpace(s.fAccent)
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s.fOpacity), 64); err == nil && f > 0 && f <= 1 {
		cfg.TilePreview.Opacity = f
	}
	if v, ok := atoi(s.fDelay); ok && v >= 0 {
		cfg.TilePreview.ShowDelayMS = v
	}
	cfg.TilePreview.ForceOutline = s.fForceOutline
}

// View implements tea.Model.
func (s SettingsTab) View() string {
	if s.editing && s.form != nil {
		title := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Render(" Edit Settings")
		hint := dimStyle.Render(" enter: next  esc: cancel")
		return lipgloss.JoinVertical(lipgloss.Left, title, hint, "", s.form.View())
	}

	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(22)
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	section := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))

	cfg := s.cfg
	row := func(name string, v any) string {
		return "   " + label.Render(name) + value.Render(fmt.Sprint(v))
	}
	enabled := "none"
	if len(cfg.HotCorners.Enabled) > 0 {
		enabled = strings.Join(cfg.HotCorners.Enabled, ", ")
	}
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(cfg.TilePreview.AccentColor)).Render("  ")

	lines := []string{
		section.Render(" Workspaces"),
		row("count", cfg.Workspaces.Count),
		row("rows x cols", fmt.Sprintf("%d x %d", cfg.Workspaces.Rows, cfg.Workspaces.Cols)),
		row("starting corner", cfg.Workspaces.StartingCorner),
		row("vertical", cfg.Workspaces.Vertical),
		row("wrap", cfg.Workspaces.Wrap),
		"",
		section.Render(" Hot Corners"),
		row("size", cfg.HotCorners.Size),
		row("enabled", enabled),
		row("actions", cfg.HotCorners.ActionsEnabled),
		"",
		section.Render(" Tile Preview"),
		row("accent", cfg.TilePreview.AccentColor) + " " + swatch,
		row("opacity", cfg.TilePreview.Opacity),
		row("show delay", cfg.ShowDelay()),
		row("force outline", cfg.TilePreview.ForceOutline),
	}

	body := lipgloss.NewStyle().Height(max(1, s.height-1)).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, body, renderTabStatus("", "e:edit", s.width))
}
