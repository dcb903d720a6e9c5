package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/printforge/printboard/pkg/config"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// presetEntry is one selectable preset with its parsed config.
type presetEntry struct {
	Path   string
	Config config.KeyboardConfig
}

func (e presetEntry) summary() string {
	keys := 0
	for _, m := range e.Config.Matrices {
		keys += m.Rows * m.Cols
	}
	return fmt.Sprintf("%d keys, %s, %s", keys, e.Config.SwitchType, e.Config.ControllerType)
}

// loadPresetEntries reads every .toml preset in dir. Files that fail to
// parse are skipped so one bad preset does not hide the rest.
func loadPresetEntries(dir string) ([]presetEntry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var entries []presetEntry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".toml") {
			continue
		}
		path := filepath.Join(dir, f.Name())
		cfg, err := config.LoadPreset(path)
		if err != nil {
			continue
		}
		entries = append(entries, presetEntry{Path: path, Config: cfg})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Config.Name < entries[j].Config.Name })
	return entries, nil
}

// PresetListModel is the bubbletea model for interactive preset selection.
type PresetListModel struct {
	Presets  []presetEntry
	Cursor   int
	Selected *presetEntry
	Height   int
	Offset   int
}

// NewPresetListModel creates a new preset list model.
func NewPresetListModel(presets []presetEntry) PresetListModel {
	return PresetListModel{
		Presets: presets,
		Height:  15,
	}
}

func (m PresetListModel) Init() tea.Cmd {
	return nil
}

func (m PresetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Presets)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			selected := m.Presets[m.Cursor]
			m.Selected = &selected
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PresetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Presets) {
		end = len(m.Presets)
	}

	for i := m.Offset; i < end; i++ {
		e := m.Presets[i]

		cursor := "  "
		line := fmt.Sprintf("%-16s %s", e.Config.Name, e.summary())
		if i == m.Cursor {
			cursor = "▸ "
			b.WriteString(cursor + listSelectedStyle.Render(line))
		} else {
			b.WriteString(cursor + listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// selectPreset runs the interactive preset picker over dir and returns the
// chosen preset path, or "" if the user quit without selecting.
func selectPreset(dir string) (string, error) {
	entries, err := loadPresetEntries(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		printWarning("no presets found in %s", dir)
		return "", nil
	}

	p := tea.NewProgram(NewPresetListModel(entries))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	fm, ok := finalModel.(PresetListModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return "", nil
	}
	return fm.Selected.Path, nil
}
