package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func writePreset(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPresetEntries(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "numpad.toml", `
name = "numpad"
switch_type = "gamdias_lp"
controller_type = "tinys2"

[matrices.main]
rows = 5
cols = 4
`)
	writePreset(t, dir, "broken.toml", `rows = [not toml`)
	writePreset(t, dir, "notes.txt", "not a preset")

	entries, err := loadPresetEntries(dir)
	if err != nil {
		t.Fatalf("loadPresetEntries() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Config.Name != "numpad" {
		t.Errorf("Name = %q, want numpad", entries[0].Config.Name)
	}
	if !strings.Contains(entries[0].summary(), "20 keys") {
		t.Errorf("summary() = %q, want 20 keys", entries[0].summary())
	}
}

func TestPresetListModelNavigation(t *testing.T) {
	entries := []presetEntry{
		{Path: "a.toml"},
		{Path: "b.toml"},
	}
	m := NewPresetListModel(entries)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(PresetListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after down, want 1", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PresetListModel)
	if m.Selected == nil || m.Selected.Path != "b.toml" {
		t.Errorf("Selected = %+v, want b.toml", m.Selected)
	}
}

func TestPresetListModelQuit(t *testing.T) {
	m := NewPresetListModel([]presetEntry{{Path: "a.toml"}})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(PresetListModel)
	if m.Selected != nil {
		t.Error("quit should not select anything")
	}
	if cmd == nil {
		t.Error("quit should return tea.Quit")
	}
}
