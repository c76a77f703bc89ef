package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/restyle/internal/config"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.py")
	require.NoError(t, os.WriteFile(path, []byte("def add(a, b):\n    return a + b\n"), 0o644))

	cfg := config.Defaults()
	cfg.Follow = false

	m, err := New(path, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func resized(t *testing.T, m *Model) *Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(*Model)
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.py"), config.Defaults())
	require.Error(t, err)
}

func TestNew_UnknownStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))

	cfg := config.Defaults()
	cfg.Style = "no-such-style"

	_, err := New(path, cfg)
	require.Error(t, err)
}

func TestModel_ViewAfterResize(t *testing.T) {
	m := newTestModel(t)

	require.Equal(t, "loading...", m.View())

	m = resized(t, m)
	view := m.View()
	require.Contains(t, view, "script.py")
	require.Contains(t, view, "def add")
}

func TestModel_QuitThenCloseWithFollowEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))

	m, err := New(path, config.Defaults())
	require.NoError(t, err)
	m = resized(t, m)

	// The quit key closes the model before tea.Quit; the program cleanup
	// then closes it again.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.Equal(t, tea.Quit(), cmd())
	require.NotPanics(t, func() { _ = m.Close() })
}

func TestModel_QuitKey(t *testing.T) {
	m := resized(t, newTestModel(t))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestModel_CycleStyle(t *testing.T) {
	m := resized(t, newTestModel(t))
	before := m.formatter.Style().Name

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = updated.(*Model)
	after := m.formatter.Style().Name
	require.NotEqual(t, before, after)

	// Shift+s walks back to where we started.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}})
	m = updated.(*Model)
	require.Equal(t, before, m.formatter.Style().Name)
}

func TestModel_FileChangedReloads(t *testing.T) {
	m := resized(t, newTestModel(t))

	require.NoError(t, os.WriteFile(m.path, []byte("y = 2\n"), 0o644))

	updated, _ := m.Update(fileChangedMsg{})
	m = updated.(*Model)
	require.Equal(t, "y = 2\n", m.buf.Value())
	require.Contains(t, m.View(), "reloaded")
}

func TestModel_ReloadKey(t *testing.T) {
	m := resized(t, newTestModel(t))

	require.NoError(t, os.WriteFile(m.path, []byte("z = 3\n"), 0o644))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(*Model)
	require.Equal(t, "z = 3\n", m.buf.Value())
}
