package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/restyle/internal/config"
	"github.com/zjrosen/restyle/internal/log"
	"github.com/zjrosen/restyle/internal/restyle"
	"github.com/zjrosen/restyle/internal/watcher"
	"github.com/zjrosen/restyle/internal/widget"
)

// fileChangedMsg signals that the viewed file changed on disk.
type fileChangedMsg struct{}

// Model is the file viewer: a styled buffer in a viewport, re-styled
// incrementally whenever the file or the active style changes.
type Model struct {
	path      string
	buf       *widget.Buffer
	formatter *restyle.Formatter
	lexer     any // chroma.Lexer or registered name, as handed to Bind

	vp    viewport.Model
	ready bool

	watch   *watcher.Watcher
	changes <-chan struct{}

	styleNames []string
	styleIdx   int

	status    string
	statusErr bool

	ctx     context.Context
	cancel  context.CancelFunc
	logs    *log.LogListener
	lastLog string
	debug   bool
}

// New loads the file, wires the formatter to the buffer, and starts the
// watcher when following is enabled.
func New(path string, cfg config.Config) (*Model, error) {
	factory, err := restyle.Lookup(cfg.Formatter)
	if err != nil {
		return nil, err
	}
	formatter, err := factory(cfg.Style,
		restyle.WithTextCacheTTL(cfg.Cache.TTL, cfg.Cache.CleanupInterval))
	if err != nil {
		return nil, err
	}

	var lexer any
	if cfg.Lexer != "" {
		lexer = cfg.Lexer
	} else if lx := lexers.Match(filepath.Base(path)); lx != nil {
		lexer = lx
	} else {
		lexer = lexers.Fallback
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the file the user asked to view
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	buf := widget.New()
	buf.SetText(string(data))
	if err := formatter.Bind(buf, lexer); err != nil {
		return nil, err
	}

	styleNames := styles.Names()
	sort.Strings(styleNames)
	styleIdx := 0
	for i, name := range styleNames {
		if name == formatter.Style().Name {
			styleIdx = i
			break
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		path:       path,
		buf:        buf,
		formatter:  formatter,
		lexer:      lexer,
		styleNames: styleNames,
		styleIdx:   styleIdx,
		ctx:        ctx,
		cancel:     cancel,
		logs:       log.NewListener(ctx),
		debug:      cfg.Debug,
	}

	if cfg.Follow {
		w, err := watcher.New(watcher.Config{Path: path, DebounceDur: cfg.FollowDebounce})
		if err != nil {
			cancel()
			return nil, err
		}
		changes, err := w.Start()
		if err != nil {
			cancel()
			_ = w.Stop()
			return nil, err
		}
		m.watch = w
		m.changes = changes
	}

	return m, nil
}

// Close releases the watcher and the log subscription.
func (m *Model) Close() error {
	m.cancel()
	if m.watch != nil {
		return m.watch.Stop()
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.changes != nil {
		cmds = append(cmds, m.waitForChange())
	}
	if m.logs != nil {
		cmds = append(cmds, m.logs.Listen())
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.changes; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 2
		}
		m.vp.SetContent(m.buf.View())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			_ = m.Close()
			return m, tea.Quit
		case "s":
			m.cycleStyle(1)
			return m, nil
		case "S":
			m.cycleStyle(-1)
			return m, nil
		case "r":
			m.reload()
			return m, nil
		}

	case fileChangedMsg:
		m.reload()
		if m.changes != nil {
			return m, m.waitForChange()
		}
		return m, nil

	case log.LogEvent:
		m.lastLog = strings.TrimSpace(msg.Payload)
		if m.logs != nil {
			return m, m.logs.Listen()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *Model) cycleStyle(direction int) {
	if len(m.styleNames) == 0 {
		return
	}
	m.styleIdx = (m.styleIdx + direction + len(m.styleNames)) % len(m.styleNames)
	name := m.styleNames[m.styleIdx]

	if err := m.formatter.SetStyle(name); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if err := m.formatter.Apply(m.buf, m.lexer); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.vp.SetContent(m.buf.View())
	m.setStatus("style: "+name, false)
	log.Info(log.CatUI, "style switched", "style", name)
}

func (m *Model) reload() {
	data, err := os.ReadFile(m.path) //nolint:gosec // G304: path is the file the user asked to view
	if err != nil {
		m.setStatus(fmt.Sprintf("reload failed: %v", err), true)
		log.ErrorErr(log.CatUI, "reload failed", err, "path", m.path)
		return
	}
	// SetText fires the bound formatter; only changed spans restyle.
	m.buf.SetText(string(data))
	m.vp.SetContent(m.buf.View())
	m.setStatus("reloaded", false)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := headerStyle.Render(filepath.Base(m.path)) +
		headerInfoStyle.Render("  "+m.styleNames[m.styleIdx])

	footer := "q quit · s/S style · r reload"
	if m.status != "" {
		if m.statusErr {
			footer += " · " + statusErrStyle.Render(m.status)
		} else {
			footer += " · " + m.status
		}
	}
	if m.debug && m.lastLog != "" {
		footer += " · " + m.lastLog
	}

	return header + "\n" + m.vp.View() + "\n" + statusStyle.Render(footer)
}
