// Package widget provides an in-memory rich-text buffer that satisfies the
// restyle widget contract and renders with lipgloss for terminal display.
package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/zjrosen/restyle/internal/log"
	"github.com/zjrosen/restyle/internal/restyle"
)

// Run is a styled span of the buffer's text. Runs are kept sorted and
// non-overlapping.
type Run struct {
	Range restyle.Range
	Attr  restyle.Attr
}

// Buffer is a rich-text widget: full text, a base attr, per-range style runs,
// snapshot undo with a suppress scope, and freeze/thaw around batched style
// updates. Text-change handlers run synchronously from SetText.
type Buffer struct {
	id         string
	text       string
	background string
	base       restyle.Attr
	runs       []Run

	undo     []string
	suppress int

	frozen         int
	pendingRefresh bool
	view           string

	handlers []func()
}

var (
	_ restyle.RichText = (*Buffer)(nil)
	_ restyle.Notifier = (*Buffer)(nil)
)

// New creates an empty buffer with a fresh identity.
func New() *Buffer {
	return &Buffer{
		id:   uuid.NewString(),
		base: restyle.Attr{FontFamily: restyle.FontMono},
	}
}

// ID returns the buffer's identity key.
func (b *Buffer) ID() string { return b.id }

// Value returns the buffer's current full text.
func (b *Buffer) Value() string { return b.text }

// BaseAttr returns the attr unstyled text renders with.
func (b *Buffer) BaseAttr() restyle.Attr { return b.base }

// SetBaseAttr replaces the base attr for unstyled text.
func (b *Buffer) SetBaseAttr(attr restyle.Attr) { b.base = attr }

// SetBackground sets the global background color. Empty clears it.
func (b *Buffer) SetBackground(color string) { b.background = color }

// Background returns the current global background color.
func (b *Buffer) Background() string { return b.background }

// SetText replaces the buffer's text and notifies text-change handlers
// synchronously. A no-op when the text is unchanged. The previous text is
// pushed onto the undo stack unless an undo-suppression scope is active.
func (b *Buffer) SetText(text string) {
	if text == b.text {
		return
	}
	if b.suppress == 0 {
		b.undo = append(b.undo, b.text)
	}
	b.text = text
	log.Debug(log.CatWidget, "text set", "widget", b.id, "bytes", len(text))
	for _, fn := range b.handlers {
		fn()
	}
}

// Undo restores the most recent snapshot, firing text-change handlers.
// Returns false when there is nothing to undo.
func (b *Buffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	text := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.text = text
	for _, fn := range b.handlers {
		fn()
	}
	return true
}

// OnText registers a handler invoked synchronously after every text change.
func (b *Buffer) OnText(fn func()) {
	b.handlers = append(b.handlers, fn)
}

// BeginSuppressUndo opens a scope during which SetText records no snapshots.
func (b *Buffer) BeginSuppressUndo() { b.suppress++ }

// EndSuppressUndo closes the innermost undo-suppression scope.
func (b *Buffer) EndSuppressUndo() {
	if b.suppress > 0 {
		b.suppress--
	}
}

// Freeze defers rendering until the matching Thaw.
func (b *Buffer) Freeze() { b.frozen++ }

// Thaw ends a freeze scope, rendering once if a refresh was requested while
// frozen.
func (b *Buffer) Thaw() {
	if b.frozen > 0 {
		b.frozen--
	}
	if b.frozen == 0 && b.pendingRefresh {
		b.pendingRefresh = false
		b.render()
	}
}

// Refresh re-renders the styled view, or records the request when frozen.
func (b *Buffer) Refresh() {
	if b.frozen > 0 {
		b.pendingRefresh = true
		return
	}
	b.render()
}

// SetStyle applies an attr over a half-open byte range, trimming or replacing
// any overlapping runs. Out-of-bounds ranges are clamped; empty ranges are
// ignored.
func (b *Buffer) SetStyle(r restyle.Range, attr restyle.Attr) {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > len(b.text) {
		r.End = len(b.text)
	}
	if r.Len() <= 0 {
		return
	}

	out := make([]Run, 0, len(b.runs)+2)
	inserted := false
	for _, run := range b.runs {
		if run.Range.End <= r.Start || run.Range.Start >= r.End {
			if !inserted && run.Range.Start >= r.End {
				out = append(out, Run{Range: r, Attr: attr})
				inserted = true
			}
			out = append(out, run)
			continue
		}
		if run.Range.Start < r.Start {
			out = append(out, Run{Range: restyle.Range{Start: run.Range.Start, End: r.Start}, Attr: run.Attr})
		}
		if !inserted {
			out = append(out, Run{Range: r, Attr: attr})
			inserted = true
		}
		if run.Range.End > r.End {
			out = append(out, Run{Range: restyle.Range{Start: r.End, End: run.Range.End}, Attr: run.Attr})
		}
	}
	if !inserted {
		out = append(out, Run{Range: r, Attr: attr})
	}
	b.runs = out
}

// Runs returns a copy of the current style runs.
func (b *Buffer) Runs() []Run {
	out := make([]Run, len(b.runs))
	copy(out, b.runs)
	return out
}

// AttrAt returns the attr in effect at a byte offset.
func (b *Buffer) AttrAt(offset int) restyle.Attr {
	for _, run := range b.runs {
		if run.Range.Start <= offset && offset < run.Range.End {
			return run.Attr
		}
	}
	return b.base
}

// View returns the most recently rendered styled text.
func (b *Buffer) View() string {
	return b.view
}

func (b *Buffer) render() {
	var out strings.Builder
	offset := 0
	for _, run := range b.runs {
		start, end := run.Range.Start, run.Range.End
		if start >= len(b.text) {
			break
		}
		if end > len(b.text) {
			end = len(b.text)
		}
		if offset < start {
			out.WriteString(b.segment(b.text[offset:start], b.base))
		}
		out.WriteString(b.segment(b.text[start:end], run.Attr))
		offset = end
	}
	if offset < len(b.text) {
		out.WriteString(b.segment(b.text[offset:], b.base))
	}
	b.view = out.String()
}

func (b *Buffer) segment(text string, attr restyle.Attr) string {
	style := attr.Lipgloss().Inline(true)
	if b.background != "" {
		style = style.Background(lipgloss.Color(b.background))
	}
	// Style each line separately so newlines survive inline rendering.
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
