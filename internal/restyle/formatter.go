// Package restyle applies chroma syntax-highlighting styles to a rich-text
// widget incrementally. Each Format call caches the widget's full text, so a
// later call only restyles spans whose backing text changed since the last
// pass. That makes Format cheap enough to run on every keystroke.
package restyle

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/zjrosen/restyle/internal/cachemanager"
	"github.com/zjrosen/restyle/internal/log"
)

// DefaultStyle is the style used when a formatter is constructed without one.
const DefaultStyle = "vs"

// Option configures a Formatter.
type Option func(*Formatter)

// WithTextCacheTTL bounds how long a widget's last-rendered text is kept.
// Expiry only costs a full restyle on the next Format call for that widget.
// The default keeps entries until the style changes.
func WithTextCacheTTL(ttl, cleanupInterval time.Duration) Option {
	return func(f *Formatter) {
		f.ttl = ttl
		f.cleanupInterval = cleanupInterval
	}
}

// Formatter applies a chroma style to RichText widgets. It keeps two caches:
// resolved attrs per token type, and the last text rendered per widget
// identity. Both are flushed together, and only, when the active style is
// replaced.
//
// The formatter is synchronous and does no locking; callers styling one
// widget from multiple goroutines must serialize Format calls themselves.
type Formatter struct {
	style           *chroma.Style
	attrs           map[chroma.TokenType]Attr
	lastText        cachemanager.Manager[string, string]
	ttl             time.Duration
	cleanupInterval time.Duration
}

// New creates a formatter for the given style, which may be a *chroma.Style
// or the name of a registered one. Returns a ConfigurationError for an
// unresolvable name or a value of the wrong type.
func New(style any, opts ...Option) (*Formatter, error) {
	f := &Formatter{
		attrs:           make(map[chroma.TokenType]Attr),
		ttl:             cachemanager.NoExpiration,
		cleanupInterval: cachemanager.DefaultCleanupInterval,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.lastText = cachemanager.NewInMemory[string, string]("last-text", f.ttl, f.cleanupInterval)

	if style == nil {
		style = DefaultStyle
	}
	if err := f.SetStyle(style); err != nil {
		return nil, err
	}
	return f, nil
}

// Style returns the style currently in effect.
func (f *Formatter) Style() *chroma.Style {
	return f.style
}

// SetStyle replaces the active style. Accepts a *chroma.Style or a registered
// style name. When the resolved style differs from the current one, both the
// attr cache and the last-text cache are flushed in one step before the new
// style is stored; resolved attrs are only valid for the style they were
// derived from.
func (f *Formatter) SetStyle(style any) error {
	resolved, err := lookupStyle(style)
	if err != nil {
		return err
	}
	if resolved != f.style {
		f.attrs = make(map[chroma.TokenType]Attr)
		f.lastText.Flush()
		f.style = resolved
		log.Debug(log.CatFormat, "style changed, caches flushed", "style", resolved.Name)
	}
	return nil
}

func lookupStyle(style any) (*chroma.Style, error) {
	switch v := style.(type) {
	case *chroma.Style:
		if v == nil {
			return nil, configErrorf("style must not be nil")
		}
		return v, nil
	case string:
		if s, ok := styles.Registry[v]; ok {
			return s, nil
		}
		return nil, configErrorf("unknown style %q", v)
	default:
		return nil, configErrorf("expected a *chroma.Style or a style name, got %T", style)
	}
}

// Format walks the token stream and applies resolved styles to the widget in
// one undo-suppressed, redraw-frozen pass. A span is restyled if and only if
// the widget text at its byte range differs from what was last rendered
// there, or no (long enough) last-rendered text is cached. The comparison is
// by absolute offset against the previously cached full string, so an edit
// that shifts token boundaries restyles everything after the edit point: the
// formatter may over-style after such edits but never under-styles.
//
// The undo/freeze scope is released on every exit path. On success the
// widget's current text is stored for the next call and a refresh is
// requested after the scope is released. On a malformed stream (values that
// do not reconstruct the widget text) Format returns ErrStreamMismatch and
// leaves the last-text cache untouched; partially applied styling is
// corrected by the next successful call.
func (f *Formatter) Format(tokens chroma.Iterator, w RichText) error {
	w.BeginSuppressUndo()
	w.Freeze()
	released := false
	release := func() {
		if released {
			return
		}
		released = true
		w.EndSuppressUndo()
		w.Thaw()
	}
	defer release()

	if bg := f.style.Get(chroma.Background).Background; bg.IsSet() {
		w.SetBackground(bg.String())
	}

	current := w.Value()
	last, _ := f.lastText.Get(w.ID())
	base := w.BaseAttr()

	offset := 0
	applied := 0
	skipped := 0
	for tok := tokens(); tok != chroma.EOF; tok = tokens() {
		start, end := offset, offset+len(tok.Value)
		offset = end
		if end > len(current) || current[start:end] != tok.Value {
			return fmt.Errorf("%w: token %s at [%d,%d)", ErrStreamMismatch, tok.Type, start, end)
		}
		if len(last) >= end && current[start:end] == last[start:end] {
			skipped++
			continue
		}
		w.SetStyle(Range{Start: start, End: end}, f.resolve(tok.Type, base))
		applied++
	}
	if offset != len(current) {
		return fmt.Errorf("%w: tokens cover %d of %d bytes", ErrStreamMismatch, offset, len(current))
	}

	f.lastText.Set(w.ID(), current, f.ttl)
	log.Debug(log.CatFormat, "format complete",
		"widget", w.ID(), "applied", applied, "skipped", skipped)

	release()
	w.Refresh()
	return nil
}

// resolve returns the attr for a token type under the active style, derived
// once and cached until the style changes. Attributes the style entry leaves
// unset keep the base attr's values; chroma carries no font family
// information, so the family hint always falls through from the base.
func (f *Formatter) resolve(token chroma.TokenType, base Attr) Attr {
	if attr, ok := f.attrs[token]; ok {
		return attr
	}

	entry := f.style.Get(token)
	attr := base
	switch entry.Bold {
	case chroma.Yes:
		attr.Bold = true
	case chroma.No:
		attr.Bold = false
	}
	switch entry.Italic {
	case chroma.Yes:
		attr.Italic = true
	case chroma.No:
		attr.Italic = false
	}
	switch entry.Underline {
	case chroma.Yes:
		attr.Underline = true
	case chroma.No:
		attr.Underline = false
	}
	if entry.Colour.IsSet() {
		attr.Foreground = entry.Colour.String()
	}

	f.attrs[token] = attr
	return attr
}

// Apply lexes the widget's full current text and formats it once. The lexer
// may be a chroma.Lexer or a registered lexer name.
func (f *Formatter) Apply(w RichText, lexer any) error {
	lx, err := lookupLexer(lexer)
	if err != nil {
		return err
	}
	return f.apply(w, chroma.Coalesce(lx))
}

func (f *Formatter) apply(w RichText, lx chroma.Lexer) error {
	text := w.Value()
	it, err := lx.Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("lexing widget text: %w", err)
	}
	return f.Format(trimEnsuredNewline(it.Tokens(), text), w)
}

// Bind wires the formatter to a widget's text-change notifications: on every
// change the widget's full text is re-lexed and formatted. The lexer may be a
// chroma.Lexer or a registered lexer name. The handler runs once immediately
// for the initial styling pass; that first pass propagates errors, later
// handler errors are logged since the notification path has no caller to
// return them to.
func (f *Formatter) Bind(w RichText, lexer any) error {
	lx, err := lookupLexer(lexer)
	if err != nil {
		return err
	}
	lx = chroma.Coalesce(lx)

	notifier, ok := w.(Notifier)
	if !ok {
		return configErrorf("widget %T does not emit text-change notifications", w)
	}

	notifier.OnText(func() {
		if err := f.apply(w, lx); err != nil {
			log.ErrorErr(log.CatFormat, "restyle on text change failed", err, "widget", w.ID())
		}
	})
	return f.apply(w, lx)
}

func lookupLexer(lexer any) (chroma.Lexer, error) {
	switch v := lexer.(type) {
	case chroma.Lexer:
		if v == nil {
			return nil, configErrorf("lexer must not be nil")
		}
		return v, nil
	case string:
		if lx := lexers.Get(v); lx != nil {
			return lx, nil
		}
		return nil, configErrorf("unknown lexer %q", v)
	default:
		return nil, configErrorf("expected a chroma.Lexer or a lexer name, got %T", lexer)
	}
}

// trimEnsuredNewline drops the newline some chroma lexers append to
// unterminated input, which would otherwise make the stream one byte longer
// than the widget's text.
func trimEnsuredNewline(toks []chroma.Token, text string) chroma.Iterator {
	total := 0
	for _, t := range toks {
		total += len(t.Value)
	}
	if total == len(text)+1 && len(toks) > 0 {
		last := &toks[len(toks)-1]
		if strings.HasSuffix(last.Value, "\n") && !strings.HasSuffix(text, "\n") {
			last.Value = last.Value[:len(last.Value)-1]
			if last.Value == "" {
				toks = toks[:len(toks)-1]
			}
		}
	}
	return chroma.Literator(toks...)
}
