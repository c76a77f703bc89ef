package restyle

// Range is a half-open byte span [Start, End) into a widget's full text.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// RichText is the capability interface the formatter styles against. Any
// widget that can report its text, take per-range style attributes, and scope
// an undo-suppressed, redraw-frozen update can be styled incrementally.
type RichText interface {
	// Value returns the widget's current full text.
	Value() string
	// ID returns a stable identity key used for per-widget caching. The
	// formatter never assumes anything about widget lifecycle; stale cache
	// entries for dead widgets are harmless.
	ID() string
	// BaseAttr returns the widget's base style, used as the fallback for
	// attributes a style entry leaves unset.
	BaseAttr() Attr
	// SetBackground sets the widget's global background color.
	SetBackground(color string)
	// SetStyle applies a resolved style over a half-open byte range.
	SetStyle(r Range, attr Attr)

	BeginSuppressUndo()
	EndSuppressUndo()
	Freeze()
	Thaw()
	// Refresh requests a visual update after a styling pass.
	Refresh()
}

// Notifier is implemented by widgets that emit text-change notifications.
// Bind requires it; Format does not.
type Notifier interface {
	// OnText registers a handler invoked synchronously after every text
	// change.
	OnText(fn func())
}
