package restyle

// Unavailable is a RichText stand-in for a widget backend that could not be
// set up (no TTY, backend package not wired in). Integration code can hand it
// out at startup instead of failing at wiring time; every capability call
// then panics with a labeled ConfigurationError at first real use.
type Unavailable struct {
	Pkg     string // the backend or package that is missing
	Context string // the component that needed it
}

var (
	_ RichText = Unavailable{}
	_ Notifier = Unavailable{}
)

func (u Unavailable) fail() {
	panic(configErrorf("%s requires %s to be available", u.Context, u.Pkg))
}

func (u Unavailable) Value() string        { u.fail(); return "" }
func (u Unavailable) ID() string           { u.fail(); return "" }
func (u Unavailable) BaseAttr() Attr       { u.fail(); return Attr{} }
func (u Unavailable) SetBackground(string) { u.fail() }
func (u Unavailable) SetStyle(Range, Attr) { u.fail() }
func (u Unavailable) BeginSuppressUndo()   { u.fail() }
func (u Unavailable) EndSuppressUndo()     { u.fail() }
func (u Unavailable) Freeze()              { u.fail() }
func (u Unavailable) Thaw()                { u.fail() }
func (u Unavailable) Refresh()             { u.fail() }
func (u Unavailable) OnText(func())        { u.fail() }
