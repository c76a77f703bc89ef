package restyle

import "sort"

// Names the incremental formatter is registered under. Both aliases resolve
// to the same factory.
const (
	NameRTC      = "rtc"
	NameRichText = "richtext"
)

// Factory constructs a formatter from a style reference and options.
type Factory func(style any, opts ...Option) (*Formatter, error)

var registry = map[string]Factory{}

func register(factory Factory, names ...string) {
	for _, name := range names {
		registry[name] = factory
	}
}

// Lookup resolves a registered formatter factory by name. Returns a
// ConfigurationError for an unknown name.
func Lookup(name string) (Factory, error) {
	if factory, ok := registry[name]; ok {
		return factory, nil
	}
	return nil, configErrorf("unknown formatter %q", name)
}

// Names returns the registered formatter names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	register(New, NameRTC, NameRichText)
}
