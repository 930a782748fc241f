// Package render turns normalized analysis sections and markdown text into
// terminal output.
package render

// Options configures the markdown renderer behavior.
type Options struct {
	// Width defines the maximum output width (default: 80)
	Width int

	// Style defines the glamour theme: "dark", "light", "auto", or a path
	// to a JSON style file
	Style string
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width: 80,
		Style: "dark",
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}
