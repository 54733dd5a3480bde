package buffer

// Option configures a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the line ending style reported by the buffer.
// Content is always stored LF-normalized; the style is applied on save.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithTabWidth sets the buffer's tab width.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}
