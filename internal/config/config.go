package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/AlanLynn/lineclip/internal/engine/buffer"
)

// Validation errors.
var (
	ErrInvalidTabWidth   = errors.New("tab width must be between 1 and 16")
	ErrInvalidLineEnding = errors.New("line ending must be lf, crlf, or cr")
)

// Config holds all settings.
type Config struct {
	Editor    EditorConfig    `toml:"editor"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// EditorConfig controls buffer behavior.
type EditorConfig struct {
	// TabWidth is the display width of a tab character.
	TabWidth int `toml:"tab_width"`

	// LineEnding selects the line ending style: "lf", "crlf", or "cr".
	// Content is normalized to LF internally either way; this controls
	// what a host writes back out.
	LineEnding string `toml:"line_ending"`
}

// ClipboardConfig controls clipboard behavior.
type ClipboardConfig struct {
	// UseSystem selects the host clipboard instead of an in-process
	// register.
	UseSystem bool `toml:"use_system"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth:   4,
			LineEnding: "lf",
		},
		Clipboard: ClipboardConfig{
			UseSystem: true,
		},
	}
}

// Load reads configuration from a TOML file, filling unset fields with
// defaults. A missing file is not an error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that all settings are usable.
func (c Config) Validate() error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("%w: got %d", ErrInvalidTabWidth, c.Editor.TabWidth)
	}
	switch c.Editor.LineEnding {
	case "lf", "crlf", "cr":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLineEnding, c.Editor.LineEnding)
	}
	return nil
}

// BufferOptions translates editor settings into buffer options.
func (c EditorConfig) BufferOptions() []buffer.Option {
	ending := buffer.LineEndingLF
	switch c.LineEnding {
	case "crlf":
		ending = buffer.LineEndingCRLF
	case "cr":
		ending = buffer.LineEndingCR
	}
	return []buffer.Option{
		buffer.WithTabWidth(c.TabWidth),
		buffer.WithLineEnding(ending),
	}
}
