// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConverterConfig holds settings for the external document converter.
type ConverterConfig struct {
	// Bin is the converter executable. A bare name is resolved on PATH;
	// a path is used as given (default "pandoc").
	Bin string `json:"bin" yaml:"bin" mapstructure:"bin"`

	// Format is the output-format token passed after -t (default "beamer").
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Args are extra arguments inserted before -o (e.g. "--pdf-engine=xelatex").
	Args []string `json:"args,omitempty" yaml:"args,omitempty" mapstructure:"args"`

	// Timeout bounds a single converter run. Zero disables the deadline.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// RenderConfig holds settings for the render stage.
type RenderConfig struct {
	// TempFile is the fixed-name intermediate Markdown file, relative to the
	// working directory (default "temp_pres.md").
	TempFile string `json:"temp_file" yaml:"temp_file" mapstructure:"temp_file"`

	// Output is the normal deck destination (default
	// "postgresql_presentation.pdf"). Overwritten if it exists.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// SplitOutput is the split-notes deck destination (default
	// "postgresql_presentation_split.pdf"). Overwritten if it exists.
	SplitOutput string `json:"split_output" yaml:"split_output" mapstructure:"split_output"`

	// Template is an optional Markdown file replacing the embedded deck.
	Template string `json:"template,omitempty" yaml:"template,omitempty" mapstructure:"template"`
}

// Targets returns the targets of a full run: the normal deck, then the
// split-notes deck.
func (c RenderConfig) Targets() []Target {
	return []Target{
		{Output: c.Output, Mode: ModeNormal},
		{Output: c.SplitOutput, Mode: ModeSplitNotes},
	}
}

// NotesSide selects where beamer places presenter notes on the second screen.
type NotesSide string

const (
	NotesRight  NotesSide = "right"
	NotesLeft   NotesSide = "left"
	NotesBottom NotesSide = "bottom"
	NotesTop    NotesSide = "top"
)

// SplitConfig holds settings for the split-notes render mode.
type SplitConfig struct {
	// NotesSide places the notes relative to the slide (default right).
	NotesSide NotesSide `json:"notes_side" yaml:"notes_side" mapstructure:"notes_side"`

	// Directives replaces the generated header lines entirely when non-empty.
	Directives []string `json:"directives,omitempty" yaml:"directives,omitempty" mapstructure:"directives"`
}

// HistoryConfig holds settings for the optional render history ledger.
type HistoryConfig struct {
	// Enabled turns on recording of every render invocation.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default ".deckgen/history.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all deckgen settings.
type Config struct {
	Converter ConverterConfig `json:"converter" yaml:"converter" mapstructure:"converter"`
	Render    RenderConfig    `json:"render" yaml:"render" mapstructure:"render"`
	Split     SplitConfig     `json:"split" yaml:"split" mapstructure:"split"`
	History   HistoryConfig   `json:"history" yaml:"history" mapstructure:"history"`
}
