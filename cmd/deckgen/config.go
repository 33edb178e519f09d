// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/deckgen/internal/deck"
	"github.com/pdiddy/deckgen/internal/history"
	"github.com/pdiddy/deckgen/internal/pandoc"
	"github.com/pdiddy/deckgen/internal/render"
	"github.com/pdiddy/deckgen/pkg/types"
)

const (
	defaultOutput      = "postgresql_presentation.pdf"
	defaultSplitOutput = "postgresql_presentation_split.pdf"
)

// setDefaults registers every configuration key so environment overrides
// reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("converter.bin", pandoc.DefaultBin)
	v.SetDefault("converter.format", pandoc.DefaultFormat)
	v.SetDefault("converter.args", []string{})
	v.SetDefault("converter.timeout", pandoc.DefaultTimeout)
	v.SetDefault("render.temp_file", render.DefaultTempFile)
	v.SetDefault("render.output", defaultOutput)
	v.SetDefault("render.split_output", defaultSplitOutput)
	v.SetDefault("render.template", "")
	v.SetDefault("split.notes_side", string(types.NotesRight))
	v.SetDefault("split.directives", []string{})
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", history.DefaultPath)
}

// loadConfig decodes the merged configuration (defaults, file, env, flags).
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// mustBind binds a flag to a configuration key. Binding only fails for a nil
// flag, which is a programming error.
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

// newAssembler builds the document assembler from the configured template
// and split-notes settings.
func newAssembler(cfg types.Config) (*deck.Assembler, error) {
	tmpl := deck.DefaultTemplate()
	if cfg.Render.Template != "" {
		data, err := os.ReadFile(cfg.Render.Template)
		if err != nil {
			return nil, fmt.Errorf("reading template: %w", err)
		}
		tmpl = string(data)
	}

	directives, err := deck.DirectivesFor(cfg.Split)
	if err != nil {
		return nil, err
	}
	return deck.New(tmpl, directives), nil
}
