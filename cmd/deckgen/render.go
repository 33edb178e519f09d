// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deckgen/internal/history"
	"github.com/pdiddy/deckgen/internal/pandoc"
	"github.com/pdiddy/deckgen/internal/render"
	"github.com/pdiddy/deckgen/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the normal and split-notes PDF decks",
	Long: `Render writes the deck to a temporary Markdown file, runs the converter,
and removes the temporary file again. By default it produces both decks; use
--mode to render only one. A failed conversion is reported and the next deck
is still attempted.`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.String("mode", "", "render only one deck: normal or split")
	f.StringP("output", "o", "", "normal deck destination (default "+defaultOutput+")")
	f.String("split-output", "", "split-notes deck destination (default "+defaultSplitOutput+")")
	f.String("template", "", "Markdown template replacing the embedded deck")
	f.String("temp-file", "", "intermediate Markdown file (default "+render.DefaultTempFile+")")
	f.String("notes-side", "", "where split-notes pages place the notes: right, left, bottom, or top")
	f.StringSlice("converter-arg", nil, "extra converter argument (repeatable)")
	f.Bool("record", false, "record results in the render history")
	f.Bool("fail-on-error", false, "exit non-zero when any deck fails")

	mustBind("render.output", f.Lookup("output"))
	mustBind("render.split_output", f.Lookup("split-output"))
	mustBind("render.template", f.Lookup("template"))
	mustBind("render.temp_file", f.Lookup("temp-file"))
	mustBind("split.notes_side", f.Lookup("notes-side"))
	mustBind("converter.args", f.Lookup("converter-arg"))
	mustBind("history.enabled", f.Lookup("record"))

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	targets := cfg.Render.Targets()
	if m, _ := cmd.Flags().GetString("mode"); m != "" {
		mode, err := types.ParseMode(m)
		if err != nil {
			return err
		}
		targets = filterTargets(targets, mode)
	}

	asm, err := newAssembler(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if wantsSplit(targets) {
		if err := asm.Validate(); err != nil {
			color.New(color.FgYellow).Fprintf(out, "warning: %v; split-notes deck will match the normal deck\n", err)
		}
	}

	conv := pandoc.New(cfg.Converter).WithWarnings(out)
	inv := render.New(conv, cfg.Render, out)

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History)
		if err != nil {
			color.New(color.FgYellow).Fprintf(out, "warning: render history disabled: %v\n", err)
		} else {
			defer store.Close()
			inv.WithRecorder(store)
		}
	}

	batch := inv.RenderTargets(cmd.Context(), asm, targets)

	if batch.HasFailures() && !conv.Available() {
		fmt.Fprintf(cmd.ErrOrStderr(), "hint: %s was not found; install it or set converter.bin\n", conv.Name())
	}
	if failOnError, _ := cmd.Flags().GetBool("fail-on-error"); failOnError && batch.HasFailures() {
		return fmt.Errorf("%d deck(s) failed to render", batch.Failed)
	}
	return nil
}

// filterTargets keeps the targets rendered in mode.
func filterTargets(targets []types.Target, mode types.Mode) []types.Target {
	var kept []types.Target
	for _, t := range targets {
		if t.Mode == mode {
			kept = append(kept, t)
		}
	}
	return kept
}

func wantsSplit(targets []types.Target) bool {
	for _, t := range targets {
		if t.Mode == types.ModeSplitNotes {
			return true
		}
	}
	return false
}
