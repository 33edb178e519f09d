// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deckgen/internal/pandoc"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the converter and template are usable",
	Long: `Check reports whether the configured converter can be found and run, and
whether the deck template has a well-formed metadata block for the
split-notes deck.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	problems := 0

	conv := pandoc.New(cfg.Converter)
	if !conv.Available() {
		bad.Fprintf(out, "converter: %s not found\n", conv.Name())
		problems++
	} else if v, err := conv.Version(cmd.Context()); err != nil {
		bad.Fprintf(out, "converter: %v\n", err)
		problems++
	} else {
		ok.Fprintf(out, "converter: %s (format %s)\n", v, conv.Format())
	}

	asm, err := newAssembler(cfg)
	if err != nil {
		return err
	}
	if err := asm.Validate(); err != nil {
		bad.Fprintf(out, "template: %v\n", err)
		problems++
	} else if meta, err := asm.Meta(); err != nil {
		bad.Fprintf(out, "template: %v\n", err)
		problems++
	} else {
		ok.Fprintf(out, "template: %q by %s\n", meta.Title, meta.Author)
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	return nil
}
