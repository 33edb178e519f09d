// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deckgen/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the assembled deck document or its metadata",
	Long: `Show prints the exact Markdown document that render would hand to the
converter, normal or split-notes, without running the converter. With --meta it
prints the decoded metadata block instead.`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().Bool("split", false, "print the split-notes document instead of the normal one")
	showCmd.Flags().Bool("meta", false, "print the metadata block instead of the document")
	showCmd.Flags().Bool("json", false, "with --meta, print JSON instead of YAML")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	asm, err := newAssembler(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if meta, _ := cmd.Flags().GetBool("meta"); meta {
		m, err := asm.Meta()
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return writeMeta(out, m, asJSON)
	}

	split, _ := cmd.Flags().GetBool("split")
	_, err = io.WriteString(out, asm.Assemble(types.ModeFor(split)))
	return err
}

func writeMeta(w io.Writer, m types.DeckMeta, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	_, err = w.Write(data)
	return err
}
