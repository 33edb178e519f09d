// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the deckgen CLI.
// deckgen renders the embedded slide deck to PDF through pandoc, once as a
// plain deck and once with presenter notes laid out for a second screen.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the deckgen CLI.
var rootCmd = &cobra.Command{
	Use:   "deckgen",
	Short: "Generate PDF slide decks from the embedded Markdown template",
	Long: `deckgen writes the slide deck template to a temporary Markdown file and
runs pandoc to produce beamer PDFs. A full run produces two decks: a normal
deck and a split-notes deck whose pages carry the presenter notes on a
second screen.

Configuration is read from ./deckgen.yaml or ~/.config/deckgen/config.yaml
and may be overridden with DECKGEN_* environment variables or flags.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./deckgen.yaml or ~/.config/deckgen/config.yaml)")
	pf.Bool("no-color", false, "disable coloured status output")
	pf.String("converter", "", "converter executable name or path (default pandoc)")
	pf.String("format", "", "converter output format passed after -t (default beamer)")
	pf.Duration("timeout", 0, "maximum time for one conversion (default 5m)")

	mustBind("converter.bin", pf.Lookup("converter"))
	mustBind("converter.format", pf.Lookup("format"))
	mustBind("converter.timeout", pf.Lookup("timeout"))
}

func initConfig() {
	setDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deckgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deckgen"))
		}
	}

	viper.SetEnvPrefix("DECKGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		color.New(color.FgYellow).Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfgFile, err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
