// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deckgen/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded render invocations",
	Long: `History lists renders recorded with --record or history.enabled, newest
first, including the converter's error text for failed decks.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of records to list")
	historyCmd.Flags().Bool("json", false, "output records as JSON")
	historyCmd.Flags().Duration("prune", 0, "delete records older than this age before listing")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if age, _ := cmd.Flags().GetDuration("prune"); age > 0 {
		n, err := store.Prune(ctx, time.Now().Add(-age))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Pruned %d record(s)\n", n)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(ctx, limit)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return history.WriteJSON(out, records)
	}
	history.WriteTable(out, records)
	return nil
}
