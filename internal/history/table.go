// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/pdiddy/deckgen/pkg/types"
)

// WriteTable prints records as an aligned table.
func WriteTable(w io.Writer, records []types.RenderRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No renders recorded.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Started", "Output", "Mode", "Status", "Duration", "Error"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, r := range records {
		table.Append([]string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Local().Format(time.DateTime),
			r.Output,
			string(r.Mode),
			string(r.Status),
			r.Duration.Round(time.Millisecond).String(),
			firstLine(r.Error),
		})
	}
	table.Render()
}

// WriteJSON prints records as an indented JSON array.
func WriteJSON(w io.Writer, records []types.RenderRecord) error {
	if records == nil {
		records = []types.RenderRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// firstLine trims converter output to its first line for table display.
func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
