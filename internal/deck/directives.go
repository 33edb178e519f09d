// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"fmt"

	"github.com/pdiddy/deckgen/pkg/types"
)

// SplitNotesDirectives returns the header-includes block that makes beamer
// emit each frame twice as wide, with the notes page on side. An empty side
// means right, which is where the presenter viewer expects the notes.
func SplitNotesDirectives(side types.NotesSide) ([]string, error) {
	switch side {
	case "":
		side = types.NotesRight
	case types.NotesRight, types.NotesLeft, types.NotesBottom, types.NotesTop:
	default:
		return nil, fmt.Errorf("unknown notes side %q (want right, left, bottom, or top)", side)
	}
	return []string{
		"header-includes:",
		` - \usepackage{pgfpages}`,
		fmt.Sprintf(` - \setbeameroption{show notes on second screen=%s}`, side),
	}, nil
}

// DirectivesFor resolves the directive lines for cfg: explicit lines win,
// otherwise the beamer block for the configured notes side.
func DirectivesFor(cfg types.SplitConfig) ([]string, error) {
	if len(cfg.Directives) > 0 {
		return cfg.Directives, nil
	}
	return SplitNotesDirectives(cfg.NotesSide)
}
