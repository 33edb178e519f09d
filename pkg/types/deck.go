// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for deckgen: render modes,
// targets, results, and configuration.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how a deck is rendered.
type Mode string

const (
	// ModeNormal renders the template unchanged.
	ModeNormal Mode = "normal"
	// ModeSplitNotes injects header directives that place presenter notes
	// on a second screen.
	ModeSplitNotes Mode = "split"
)

// ParseMode converts a flag or config value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeNormal:
		return ModeNormal, nil
	case ModeSplitNotes, "split-notes", "splitnotes":
		return ModeSplitNotes, nil
	}
	return "", fmt.Errorf("unknown render mode %q (want normal or split)", s)
}

// ModeFor maps the boolean split switch onto a Mode.
func ModeFor(split bool) Mode {
	if split {
		return ModeSplitNotes
	}
	return ModeNormal
}

// DeckMeta holds the metadata block at the top of a deck template.
type DeckMeta struct {
	Title       string `json:"title" yaml:"title"`
	Author      string `json:"author" yaml:"author"`
	Date        string `json:"date" yaml:"date"`
	Theme       string `json:"theme,omitempty" yaml:"theme,omitempty"`
	AspectRatio int    `json:"aspectratio,omitempty" yaml:"aspectratio,omitempty"`
}

// Target names one output file and the mode used to produce it.
type Target struct {
	Output string `json:"output" yaml:"output"`
	Mode   Mode   `json:"mode" yaml:"mode"`
}

// RenderStatus tracks the outcome of a single render invocation.
type RenderStatus string

const (
	RenderSucceeded RenderStatus = "succeeded"
	RenderFailed    RenderStatus = "failed"
)

// RenderRecord is one row of the render history ledger.
type RenderRecord struct {
	ID        int64         `json:"id"`
	Output    string        `json:"output"`
	Mode      Mode          `json:"mode"`
	Status    RenderStatus  `json:"status"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}
