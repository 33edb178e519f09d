// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck assembles the Markdown document handed to the converter.
// It owns the deck template and derives one document per render mode by
// splicing header directives into the template's metadata block.
package deck

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deckgen/pkg/types"
)

// Marker delimits the metadata block at the top of a template.
const Marker = "---"

// ErrMalformedTemplate reports a template whose metadata block is not
// delimited by two markers.
var ErrMalformedTemplate = errors.New("template metadata block is not delimited by two markers")

//go:embed templates/postgresql.md
var defaultTemplate string

// DefaultTemplate returns the embedded PostgreSQL deck.
func DefaultTemplate() string {
	return defaultTemplate
}

// Assembler derives render-ready documents from a template. The template is
// fixed at construction and never modified.
type Assembler struct {
	template   string
	directives []string
}

// New returns an Assembler for template. directives are the lines injected
// into the metadata block in split-notes mode.
func New(template string, directives []string) *Assembler {
	d := make([]string, len(directives))
	copy(d, directives)
	return &Assembler{template: template, directives: d}
}

// Template returns the template the Assembler was built with.
func (a *Assembler) Template() string { return a.template }

// Directives returns a copy of the split-notes directive lines.
func (a *Assembler) Directives() []string {
	d := make([]string, len(a.directives))
	copy(d, a.directives)
	return d
}

// Assemble returns the document text for mode. Normal mode returns the
// template unchanged. Split-notes mode injects the directives before the
// closing marker; a malformed template is returned unchanged.
func (a *Assembler) Assemble(mode types.Mode) string {
	if mode != types.ModeSplitNotes {
		return a.template
	}
	doc, _ := Splice(a.template, a.directives)
	return doc
}

// Validate reports ErrMalformedTemplate when the template cannot be spliced.
func (a *Assembler) Validate() error {
	if _, _, _, ok := split(a.template); !ok {
		return ErrMalformedTemplate
	}
	return nil
}

// Meta decodes the template's metadata block.
func (a *Assembler) Meta() (types.DeckMeta, error) {
	var meta types.DeckMeta
	_, block, _, ok := split(a.template)
	if !ok {
		return meta, ErrMalformedTemplate
	}
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return meta, fmt.Errorf("parsing metadata block: %w", err)
	}
	return meta, nil
}

// Splice inserts lines into the metadata block of doc, immediately before the
// closing marker. Each line is newline-terminated. It returns doc unchanged
// and false when doc holds fewer than two markers.
func Splice(doc string, lines []string) (string, bool) {
	prefix, block, body, ok := split(doc)
	if !ok {
		return doc, false
	}

	var b strings.Builder
	b.Grow(len(doc) + len(lines)*64)
	b.WriteString(prefix)
	b.WriteString(Marker)
	b.WriteString(block)
	if len(lines) > 0 && !strings.HasSuffix(block, "\n") {
		b.WriteByte('\n')
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(Marker)
	b.WriteString(body)
	return b.String(), true
}

// split cuts doc into the text before the first marker, the metadata block
// between the first two markers, and everything after the second marker.
func split(doc string) (prefix, block, body string, ok bool) {
	parts := strings.SplitN(doc, Marker, 3)
	if len(parts) < 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
