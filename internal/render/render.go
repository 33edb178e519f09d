// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render persists an assembled deck, hands it to the converter, and
// reports the outcome. The intermediate Markdown file has a fixed name in the
// working directory and is removed on every exit path, so only one render
// may run per working directory at a time.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/pdiddy/deckgen/pkg/types"
)

// DefaultTempFile is the intermediate Markdown file handed to the converter.
const DefaultTempFile = "temp_pres.md"

// Converter turns the Markdown file at input into output.
type Converter interface {
	Convert(ctx context.Context, input, output string) error
}

// Assembler produces the document text for a render mode.
type Assembler interface {
	Assemble(mode types.Mode) string
}

// Recorder receives every render result.
type Recorder interface {
	Record(ctx context.Context, r Result) error
}

// Result holds the outcome of one render invocation.
type Result struct {
	Target    types.Target
	Status    types.RenderStatus
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// Succeeded reports whether the converter produced the output.
func (r Result) Succeeded() bool { return r.Status == types.RenderSucceeded }

// BatchResult holds the outcome of a run over several targets.
type BatchResult struct {
	Results   []Result
	Succeeded int
	Failed    int
}

// Total returns the number of targets attempted.
func (b BatchResult) Total() int { return b.Succeeded + b.Failed }

// HasFailures reports whether any target failed.
func (b BatchResult) HasFailures() bool { return b.Failed > 0 }

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
)

// Invoker runs single render invocations against a converter.
type Invoker struct {
	conv     Converter
	tempFile string
	w        io.Writer
	recorder Recorder
	now      func() time.Time
}

// New returns an Invoker that writes status lines to w.
func New(conv Converter, cfg types.RenderConfig, w io.Writer) *Invoker {
	tmp := cfg.TempFile
	if tmp == "" {
		tmp = DefaultTempFile
	}
	return &Invoker{conv: conv, tempFile: tmp, w: w, now: time.Now}
}

// WithRecorder attaches rec; every subsequent result is passed to it.
func (inv *Invoker) WithRecorder(rec Recorder) *Invoker {
	inv.recorder = rec
	return inv
}

// TempFile returns the path of the intermediate Markdown file.
func (inv *Invoker) TempFile() string { return inv.tempFile }

// Render writes doc to the temp file, converts it into output, and removes
// the temp file. It never returns an error: converter and filesystem
// failures are printed and carried in the Result.
func (inv *Invoker) Render(ctx context.Context, doc string, target types.Target) Result {
	res := Result{Target: target, StartedAt: inv.now()}
	err := inv.render(ctx, doc, target.Output)
	res.Duration = inv.now().Sub(res.StartedAt)

	if err != nil {
		res.Status = types.RenderFailed
		res.Err = err
		failColor.Fprintf(inv.w, "Error generating PDF: %v\n", err)
	} else {
		res.Status = types.RenderSucceeded
		okColor.Fprintln(inv.w, "Success!")
	}

	if inv.recorder != nil {
		if err := inv.recorder.Record(context.WithoutCancel(ctx), res); err != nil {
			warnColor.Fprintf(inv.w, "warning: recording render history: %v\n", err)
		}
	}
	return res
}

func (inv *Invoker) render(ctx context.Context, doc, output string) error {
	if output == "" {
		return errors.New("output file name is empty")
	}

	fmt.Fprintf(inv.w, "Generating %s...\n", output)

	if err := os.WriteFile(inv.tempFile, []byte(doc), 0o644); err != nil {
		inv.cleanup()
		return fmt.Errorf("writing %s: %w", inv.tempFile, err)
	}
	defer inv.cleanup()

	return inv.conv.Convert(ctx, inv.tempFile, output)
}

// cleanup removes the temp file if it exists.
func (inv *Invoker) cleanup() {
	if err := os.Remove(inv.tempFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		warnColor.Fprintf(inv.w, "warning: removing %s: %v\n", inv.tempFile, err)
	}
}

// RenderTargets assembles and renders each target in order, continuing past
// failures, and prints a summary.
func (inv *Invoker) RenderTargets(ctx context.Context, asm Assembler, targets []types.Target) BatchResult {
	var batch BatchResult
	for _, t := range targets {
		res := inv.Render(ctx, asm.Assemble(t.Mode), t)
		batch.Results = append(batch.Results, res)
		if res.Succeeded() {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}
	fmt.Fprintf(inv.w, "\nRender summary: %d succeeded, %d failed (total: %d)\n",
		batch.Succeeded, batch.Failed, batch.Total())
	return batch
}
