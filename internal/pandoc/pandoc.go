// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pandoc runs the external document converter that turns the
// assembled Markdown into a PDF slide deck.
package pandoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/pdiddy/deckgen/pkg/types"
)

const (
	// DefaultBin is the converter looked up on PATH when none is configured.
	DefaultBin = "pandoc"
	// DefaultFormat is the output-format token for PDF slide decks.
	DefaultFormat = "beamer"
	// DefaultTimeout bounds a single conversion.
	DefaultTimeout = 5 * time.Minute

	// waitDelay bounds how long Run waits for the output pipes once the
	// context is done or the converter has exited.
	waitDelay = 5 * time.Second
)

var warnColor = color.New(color.FgYellow)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)
	return cmd.Run()
}

var defaultExec = &osExecutor{}

// Converter invokes the converter binary with a fixed output format.
type Converter struct {
	bin     string
	format  string
	args    []string
	timeout time.Duration
	exec    executor
	warn    io.Writer
}

// New returns a Converter for cfg, filling in defaults for empty fields.
func New(cfg types.ConverterConfig) *Converter {
	return newConverter(cfg, defaultExec)
}

func newConverter(cfg types.ConverterConfig, exec executor) *Converter {
	c := &Converter{
		bin:     cfg.Bin,
		format:  cfg.Format,
		args:    append([]string(nil), cfg.Args...),
		timeout: cfg.Timeout,
		exec:    exec,
	}
	if c.bin == "" {
		c.bin = DefaultBin
	}
	if c.format == "" {
		c.format = DefaultFormat
	}
	if c.timeout < 0 {
		c.timeout = 0
	}
	return c
}

// WithWarnings sets w to receive the converter's diagnostics from runs that
// succeed. Without it they are dropped.
func (c *Converter) WithWarnings(w io.Writer) *Converter {
	c.warn = w
	return c
}

// Name returns the configured converter binary.
func (c *Converter) Name() string { return c.bin }

// Format returns the output-format token passed after -t.
func (c *Converter) Format() string { return c.format }

// Available reports whether the converter binary can be found.
func (c *Converter) Available() bool {
	_, err := c.exec.LookPath(c.bin)
	return err == nil
}

// Version returns the first line of the converter's --version output,
// bounded by the same timeout as a conversion.
func (c *Converter) Version(ctx context.Context) (string, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	var out, errOut bytes.Buffer
	if err := c.exec.Run(ctx, c.bin, []string{"--version"}, &out, &errOut); err != nil {
		return "", c.wrap(ctx, err, errOut.String(), out.String())
	}
	line, _, _ := strings.Cut(out.String(), "\n")
	return strings.TrimSpace(line), nil
}

// Args returns the argument list for converting input into output:
// input -t format [extra args...] -o output.
func (c *Converter) Args(input, output string) []string {
	args := make([]string, 0, len(c.args)+5)
	args = append(args, input, "-t", c.format)
	args = append(args, c.args...)
	args = append(args, "-o", output)
	return args
}

// Convert runs the converter on input and writes output. It blocks until the
// child process exits, the timeout elapses, or ctx is cancelled. A non-zero
// exit is returned as an error carrying the converter's stderr and stdout.
func (c *Converter) Convert(ctx context.Context, input, output string) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	var stdout, stderr bytes.Buffer
	if err := c.exec.Run(ctx, c.bin, c.Args(input, output), &stdout, &stderr); err != nil {
		return c.wrap(ctx, err, stderr.String(), stdout.String())
	}
	c.warnings(stderr.String())
	return nil
}

// bound applies the configured timeout to ctx.
func (c *Converter) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

// warnings forwards diagnostics from a successful run, one line each.
func (c *Converter) warnings(stderr string) {
	if c.warn == nil {
		return
	}
	name := filepath.Base(c.bin)
	for line := range strings.Lines(strings.TrimSpace(stderr)) {
		if line = strings.TrimSpace(line); line != "" {
			warnColor.Fprintf(c.warn, "warning: %s: %s\n", name, line)
		}
	}
}

func (c *Converter) wrap(ctx context.Context, err error, stderr, stdout string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && c.timeout > 0 {
			return fmt.Errorf("%s timed out after %s: %w", c.bin, c.timeout, ctxErr)
		}
		return fmt.Errorf("%s interrupted: %w", c.bin, ctxErr)
	}
	var detail []string
	for _, s := range []string{stderr, stdout} {
		if s = strings.TrimSpace(s); s != "" {
			detail = append(detail, s)
		}
	}
	if len(detail) == 0 {
		return fmt.Errorf("running %s: %w", c.bin, err)
	}
	return fmt.Errorf("running %s: %w: %s", c.bin, err, strings.Join(detail, "\n"))
}
