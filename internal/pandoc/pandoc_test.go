// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/deckgen/pkg/types"
)

func init() {
	color.NoColor = true
}

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool
	runFunc       func(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error

	gotName string
	gotArgs []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	m.gotName = name
	m.gotArgs = args
	if m.runFunc != nil {
		return m.runFunc(ctx, name, args, stdout, stderr)
	}
	return nil
}

func TestNewDefaults(t *testing.T) {
	c := New(types.ConverterConfig{})
	assert.Equal(t, "pandoc", c.Name())
	assert.Equal(t, "beamer", c.Format())
	assert.Equal(t, time.Duration(0), c.timeout)

	c = New(types.ConverterConfig{Bin: "/opt/pandoc/bin/pandoc", Format: "revealjs", Timeout: -time.Second})
	assert.Equal(t, "/opt/pandoc/bin/pandoc", c.Name())
	assert.Equal(t, "revealjs", c.Format())
	assert.Equal(t, time.Duration(0), c.timeout)
}

func TestArgs(t *testing.T) {
	tests := []struct {
		name  string
		extra []string
		want  []string
	}{
		{
			name: "plain",
			want: []string{"temp_pres.md", "-t", "beamer", "-o", "deck.pdf"},
		},
		{
			name:  "extra args before output",
			extra: []string{"--pdf-engine=xelatex"},
			want:  []string{"temp_pres.md", "-t", "beamer", "--pdf-engine=xelatex", "-o", "deck.pdf"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConverter(types.ConverterConfig{Args: tt.extra}, &mockExecutor{})
			assert.Equal(t, tt.want, c.Args("temp_pres.md", "deck.pdf"))
		})
	}
}

func TestAvailable(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"pandoc": true}}
	assert.True(t, newConverter(types.ConverterConfig{}, exec).Available())
	assert.False(t, newConverter(types.ConverterConfig{Bin: "missing"}, exec).Available())
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		runFunc func(context.Context, string, []string, io.Writer, io.Writer) error
		wantErr string
	}{
		{
			name: "success",
		},
		{
			name: "non-zero exit carries stderr",
			runFunc: func(_ context.Context, _ string, _ []string, _, stderr io.Writer) error {
				_, _ = io.WriteString(stderr, "Error producing PDF.\n! LaTeX Error: File `pgfpages.sty' not found.\n")
				return errors.New("exit status 43")
			},
			wantErr: "LaTeX Error: File `pgfpages.sty' not found.",
		},
		{
			name: "non-zero exit carries stdout",
			runFunc: func(_ context.Context, _ string, _ []string, stdout, _ io.Writer) error {
				_, _ = io.WriteString(stdout, "Unknown output format beamerx\n")
				return errors.New("exit status 22")
			},
			wantErr: "running pandoc: exit status 22: Unknown output format beamerx",
		},
		{
			name: "non-zero exit without stderr",
			runFunc: func(context.Context, string, []string, io.Writer, io.Writer) error {
				return errors.New("exit status 1")
			},
			wantErr: "running pandoc: exit status 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{runFunc: tt.runFunc}
			c := newConverter(types.ConverterConfig{}, exec)
			err := c.Convert(context.Background(), "in.md", "out.pdf")
			assert.Equal(t, "pandoc", exec.gotName)
			assert.Equal(t, []string{"in.md", "-t", "beamer", "-o", "out.pdf"}, exec.gotArgs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConvertTimeout(t *testing.T) {
	exec := &mockExecutor{
		runFunc: func(ctx context.Context, _ string, _ []string, _, _ io.Writer) error {
			<-ctx.Done()
			return errors.New("signal: killed")
		},
	}
	c := newConverter(types.ConverterConfig{Timeout: 10 * time.Millisecond}, exec)
	err := c.Convert(context.Background(), "in.md", "out.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out after 10ms")
}

func TestConvertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &mockExecutor{
		runFunc: func(ctx context.Context, _ string, _ []string, _, _ io.Writer) error {
			return ctx.Err()
		},
	}
	err := newConverter(types.ConverterConfig{}, exec).Convert(ctx, "in.md", "out.pdf")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "interrupted")
}

func TestConvertForwardsWarningsOnSuccess(t *testing.T) {
	exec := &mockExecutor{
		runFunc: func(_ context.Context, _ string, _ []string, _, stderr io.Writer) error {
			_, _ = io.WriteString(stderr, "[WARNING] Could not fetch resource diagram.png\n\nOverfull \\hbox in paragraph\n")
			return nil
		},
	}
	var warn bytes.Buffer
	c := newConverter(types.ConverterConfig{}, exec).WithWarnings(&warn)

	require.NoError(t, c.Convert(context.Background(), "in.md", "out.pdf"))
	assert.Equal(t,
		"warning: pandoc: [WARNING] Could not fetch resource diagram.png\n"+
			"warning: pandoc: Overfull \\hbox in paragraph\n",
		warn.String())
}

func TestConvertWarningsNotForwardedOnFailure(t *testing.T) {
	exec := &mockExecutor{
		runFunc: func(_ context.Context, _ string, _ []string, _, stderr io.Writer) error {
			_, _ = io.WriteString(stderr, "Error producing PDF.\n")
			return errors.New("exit status 43")
		},
	}
	var warn bytes.Buffer
	err := newConverter(types.ConverterConfig{}, exec).WithWarnings(&warn).Convert(context.Background(), "in.md", "out.pdf")
	require.Error(t, err)
	assert.Empty(t, warn.String())
}

func TestVersionTimeout(t *testing.T) {
	exec := &mockExecutor{
		runFunc: func(ctx context.Context, _ string, _ []string, _, _ io.Writer) error {
			<-ctx.Done()
			return errors.New("signal: killed")
		},
	}
	_, err := newConverter(types.ConverterConfig{Timeout: 10 * time.Millisecond}, exec).Version(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestVersion(t *testing.T) {
	exec := &mockExecutor{
		runFunc: func(_ context.Context, _ string, args []string, stdout, _ io.Writer) error {
			if len(args) != 1 || args[0] != "--version" {
				return errors.New("unexpected args")
			}
			_, _ = io.WriteString(stdout, "pandoc 3.1.11\nFeatures: +server +lua\n")
			return nil
		},
	}
	v, err := newConverter(types.ConverterConfig{}, exec).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pandoc 3.1.11", v)
}

// writeStub writes an executable shell script standing in for pandoc.
func writeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-pandoc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestConvertWithStubProcess(t *testing.T) {
	t.Run("stub writes output", func(t *testing.T) {
		stub := writeStub(t, `while [ "$1" != "-o" ]; do shift; done; echo pdf > "$2"`+"\n")
		out := filepath.Join(t.TempDir(), "deck.pdf")

		c := New(types.ConverterConfig{Bin: stub})
		require.True(t, c.Available())
		require.NoError(t, c.Convert(context.Background(), "in.md", out))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "pdf\n", string(data))
	})

	t.Run("stub exits non-zero", func(t *testing.T) {
		stub := writeStub(t, "echo 'pandoc: in.md: openFile: does not exist' >&2\nexit 1\n")

		err := New(types.ConverterConfig{Bin: stub}).Convert(context.Background(), "in.md", "out.pdf")
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "openFile: does not exist"), err.Error())
		assert.Contains(t, err.Error(), "exit status 1")
	})

	t.Run("stub reports its error on stdout", func(t *testing.T) {
		stub := writeStub(t, "echo 'Unknown output format beamerx'\nexit 1\n")

		err := New(types.ConverterConfig{Bin: stub}).Convert(context.Background(), "in.md", "out.pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown output format beamerx")
	})

	t.Run("stub warnings reach the status writer", func(t *testing.T) {
		stub := writeStub(t, `echo '[WARNING] Missing character: There is no x in font' >&2
while [ "$1" != "-o" ]; do shift; done; echo pdf > "$2"
`)
		out := filepath.Join(t.TempDir(), "deck.pdf")
		var warn bytes.Buffer

		require.NoError(t, New(types.ConverterConfig{Bin: stub}).WithWarnings(&warn).Convert(context.Background(), "in.md", out))
		assert.Equal(t, "warning: fake-pandoc: [WARNING] Missing character: There is no x in font\n", warn.String())
	})
}

func TestConvertTimeoutStopsStubProcess(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "hung converter", body: "sleep 6\n"},
		// The grandchild inherits the output pipes, as LaTeX does under pandoc.
		{name: "hung grandchild", body: "sleep 6 &\nwait\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := writeStub(t, tt.body)
			c := New(types.ConverterConfig{Bin: stub, Timeout: 200 * time.Millisecond})

			start := time.Now()
			err := c.Convert(context.Background(), "in.md", "out.pdf")
			elapsed := time.Since(start)

			require.Error(t, err)
			assert.ErrorIs(t, err, context.DeadlineExceeded)
			assert.Less(t, elapsed, 3*time.Second, "conversion must stop soon after the timeout")
		})
	}
}

func TestConvertCancelStopsStubProcess(t *testing.T) {
	stub := writeStub(t, "sleep 6 &\nwait\n")
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	err := New(types.ConverterConfig{Bin: stub}).Convert(ctx, "in.md", "out.pdf")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "interrupted")
	assert.Less(t, time.Since(start), 3*time.Second)
}
