// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build unix

package pandoc

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// killProcessGroup starts the converter in its own process group and kills
// the whole group on cancellation, so LaTeX children spawned by pandoc do
// not outlive it.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}
