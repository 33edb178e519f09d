// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !unix

package pandoc

import "os/exec"

// killProcessGroup leaves the default cancellation in place; WaitDelay still
// bounds the wait on platforms without process groups.
func killProcessGroup(cmd *exec.Cmd) {}
