// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package m2c drives the external tools of a decompilation: the m2c
// decompiler, run once per assembly fragment, and the m2ctx context
// generator, run once per source file.
package m2c

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

const (
	defaultPython  = "python3"
	defaultTimeout = 2 * time.Minute

	// waitDelay bounds how long a killed process may keep its output pipes
	// open through orphaned children.
	waitDelay = 5 * time.Second
)

// ExitError reports a tool that ran to completion with a nonzero status.
type ExitError struct {
	Tool   string
	Code   int
	Stdout string
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
}

// capture holds the result of one process run.
type capture struct {
	stdout string
	stderr string
	code   int
	err    error // Set when the process could not be run to completion
}

// runCommand executes name with args in dir under a timeout, capturing stdout
// and stderr separately. A nonzero exit is reported through code; spawn
// failures, timeouts and cancellation through err.
func runCommand(ctx context.Context, dir string, timeout time.Duration, name string, args ...string) capture {
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	c := capture{stdout: stdout.String(), stderr: stderr.String()}
	if err == nil {
		return c
	}

	switch {
	case ctx.Err() != nil:
		c.err = ctx.Err()
	case cmdCtx.Err() != nil:
		c.err = fmt.Errorf("timed out after %s", timeout)
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			c.code = exitErr.ExitCode()
			return c
		}
		c.err = err
	}
	return c
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultTimeout
	}
	return d
}
