// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package m2c

import (
	"context"
	"fmt"
	"time"
)

// ContextGenerator runs m2ctx to regenerate the context file for a source
// file.
type ContextGenerator struct {
	Python     string        // Interpreter (default python3)
	ScriptPath string        // Path to m2ctx.py
	Dir        string        // Working directory
	Timeout    time.Duration // Budget for the run (default 2m)
}

// Generate runs m2ctx with source as its only argument. A nonzero exit is
// returned as an *ExitError; other failures are wrapped.
func (g *ContextGenerator) Generate(ctx context.Context, source string) error {
	c := runCommand(ctx, g.Dir, timeoutOrDefault(g.Timeout), orDefault(g.Python, defaultPython), g.ScriptPath, source)
	if c.err != nil {
		return fmt.Errorf("running m2ctx: %w", c.err)
	}
	if c.code != 0 {
		return &ExitError{Tool: "m2ctx", Code: c.code, Stdout: c.stdout, Stderr: c.stderr}
	}
	return nil
}
