// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package m2c

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/decomper/pkg/types"
)

const (
	// DefaultWorkers bounds the number of concurrent m2c processes.
	DefaultWorkers = 4
	// DefaultTarget is the m2c target for IDO-compiled MIPS code.
	DefaultTarget = "mips-ido"
)

// Runner invokes m2c for a list of fragments.
type Runner struct {
	Python      string        // Interpreter used to launch m2c (default python3)
	M2CPath     string        // Path to m2c.py
	ContextPath string        // Context file passed with --context
	Target      string        // --target value (default mips-ido)
	Dir         string        // Working directory; fragment paths are relative to it
	Workers     int           // Concurrent invocations (default 4)
	Timeout     time.Duration // Per-invocation budget (default 2m)
	Logger      *zap.Logger
}

// Args returns the m2c argument list for fragment, excluding the
// interpreter.
func (r *Runner) Args(fragment string) []string {
	return []string{
		r.M2CPath,
		"--indent-switch-contents",
		"-P", "10",
		"--context", r.ContextPath,
		"--target", orDefault(r.Target, DefaultTarget),
		fragment,
	}
}

// RunAll decompiles every fragment with at most Workers invocations in
// flight and returns one outcome per distinct fragment, keyed by fragment
// path. A failing or hung invocation never affects its siblings: it is
// recorded as a failed outcome and the rest continue.
func (r *Runner) RunAll(ctx context.Context, fragments []string) map[string]types.Outcome {
	fragments = distinct(fragments)
	outcomes := make([]types.Outcome, len(fragments))

	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, frag := range fragments {
		g.Go(func() error {
			outcomes[i] = r.Run(ctx, frag)
			return nil
		})
	}
	_ = g.Wait() // Tasks never fail; errors are carried in the outcomes.

	results := make(map[string]types.Outcome, len(outcomes))
	for _, o := range outcomes {
		results[o.Fragment] = o
	}
	return results
}

// Run decompiles a single fragment.
func (r *Runner) Run(ctx context.Context, fragment string) types.Outcome {
	log := r.logger()
	log.Info("running m2c", zap.String("fragment", fragment))

	c := runCommand(ctx, r.Dir, timeoutOrDefault(r.Timeout), orDefault(r.Python, defaultPython), r.Args(fragment)...)
	out := types.Outcome{
		Fragment: fragment,
		Output:   c.stdout,
		Stderr:   c.stderr,
		ExitCode: c.code,
	}
	if c.err != nil {
		out.Output = "Error: " + c.err.Error()
		out.ExitCode = types.SyntheticFailure
		log.Warn("m2c did not complete", zap.String("fragment", fragment), zap.Error(c.err))
		return out
	}
	if !out.OK() {
		log.Warn("m2c failed",
			zap.String("fragment", fragment),
			zap.Int("status", out.ExitCode),
			zap.String("stderr", out.Stderr))
	}
	return out
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func distinct(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
