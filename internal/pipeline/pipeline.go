// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pipeline runs decomper end to end for one source file: locate
// fragments, resolve the symbols they call, update the paired header,
// regenerate the m2c context, decompile every fragment, and write the merged
// .decomp file.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/petar-djukic/decomper/internal/asm"
	"github.com/petar-djukic/decomper/internal/catalog"
	"github.com/petar-djukic/decomper/internal/fsutil"
	"github.com/petar-djukic/decomper/internal/header"
	"github.com/petar-djukic/decomper/internal/m2c"
	"github.com/petar-djukic/decomper/internal/merge"
	"github.com/petar-djukic/decomper/pkg/types"
)

// Decompiler runs m2c over a set of fragments.
type Decompiler interface {
	RunAll(ctx context.Context, fragments []string) map[string]types.Outcome
}

// ContextGenerator regenerates the m2c context for a source file.
type ContextGenerator interface {
	Generate(ctx context.Context, source string) error
}

// WorkTree answers whether a file holds uncommitted changes.
type WorkTree interface {
	HasUncommittedChanges(path string) (bool, error)
}

// Deps holds injected dependencies for the driver.
type Deps struct {
	Project          Project
	Decompiler       Decompiler
	ContextGen       ContextGenerator
	WorkTree         WorkTree // nil disables the uncommitted-changes warning
	CatalogParser    string
	RespectGitignore bool // Skip headers ignored by the include root's .gitignore
	Logger           *zap.Logger
	Report           io.Writer // Operator report; defaults to os.Stdout
}

// Result holds the outcome of one Driver.Run.
type Result struct {
	Source           string
	Fragments        []string // All fragment references, in file order
	MissingFragments []string // Referenced fragments absent on disk
	Calls            []string // Every call target, duplicates kept
	Resolution       types.Resolution
	Collisions       []types.Collision
	HeaderPath       string
	Header           *header.Result // nil when the header was not updated
	Outcomes         map[string]types.Outcome
	MergedPath       string
	Stats            merge.Stats
}

// Driver sequences the pipeline.
type Driver struct {
	deps Deps
	log  *zap.Logger
	out  io.Writer
}

// NewDriver creates a Driver with the given dependencies.
func NewDriver(deps Deps) *Driver {
	d := &Driver{deps: deps, log: deps.Logger, out: deps.Report}
	if d.log == nil {
		d.log = zap.NewNop()
	}
	if d.out == nil {
		d.out = os.Stdout
	}
	return d
}

// Run processes source, a path relative to the project root or absolute.
// Only an unreadable source file, a canceled context, or a failure to write
// the merged file abort the run; every other problem is logged and the run
// continues.
func (d *Driver) Run(ctx context.Context, source string) (*Result, error) {
	p := d.deps.Project
	srcPath := p.Resolve(source)
	result := &Result{Source: srcPath}

	// Step 1: Locate fragment placeholders.
	fragments, err := asm.LocateFragments(srcPath)
	if err != nil {
		return result, err
	}
	result.Fragments = fragments
	d.log.Debug("fragments located", zap.String("source", srcPath), zap.Int("count", len(fragments)))

	// Step 2: Extract call targets from each fragment that exists.
	var present []string
	for _, frag := range fragments {
		path := p.Resolve(frag)
		if !fsutil.Exists(path) {
			d.log.Warn("fragment not found", zap.String("fragment", frag))
			result.MissingFragments = append(result.MissingFragments, frag)
			continue
		}
		present = append(present, frag)

		calls, err := asm.ExtractCallsFile(path)
		if err != nil {
			d.log.Warn("reading fragment", zap.String("fragment", frag), zap.Error(err))
		}
		result.Calls = append(result.Calls, calls...)
	}

	// Step 3: Build the prototype catalog and resolve.
	cat, err := catalog.Build(ctx, p.IncludeRoot(), catalog.Options{
		Parser:           d.deps.CatalogParser,
		RespectGitignore: d.deps.RespectGitignore,
		Logger:           d.log,
	})
	if err != nil {
		return result, fmt.Errorf("building prototype catalog: %w", err)
	}
	result.Collisions = cat.Collisions()
	result.Resolution = cat.Resolve(result.Calls)
	d.log.Debug("catalog built",
		zap.Int("headers", cat.Headers()),
		zap.Int("prototypes", cat.Len()),
		zap.Int("collisions", len(result.Collisions)))

	// Step 4: Report found and missing symbols.
	d.printResolution(result.Resolution)

	// Step 5: Update the paired header.
	d.updateHeader(source, result)

	if err := ctx.Err(); err != nil {
		return result, err
	}

	// Step 6: Regenerate the m2c context.
	d.log.Info("running m2ctx", zap.String("source", source))
	if err := d.deps.ContextGen.Generate(ctx, source); err != nil {
		var exitErr *m2c.ExitError
		if errors.As(err, &exitErr) {
			d.log.Warn("m2ctx did not complete successfully, proceeding with decompilation anyway",
				zap.Int("status", exitErr.Code),
				zap.String("output", exitErr.Stdout))
		} else {
			d.log.Warn("m2ctx could not be run, proceeding with decompilation anyway", zap.Error(err))
		}
	}

	// Step 7: Decompile every present fragment.
	result.Outcomes = d.deps.Decompiler.RunAll(ctx, present)

	// An interrupted fan-out yields synthetic failures; never merge them.
	if err := ctx.Err(); err != nil {
		return result, err
	}

	// Step 8: Merge into the .decomp file.
	result.MergedPath = merge.MergedPath(srcPath)
	exists := func(frag string) bool { return fsutil.Exists(p.Resolve(frag)) }
	stats, err := merge.MergeFile(srcPath, result.MergedPath, result.Outcomes, exists)
	if err != nil {
		return result, fmt.Errorf("creating decomp file: %w", err)
	}
	result.Stats = stats

	fmt.Fprintf(d.out, "Created decomp file: %s\n", result.MergedPath)
	d.log.Info("decomp file written",
		zap.String("path", result.MergedPath),
		zap.Int("decompiled", stats.Decompiled),
		zap.Int("failed", stats.Failed),
		zap.Int("not_found", stats.NotFound))

	return result, nil
}

// updateHeader writes include directives for every found symbol's header
// into the source file's paired header.
func (d *Driver) updateHeader(source string, result *Result) {
	path, err := d.deps.Project.HeaderFor(source)
	if err != nil {
		d.log.Warn("cannot determine paired header, skipping include update", zap.Error(err))
		return
	}
	result.HeaderPath = path

	if d.deps.WorkTree != nil {
		dirty, err := d.deps.WorkTree.HasUncommittedChanges(path)
		switch {
		case err != nil:
			d.log.Debug("work tree status unavailable", zap.String("header", path), zap.Error(err))
		case dirty:
			d.log.Warn("header has uncommitted changes that will be overwritten", zap.String("header", path))
		}
	}

	var includes []string
	for _, h := range result.Resolution.Headers() {
		includes = append(includes, header.IncludeDirective(h))
	}

	hr, err := header.Update(path, includes)
	if err != nil {
		d.log.Warn("updating header", zap.String("header", path), zap.Error(err))
		return
	}
	result.Header = hr

	fmt.Fprintf(d.out, "Updated .h file: %s\n", path)
	if hr.Changed {
		d.log.Debug("header rewritten", zap.String("header", path), zap.Strings("added", hr.Added), zap.String("patch", hr.Patch))
	}
}

var (
	foundHeading   = color.New(color.FgGreen, color.Bold)
	missingHeading = color.New(color.FgYellow, color.Bold)
)

func (d *Driver) printResolution(res types.Resolution) {
	foundHeading.Fprintln(d.out, "Found functions in .h files:")
	for _, f := range res.Found {
		fmt.Fprintf(d.out, "%s (in %s)\n", f.Name, f.Header)
	}

	fmt.Fprintln(d.out)
	missingHeading.Fprintln(d.out, "Missing functions (not found in any .h file):")
	for _, name := range res.Missing {
		fmt.Fprintln(d.out, name)
	}
}
