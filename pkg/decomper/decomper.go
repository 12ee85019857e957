// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package decomper defines the public interface for decomper, which turns
// the GLOBAL_ASM placeholders of a matching-decompilation source file into
// NONMATCHING blocks filled with m2c output.
package decomper

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/petar-djukic/decomper/pkg/types"
)

// Error types for the decomper API.
var (
	ErrInvalidConfig = errors.New("invalid config")
)

// Config configures a Decomper instance. Relative paths are resolved
// against WorkDir.
type Config struct {
	WorkDir          string        // Project root (required)
	M2CPath          string        // Path to m2c.py (required)
	M2CPython        string        // Interpreter for m2c (default python3)
	M2CtxPath        string        // Path to m2ctx.py (default tools/m2ctx.py)
	M2CtxPython      string        // Interpreter for m2ctx (default python3)
	ContextFile      string        // Context file handed to m2c (default ctx.c)
	SrcDir           string        // Sources root (default src)
	IncludeDir       string        // Declarations root (default include)
	Target           string        // m2c target (default mips-ido)
	CatalogParser    string        // "regex" (default) or "treesitter"
	RespectGitignore bool          // Skip headers ignored by IncludeDir/.gitignore
	Workers          int           // Concurrent m2c runs (default 4)
	Timeout          time.Duration // Per-run budget for m2c and m2ctx (default 2m)
	NoGit            bool          // Skip the uncommitted-header check
	Logger           *zap.Logger   // Diagnostics (default no-op)
	Report           io.Writer     // Operator report (default stdout)
}

// Result summarizes one Run.
type Result struct {
	Source           string              // Source file processed
	MissingFragments []string            // Placeholders whose fragment is absent
	Found            []types.FoundSymbol // Called symbols with a prototype
	Missing          []string            // Called symbols without a prototype
	Collisions       []types.Collision   // Prototypes declared in several headers
	HeaderPath       string              // Paired header (empty if not updated)
	AddedIncludes    []string            // Directives newly written to the header
	MergedPath       string              // The .decomp file
	Decompiled       int                 // Fragments replaced by m2c output
	Failed           int                 // Fragments annotated with a failure
	NotFound         int                 // Placeholders kept with a not-found note
}

// Decomper processes source files of one project.
type Decomper interface {
	// Run processes a single source file: resolve, update header, decompile,
	// merge. It fails only when the source file cannot be read, the merged
	// file cannot be written, or ctx is canceled.
	Run(ctx context.Context, source string) (*Result, error)
}
