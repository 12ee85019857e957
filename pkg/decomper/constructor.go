// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package decomper

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/petar-djukic/decomper/internal/catalog"
	gitpkg "github.com/petar-djukic/decomper/internal/git"
	"github.com/petar-djukic/decomper/internal/m2c"
	"github.com/petar-djukic/decomper/internal/pipeline"
)

const (
	defaultPython  = "python3"
	defaultWorkers = m2c.DefaultWorkers
	defaultTimeout = 2 * time.Minute
)

// New validates the config and returns a ready-to-use Decomper.
func New(cfg Config) (Decomper, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	applyDefaults(&cfg)

	project := pipeline.Project{
		Root:       cfg.WorkDir,
		SrcDir:     cfg.SrcDir,
		IncludeDir: cfg.IncludeDir,
	}

	deps := pipeline.Deps{
		Project: project,
		Decompiler: &m2c.Runner{
			Python:      cfg.M2CPython,
			M2CPath:     cfg.M2CPath,
			ContextPath: cfg.ContextFile,
			Target:      cfg.Target,
			Dir:         cfg.WorkDir,
			Workers:     cfg.Workers,
			Timeout:     cfg.Timeout,
			Logger:      cfg.Logger,
		},
		ContextGen: &m2c.ContextGenerator{
			Python:     cfg.M2CtxPython,
			ScriptPath: cfg.M2CtxPath,
			Dir:        cfg.WorkDir,
			Timeout:    cfg.Timeout,
		},
		CatalogParser:    cfg.CatalogParser,
		RespectGitignore: cfg.RespectGitignore,
		Logger:           cfg.Logger,
		Report:           cfg.Report,
	}

	if !cfg.NoGit {
		repo, err := gitpkg.Open(cfg.WorkDir)
		if err == nil {
			deps.WorkTree = repo
		} else {
			cfg.Logger.Debug("git integration disabled", zap.Error(err))
		}
	}

	return &decomperAdapter{driver: pipeline.NewDriver(deps)}, nil
}

// decomperAdapter adapts internal/pipeline.Driver to the public Decomper
// interface.
type decomperAdapter struct {
	driver *pipeline.Driver
}

func (a *decomperAdapter) Run(ctx context.Context, source string) (*Result, error) {
	pr, err := a.driver.Run(ctx, source)
	if pr == nil {
		return &Result{}, err
	}
	r := &Result{
		Source:           pr.Source,
		MissingFragments: pr.MissingFragments,
		Found:            pr.Resolution.Found,
		Missing:          pr.Resolution.Missing,
		Collisions:       pr.Collisions,
		HeaderPath:       pr.HeaderPath,
		MergedPath:       pr.MergedPath,
		Decompiled:       pr.Stats.Decompiled,
		Failed:           pr.Stats.Failed,
		NotFound:         pr.Stats.NotFound,
	}
	if pr.Header != nil {
		r.AddedIncludes = pr.Header.Added
	}
	return r, err
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.WorkDir == "" {
		return fmt.Errorf("WorkDir is required")
	}
	if info, err := os.Stat(cfg.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("WorkDir %q does not exist or is not a directory", cfg.WorkDir)
	}
	if cfg.M2CPath == "" {
		return fmt.Errorf("M2CPath is required")
	}
	switch cfg.CatalogParser {
	case "", catalog.ParserRegex, catalog.ParserTreeSitter:
	default:
		return fmt.Errorf("CatalogParser %q is not one of %q, %q", cfg.CatalogParser, catalog.ParserRegex, catalog.ParserTreeSitter)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("Workers must not be negative")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("Timeout must not be negative")
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.M2CPython == "" {
		cfg.M2CPython = defaultPython
	}
	if cfg.M2CtxPython == "" {
		cfg.M2CtxPython = defaultPython
	}
	if cfg.M2CtxPath == "" {
		cfg.M2CtxPath = pipeline.DefaultM2CtxPath
	}
	if cfg.ContextFile == "" {
		cfg.ContextFile = pipeline.DefaultContextFile
	}
	if cfg.SrcDir == "" {
		cfg.SrcDir = pipeline.DefaultSrcDir
	}
	if cfg.IncludeDir == "" {
		cfg.IncludeDir = pipeline.DefaultIncludeDir
	}
	if cfg.Target == "" {
		cfg.Target = m2c.DefaultTarget
	}
	if cfg.CatalogParser == "" {
		cfg.CatalogParser = catalog.ParserRegex
	}
	if cfg.Workers == 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Report == nil {
		cfg.Report = os.Stdout
	}
}
