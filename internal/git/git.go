// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git inspects the project's work tree so decomper can warn before
// it overwrites a file holding uncommitted changes.
package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNoGit is returned when the working directory is not inside a git
// repository.
var ErrNoGit = errors.New("not a git repository")

// ErrOutsideWorkTree is returned for paths that are not under the
// repository's work tree.
var ErrOutsideWorkTree = errors.New("path outside work tree")

// Repo wraps a go-git repository for the queries we need.
type Repo struct {
	repo *gogit.Repository
	root string
}

// Open opens the repository containing workDir, searching parent
// directories for .git.
func Open(workDir string) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(workDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}

	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("resolving work tree root: %w", err)
	}
	return &Repo{repo: r, root: root}, nil
}

// Root returns the work tree root.
func (r *Repo) Root() string {
	return r.root
}

// HasUncommittedChanges reports whether the file at path differs from HEAD:
// modified, staged, or untracked. Clean, ignored, and nonexistent files
// report false.
func (r *Repo) HasUncommittedChanges(path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("resolving %s: %w", path, err)
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, fmt.Errorf("%w: %s", ErrOutsideWorkTree, path)
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("getting status: %w", err)
	}

	// Status lists only files that are not clean; Status.File would
	// fabricate an untracked entry for anything missing.
	fs, ok := status[filepath.ToSlash(rel)]
	if !ok {
		return false, nil
	}
	return fs.Staging != gogit.Unmodified || fs.Worktree != gogit.Unmodified, nil
}
