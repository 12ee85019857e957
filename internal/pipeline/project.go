// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Default project layout, relative to the project root.
const (
	DefaultSrcDir      = "src"
	DefaultIncludeDir  = "include"
	DefaultContextFile = "ctx.c"
	DefaultM2CtxPath   = "tools/m2ctx.py"
	headerExt          = ".h"
)

// ErrOutsideSrcDir is returned by HeaderFor for sources not under SrcDir.
var ErrOutsideSrcDir = errors.New("source file is outside the sources root")

// Project anchors every relative path decomper handles. Fragment paths in
// placeholders, the sources root, and the include root are all relative to
// Root.
type Project struct {
	Root       string
	SrcDir     string
	IncludeDir string
}

// Resolve returns rel joined to the project root. Absolute paths are
// returned unchanged.
func (p Project) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Root, rel)
}

// IncludeRoot returns the absolute-or-root-joined include directory.
func (p Project) IncludeRoot() string {
	return p.Resolve(orDefault(p.IncludeDir, DefaultIncludeDir))
}

// SrcRoot returns the root-joined sources directory.
func (p Project) SrcRoot() string {
	return p.Resolve(orDefault(p.SrcDir, DefaultSrcDir))
}

// HeaderFor mirrors a source file's path under the sources root into the
// include root with a .h extension: src/core2/ba/wandglow.c becomes
// include/core2/ba/wandglow.h.
func (p Project) HeaderFor(source string) (string, error) {
	rel, err := filepath.Rel(p.SrcRoot(), p.Resolve(source))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideSrcDir, source)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideSrcDir, source)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + headerExt
	return filepath.Join(p.IncludeRoot(), rel), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
