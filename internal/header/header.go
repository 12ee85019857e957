// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package header maintains the #include block of a source file's paired
// header. Updating rewrites the whole header: only include directives
// survive.
package header

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/petar-djukic/decomper/internal/fsutil"
)

const includePrefix = "#include"

// Result describes what Update did to a header.
type Result struct {
	Path     string   // Header that was written
	Includes []string // Final directive set, sorted
	Added    []string // Directives that were not present before, sorted
	Changed  bool     // File content differs from what was on disk
	Patch    string   // Textual patch from the old to the new content; empty when unchanged
}

// IncludeDirective renders the directive that pulls in header, a path
// relative to the include root.
func IncludeDirective(header string) string {
	return fmt.Sprintf("#include \"%s\"", filepath.ToSlash(header))
}

// Update merges includes into the directives already present in the header
// at path and rewrites it: the union, sorted, one per line, followed by one
// blank line. A missing header starts from an empty set and its directory is
// created. Directives are compared as whole lines, so whitespace variants are
// distinct. Any non-directive content in the file is dropped.
func Update(path string, includes []string) (*Result, error) {
	old, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	existing := ExistingIncludes(old)
	set := make(map[string]bool, len(existing)+len(includes))
	for _, inc := range existing {
		set[inc] = true
	}

	result := &Result{Path: path}
	for _, inc := range includes {
		if !set[inc] {
			set[inc] = true
			result.Added = append(result.Added, inc)
		}
	}
	sort.Strings(result.Added)

	for inc := range set {
		result.Includes = append(result.Includes, inc)
	}
	sort.Strings(result.Includes)

	content := Render(result.Includes)
	if bytes.Equal(old, content) {
		return result, nil
	}

	if err := fsutil.AtomicWrite(path, content); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	result.Changed = true
	result.Patch = patch(string(old), string(content))
	return result, nil
}

// ExistingIncludes returns the include directives in content, trimmed of
// surrounding whitespace, in file order.
func ExistingIncludes(content []byte) []string {
	var includes []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(line, includePrefix) {
			includes = append(includes, strings.TrimSpace(line))
		}
	}
	return includes
}

// Render produces the header body for a sorted directive list.
func Render(includes []string) []byte {
	var buf bytes.Buffer
	for _, inc := range includes {
		buf.WriteString(inc)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

func patch(old, updated string) string {
	dmp := diffmatchpatch.New()
	return dmp.PatchToText(dmp.PatchMake(old, updated))
}
