// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package catalog builds the prototype catalog: a map from function name to
// the header that declares it, gathered by scanning every header under the
// project's include root.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/petar-djukic/decomper/pkg/types"
)

// HeaderExt is the extension of files scanned for prototypes.
const HeaderExt = ".h"

// Parser names accepted by Options.Parser.
const (
	ParserRegex      = "regex"
	ParserTreeSitter = "treesitter"
)

// ErrUnknownParser is returned by Build for an unrecognized Options.Parser.
var ErrUnknownParser = errors.New("unknown catalog parser")

// Options configures a catalog scan.
type Options struct {
	Parser           string      // ParserRegex (default) or ParserTreeSitter
	RespectGitignore bool        // Skip headers matched by root/.gitignore
	Logger           *zap.Logger // Collision and skip reporting; nil disables logging
}

// Catalog maps function names to the header (relative to the include root,
// slash-separated) that declares them. It is read-only once built.
type Catalog struct {
	entries    map[string]string
	collisions []types.Collision
	headers    int
}

// Build walks root in lexical order and records every prototype found in
// files ending in HeaderExt. When two headers declare the same name the one
// visited last wins and the overwrite is recorded as a collision. A missing
// root yields an empty catalog, not an error. Every header is scanned unless
// opts.RespectGitignore is set, in which case headers matched by a .gitignore
// at root are skipped.
func Build(ctx context.Context, root string, opts Options) (*Catalog, error) {
	rec, err := recognizerFor(opts.Parser)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Catalog{entries: make(map[string]string)}

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		log.Debug("include root not found, catalog is empty", zap.String("root", root))
		return c, nil
	}

	var gi *ignore.GitIgnore
	if opts.RespectGitignore {
		gi = loadGitignore(root)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries.
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), HeaderExt) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if gi != nil && gi.MatchesPath(rel) {
			log.Debug("header ignored", zap.String("header", rel))
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			log.Warn("skipping unreadable header", zap.String("header", rel), zap.Error(err))
			return nil
		}

		c.headers++
		for _, name := range rec.Declarations(ctx, content) {
			c.add(name, rel, log)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	return c, nil
}

func (c *Catalog) add(name, header string, log *zap.Logger) {
	prev, ok := c.entries[name]
	if ok && prev != header {
		c.collisions = append(c.collisions, types.Collision{Name: name, Previous: prev, Winner: header})
		log.Warn("prototype declared in more than one header",
			zap.String("symbol", name),
			zap.String("previous", prev),
			zap.String("winner", header))
	}
	c.entries[name] = header
}

// Lookup returns the header declaring name.
func (c *Catalog) Lookup(name string) (string, bool) {
	h, ok := c.entries[name]
	return h, ok
}

// Len returns the number of distinct names in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Headers returns the number of header files scanned.
func (c *Catalog) Headers() int {
	return c.headers
}

// Collisions returns every overwrite that happened during the scan, in scan
// order.
func (c *Catalog) Collisions() []types.Collision {
	return c.collisions
}

// Resolve partitions the distinct names in calls into found and missing.
// Both lists keep the order in which each name first appears.
func (c *Catalog) Resolve(calls []string) types.Resolution {
	var res types.Resolution
	seen := make(map[string]bool, len(calls))
	for _, name := range calls {
		if seen[name] {
			continue
		}
		seen[name] = true
		if header, ok := c.entries[name]; ok {
			res.Found = append(res.Found, types.FoundSymbol{Name: name, Header: header})
		} else {
			res.Missing = append(res.Missing, name)
		}
	}
	return res
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
