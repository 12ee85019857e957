// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package merge writes the .decomp variant of a source file, replacing each
// GLOBAL_ASM placeholder with a dual-mode block that keeps the assembly for
// matching builds and offers the decompiled C under NONMATCHING.
package merge

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/petar-djukic/decomper/internal/asm"
	"github.com/petar-djukic/decomper/internal/fsutil"
	"github.com/petar-djukic/decomper/pkg/types"
)

// Block markers.
const (
	BeginMarker   = "#ifndef NONMATCHING"
	ElseMarker    = "#else"
	EndMarker     = "#endif"
	FailureHeader = "// Decompilation failed. m2c output:"
	NotFoundNote  = "// File not found: "
)

// MergedSuffix is inserted before the extension of the merged file.
const MergedSuffix = ".decomp"

// ExistsFunc reports whether a fragment, as written in its placeholder, is
// present on disk.
type ExistsFunc func(fragment string) bool

// Stats counts what happened to the placeholders of one file.
type Stats struct {
	Decompiled int // Blocks holding m2c output
	Failed     int // Blocks holding a failure annotation
	NotFound   int // Placeholders kept with a file-not-found note
}

// MergedPath returns the path of the merged variant of src:
// "src/a.c" becomes "src/a.decomp.c".
func MergedPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + MergedSuffix + ext
}

// Merge copies r to w, rewriting placeholder lines. Every other line,
// including its terminator, is copied unchanged and in order. The output
// depends only on r, outcomes and exists.
func Merge(w io.Writer, r io.Reader, outcomes map[string]types.Outcome, exists ExistsFunc) (Stats, error) {
	var stats Stats
	bw := bufio.NewWriter(w)

	err := asm.EachLine(r, func(line string) {
		writeLine(bw, line, outcomes, exists, &stats)
	})
	if err != nil {
		return stats, fmt.Errorf("reading source: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("writing merged output: %w", err)
	}
	return stats, nil
}

func writeLine(w *bufio.Writer, line string, outcomes map[string]types.Outcome, exists ExistsFunc, stats *Stats) {
	fragment, ok := asm.Placeholder(line)
	if !ok {
		w.WriteString(line)
		return
	}

	if !exists(fragment) {
		stats.NotFound++
		w.WriteString(terminated(line))
		w.WriteString(NotFoundNote + fragment + "\n")
		return
	}

	w.WriteString(BeginMarker + "\n")
	w.WriteString(terminated(line))
	w.WriteString(ElseMarker + "\n")

	outcome, ran := outcomes[fragment]
	if ran && outcome.OK() {
		stats.Decompiled++
		w.WriteString(terminated(outcome.Output))
	} else {
		stats.Failed++
		w.WriteString(FailureHeader + "\n")
		w.WriteString(commented(outcome.Output))
	}

	w.WriteString(EndMarker + "\n")
}

// MergeFile merges the source file at src into dst.
func MergeFile(src, dst string, outcomes map[string]types.Outcome, exists ExistsFunc) (Stats, error) {
	f, err := os.Open(src)
	if err != nil {
		return Stats{}, fmt.Errorf("opening source file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	stats, err := Merge(&buf, f, outcomes, exists)
	if err != nil {
		return stats, err
	}

	if err := fsutil.AtomicWrite(dst, buf.Bytes()); err != nil {
		return stats, fmt.Errorf("writing %s: %w", dst, err)
	}
	return stats, nil
}

// terminated returns s with a trailing newline, adding one if needed.
// Empty input stays empty.
func terminated(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// commented turns captured tool output into line comments, one per output
// line, with the text after the comment marker kept verbatim.
func commented(output string) string {
	output = strings.TrimSuffix(output, "\n")
	var b strings.Builder
	for _, l := range strings.Split(output, "\n") {
		b.WriteString("// ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
