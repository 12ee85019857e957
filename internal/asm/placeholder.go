// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package asm

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// PragmaPrefix starts every placeholder line.
const PragmaPrefix = "#pragma GLOBAL_ASM"

// placeholderRegex captures the quoted fragment path of a GLOBAL_ASM macro.
var placeholderRegex = regexp.MustCompile(`GLOBAL_ASM\("([^"]+\.s)"\)`)

// IsPragma reports whether line is a GLOBAL_ASM pragma, whether or not its
// argument is well formed.
func IsPragma(line string) bool {
	return strings.HasPrefix(line, PragmaPrefix)
}

// Placeholder returns the fragment path referenced by a placeholder line.
// Lines that do not start with the pragma, or whose argument is not a quoted
// .s path, are not placeholders.
func Placeholder(line string) (string, bool) {
	if !IsPragma(line) {
		return "", false
	}
	m := placeholderRegex.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// LocateFragments returns the fragment paths referenced by the source file
// at path, in file order. An error here means the primary input cannot be
// read and the run cannot continue.
func LocateFragments(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source file: %w", err)
	}
	defer f.Close()

	var fragments []string
	err = EachLine(f, func(line string) {
		if frag, ok := Placeholder(line); ok {
			fragments = append(fragments, frag)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("reading source file %s: %w", path, err)
	}
	return fragments, nil
}
