// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package asm recognizes the two textual patterns decomper cares about:
// GLOBAL_ASM placeholders in C sources and call instructions in assembly
// fragments.
package asm

import (
	"fmt"
	"io"
	"os"
	"regexp"
)

// callRegex matches a MIPS jump-and-link to a named target. jalr (register
// indirect) never matches because the mnemonic must be followed by whitespace.
var callRegex = regexp.MustCompile(`jal\s+([a-zA-Z0-9_]+)`)

// CallTarget returns the symbol called on line, if any. Only the first call
// on a line is reported.
func CallTarget(line string) (string, bool) {
	m := callRegex.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractCalls returns the call target of every line in r that has one, in
// line order. Duplicates are kept.
func ExtractCalls(r io.Reader) ([]string, error) {
	var calls []string
	err := EachLine(r, func(line string) {
		if name, ok := CallTarget(line); ok {
			calls = append(calls, name)
		}
	})
	return calls, err
}

// ExtractCallsFile opens the fragment at path and extracts its call targets.
func ExtractCallsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	calls, err := ExtractCalls(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return calls, nil
}
