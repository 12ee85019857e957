// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across decomper packages.
package types

// FoundSymbol is a called symbol that has a prototype in some header.
type FoundSymbol struct {
	Name   string // Symbol name as it appears after the call instruction
	Header string // Declaring header, relative to the include root (slash-separated)
}

// Resolution partitions the distinct symbols referenced by one source file
// into those with a known prototype and those without.
type Resolution struct {
	Found   []FoundSymbol // First-occurrence order
	Missing []string      // First-occurrence order
}

// Headers returns the distinct declaring headers of all found symbols, in
// first-occurrence order.
func (r Resolution) Headers() []string {
	seen := make(map[string]bool, len(r.Found))
	var headers []string
	for _, f := range r.Found {
		if seen[f.Header] {
			continue
		}
		seen[f.Header] = true
		headers = append(headers, f.Header)
	}
	return headers
}

// Collision records a symbol declared in more than one header. The catalog
// keeps Winner, the header visited last.
type Collision struct {
	Name     string
	Previous string
	Winner   string
}
