// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"fmt"
	"regexp"
)

// Recognizer finds the names of the functions declared in a header.
type Recognizer interface {
	Declarations(ctx context.Context, src []byte) []string
}

func recognizerFor(parser string) (Recognizer, error) {
	switch parser {
	case "", ParserRegex:
		return RegexRecognizer{}, nil
	case ParserTreeSitter:
		return TreeSitterRecognizer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownParser, parser)
	}
}

// prototypeRegex matches "<type> <name>(<args>);". The argument list may
// span lines but not contain a semicolon. Pointer return types and
// preprocessor conditionals are not understood.
var prototypeRegex = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\([^;]*\);`)

// RegexRecognizer is the textual prototype matcher.
type RegexRecognizer struct{}

// Declarations returns every prototype name in src, in file order.
func (RegexRecognizer) Declarations(_ context.Context, src []byte) []string {
	var names []string
	for _, m := range prototypeRegex.FindAllSubmatch(src, -1) {
		names = append(names, string(m[1]))
	}
	return names
}
