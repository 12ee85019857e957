// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// declQuery captures the name of every function declarator that is the
// direct, or singly pointer-wrapped, declarator of a declaration. Function
// pointer variables and definitions with bodies are not captured.
const declQuery = `
	(declaration
		declarator: (function_declarator
			declarator: (identifier) @name))
	(declaration
		declarator: (pointer_declarator
			declarator: (function_declarator
				declarator: (identifier) @name)))
`

// TreeSitterRecognizer parses headers with the tree-sitter C grammar. It
// handles pointer return types and ignores commented-out prototypes, but
// like the regex matcher it does not evaluate the preprocessor.
type TreeSitterRecognizer struct{}

// Declarations returns every declared function name in src, in file order.
func (TreeSitterRecognizer) Declarations(ctx context.Context, src []byte) []string {
	lang := c.GetLanguage()
	root, err := sitter.ParseCtx(ctx, src, lang)
	if err != nil || root == nil {
		return nil
	}

	q, err := sitter.NewQuery([]byte(declQuery), lang)
	if err != nil {
		return nil
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var names []string
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range m.Captures {
			if name := capture.Node.Content(src); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
