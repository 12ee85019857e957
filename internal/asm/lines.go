// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package asm

import (
	"bufio"
	"errors"
	"io"
)

// EachLine calls fn for every line of r, terminator included. The final line
// is passed even when it has no terminator. Lines have no length limit.
func EachLine(r io.Reader, fn func(line string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			fn(line)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
