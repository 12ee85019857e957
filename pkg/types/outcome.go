// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// SyntheticFailure is the exit code recorded when the decompiler could not be
// run at all (spawn error, timeout, cancellation).
const SyntheticFailure = -1

// Outcome is the captured result of one decompiler invocation.
type Outcome struct {
	Fragment string // Fragment path as written in the placeholder
	Output   string // Captured stdout, or "Error: ..." for synthetic failures
	Stderr   string // Captured stderr
	ExitCode int    // Process exit status; SyntheticFailure if it never ran to completion
}

// OK reports whether the decompiler exited cleanly.
func (o Outcome) OK() bool {
	return o.ExitCode == 0
}
