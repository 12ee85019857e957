// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package asm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallTarget(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{"plain jal", "jal func_80001234", "func_80001234", true},
		{"indented with address comment", "/* 000010 80286F50 0C0A1B2C */  jal       _bsrest_entrypoint_13", "_bsrest_entrypoint_13", true},
		{"tab separated", "\tjal\thelper", "helper", true},
		{"register jump is not a call", "jalr $t9", "", false},
		{"jump without link", "j .L80001234", "", false},
		{"no instruction", "glabel func_80001234", "", false},
		{"empty line", "", "", false},
		{"first call wins", "jal first ; jal second", "first", true},
		{"stops at punctuation", "jal helper+0x10", "helper", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CallTarget(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCalls_PreservesOrderAndDuplicates(t *testing.T) {
	src := strings.Join([]string{
		"glabel func_80286F50",
		"/* 000000 */ addiu $sp, $sp, -0x18",
		"/* 000004 */ jal helper",
		"/* 000008 */ nop",
		"/* 00000C */ jal other",
		"/* 000010 */ jal helper",
		"/* 000014 */ jalr $t9",
		"/* 000018 */ jr $ra",
	}, "\n")

	calls, err := ExtractCalls(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"helper", "other", "helper"}, calls)
}

func TestExtractCalls_NoCalls(t *testing.T) {
	calls, err := ExtractCalls(strings.NewReader("glabel leaf\njr $ra\nnop\n"))
	require.NoError(t, err)
	assert.Empty(t, calls)
}

func TestExtractCallsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.s")
	require.NoError(t, os.WriteFile(path, []byte("jal helper\n"), 0o644))

	calls, err := ExtractCallsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"helper"}, calls)

	_, err = ExtractCallsFile(filepath.Join(dir, "missing.s"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
