// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWrite_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.c")

	require.NoError(t, AtomicWrite(path, []byte("int x;\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "int x;\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestAtomicWrite_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, AtomicWrite(path, []byte("new")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.c", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestAtomicWrite_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "include", "core2", "ba", "out.h")

	require.NoError(t, AtomicWrite(path, []byte("x")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestAtomicWrite_RejectsDirectoryTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.h")
	require.NoError(t, os.Mkdir(target, 0o755))

	err := AtomicWrite(target, []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a regular file")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAtomicWrite_ParentIsAFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "include"), []byte("x"), 0o644))

	err := AtomicWrite(filepath.Join(dir, "include", "a.h"), []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating directory")
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, Exists(dir))
	assert.False(t, Exists(filepath.Join(dir, "nope")))
}
