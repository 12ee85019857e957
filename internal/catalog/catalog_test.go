// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/decomper/pkg/types"
)

const wandglowHeader = `#ifndef __BA_WANDGLOW_H__
#define __BA_WANDGLOW_H__

#include <ultra64.h>

typedef struct ba_wandglow_s {
    f32 unk0[3];
    s32 unkC;
} BaWandGlow;

void _bawandglow_entrypoint_1(s32 arg0, s32 arg1);
void _bawandglow_entrypoint_2(s32 arg0);

#endif
`

const restHeader = `#ifndef __BS_REST_H__
#define __BS_REST_H__

extern BanjoStateId _bsrest_entrypoint_13(PlayerState *self);
extern void _bsrest_entrypoint_14(PlayerState *self);

#endif // __BS_REST_H__
`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuild_MapsNamesToRelativeHeaders(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ba/wandglow.h", wandglowHeader)
	writeFile(t, root, "bs/rest.h", restHeader)
	writeFile(t, root, "notes.txt", "void not_a_header(void);")

	c, err := Build(context.Background(), root, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, c.Headers())
	assert.Equal(t, 4, c.Len())

	h, ok := c.Lookup("_bawandglow_entrypoint_2")
	require.True(t, ok)
	assert.Equal(t, "ba/wandglow.h", h)

	h, ok = c.Lookup("_bsrest_entrypoint_13")
	require.True(t, ok)
	assert.Equal(t, "bs/rest.h", h)

	_, ok = c.Lookup("not_a_header")
	assert.False(t, ok)
	assert.Empty(t, c.Collisions())
}

func TestBuild_MissingRootIsEmpty(t *testing.T) {
	c, err := Build(context.Background(), filepath.Join(t.TempDir(), "include"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())

	res := c.Resolve([]string{"a", "b", "a"})
	assert.Empty(t, res.Found)
	assert.Equal(t, []string{"a", "b"}, res.Missing)
}

func TestBuild_CollisionLastInLexicalOrderWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b/second.h", "void foo(void);\n")
	writeFile(t, root, "a/first.h", "void foo(void);\n")

	c, err := Build(context.Background(), root, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	h, ok := c.Lookup("foo")
	require.True(t, ok)
	assert.Contains(t, []string{"a/first.h", "b/second.h"}, h)
	assert.Equal(t, "b/second.h", h)

	assert.Equal(t, []types.Collision{{Name: "foo", Previous: "a/first.h", Winner: "b/second.h"}}, c.Collisions())
}

func TestBuild_RedeclarationInSameHeaderIsNotACollision(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "dup.h", "void foo(void);\nvoid foo(void);\n")

	c, err := Build(context.Background(), root, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Empty(t, c.Collisions())
}

func TestBuild_ScansGitignoredHeadersByDefault(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.h\n!util.h\n")
	writeFile(t, root, "util.h", "void helper(void);\n")
	writeFile(t, root, "assets.h", "void asset_load(s32 id);\n")

	c, err := Build(context.Background(), root, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, c.Headers())
	h, ok := c.Lookup("asset_load")
	require.True(t, ok)
	assert.Equal(t, "assets.h", h)

	res := c.Resolve([]string{"helper", "asset_load"})
	assert.Equal(t, []types.FoundSymbol{
		{Name: "helper", Header: "util.h"},
		{Name: "asset_load", Header: "assets.h"},
	}, res.Found)
	assert.Empty(t, res.Missing)
}

func TestBuild_RespectGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "generated/\n")
	writeFile(t, root, "generated/auto.h", "void generated_fn(void);\n")
	writeFile(t, root, "kept.h", "void kept_fn(void);\n")

	c, err := Build(context.Background(), root, Options{RespectGitignore: true})
	require.NoError(t, err)

	_, ok := c.Lookup("generated_fn")
	assert.False(t, ok)
	_, ok = c.Lookup("kept_fn")
	assert.True(t, ok)
}

func TestBuild_UnknownParser(t *testing.T) {
	_, err := Build(context.Background(), t.TempDir(), Options{Parser: "clang"})
	assert.ErrorIs(t, err, ErrUnknownParser)
}

func TestBuild_Canceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.h", "void a(void);\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, root, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_PartitionsInFirstOccurrenceOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "util.h", "void helper(void);\ns32 other(s32 x);\n")

	c, err := Build(context.Background(), root, Options{})
	require.NoError(t, err)

	res := c.Resolve([]string{"other", "ghost", "helper", "other", "ghost"})
	assert.Equal(t, []types.FoundSymbol{
		{Name: "other", Header: "util.h"},
		{Name: "helper", Header: "util.h"},
	}, res.Found)
	assert.Equal(t, []string{"ghost"}, res.Missing)
	assert.Equal(t, []string{"util.h"}, res.Headers())
}
