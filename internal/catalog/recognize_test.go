// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegexRecognizer(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "simple prototypes",
			src:  "void a(void);\ns32 b(s32 x, f32 y);\n",
			want: []string{"a", "b"},
		},
		{
			name: "extern storage class",
			src:  "extern void _bsrest_entrypoint_14(PlayerState *self);\n",
			want: []string{"_bsrest_entrypoint_14"},
		},
		{
			name: "arguments spanning lines",
			src:  "void multi(s32 a,\n           s32 b);\n",
			want: []string{"multi"},
		},
		{
			name: "pointer return type is not recognized",
			src:  "Actor *spawn_actor(s32 id);\n",
			want: nil,
		},
		{
			name: "struct and macro lines ignored",
			src:  "typedef struct { s32 x; } S;\n#define N 4\n",
			want: nil,
		},
		{
			name: "definition with body is not a prototype",
			src:  "void body(void) { }\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RegexRecognizer{}.Declarations(context.Background(), []byte(tt.src))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTreeSitterRecognizer(t *testing.T) {
	src := `#ifndef X_H
#define X_H
typedef int s32;
void plain(void);
extern s32 with_extern(s32 a);
s32 *pointer_return(s32 id);
void (*callback)(void);
/* void commented(void); */
void body(void) { }
#endif
`
	got := TreeSitterRecognizer{}.Declarations(context.Background(), []byte(src))
	assert.ElementsMatch(t, []string{"plain", "with_extern", "pointer_return"}, got)
}

func TestRecognizerFor(t *testing.T) {
	r, err := recognizerFor("")
	assert.NoError(t, err)
	assert.IsType(t, RegexRecognizer{}, r)

	r, err = recognizerFor(ParserTreeSitter)
	assert.NoError(t, err)
	assert.IsType(t, TreeSitterRecognizer{}, r)
}
