// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package emitter_test

import (
	"fmt"
	"math/rand"
	"testing"

	"carvel.dev/yamlemit/pkg/emitter"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const scalarAlphabet = " \nabcxyz019-_.:#,[]{}'\"!&*?|<>=%@~"

type tree struct {
	flow   bool
	seq    []*tree
	keys   []string
	values []*tree
	isMap  bool
	isSeq  bool
	scalar string
}

type treeGen struct {
	rand    *rand.Rand
	strings *fuzz.Fuzzer
}

func newTreeGen(seed int64) *treeGen {
	return &treeGen{
		rand: rand.New(rand.NewSource(seed)),
		strings: fuzz.New().RandSource(rand.NewSource(seed)).Funcs(func(s *string, c fuzz.Continue) {
			b := make([]byte, c.Intn(10))
			for i := range b {
				b[i] = scalarAlphabet[c.Intn(len(scalarAlphabet))]
			}
			*s = string(b)
		}),
	}
}

func (g *treeGen) node(depth int, inFlow bool) *tree {
	if depth > 0 && (depth >= 4 || g.rand.Intn(3) == 0) {
		t := &tree{}
		g.strings.Fuzz(&t.scalar)
		return t
	}

	t := &tree{flow: inFlow || g.rand.Intn(4) == 0}
	n := g.rand.Intn(4)

	if g.rand.Intn(2) == 0 {
		t.isSeq = true
		for i := 0; i < n; i++ {
			t.seq = append(t.seq, g.node(depth+1, t.flow))
		}
		return t
	}

	t.isMap = true
	for i := 0; i < n; i++ {
		t.keys = append(t.keys, fmt.Sprintf("k%d", i))
		t.values = append(t.values, g.node(depth+1, t.flow))
	}
	return t
}

func (tr *tree) value() interface{} {
	switch {
	case tr.isSeq:
		result := []interface{}{}
		for _, item := range tr.seq {
			result = append(result, item.value())
		}
		return result
	case tr.isMap:
		result := map[string]interface{}{}
		for i, key := range tr.keys {
			result[key] = tr.values[i].value()
		}
		return result
	default:
		return tr.scalar
	}
}

// write emits tr and checks that closing every collection restores the
// depth and indentation it was opened at.
func (tr *tree) write(t *testing.T, e *emitter.Emitter) {
	if !tr.isSeq && !tr.isMap {
		require.NoError(t, e.WriteString(tr.scalar, emitter.Any))
		return
	}

	depth, indent := e.Depth(), e.IndentLevel()

	if tr.isSeq {
		style := emitter.BlockSequence
		if tr.flow {
			style = emitter.FlowSequence
		}
		require.NoError(t, e.BeginSequence(style))
		for _, item := range tr.seq {
			item.write(t, e)
		}
		require.NoError(t, e.EndSequence())
	} else {
		style := emitter.BlockMapping
		if tr.flow {
			style = emitter.FlowMapping
		}
		require.NoError(t, e.BeginMapping(style))
		for i, key := range tr.keys {
			require.NoError(t, e.WriteString(key, emitter.Any))
			tr.values[i].write(t, e)
		}
		require.NoError(t, e.EndMapping())
	}

	assert.Equal(t, depth, e.Depth())
	assert.Equal(t, indent, e.IndentLevel())
}

func TestEmitRoundTripThroughParser(t *testing.T) {
	for _, width := range []int{2, 3, 4} {
		gen := newTreeGen(int64(width))
		opts := emitter.DefaultEmitOptions()
		opts.IndentWidth = width

		for i := 0; i < 500; i++ {
			doc := gen.node(0, false)

			buf := emitter.NewBuffer(0)
			e, err := emitter.NewEmitterWithOpts(buf, opts)
			require.NoError(t, err)

			doc.write(t, e)
			require.NoError(t, e.Finish())
			e.Dispose()

			var parsed interface{}
			require.NoError(t, yaml.Unmarshal(buf.Bytes(), &parsed), "%s", buf.String())
			require.Equal(t, doc.value(), parsed, "%s", buf.String())
		}
	}
}

func TestEmitPlainStringsRoundTrip(t *testing.T) {
	for _, value := range []string{"hello", "two words", "a-b", "v1.2.3", "path/to/file", "x=y", "ünïcödé"} {
		buf := emitter.NewBuffer(0)
		e := emitter.NewEmitter(buf)
		require.NoError(t, e.WriteString(value, emitter.Any))
		e.Dispose()

		assert.Equal(t, value, buf.String())

		var parsed string
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &parsed))
		assert.Equal(t, value, parsed)
	}
}
