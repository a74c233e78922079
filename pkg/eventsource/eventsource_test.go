// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package eventsource_test

import (
	"io"
	"strings"
	"testing"

	"carvel.dev/yamlemit/pkg/emitter"
	"carvel.dev/yamlemit/pkg/eventsource"
	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type S struct{}

var _ = Suite(&S{})

func replay(c *C, src eventsource.Source, opts emitter.EmitOptions) string {
	buf := emitter.NewBuffer(0)
	e, err := emitter.NewEmitterWithOpts(buf, opts)
	c.Assert(err, IsNil)
	defer e.Dispose()

	c.Assert(eventsource.Replay(src, e), IsNil)
	c.Assert(e.Finish(), IsNil)
	return buf.String()
}

func kinds(c *C, src eventsource.Source) []string {
	var result []string
	for {
		ev, err := src.Next()
		if err == io.EOF {
			return result
		}
		c.Assert(err, IsNil)
		result = append(result, ev.String())
	}
}

func (s *S) TestSliceSourceEndsWithEOF(c *C) {
	src := eventsource.NewSliceSource(eventsource.Event{Kind: eventsource.Scalar, Value: []byte("a")})

	ev, err := src.Next()
	c.Assert(err, IsNil)
	c.Assert(ev.String(), Equals, `scalar("a")`)

	_, err = src.Next()
	c.Assert(err, Equals, io.EOF)
}

func (s *S) TestYAMLKeepsStyles(c *C) {
	input := "a: 1\nb:\n  - x\n  - 'y'\n  - \"z\"\n"
	out := replay(c, eventsource.NewYAMLSource(strings.NewReader(input)), emitter.DefaultEmitOptions())
	c.Assert(out, Equals, input)
}

func (s *S) TestYAMLEvents(c *C) {
	src := eventsource.NewYAMLSource(strings.NewReader("a: [1, 2]\n"))
	c.Assert(kinds(c, src), DeepEquals, []string{
		"document-start", "mapping-start", `scalar("a")`,
		"sequence-start", `scalar("1")`, `scalar("2")`, "sequence-end",
		"mapping-end",
	})
}

func (s *S) TestYAMLDocuments(c *C) {
	out := replay(c, eventsource.NewYAMLSource(strings.NewReader("a\n---\nb\n")), emitter.DefaultEmitOptions())
	c.Assert(out, Equals, "a\n---\nb\n")
}

func (s *S) TestYAMLFoldedBecomesLiteral(c *C) {
	out := replay(c, eventsource.NewYAMLSource(strings.NewReader("k: >\n  a\n\n  b\n")), emitter.DefaultEmitOptions())
	c.Assert(out, Equals, "k: |\n  a\n  b\n")
}

func (s *S) TestYAMLAliasesAreExpanded(c *C) {
	out := replay(c, eventsource.NewYAMLSource(strings.NewReader("a: &x 1\nb: *x\n")), emitter.DefaultEmitOptions())
	c.Assert(out, Equals, "a: 1\nb: 1\n")
}

func (s *S) TestYAMLTags(c *C) {
	out := replay(c, eventsource.NewYAMLSource(strings.NewReader("!custom x\n")), emitter.DefaultEmitOptions())
	c.Assert(out, Equals, "!custom x\n")
}

func (s *S) TestYAMLComments(c *C) {
	opts := emitter.DefaultEmitOptions()
	opts.PreserveComments = true

	out := replay(c, eventsource.NewYAMLSource(strings.NewReader("a: 1 # inline\nb: 2\n")), opts)
	c.Assert(out, Equals, "a: 1 # inline\nb: 2\n")

	out = replay(c, eventsource.NewYAMLSource(strings.NewReader("a: 1 # inline\nb: 2\n")), emitter.DefaultEmitOptions())
	c.Assert(out, Equals, "a: 1\nb: 2\n")
}

func (s *S) TestYAMLInvalid(c *C) {
	_, err := eventsource.NewYAMLSource(strings.NewReader("a: [\n")).Next()
	c.Assert(err, ErrorMatches, "Unmarshaling YAML: .*")
}

func (s *S) TestJSON(c *C) {
	input := `{"b": [1, "two", null, "123"], "a": {"x": true, "y": 1.5e3}}`
	out := replay(c, eventsource.NewJSONSource(strings.NewReader(input)), emitter.DefaultEmitOptions())
	c.Assert(out, Equals, "b:\n  - 1\n  - two\n  - null\n  - \"123\"\na:\n  x: true\n  y: 1.5e3\n")
}

func (s *S) TestJSONValueStream(c *C) {
	out := replay(c, eventsource.NewJSONSource(strings.NewReader(`1 "a" [true]`)), emitter.DefaultEmitOptions())
	c.Assert(out, Equals, "1\n---\na\n---\n- true\n")
}

func (s *S) TestJSONTruncated(c *C) {
	src := eventsource.NewJSONSource(strings.NewReader(`{"a": [1`))
	var err error
	for err == nil {
		_, err = src.Next()
	}
	c.Assert(err, Not(Equals), io.EOF)
	c.Assert(err, ErrorMatches, "Unmarshaling JSON: .*")
}

func (s *S) TestTOMLKeepsKeyOrder(c *C) {
	input := `
title = "demo"
when = 1979-05-27

[server]
port = 8080
ratio = 0.5
whole = 2.0

[[items]]
name = "a"

[[items]]
name = "b"
`
	src, err := eventsource.NewTOMLSource([]byte(input))
	c.Assert(err, IsNil)

	out := replay(c, src, emitter.DefaultEmitOptions())
	c.Assert(out, Equals, `title: demo
when: "1979-05-27"
server:
  port: 8080
  ratio: 0.5
  whole: 2.0
items:
  - name: a
  - name: b
`)
}

func (s *S) TestTOMLMultilineString(c *C) {
	src, err := eventsource.NewTOMLSource([]byte("text = \"\"\"\nline one\nline two\n\"\"\"\n"))
	c.Assert(err, IsNil)

	out := replay(c, src, emitter.DefaultEmitOptions())
	c.Assert(out, Equals, "text: |\n  line one\n  line two\n")
}

func (s *S) TestTOMLInvalid(c *C) {
	_, err := eventsource.NewTOMLSource([]byte("a = "))
	c.Assert(err, ErrorMatches, "(?s)Unmarshaling TOML: .*")
}

func (s *S) TestReplayWrapsEmitterErrors(c *C) {
	src := eventsource.NewSliceSource(
		eventsource.Event{Kind: eventsource.Scalar, Value: []byte("a")},
		eventsource.Event{Kind: eventsource.Scalar, Value: []byte("b")},
	)

	e := emitter.NewEmitter(emitter.NewBuffer(0))
	defer e.Dispose()

	err := eventsource.Replay(src, e)
	c.Assert(err, ErrorMatches, `Replaying scalar\("b"\): yaml emitter: cannot write a second root node .*`)
}

func (s *S) TestReplayDropsCommentsInFlow(c *C) {
	opts := emitter.DefaultEmitOptions()
	opts.PreserveComments = true

	src := eventsource.NewSliceSource(
		eventsource.Event{Kind: eventsource.SequenceStart, Flow: true},
		eventsource.Event{Kind: eventsource.Scalar, Value: []byte("1"), Raw: true},
		eventsource.Event{Kind: eventsource.Comment, Value: []byte("gone")},
		eventsource.Event{Kind: eventsource.SequenceEnd},
	)
	c.Assert(replay(c, src, opts), Equals, "[1]\n")
}
