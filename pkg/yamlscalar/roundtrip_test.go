// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlscalar_test

import (
	"math/rand"
	"testing"

	"carvel.dev/yamlemit/pkg/yamlscalar"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const fuzzAlphabet = " \n\tabcxyzABC0123456789-_.:#,[]{}'\"\\!&*?|<>=%@`~+"

// render writes value as the value of key "k" in a block mapping, or as a
// document root, the way an emitter with indent width 2 would.
func render(t *testing.T, value string, requested yamlscalar.Style, placement yamlscalar.Placement) string {
	a := yamlscalar.Analyze(value)
	style, err := yamlscalar.ResolveStyle(requested, a, placement)
	require.NoError(t, err)

	var text string
	switch style {
	case yamlscalar.Plain:
		text = value
	case yamlscalar.SingleQuoted:
		text = yamlscalar.BuildQuotedScalar(value, false)
	case yamlscalar.DoubleQuoted:
		text = yamlscalar.BuildQuotedScalar(value, true)
	case yamlscalar.Literal:
		indicator := 0
		if a.NeedsIndentIndicator {
			indicator = 2
		}
		text = yamlscalar.BuildLiteralScalar(value, 2, indicator)
	default:
		t.Fatalf("unexpected style %s", style)
	}

	if placement == yamlscalar.PlacementTop {
		return text
	}
	return "k: " + text
}

func TestScalarRoundTripFuzzed(t *testing.T) {
	f := fuzz.New().RandSource(rand.NewSource(42)).Funcs(func(s *string, c fuzz.Continue) {
		b := make([]byte, c.Intn(16))
		for i := range b {
			b[i] = fuzzAlphabet[c.Intn(len(fuzzAlphabet))]
		}
		*s = string(b)
	})

	styles := []yamlscalar.Style{
		yamlscalar.Any, yamlscalar.Plain, yamlscalar.SingleQuoted,
		yamlscalar.DoubleQuoted, yamlscalar.Literal,
	}

	for i := 0; i < 2000; i++ {
		var value string
		f.Fuzz(&value)

		for _, style := range styles {
			doc := render(t, value, style, yamlscalar.PlacementBlock)
			var pair map[string]interface{}
			require.NoError(t, yaml.Unmarshal([]byte(doc), &pair), "%q", doc)
			require.Equal(t, value, pair["k"], "style %s: %q", style, doc)

			doc = render(t, value, style, yamlscalar.PlacementTop)
			var root interface{}
			require.NoError(t, yaml.Unmarshal([]byte(doc), &root), "%q", doc)
			require.Equal(t, value, root, "style %s: %q", style, doc)
		}
	}
}

func TestLiteralRoundTripKeepsTrailingBreaks(t *testing.T) {
	for _, value := range []string{"a\nb", "a\nb\n", "a\nb\n\n", "a\nb\n\n\n", "a\n\nb", "\n", "\n\n"} {
		doc := render(t, value, yamlscalar.Literal, yamlscalar.PlacementBlock)

		var pair map[string]string
		require.NoError(t, yaml.Unmarshal([]byte(doc), &pair))
		require.Equal(t, value, pair["k"], "%q", doc)
	}
}
