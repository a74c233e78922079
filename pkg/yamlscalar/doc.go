// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package yamlscalar decides how a string is written as a YAML scalar.

Analyze classifies a value (how many lines it spans, whether it would be
misread when written unquoted, whether it fits in a literal block) and
ResolveStyle turns that classification, together with the requested style and
the position the scalar is written at, into the style actually used.
BuildQuotedScalar and BuildLiteralScalar produce the final text.

Everything here is a pure function of its arguments.
*/
package yamlscalar
