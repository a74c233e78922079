// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package convert_test

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
