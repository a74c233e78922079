// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

var ResetStdin = resetStdin
