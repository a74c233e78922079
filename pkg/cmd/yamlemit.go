// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/yamlemit/pkg/version"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

func NewDefaultYamlemitCmd() *cobra.Command {
	cmd := NewConvertCmd(NewConvertOptions())

	cmd.Use = "yamlemit"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "yamlemit writes YAML, JSON and TOML documents as YAML"
	cmd.Long = `yamlemit writes YAML, JSON and TOML documents as YAML.

Inputs are streamed through the emitter without building a document tree.
Defaults are read from .yamlemit.yml in the working directory (see --config).`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(NewConvertCmd(NewConvertOptions())) // explicit form of the default command
	cmd.AddCommand(NewWebsiteCmd(NewWebsiteOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
