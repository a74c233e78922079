// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"carvel.dev/yamlemit/pkg/cmd/ui"
	"carvel.dev/yamlemit/pkg/config"
	"carvel.dev/yamlemit/pkg/convert"
	"carvel.dev/yamlemit/pkg/files"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type ConvertOptions struct {
	Files      []string
	Recursive  bool
	Type       string
	OutputFile string
	ConfigPath string
	Debug      bool

	IndentWidth         int
	PreserveComments    bool
	CommentLeadingSpace bool
	YAMLVersion         string

	// changed reports flags given on the command line; those win over
	// values from the config file.
	changed func(name string) bool
}

func NewConvertOptions() *ConvertOptions {
	return &ConvertOptions{}
}

func NewConvertCmd(o *ConvertOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert",
		Aliases: []string{"c"},
		Short:   "Write YAML, JSON or TOML inputs as YAML",
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run() },
	}

	defaults := config.Default()

	cmd.Flags().StringArrayVarP(&o.Files, "file", "f", nil, "File (ie local path, HTTP URL, -) (can be specified multiple times; stdin when omitted)")
	cmd.Flags().BoolVarP(&o.Recursive, "recursive", "R", false, "Interpret file as directory")
	cmd.Flags().StringVar(&o.Type, "type", "", "Input type for every file (yaml, json, toml); detected from the file extension by default")
	cmd.Flags().StringVarP(&o.OutputFile, "output-file", "o", "", "File to write output to instead of stdout")
	cmd.Flags().StringVar(&o.ConfigPath, "config", "", "Config file (defaults to "+config.DefaultPath+" if present)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")

	cmd.Flags().IntVar(&o.IndentWidth, "indent", defaults.IndentWidth, "Spaces per indentation level (2-9)")
	cmd.Flags().BoolVar(&o.PreserveComments, "preserve-comments", defaults.PreserveComments, "Keep comments of YAML inputs")
	cmd.Flags().BoolVar(&o.CommentLeadingSpace, "comment-leading-space", defaults.AddLeadingSpace, "Write '# ' for empty comment lines")
	cmd.Flags().StringVar(&o.YAMLVersion, "yaml-version", defaults.YAMLVersion, "Write a %YAML directive for this version (eg 1.2)")

	o.changed = cmd.Flags().Changed

	return cmd
}

func (o *ConvertOptions) Run() error {
	return o.RunWithUI(ui.NewTTY(o.Debug))
}

func (o *ConvertOptions) RunWithUI(ui ui.UI) error {
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Now().Sub(t1))
	}()

	opts, err := o.ConvertOpts()
	if err != nil {
		return err
	}
	ui.Debugf("emit options: %+v, type: %s, default type: %s\n", opts.Emit, opts.Type, opts.DefaultType)

	paths := o.Files
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	inputs, err := files.NewFiles(paths, o.Recursive)
	if err != nil {
		return err
	}

	for _, input := range inputs {
		ui.Debugf("input: %s\n", input.Description())
		if opts.InputType(input) == files.TypeUnknown {
			ui.Warnf("Reading %s as YAML since its type could not be detected\n", input.Description())
		}
	}

	ctx := context.Background()

	if o.OutputFile == "" {
		out := &countingWriter{w: ui.Stdout()}
		err = convert.Convert(ctx, inputs, out, opts)
		ui.Debugf("output: %s\n", humanize.IBytes(out.n))
		return err
	}

	var out bytes.Buffer

	err = convert.Convert(ctx, inputs, &out, opts)
	if err != nil {
		return err
	}
	ui.Debugf("output: %s to %s\n", humanize.IBytes(uint64(out.Len())), o.OutputFile)

	err = files.NewOutputFile(o.OutputFile, out.Bytes()).Create()
	if err != nil {
		return fmt.Errorf("Writing output file '%s': %s", o.OutputFile, err)
	}
	return nil
}

// ConvertOpts combines the config file with the flags set on the command line.
func (o *ConvertOptions) ConvertOpts() (convert.Options, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return convert.Options{}, err
	}

	if o.flagChanged("indent") {
		cfg.IndentWidth = o.IndentWidth
	}
	if o.flagChanged("preserve-comments") {
		cfg.PreserveComments = o.PreserveComments
	}
	if o.flagChanged("comment-leading-space") {
		cfg.AddLeadingSpace = o.CommentLeadingSpace
	}
	if o.flagChanged("yaml-version") {
		cfg.YAMLVersion = o.YAMLVersion
	}

	err = cfg.Validate()
	if err != nil {
		return convert.Options{}, err
	}

	opts := convert.NewOptions()
	opts.Emit = cfg.EmitOptions

	// the config type only fills in for unknown extensions; --type wins over both
	opts.DefaultType, err = cfg.InputType()
	if err != nil {
		return convert.Options{}, err
	}
	if o.flagChanged("type") {
		opts.Type, err = files.ParseType(o.Type)
		if err != nil {
			return convert.Options{}, err
		}
	}

	return opts, nil
}

func (o *ConvertOptions) flagChanged(name string) bool {
	return o.changed != nil && o.changed(name)
}

type countingWriter struct {
	w io.Writer
	n uint64
}

func (c *countingWriter) Write(data []byte) (int, error) {
	n, err := c.w.Write(data)
	c.n += uint64(n)
	return n, err
}
