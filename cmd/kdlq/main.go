// Copyright 2024 RunReveal Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"zombiezen.com/go/bass/sigterm"

	"github.com/glcraft/kdlpath"
	"github.com/glcraft/kdlpath/document"
	"github.com/glcraft/kdlpath/parser"
)

func main() {
	rootCommand := &cobra.Command{
		Use:   "kdlq -q QUERY [FILE]",
		Short: "Select nodes out of a KDL document with a path query",

		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	query := rootCommand.Flags().StringP("query", "q", "", "path query to resolve (required)")
	rootCommand.RunE = func(cmd *cobra.Command, args []string) error {
		if *query == "" {
			return fmt.Errorf("-q/--query is required")
		}

		input, err := makeInput(args)
		if err != nil {
			return err
		}
		defer input.Close()

		if isTerminal(input) {
			fmt.Fprintln(os.Stderr, "Reading KDL from terminal (send EOF to finish)...")
		}

		return run(cmd.OutOrStdout(), input, *query)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), sigterm.Signals()...)
	err := rootCommand.ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "kdlq: %v\n", err)
		os.Exit(1)
	}
}

// run resolves query against the KDL document read from input, writing
// one formatted line per matched node to output.
func run(output io.Writer, input io.Reader, query string) error {
	path, err := parser.Parse(query)
	if err != nil {
		return err
	}
	doc, err := document.ReadKDL(input)
	if err != nil {
		return fmt.Errorf("parse KDL: %w", err)
	}
	for _, n := range kdlpath.Resolve(doc, path) {
		fmt.Fprintln(output, formatNode(n))
	}
	return nil
}

// formatNode renders a matched node back into KDL-ish node syntax:
// the name followed by its positional arguments and named properties
// in the order the node's Entries returns them.
func formatNode(n document.Node) string {
	var sb strings.Builder
	sb.WriteString(n.Name())
	for _, e := range n.Entries() {
		sb.WriteByte(' ')
		if name, ok := e.Name(); ok {
			sb.WriteString(name)
			sb.WriteByte('=')
		}
		sb.WriteString(formatValue(e.Value()))
	}
	return sb.String()
}

func formatValue(v document.EntryValue) string {
	switch {
	case v.IsString():
		return strconv.Quote(v.StringVal())
	case v.IsInt():
		return strconv.FormatInt(v.IntVal(), 10)
	case v.IsFloat():
		return strconv.FormatFloat(v.FloatVal(), 'g', -1, 64)
	case v.IsBool():
		if v.BoolVal() {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}

func makeInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || len(args) == 1 && args[0] == "-" {
		return nopReadCloser{os.Stdin}, nil
	}
	if len(args) == 1 {
		return os.Open(args[0])
	}
	return nil, fmt.Errorf("kdlq resolves one document at a time; got %d file arguments", len(args))
}

func isTerminal(r io.Reader) bool {
	for {
		switch rt := r.(type) {
		case *os.File:
			return term.IsTerminal(int(rt.Fd()))
		case nopReadCloser:
			r = rt.Reader
		default:
			return false
		}
	}
}

type nopReadCloser struct {
	io.Reader
}

func (nopReadCloser) Close() error { return nil }
