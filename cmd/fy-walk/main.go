// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Command fy-walk parses a YAML document and either dumps its parse
// event stream or evaluates a path expression against its node tree.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	fy "github.com/fy-yaml/fy"
	"github.com/fy-yaml/fy/internal/engine"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fy-walk",
		Short: "Parse and query YAML documents",
	}
	root.AddCommand(newDumpEventsCmd())
	root.AddCommand(newWalkCmd())
	root.AddCommand(newCheckLoopCmd())
	return root
}

func readInputFile(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return readAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func readAll(f *os.File) ([]byte, error) {
	var buf []byte
	chunk := make([]byte, 4096)
	for {
		n, err := f.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err != nil {
			if err == io.EOF {
				return buf, nil
			}
			return buf, err
		}
	}
}

func newDumpEventsCmd() *cobra.Command {
	var jsonMode bool
	cmd := &cobra.Command{
		Use:   "dump-events [file]",
		Short: "Print the parser's event stream for a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			src, err := readInputFile(path)
			if err != nil {
				return err
			}
			cfg := engine.NewParseConfig(engine.WithJSONMode(jsonMode))
			in := engine.NewInputString(path, string(src))
			sc := engine.NewScanner(in, &cfg)
			p := engine.NewParser(sc, &cfg)
			for {
				ev, err := p.Parse()
				if err != nil {
					return err
				}
				if ev == nil {
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ev.Type)
				if ev.Type == engine.StreamEndEvent {
					return nil
				}
			}
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "restrict to the JSON-compatible grammar subset")
	return cmd
}

func newWalkCmd() *cobra.Command {
	var strict bool
	var maxDepth int
	cmd := &cobra.Command{
		Use:   "walk <path-expr> [file]",
		Short: "Evaluate a path expression against a document and print the matches",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := args[0]
			file := ""
			if len(args) == 2 {
				file = args[1]
			}
			src, err := readInputFile(file)
			if err != nil {
				return err
			}
			doc, err := fy.ParseSingle(src)
			if err != nil {
				return err
			}
			opts := []fy.WalkOption{fy.WithStrictPathExec(strict)}
			if maxDepth > 0 {
				opts = append(opts, fy.WithWalkMaxDepth(maxDepth))
			}
			path, err := fy.CompilePath(expr, opts...)
			if err != nil {
				return err
			}
			matches, err := fy.Walk(path, doc, opts...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, n := range matches {
				printNodeSummary(out, n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail instead of returning an empty match on a missing key or index")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "bound traversal depth (0 uses the engine default)")
	return cmd
}

func printNodeSummary(w io.Writer, n *fy.Node) {
	switch n.Kind {
	case fy.ScalarNode:
		fmt.Fprintf(w, "%s\n", n.Value())
	case fy.SequenceNode:
		fmt.Fprintf(w, "[sequence: %d items]\n", len(n.Items()))
	case fy.MappingNode:
		fmt.Fprintf(w, "{mapping: %d pairs}\n", len(n.Pairs()))
	}
}

func newCheckLoopCmd() *cobra.Command {
	var maxDepth int
	cmd := &cobra.Command{
		Use:   "check-loop [file]",
		Short: "Report whether a document's node tree contains a reference cycle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			src, err := readInputFile(path)
			if err != nil {
				return err
			}
			doc, err := fy.ParseSingle(src)
			if err != nil {
				return err
			}
			if maxDepth <= 0 {
				maxDepth = 256
			}
			loop, err := fy.HasReferenceLoop(doc.Root, maxDepth)
			if err != nil {
				return err
			}
			if loop {
				fmt.Fprintln(cmd.OutOrStdout(), "reference loop detected")
				os.Exit(1)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "no reference loop")
			return nil
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "bound the cycle scan depth (0 uses the engine default)")
	return cmd
}
