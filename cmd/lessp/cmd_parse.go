package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bennypowers.dev/lessls/internal/parser/less"
	"bennypowers.dev/lessls/internal/parser/less/tree"
	"bennypowers.dev/lessls/internal/session"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newParseCmd() *cobra.Command {
	var (
		format        string
		compress      bool
		strictImports bool
		maxDepth      int
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a .less file and print its syntax tree",
		Long: `Parse a LESS stylesheet and print the syntax tree.

If no file is provided, reads LESS source from stdin.

Formats:
  json  the tree as JSON (default)
  yaml  the tree as YAML
  less  the tree printed back as LESS source`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				source []byte
				err    error
				fi     *tree.FileInfo
				name   = "<stdin>"
			)

			if len(args) == 0 {
				source, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				name = args[0]
				source, err = os.ReadFile(name)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				abs, err := filepath.Abs(name)
				if err != nil {
					return err
				}
				fi = session.NewFileInfo(abs, "")
			}

			root, err := less.Parse(string(source),
				less.WithCompress(compress),
				less.WithStrictImports(strictImports),
				less.WithMaxDepth(maxDepth),
				less.WithFileInfo(fi),
			)
			if err != nil {
				var perr *less.ParseError
				if errors.As(err, &perr) {
					perr.Filename = name
				}
				return err
			}

			return writeTree(cmd.OutOrStdout(), root, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or less")
	cmd.Flags().BoolVar(&compress, "compress", false, "parse values the way compressed output does")
	cmd.Flags().BoolVar(&strictImports, "strict-imports", false, "mark the tree as using strict imports")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth, 0 for the parser default")

	return cmd
}

func writeTree(w io.Writer, root *tree.Ruleset, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree.ToMap(root))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree.ToMap(root)); err != nil {
			return err
		}
		return enc.Close()
	case "less":
		return tree.Fprint(w, root)
	}
	return fmt.Errorf("unknown format %q", format)
}
