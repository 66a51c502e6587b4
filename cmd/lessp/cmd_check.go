package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/internal/parser/less/tree"
	"bennypowers.dev/lessls/internal/session"
	"bennypowers.dev/lessls/lsp"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var (
		root          string
		include       []string
		followImports bool
	)

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report parse errors in LESS files",
		Long: `Parse every LESS file under the given paths and report the failures.

Directories are expanded with the include patterns. Import directories,
include patterns and parser options come from the workspace configuration
under --root (package.json "lessLanguageServer" or .config/lessls.yaml).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, source, err := lsp.ReadWorkspaceConfig(root)
			if err != nil {
				return err
			}
			if source != "" {
				log.Info("Using configuration from %s", source)
			}
			if cmd.Flags().Changed("include") {
				config.Include = include
			}
			if len(args) == 0 {
				args = []string{root}
			}

			files, err := expand(args, config.Include)
			if err != nil {
				return err
			}

			abs, err := filepath.Abs(root)
			if err != nil {
				return err
			}
			c := &checker{
				sess:   config.NewSession(abs),
				out:    cmd.OutOrStdout(),
				follow: followImports,
			}
			for _, f := range files {
				c.check(f)
			}

			log.Info("Checked %d files, %d distinct", c.checked, len(c.sess.ParsedFiles()))
			if c.failed > 0 {
				return fmt.Errorf("%d of %d files failed to parse", c.failed, c.checked)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "workspace root holding the configuration")
	cmd.Flags().StringSliceVar(&include, "include", nil, "include patterns for directories (default from configuration)")
	cmd.Flags().BoolVar(&followImports, "follow-imports", false, "also check the LESS files each file imports")

	return cmd
}

// expand turns the arguments into files. Files are taken as given.
func expand(paths, include []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := session.Discover(p, include)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

type checker struct {
	sess    *session.Session
	out     io.Writer
	follow  bool
	checked int
	failed  int
}

func (c *checker) check(filename string) {
	if !c.follow {
		_, err := c.sess.ParseFile(filename, "")
		c.report(filename, err)
		return
	}
	c.sess.ParseTree(filename, "", func(name string, _ *tree.Ruleset, err error) {
		c.report(name, err)
	})
}

func (c *checker) report(filename string, err error) {
	c.checked++
	if err == nil {
		return
	}
	c.failed++
	// parse errors already carry file:line:col
	fmt.Fprintln(c.out, err)
}
