package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"source-irfitter/internal/gosource"
	"source-irfitter/internal/symtree"
	"source-irfitter/internal/treefile"
)

type goSourceOptions struct {
	dir    string
	outDir string
}

func newGoSourceCmd() *cobra.Command {
	opts := &goSourceOptions{}

	cmd := &cobra.Command{
		Use:   "gosource [PATTERN...]",
		Short: "Build Source trees from Go packages",
		Long: `Gosource loads Go packages and writes one Source tree document per
package. Without --out-dir the documents are written to stdout separated by
"---".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			return opts.run(cmd.OutOrStdout(), args)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "C", "", "directory to resolve patterns in")
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "d", "", "write <package>.yaml files here")

	return cmd
}

func (o *goSourceOptions) run(w io.Writer, patterns []string) error {
	trees, err := gosource.NewLoader(o.dir).LoadPackages(patterns...)
	if err != nil {
		return err
	}

	if o.outDir == "" {
		return writeDocuments(w, trees)
	}

	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", o.outDir, err)
	}

	for _, tree := range trees {
		name := strings.ReplaceAll(tree.Unit(), "/", "_") + ".yaml"
		if err := treefile.WriteFile(tree, filepath.Join(o.outDir, name)); err != nil {
			return err
		}
	}

	return nil
}

func writeDocuments(w io.Writer, trees []*symtree.Tree) error {
	for i, tree := range trees {
		data, err := treefile.Marshal(tree)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", tree.Unit(), err)
		}

		if i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}

		if _, err := w.Write(data); err != nil {
			return err
		}
	}

	return nil
}
