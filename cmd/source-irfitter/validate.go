package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"source-irfitter/internal/diagnostic"
	"source-irfitter/internal/normalize"
	"source-irfitter/internal/symtree"
	"source-irfitter/internal/treefile"
)

// ErrInvalidTrees is returned when at least one file failed validation.
var ErrInvalidTrees = errors.New("invalid trees")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check tree files",
		Long: `Validate loads each tree file, checks its structure and decodes every
signature. Structural problems are errors; undecodable signatures are
warnings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateFiles(cmd.OutOrStdout(), args)
		},
	}
}

func validateFiles(w io.Writer, paths []string) error {
	var diags diagnostic.Diagnostics

	for _, path := range paths {
		tree, err := treefile.LoadFile(path)
		if err != nil {
			diags.AddError(diagnostic.CodeInvalidTree, err.Error(), path, "")

			continue
		}

		diags.Merge(checkTree(tree))
	}

	for _, d := range diags.All() {
		fmt.Fprintf(w, "%s: %s\n", d.Severity, d)
	}

	if diags.HasErrors() {
		return fmt.Errorf("%w: %d errors", ErrInvalidTrees, len(diags.Errors))
	}

	fmt.Fprintf(w, "%d files ok\n", len(paths))

	return nil
}

func checkTree(tree *symtree.Tree) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if err := tree.ValidateTree(); err != nil {
		var verr *symtree.ValidationError

		path := ""
		if errors.As(err, &verr) {
			path = verr.Path
		}

		diags.AddError(diagnostic.CodeInvalidTree, err.Error(), tree.Unit(), path)

		return diags
	}

	for _, issue := range normalize.Tree(tree) {
		diags.AddWarning(diagnostic.CodeOpaqueSignature, issue.Err.Error(), tree.Unit(),
			tree.Node(issue.Node).QualifiedName)
	}

	return diags
}
