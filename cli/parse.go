// By Navid M (c)
// Date: 2025
// License: GPL3
//
// The parse command prints the syntax tree of one file.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"orcaparse/parser"
	"orcaparse/renderer"
)

func (a *app) parseCmd() *cobra.Command {
	var (
		format   string
		comments bool
	)
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the syntax tree of an input file",
		Long: `Print the syntax tree of an ORCA input file ("-" reads standard input).
Diagnostics go to standard error for sexp output and are embedded in
yaml and json output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if format == "" {
				format = a.cfg.Output.Format
			}
			src, err := readInput(cmd, path)
			if err != nil {
				return err
			}

			opts := a.parseOptions(path, comments)
			root, perr := parser.Parse(src, opts)
			out, err := renderer.Render(format, opts.Filename, root, perr)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			diags := parser.Diagnostics(perr)
			if len(diags) == 0 {
				return nil
			}
			if format == "sexp" {
				if err := renderer.WriteDiagnostics(cmd.ErrOrStderr(), opts.Filename, src, diags, a.styles()); err != nil {
					return err
				}
			}
			return ErrInvalid
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(renderer.Formats, ", "))
	cmd.Flags().BoolVar(&comments, "comments", false, "keep comment nodes in the tree")
	return cmd
}

func (a *app) styles() renderer.Styles {
	if a.cfg.Output.Color {
		return renderer.ColorStyles()
	}
	return renderer.PlainStyles()
}
