// By Navid M (c)
// Date: 2025
// License: GPL3
//
// The query command lists nodes of a given kind.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"orcaparse/parser"
	"orcaparse/syntax"
)

func (a *app) queryCmd() *cobra.Command {
	var kind, name, variant string
	cmd := &cobra.Command{
		Use:   "query FILE",
		Short: "List the nodes of a kind, optionally filtered by name or variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, ok := syntax.KindByName(kind)
			if !ok {
				return fmt.Errorf("unknown node kind %q (known kinds: %s)", kind, kindList())
			}
			preds := []syntax.Predicate{syntax.OfKind(k)}
			if name != "" {
				preds = append(preds, syntax.Named(name))
			}
			if variant != "" {
				preds = append(preds, syntax.WithVariant(k, variant))
			}

			src, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			root, perr := parser.Parse(src, a.parseOptions(args[0], k == syntax.KindComment))
			if perr != nil {
				a.log.Warn("file has errors; results may be incomplete", "error", perr)
			}

			out := cmd.OutOrStdout()
			for _, n := range syntax.FindAll(root, syntax.And(preds...)) {
				label := n.Kind().String()
				if n.Variant() != "" {
					label += ":" + n.Variant()
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", n.Start(), label, n.Content())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "node kind, e.g. subblock or coordinate_line")
	cmd.Flags().StringVarP(&name, "name", "n", "", "match the name or title field, ignoring case")
	cmd.Flags().StringVar(&variant, "variant", "", "match the node variant")
	cmd.MarkFlagRequired("kind")
	return cmd
}

func kindList() string {
	var names []string
	for _, k := range syntax.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}
