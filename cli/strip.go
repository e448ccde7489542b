// By Navid M (c)
// Date: 2025
// License: GPL3
//
// The strip command prints an input file without its comments.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"orcaparse/preprocessor"
)

func (a *app) stripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip FILE",
		Short: "Print an input file with comments removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			a.log.Debug("stripping comments", "file", args[0], "bytes", len(src))
			fmt.Fprint(cmd.OutOrStdout(), preprocessor.StripComments(string(src)))
			return nil
		},
	}
}
