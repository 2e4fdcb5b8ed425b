package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var pf parserFlags

	cmd := &cobra.Command{
		Use:           "check <file>...",
		Short:         "Check that documents are well-formed",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, filename := range args {
				if _, err := pf.parseFile(filename); err != nil {
					fmt.Fprintln(out, err)
					failed++
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", filename)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(args))
			}
			return nil
		},
	}

	pf.register(cmd)
	pf.registerNamespace(cmd)

	return cmd
}
