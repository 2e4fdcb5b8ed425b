package main

import (
	"github.com/dhamidi/webxml/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var pf parserFlags

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, pf.options()...)
			return server.RunStdio()
		},
	}

	pf.register(cmd)

	return cmd
}
