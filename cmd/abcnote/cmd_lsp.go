package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/abcnote/lsp"
)

func newLSPCmd() *cobra.Command {
	var tcpAddr string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the ABC language server on stdio, or on a TCP address with --tcp.

The server reads ` + lsp.EnvA4 + ` for the concert pitch and ` + lsp.EnvTunes + `
for a zip of tunes to load alongside the workspace.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version)
			if tcpAddr != "" {
				return server.RunTCP(tcpAddr)
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&tcpAddr, "tcp", "", "listen on this address instead of stdio")

	return cmd
}
