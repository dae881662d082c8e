package main

import (
	"github.com/spf13/cobra"

	"github.com/Caellian/wiki-extractor/input"
)

func newLocalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "local <path>",
		Short: "Extract a local dump file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), input.LocalFile(args[0]), opts)
		},
	}
}
