package main

import (
	"github.com/spf13/cobra"

	"github.com/Caellian/wiki-extractor/input"
)

func newRemoteCmd(opts *options) *cobra.Command {
	var language, version string

	cmd := &cobra.Command{
		Use:   "remote [mirror-url]",
		Short: "Extract a dump from a mirror",
		Long: `Extract every articles file of a dump from a mirror.

The dump's dumpstatus.json is read from <mirror-url>/<language>wiki/<version>/
and the files of its articlesdump job are processed in natural name order.

Examples:
  wikiextract remote -M                           # ` + input.DefaultMirror + `enwiki/latest
  wikiextract remote -L de -w 20240101 -R -T
  wikiextract remote https://mirror.example/dumps -M`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := input.DefaultMirror
			if len(args) > 0 {
				base = args[0]
			}
			loc, err := input.Mirror(base, language, version)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), loc, opts)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "L", input.DefaultLanguage, "wiki language code")
	cmd.Flags().StringVarP(&version, "dump-version", "w", input.DefaultVersion, "dump date (YYYYMMDD) or latest")

	return cmd
}
