package main

import (
	"flag"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Caellian/wiki-extractor/extract"
	"github.com/Caellian/wiki-extractor/output"
)

type options struct {
	dir       string
	outputs   output.Options
	policy    extract.Policy
	report    string
	verbosity int
	// progress is the logging interval in MiB
	progress int64
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "wikiextract",
		Short: "Extract pages from MediaWiki XML dumps",
		Long: `Extract pages from MediaWiki XML dumps.

Subcommands:
  local   - Read a dump file (.xml, .xml.bz2 or .xml.gz)
  remote  - Read every articles file of a dump on a mirror

At least one of -R, -M, -T or -D selects what is written to the output directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.verbosity)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.dir, "output", "o", "./dump", "output directory")
	flags.BoolVarP(&opts.outputs.Redirects, "collect-redirects", "R", false, "write "+output.RedirectsFile)
	flags.BoolVarP(&opts.outputs.Metadata, "collect-metadata", "M", false, "write "+output.MetadataFile)
	flags.BoolVarP(&opts.outputs.Text, "collect-text", "T", false, "write "+output.TextFile)
	flags.BoolVarP(&opts.outputs.Dictionary, "build-dictionary", "D", false, "write "+output.DictionaryFile)
	flags.StringVar(&opts.outputs.Select, "select", "", "XPath expression selecting the pages to write, e.g. 'ns = 0 and not(redirect)'")
	flags.Var(&opts.policy, "on-error", "what to do when a file fails to parse (abort-file, skip-page, stop)")
	flags.StringVar(&opts.report, "report", "", "write a JSON run report to this file")
	flags.IntVarP(&opts.verbosity, "verbosity", "v", 0, "log verbosity (glog V level)")
	flags.Int64Var(&opts.progress, "progress", 64, "log progress every N MiB read (0 disables)")

	cmd.AddCommand(newLocalCmd(opts))
	cmd.AddCommand(newRemoteCmd(opts))

	return cmd
}

func setupLogging(verbosity int) error {
	if err := flag.Set("logtostderr", "true"); err != nil {
		return err
	}
	return flag.Set("v", strconv.Itoa(verbosity))
}
