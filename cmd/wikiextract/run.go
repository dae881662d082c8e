package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/Caellian/wiki-extractor/extract"
	"github.com/Caellian/wiki-extractor/input"
	"github.com/Caellian/wiki-extractor/output"
)

const mib = 1 << 20

func run(ctx context.Context, out io.Writer, loc input.Location, opts *options) error {
	if !opts.outputs.Any() {
		fmt.Fprintln(out, "Nothing to do")
		return nil
	}

	client := &http.Client{}
	info, err := input.LoadDumpInfo(ctx, client, loc)
	if err != nil {
		return err
	}
	if loc.IsRemote() && info.Status != input.StatusDone {
		return errors.Errorf("dump %s is not complete (status %q)", loc, info.Status)
	}
	glog.V(1).Infof("%s: %d files, %d bytes", loc, len(info.Files), info.TotalSize())

	gen, err := output.New(opts.dir, opts.outputs)
	if err != nil {
		return err
	}
	runner := &extract.Runner{
		Client:    client,
		Processor: gen,
		Tracker:   extract.NewTracker(info.TotalSize(), opts.progress*mib),
		Policy:    opts.policy,
	}
	report, runErr := runner.Run(ctx, info)
	if err := gen.Finalize(); err != nil && runErr == nil {
		runErr = err
	}

	stats := gen.Stats()
	fmt.Fprintf(out, "%d pages written to %s (%d redirects, %d skipped)\n",
		stats.Pages, opts.dir, stats.Redirects, stats.Skipped)

	if opts.report != "" {
		if err := writeReport(opts.report, report); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return runErr
	}
	if failed := report.Failed(); len(failed) > 0 {
		return errors.Errorf("%d of %d files failed", len(failed), len(report.Files))
	}
	return nil
}

func writeReport(path string, report *extract.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := report.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}
