package extract

import (
	"context"
	"io"
	"net/http"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/Caellian/wiki-extractor/dump"
	"github.com/Caellian/wiki-extractor/input"
	"github.com/Caellian/wiki-extractor/parseerr"
	"github.com/Caellian/wiki-extractor/token"
)

// Processor consumes the closed pages of a document
type Processor interface {
	Process(doc *dump.Document) error
}

// Runner parses the files of a dump in order
type Runner struct {
	Client *http.Client
	// Processor receives each document after every event. When nil pages
	// are drained and discarded.
	Processor Processor
	Tracker   *Tracker
	Policy    Policy
	// SourceOptions configure the token source of each file
	SourceOptions []token.Option
}

// Run parses every file of info. The returned error is non-nil only when
// the run itself stopped early: on context cancellation, or on a file
// failure under the StopRun policy. Per file failures are in the Report.
func (r *Runner) Run(ctx context.Context, info *input.DumpInfo) (*Report, error) {
	if r.Tracker == nil {
		r.Tracker = NewTracker(info.TotalSize(), 0)
	}
	report := &Report{}
	for _, desc := range info.Files {
		fr := r.RunFile(ctx, desc)
		report.Files = append(report.Files, fr)
		r.Tracker.FileDone(desc.Size)

		if err := ctx.Err(); err != nil {
			return report, err
		}
		if fr.err == nil {
			glog.V(1).Infof("%s: %d pages (%d redirects, %d skipped)", fr.Name, fr.Pages, fr.Redirects, fr.Skipped)
			continue
		}
		glog.Errorf("%s: %v", fr.Name, fr.err)
		if r.Policy == StopRun {
			return report, fr.err
		}
	}
	return report, nil
}

// RunFile parses a single file
func (r *Runner) RunFile(ctx context.Context, desc input.Descriptor) *FileReport {
	fr := &FileReport{Name: string(desc.Name)}
	glog.V(1).Infof("%s: parsing (%d bytes)", fr.Name, desc.Size)

	var onRead func(int64)
	if r.Tracker != nil {
		onRead = r.Tracker.Update
	}
	stream, err := input.Open(ctx, r.Client, desc, onRead)
	if err != nil {
		fr.fail(err)
		return fr
	}
	defer stream.Close()

	var opts []dump.Option
	if r.Policy == SkipPage {
		opts = append(opts, dump.WithRecovery(func(p *dump.Page, err error) {
			fr.Skipped++
			fr.Dropped = append(fr.Dropped, newErrorReport(err, p.Title.Get()))
			glog.Warningf("%s: dropped page %q: %v", fr.Name, p.Title.Get(), err)
		}))
	}
	doc := dump.NewDocument(fr.Name, opts...)
	if err := r.pump(ctx, token.NewSource(stream, r.SourceOptions...), doc, fr); err != nil {
		fr.fail(errors.Wrap(err, fr.Name))
	}
	return fr
}

func (r *Runner) pump(ctx context.Context, src *token.Source, doc *dump.Document, fr *FileReport) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := src.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return parseerr.At(err, src.Offset())
		}
		if err := doc.HandleEvent(ev); err != nil {
			return parseerr.At(err, ev.Offset)
		}

		for _, p := range doc.Pages() {
			if !p.Closed {
				break
			}
			fr.Pages++
			if p.IsRedirect() {
				fr.Redirects++
			}
		}
		if r.Processor == nil {
			doc.Drain()
		} else if err := r.Processor.Process(doc); err != nil {
			return err
		}
	}
}
