package extract

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caellian/wiki-extractor/dump"
	"github.com/Caellian/wiki-extractor/input"
	"github.com/Caellian/wiki-extractor/parseerr"
)

const header = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/" version="0.10">
  <siteinfo><sitename>Wikipedia</sitename><dbname>enwiki</dbname></siteinfo>
`

func page(title, id string, extra string) string {
	return "  <page><title>" + title + "</title><ns>0</ns><id>" + id + "</id>" + extra +
		"<revision><id>1</id><timestamp>2023-01-01T00:00:00Z</timestamp><model>wikitext</model>" +
		"<format>text/x-wiki</format><text bytes=\"5\">hello</text></revision></page>\n"
}

func writeFile(t *testing.T, dir, name, content string) input.Descriptor {
	t.Helper()
	path := filepath.Join(dir, name)
	data := []byte(content)
	if strings.HasSuffix(name, ".gz") {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write(data)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		data = buf.Bytes()
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return input.Descriptor{Name: input.FileName(name), Size: int64(len(data)), Location: input.LocalFile(path)}
}

type recorder struct {
	titles []string
	fail   error
}

func (r *recorder) Process(doc *dump.Document) error {
	for _, p := range doc.Drain() {
		r.titles = append(r.titles, p.Title.Get())
	}
	if len(r.titles) > 0 {
		return r.fail
	}
	return nil
}

var (
	good = header +
		page("A", "1", `<redirect title="B" />`) +
		page("B", "2", "") +
		"</mediawiki>\n"
	broken = header +
		page("C", "3", "") +
		page("D", "x", "") +
		page("E", "5", "") +
		"</mediawiki>\n"
	truncated = header + page("F", "6", "")
)

func TestRunner(t *testing.T) {
	for _, tc := range []struct {
		name    string
		policy  Policy
		files   []string
		titles  []string
		pages   []int
		skipped []int
		failed  []bool
		err     bool
	}{
		{
			name:   "clean",
			files:  []string{good},
			titles: []string{"A", "B"},
			pages:  []int{2},
			failed: []bool{false},
		},
		{
			name:   "abort file",
			files:  []string{broken, good},
			titles: []string{"C", "A", "B"},
			pages:  []int{1, 2},
			failed: []bool{true, false},
		},
		{
			name:    "skip page",
			policy:  SkipPage,
			files:   []string{broken, good},
			titles:  []string{"C", "E", "A", "B"},
			pages:   []int{2, 2},
			skipped: []int{1, 0},
			failed:  []bool{false, false},
		},
		{
			name:   "stop run",
			policy: StopRun,
			files:  []string{broken, good},
			titles: []string{"C"},
			pages:  []int{1},
			failed: []bool{true},
			err:    true,
		},
		{
			name:   "truncated",
			policy: SkipPage,
			files:  []string{truncated, good},
			titles: []string{"F", "A", "B"},
			pages:  []int{1, 2},
			failed: []bool{true, false},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			dir := t.TempDir()
			info := &input.DumpInfo{}
			for i, content := range tc.files {
				name := "dump" + string(rune('1'+i)) + ".xml"
				if i%2 == 1 {
					name += ".gz"
				}
				info.Files = append(info.Files, writeFile(t, dir, name, content))
			}

			rec := &recorder{}
			r := &Runner{Processor: rec, Policy: tc.policy}
			report, err := r.Run(context.Background(), info)
			if tc.err {
				check.Error(err)
			} else {
				check.NoError(err)
			}
			check.Equal(tc.titles, rec.titles)
			require.Len(t, report.Files, len(tc.pages))
			for i, fr := range report.Files {
				check.Equal(tc.pages[i], fr.Pages, fr.Name)
				check.Equal(tc.failed[i], fr.Err() != nil, fr.Name)
				if tc.skipped != nil {
					check.Equal(tc.skipped[i], fr.Skipped, fr.Name)
					check.Len(fr.Dropped, tc.skipped[i])
				}
			}
			if !tc.err {
				check.Equal(r.Tracker.total, r.Tracker.Consumed())
			}
		})
	}
}

func TestRunnerErrorDetail(t *testing.T) {
	check := assert.New(t)
	desc := writeFile(t, t.TempDir(), "broken.xml", broken)
	fr := (&Runner{}).RunFile(context.Background(), desc)

	check.Equal(1, fr.Pages)
	check.ErrorIs(fr.Err(), parseerr.ErrValue)
	check.Contains(fr.Err().Error(), "broken.xml")
	require.NotNil(t, fr.Error)
	require.NotNil(t, fr.Error.Detail)
	check.Equal(parseerr.KindValue, fr.Error.Detail.Kind)
	check.Equal("id", fr.Error.Detail.Field)
	check.Positive(fr.Error.Detail.Offset)
	check.Contains(fr.Error.Message, "broken.xml")
}

func TestRunnerRedirects(t *testing.T) {
	check := assert.New(t)
	desc := writeFile(t, t.TempDir(), "good.xml", good)
	fr := (&Runner{}).RunFile(context.Background(), desc)
	check.NoError(fr.Err())
	check.Equal(2, fr.Pages)
	check.Equal(1, fr.Redirects)
}

func TestRunnerMissingFile(t *testing.T) {
	check := assert.New(t)
	desc := input.Descriptor{Name: "nope.xml", Location: input.LocalFile(filepath.Join(t.TempDir(), "nope.xml"))}
	report, err := (&Runner{}).Run(context.Background(), &input.DumpInfo{Files: []input.Descriptor{desc}})
	check.NoError(err)
	check.Len(report.Failed(), 1)
}

func TestRunnerCancel(t *testing.T) {
	check := assert.New(t)
	dir := t.TempDir()
	info := &input.DumpInfo{Files: []input.Descriptor{
		writeFile(t, dir, "a.xml", good),
		writeFile(t, dir, "b.xml", good),
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := (&Runner{}).Run(ctx, info)
	check.ErrorIs(err, context.Canceled)
	check.Len(report.Files, 1)
	check.Zero(report.Pages())
}

func TestProcessorError(t *testing.T) {
	check := assert.New(t)
	desc := writeFile(t, t.TempDir(), "good.xml", good)
	rec := &recorder{fail: assert.AnError}
	fr := (&Runner{Processor: rec}).RunFile(context.Background(), desc)
	check.ErrorIs(fr.Err(), assert.AnError)
	check.Equal([]string{"A"}, rec.titles)
}

func TestReportJSON(t *testing.T) {
	check := assert.New(t)
	dir := t.TempDir()
	info := &input.DumpInfo{Files: []input.Descriptor{
		writeFile(t, dir, "a.xml", broken),
		writeFile(t, dir, "b.xml", good),
	}}
	report, err := (&Runner{Policy: SkipPage}).Run(context.Background(), info)
	require.NoError(t, err)
	check.Equal(4, report.Pages())
	check.Empty(report.Failed())

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf))
	var decoded struct {
		Files []struct {
			Name    string `json:"name"`
			Pages   int    `json:"pages"`
			Skipped int    `json:"skipped"`
			Dropped []struct {
				Message string `json:"message"`
				Page    string `json:"page"`
				Detail  struct {
					Kind string `json:"kind"`
				} `json:"detail"`
			} `json:"dropped"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Files, 2)
	check.Equal("a.xml", decoded.Files[0].Name)
	check.Equal(1, decoded.Files[0].Skipped)
	require.Len(t, decoded.Files[0].Dropped, 1)
	check.Equal("D", decoded.Files[0].Dropped[0].Page)
	check.Equal("value-error", decoded.Files[0].Dropped[0].Detail.Kind)
	check.NotContains(buf.String(), `"error"`)
}

func TestPolicy(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Policy
		err  bool
	}{
		{in: "abort-file", want: AbortFile},
		{in: "skip-page", want: SkipPage},
		{in: "stop", want: StopRun},
		{in: "retry", err: true},
	} {
		t.Run(tc.in, func(t *testing.T) {
			check := assert.New(t)
			var p Policy
			err := p.Set(tc.in)
			if tc.err {
				check.Error(err)
				return
			}
			check.NoError(err)
			check.Equal(tc.want, p)
			check.Equal(tc.in, p.String())
		})
	}
	assert.Equal(t, "Policy(9)", Policy(9).String())
}

func TestTracker(t *testing.T) {
	check := assert.New(t)
	tr := NewTracker(4*mib, mib)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.start = start
	tr.now = func() time.Time { return start.Add(10 * time.Second) }

	check.Zero(tr.Progress())
	check.Zero(tr.ETA())

	tr.Update(mib)
	check.Equal(int64(mib), tr.Consumed())
	check.Equal(int64(mib), tr.logged)
	check.InDelta(0.25, tr.Progress(), 1e-9)
	check.Equal(30*time.Second, tr.ETA())

	tr.FileDone(2 * mib)
	check.Equal(int64(2*mib), tr.Consumed())
	tr.Update(mib / 2)
	check.Equal(int64(2*mib+mib/2), tr.Consumed())
	check.Equal(int64(2*mib+mib/2), tr.logged)
	tr.FileDone(mib / 4)
	check.Equal(int64(2*mib+mib/2), tr.Consumed())

	tr.FileDone(10 * mib)
	check.Equal(1.0, tr.Progress())
	check.Zero(tr.ETA())
	check.Contains(tr.String(), "progress 100.0%")
}

func TestFormatBytes(t *testing.T) {
	for _, tc := range []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.50 KiB"},
		{3 * mib, "3.00 MiB"},
		{5 << 30, "5.00 GiB"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, formatBytes(tc.n))
		})
	}
}
