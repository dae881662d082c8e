package output

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/Caellian/wiki-extractor/dump"
)

const (
	RedirectsFile  = "redirects.json"
	MetadataFile   = "wiki_page_info.json"
	TextFile       = "wiki_text.txt"
	DictionaryFile = "dictionary.txt"
)

const (
	supportedModel  = "wikitext"
	supportedFormat = "text/x-wiki"
)

// PageInfo is an entry of the metadata file
type PageInfo struct {
	ID        uint64 `json:"id"`
	NS        int64  `json:"ns"`
	Title     string `json:"title"`
	Revision  uint64 `json:"revision,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Model     string `json:"model,omitempty"`
	Format    string `json:"format,omitempty"`
	Bytes     int64  `json:"bytes,omitempty"`
}

// Stats counts the pages a Generator processed
type Stats struct {
	Pages     int `json:"pages"`
	Redirects int `json:"redirects"`
	// Skipped counts pages excluded by selection or with unsupported content
	Skipped int `json:"skipped"`
}

// Generator writes the output files for the pages drained from documents
type Generator struct {
	dir      string
	opts     Options
	selector *Selector

	files     []*os.File
	redirects *jsonWriter
	metadata  *jsonWriter
	text      *bufio.Writer
	dictFile  *os.File
	dict      dictionary

	stats  Stats
	closed bool
}

// New creates dir if needed and the files enabled by opts within it
func New(dir string, opts Options) (*Generator, error) {
	g := &Generator{dir: dir, opts: opts}
	if opts.Select != "" {
		s, err := NewSelector(opts.Select)
		if err != nil {
			return nil, err
		}
		g.selector = s
	}
	if fi, err := os.Stat(dir); err == nil && !fi.IsDir() {
		return nil, errors.Errorf("output path %s is not a directory", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WithStack(err)
	}

	var err error
	if opts.Redirects {
		if g.redirects, err = g.createJSON(RedirectsFile, '{', '}'); err != nil {
			return nil, g.abort(err)
		}
	}
	if opts.Metadata {
		if g.metadata, err = g.createJSON(MetadataFile, '[', ']'); err != nil {
			return nil, g.abort(err)
		}
	}
	if opts.Text {
		f, err := g.create(TextFile)
		if err != nil {
			return nil, g.abort(err)
		}
		g.text = bufio.NewWriter(f)
	}
	if opts.Dictionary {
		if g.dictFile, err = g.create(DictionaryFile); err != nil {
			return nil, g.abort(err)
		}
		g.dict = dictionary{}
	}
	return g, nil
}

func (g *Generator) create(name string) (*os.File, error) {
	f, err := os.Create(filepath.Join(g.dir, name))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	g.files = append(g.files, f)
	return f, nil
}

func (g *Generator) createJSON(name string, open, end byte) (*jsonWriter, error) {
	f, err := g.create(name)
	if err != nil {
		return nil, err
	}
	return newJSONWriter(f, open, end), nil
}

func (g *Generator) abort(err error) error {
	for _, f := range g.files {
		f.Close()
	}
	return err
}

// Stats returns the counts so far
func (g *Generator) Stats() Stats { return g.stats }

// Process drains every closed page at the front of doc and writes it
func (g *Generator) Process(doc *dump.Document) error {
	if g.closed {
		return errors.New("generator is finalized")
	}
	for {
		p, ok := doc.PopPage()
		if !ok {
			return nil
		}
		if err := g.page(p); err != nil {
			return errors.Wrapf(err, "page %q", p.Title.Get())
		}
	}
}

func (g *Generator) page(p *dump.Page) error {
	// revision text is released with the page
	defer func() { p.Revisions = nil }()

	if g.selector != nil {
		ok, err := g.selector.Match(p)
		if err != nil {
			return err
		}
		if !ok {
			g.stats.Skipped++
			return nil
		}
	}
	g.stats.Pages++
	title := p.Title.Get()

	if p.IsRedirect() {
		g.stats.Redirects++
		if glog.V(2) {
			glog.Infof("redirect %q -> %q", title, p.RedirectTarget())
		}
		if g.redirects == nil {
			return nil
		}
		return g.redirects.entry(title, p.RedirectTarget())
	}

	rev := p.Latest()
	if rev == nil {
		glog.Warningf("page %d %q has no revisions", p.ID.Get(), title)
		return nil
	}
	if g.metadata != nil {
		info := PageInfo{
			ID:        p.ID.Get(),
			NS:        p.NS.Get(),
			Title:     title,
			Revision:  rev.ID.Get(),
			Timestamp: rev.Timestamp.Get(),
			Model:     rev.Model.Get(),
			Format:    rev.Format.Get(),
		}
		info.Bytes, _ = rev.Size()
		if err := g.metadata.entry("", info); err != nil {
			return err
		}
	}
	if g.text == nil && g.dict == nil {
		return nil
	}
	if model, format := rev.Model.Get(), rev.Format.Get(); model != supportedModel || format != supportedFormat {
		glog.Errorf("unhandled page (%d: %s) model/format: { model: %q; format: %q }", p.ID.Get(), title, model, format)
		g.stats.Skipped++
		return nil
	}
	text, _ := rev.Text.Take()
	text = CollapseWhitespace(text)
	if text == "" {
		return nil
	}
	if g.dict != nil {
		g.dict.add(text)
	}
	if g.text == nil {
		return nil
	}
	if _, err := g.text.WriteString(text); err != nil {
		return errors.WithStack(err)
	}
	_, err := g.text.WriteString("\n\n")
	return errors.WithStack(err)
}

// Finalize completes and closes every output file
func (g *Generator) Finalize() error {
	if g.closed {
		return errors.New("generator is already finalized")
	}
	g.closed = true

	var err error
	keep := func(e error) {
		if err == nil && e != nil {
			err = errors.WithStack(e)
		}
	}
	if g.redirects != nil {
		keep(g.redirects.finish())
	}
	if g.metadata != nil {
		keep(g.metadata.finish())
	}
	if g.text != nil {
		keep(g.text.Flush())
	}
	if g.dictFile != nil {
		keep(g.dict.writeTo(g.dictFile))
		g.dict = nil
	}
	for _, f := range g.files {
		keep(f.Close())
	}
	glog.V(1).Infof("output: %d pages, %d redirects, %d skipped", g.stats.Pages, g.stats.Redirects, g.stats.Skipped)
	return err
}

// jsonWriter streams the entries of a JSON object or array
type jsonWriter struct {
	w      *bufio.Writer
	end    byte
	object bool
	n      int
}

func newJSONWriter(f *os.File, open, end byte) *jsonWriter {
	w := bufio.NewWriter(f)
	w.WriteByte(open)
	w.WriteByte('\n')
	return &jsonWriter{w: w, end: end, object: open == '{'}
}

// entry writes value, under key for objects
func (j *jsonWriter) entry(key string, value interface{}) error {
	if j.n > 0 {
		j.w.WriteString(",\n")
	}
	j.n++
	j.w.WriteString("  ")
	if j.object {
		k, err := json.Marshal(key)
		if err != nil {
			return errors.WithStack(err)
		}
		j.w.Write(k)
		j.w.WriteString(": ")
	}
	v, err := json.Marshal(value)
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = j.w.Write(v)
	return errors.WithStack(err)
}

func (j *jsonWriter) finish() error {
	if j.n > 0 {
		j.w.WriteByte('\n')
	}
	j.w.WriteByte(j.end)
	j.w.WriteByte('\n')
	return j.w.Flush()
}
