package input

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// UserAgent identifies requests to mirrors
const UserAgent = "wiki-extractor (github.com/Caellian/wiki-extractor)"

const readerBufsize = 256 * 1024

// Stream is an open, decompressed dump file
type Stream struct {
	r       io.Reader
	counter *CountingReader
	closers []io.Closer
}

func (s *Stream) Read(b []byte) (int, error) { return s.r.Read(b) }

// Consumed returns the number of compressed bytes read from the source
func (s *Stream) Consumed() int64 { return s.counter.Count() }

func (s *Stream) Close() (err error) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if cerr := s.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens the dump file desc. onRead, if not nil, receives the number
// of compressed bytes consumed after every read of the source.
func Open(ctx context.Context, client *http.Client, desc Descriptor, onRead func(total int64)) (*Stream, error) {
	var src io.ReadCloser
	if desc.Location.IsRemote() {
		u := desc.URL
		if u == "" {
			u = desc.Location.Remote.FileURL(string(desc.Name))
		}
		glog.V(1).Infof("downloading %s", u)
		resp, err := get(ctx, client, u)
		if err != nil {
			return nil, err
		}
		src = resp.Body
	} else {
		f, err := os.Open(desc.Location.Path)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		src = f
	}

	s := &Stream{closers: []io.Closer{src}}
	s.counter = NewCountingReader(bufio.NewReaderSize(src, readerBufsize), onRead)
	switch desc.Compression() {
	case "bz2":
		s.r = bufio.NewReaderSize(bzip2.NewReader(s.counter), readerBufsize)
	case "gz":
		zr, err := gzip.NewReader(s.counter)
		if err != nil {
			src.Close()
			return nil, errors.Wrapf(err, "opening %s", desc.Name)
		}
		s.closers = append(s.closers, zr)
		s.r = bufio.NewReaderSize(zr, readerBufsize)
	default:
		s.r = s.counter
	}
	return s, nil
}

func get(ctx context.Context, client *http.Client, u string) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("User-Agent", UserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", u)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, errors.Errorf("GET %s: %s", u, resp.Status)
	}
	return resp, nil
}
