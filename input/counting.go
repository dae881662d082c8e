package input

import "io"

// CountingReader counts the bytes read from its source, reporting the
// running total to a callback after each read
type CountingReader struct {
	src    io.Reader
	n      int64
	onRead func(total int64)
}

// NewCountingReader returns a CountingReader over source. onRead may be
// nil.
func NewCountingReader(source io.Reader, onRead func(total int64)) *CountingReader {
	if source == nil {
		panic("NewCountingReader: source must be non-nil")
	}
	return &CountingReader{src: source, onRead: onRead}
}

func (r *CountingReader) Read(b []byte) (n int, err error) {
	n, err = r.src.Read(b)
	if n > 0 {
		r.n += int64(n)
		if r.onRead != nil {
			r.onRead(r.n)
		}
	}
	return
}

// Count returns the number of bytes read so far
func (r *CountingReader) Count() int64 { return r.n }
