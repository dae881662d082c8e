package token

import "io"

// Option configures a Source
type Option func(*config)

type config struct {
	strict        bool
	charsetReader func(label string, input io.Reader) (io.Reader, error)
}

func defaultConfig() config {
	return config{strict: true, charsetReader: CharsetReader}
}

// WithStrict toggles strict XML parsing. When disabled, unknown
// entities are resolved against the HTML entity table and left
// untouched otherwise.
func WithStrict(strict bool) Option { return func(c *config) { c.strict = strict } }

func WithCharsetReader(fn func(label string, input io.Reader) (io.Reader, error)) Option {
	return func(c *config) { c.charsetReader = fn }
}
