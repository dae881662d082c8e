package dump

// Option configures a Document
type Option func(*Document)

// WithRecovery enables page level recovery. An error raised while a page
// is being built drops the page and is passed to fn along with it; the
// rest of the page's events are skipped and parsing resumes after its
// end tag. Errors outside pages, and the end of input, are still
// returned by HandleEvent.
func WithRecovery(fn func(p *Page, err error)) Option {
	return func(d *Document) { d.recover = fn }
}
