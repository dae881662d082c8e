package token

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/Caellian/wiki-extractor/parseerr"
)

// Source reads Events from an XML byte stream.
type Source struct {
	d *xml.Decoder

	// look-ahead token read while checking for a self-closing tag
	next    xml.Token
	nextErr error
	nextOff int64
	hasNext bool

	done bool
}

// NewSource returns a Source reading r
func NewSource(r io.Reader, opts ...Option) *Source {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	d := xml.NewDecoder(r)
	d.Strict = cfg.strict
	if !cfg.strict {
		d.Entity = xml.HTMLEntity
	}
	d.CharsetReader = cfg.charsetReader
	return &Source{d: d}
}

// Offset returns the input offset of the underlying decoder
func (s *Source) Offset() int64 { return s.d.InputOffset() }

func (s *Source) read() (xml.Token, int64, error) {
	if s.hasNext {
		s.hasNext = false
		tok, off, err := s.next, s.nextOff, s.nextErr
		s.next, s.nextErr = nil, nil
		return tok, off, err
	}
	off := s.d.InputOffset()
	tok, err := s.d.RawToken()
	if err != nil {
		return nil, off, err
	}
	return xml.CopyToken(tok), off, nil
}

// Next returns the next event. At the end of input a single EOF event
// is returned; after that Next returns io.EOF.
func (s *Source) Next() (Event, error) {
	if s.done {
		return Event{}, io.EOF
	}
	tok, off, err := s.read()
	if err == io.EOF {
		s.done = true
		return Event{Kind: EOF, Offset: off}, nil
	} else if err != nil {
		s.done = true
		return Event{}, s.convertErr(err, off)
	}

	var ev Event
	switch t := tok.(type) {
	case xml.StartElement:
		ev = Event{Kind: StartTag, Name: t.Name, Attr: t.Attr, Offset: off}
		// encoding/xml reports <a/> as a start and end element pair, the
		// end element being synthesized without consuming input.
		after := s.d.InputOffset()
		la, err := s.d.RawToken()
		if err == nil {
			if end, ok := la.(xml.EndElement); ok && end.Name == t.Name && s.d.InputOffset() == after {
				ev.Kind = EmptyTag
				break
			}
			la = xml.CopyToken(la)
		}
		s.next, s.nextErr, s.nextOff, s.hasNext = la, err, after, true
	case xml.EndElement:
		ev = Event{Kind: EndTag, Name: t.Name, Offset: off}
	case xml.CharData:
		ev = Event{Kind: Text, Data: t, Offset: off}
	case xml.Comment:
		ev = Event{Kind: Comment, Data: t, Offset: off}
	case xml.ProcInst:
		ev = Event{Kind: ProcInst, Name: xml.Name{Local: t.Target}, Data: t.Inst, Offset: off}
	case xml.Directive:
		ev = Event{Kind: Directive, Data: t, Offset: off}
	default:
		return Event{}, errors.Errorf("unexpected token %T", tok)
	}
	if glog.V(3) {
		glog.Infof("token: %s @%d", ev, ev.Offset)
	}
	return ev, nil
}

// convertErr maps decoder failures caused by the byte encoding of the
// input to parseerr encoding errors; anything else is returned wrapped.
func (s *Source) convertErr(err error, off int64) error {
	var syn *xml.SyntaxError
	if errors.As(err, &syn) && strings.Contains(syn.Msg, "UTF-8") {
		return parseerr.EncodingError(err, parseerr.WithOffset(off))
	}
	if strings.Contains(err.Error(), "charset") {
		return parseerr.EncodingError(err, parseerr.WithOffset(off))
	}
	return errors.Wrapf(err, "reading xml at offset %d", off)
}
