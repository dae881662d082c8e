package parseerr

import (
	"encoding/json"
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type state string

func (s state) String() string { return string(s) }

func TestError(t *testing.T) {
	for _, tc := range []struct {
		err *Error

		error string
		json  string
	}{
		{
			err:   InvalidFormat("expected root tag 'mediawiki'; got 'foo'"),
			error: "invalid document format: expected root tag 'mediawiki'; got 'foo'",
			json:  `{"kind":"invalid-format","reason":"expected root tag 'mediawiki'; got 'foo'"}`,
		},
		{
			err:   MissingAttribute("namespace", "key"),
			error: "namespace missing 'key' attribute",
			json:  `{"kind":"missing-attribute","parent":"namespace","attribute":"key"}`,
		},
		{
			err:   ValueError("ns", InvalidInt),
			error: "value error: invalid ns value: invalid integer value",
			json:  `{"kind":"value-error","tag":"ns","field":"ns","value":"invalid-int"}`,
		},
		{
			err:   ValueError("title", NonUTF8, WithOffset(42)),
			error: "value error: invalid title value: not a UTF-8 value at input offset 42",
			json:  `{"kind":"value-error","tag":"title","field":"title","value":"non-utf8","offset":42}`,
		},
		{
			err:   BadState(state("closed"), WithTag("title")),
			error: "<title> is in 'closed' state",
			json:  `{"kind":"bad-state","tag":"title","state":"closed"}`,
		},
		{
			err:   BadState(state("open"), WithMessage("unclosed document")),
			error: "tag is in 'open' state: unclosed document",
			json:  `{"kind":"bad-state","reason":"unclosed document","state":"open"}`,
		},
		{
			err:   UnhandledEvent("unexpected start tag <foo>", WithTag("page")),
			error: "can't handle event: unexpected start tag <foo> in <page>",
			json:  `{"kind":"unhandled-event","reason":"unexpected start tag <foo>","tag":"page"}`,
		},
		{
			err:   EncodingError(errors.New("unsupported charset \"ebcdic\"")),
			error: "invalid stream character/encoding: unsupported charset \"ebcdic\"",
			json:  `{"kind":"encoding-error"}`,
		},
	} {
		t.Run(tc.error, func(t *testing.T) {
			check := assert.New(t)
			check.Equal(tc.error, tc.err.Error())

			b, err := json.Marshal(tc.err)
			check.NoError(err)
			check.JSONEq(tc.json, string(b))

			var back Error
			check.NoError(json.Unmarshal(b, &back))
			check.Equal(tc.err.Kind, back.Kind)
			check.Equal(tc.err.Value, back.Value)
		})
	}
}

func TestIs(t *testing.T) {
	err := pkgerrors.Wrap(ValueError("id", InvalidInt), "pages-1.xml")

	check := assert.New(t)
	check.True(errors.Is(err, ErrValue))
	check.False(errors.Is(err, ErrBadState))

	kind, ok := KindOf(err)
	check.True(ok)
	check.Equal(KindValue, kind)

	_, ok = KindOf(errors.New("plain"))
	check.False(ok)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := EncodingError(cause)
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(UnhandledEvent("x", WithCause(cause)), cause))
}

func TestAt(t *testing.T) {
	check := assert.New(t)

	inner := MissingAttribute("namespace", "key")
	err := At(pkgerrors.Wrap(inner, "file"), 100)
	check.EqualValues(100, inner.Offset)

	// an offset already recorded is kept
	At(err, 200)
	check.EqualValues(100, inner.Offset)

	plain := errors.New("plain")
	check.Equal(plain, At(plain, 5))
}

func TestKindText(t *testing.T) {
	for k := KindInvalidFormat; k <= KindEncoding; k++ {
		t.Run(k.String(), func(t *testing.T) {
			check := assert.New(t)
			b, err := k.MarshalText()
			check.NoError(err)
			var back Kind
			check.NoError(back.UnmarshalText(b))
			check.Equal(k, back)
		})
	}
	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("nope")))
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
