package token

import (
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/Caellian/wiki-extractor/parseerr"
)

// lookupEncoding maps a charset label from an XML declaration to an
// encoding. Labels not listed are resolved through the WHATWG index.
func lookupEncoding(label string) encoding.Encoding {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf8", "utf-8":
		return unicode.UTF8
	case "euc-jp":
		return japanese.EUCJP
	case "shift_jis", "shift-jis", "shiftjis", "cp932":
		return japanese.ShiftJIS
	case "iso-2022-jp":
		return japanese.ISO2022JP
	case "big5":
		return traditionalchinese.Big5
	case "euc-kr":
		return korean.EUCKR
	case "gbk", "gb2312":
		return simplifiedchinese.GBK
	case "cp437":
		return charmap.CodePage437
	case "cp866":
		return charmap.CodePage866
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1
	case "iso-8859-2":
		return charmap.ISO8859_2
	case "iso-8859-5":
		return charmap.ISO8859_5
	case "iso-8859-15":
		return charmap.ISO8859_15
	case "koi8-r", "koi8r":
		return charmap.KOI8R
	case "windows-1250", "windows1250":
		return charmap.Windows1250
	case "windows-1251", "windows1251":
		return charmap.Windows1251
	case "windows-1252", "windows1252":
		return charmap.Windows1252
	}
	if e, err := htmlindex.Get(label); err == nil {
		return e
	}
	return nil
}

// CharsetReader returns a reader which converts input in the named
// charset to UTF-8. It fits xml.Decoder's CharsetReader field.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	e := lookupEncoding(label)
	if e == nil {
		return nil, parseerr.EncodingError(nil, parseerr.WithMessage("unsupported charset "+label))
	}
	return e.NewDecoder().Reader(input), nil
}
