package xmlutil

// IsBlank reports whether b consists only of XML whitespace
// (space, tab, carriage return, line feed).
func IsBlank(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
