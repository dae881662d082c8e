package output

import (
	"bufio"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// dictionary is the set of words seen in page text
type dictionary map[string]struct{}

// add collects the words of text. A trailing dot is dropped where it ends
// a sentence: at the end of a line or before a capitalised word. Two
// character words ending in a dot are taken for initials and left out.
//
// Abbreviations before a capitalised word lose their dot too, so "Dr."
// in "with Dr. Abigail" is collected as "Dr".
func (d dictionary) add(text string) {
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		for i, word := range words {
			if strings.HasSuffix(word, ".") {
				if utf8.RuneCountInString(word) == 2 {
					continue
				}
				if i == len(words)-1 || startsUpper(words[i+1]) {
					word = strings.TrimSuffix(word, ".")
				}
			}
			if word != "" {
				d[word] = struct{}{}
			}
		}
	}
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// words returns the dictionary in byte order
func (d dictionary) words() []string {
	words := make([]string, 0, len(d))
	for w := range d {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// writeTo writes one word per line
func (d dictionary) writeTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, word := range d.words() {
		bw.WriteString(word)
		bw.WriteByte('\n')
	}
	return errors.WithStack(bw.Flush())
}
