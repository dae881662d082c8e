package input

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// FileName is the base name of a dump file
type FileName string

// Ext returns the text after the last dot, or "" without one
func (n FileName) Ext() string {
	if i := strings.LastIndexByte(string(n), '.'); i >= 0 {
		return string(n[i+1:])
	}
	return ""
}

// SortNatural orders files by name the way people sort file names: runs
// of digits compare by numeric value, so "p2" sorts before "p10".
func SortNatural(files []Descriptor) {
	sort.SliceStable(files, func(i, j int) bool {
		return natural.Less(string(files[i].Name), string(files[j].Name))
	})
}
