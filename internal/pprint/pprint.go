// Package pprint renders a decoded bencode tree for terminal display. Keys
// and list indices are indented by depth; long byte-strings are summarized
// instead of dumped raw.
package pprint

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/fuchsi/torrentinfo/bencode"
)

// Byte-strings longer than this are shown as a size summary. Piece hash
// blocks would otherwise flood the terminal with binary.
const maxInlineBytes = 80

// Styles selects the colours used for the different node classes. Label and
// LabelAlt alternate by nesting depth so adjacent levels are told apart.
type Styles struct {
	Label    *color.Color
	LabelAlt *color.Color
	Number   *color.Color
	Bytes    *color.Color
}

func DefaultStyles() Styles {
	return Styles{
		Label:    color.New(color.Faint, color.Bold),
		LabelAlt: color.New(color.FgGreen),
		Number:   color.New(color.FgCyan),
		Bytes:    color.New(color.FgRed, color.Bold),
	}
}

func (st Styles) label(depth int) *color.Color {
	if depth%2 == 0 {
		return st.LabelAlt
	}
	return st.Label
}

// Tree writes the whole value tree to w, one node per line, indented by
// depth starting at one.
func Tree(w io.Writer, root bencode.Value, indent string, st Styles) {
	printValue(w, root, indent, 1, st)
}

func printValue(w io.Writer, v bencode.Value, indent string, depth int, st Styles) {
	switch v.Kind() {
	case bencode.Dict:
		printDict(w, v.Dict(), indent, depth, st)
	case bencode.List:
		printList(w, v.List(), indent, depth, st)
	case bencode.String:
		b := v.Bytes()
		if len(b) > maxInlineBytes {
			fmt.Fprintf(w, "%s%s\n", strings.Repeat(indent, depth), st.Bytes.Sprintf("[%d Bytes]", len(b)))
		} else {
			fmt.Fprintf(w, "%s%s\n", strings.Repeat(indent, depth), string(b))
		}
	case bencode.Integer:
		fmt.Fprintf(w, "%s%s\n", strings.Repeat(indent, depth), st.Number.Sprint(v.Int64()))
	}
}

func printDict(w io.Writer, items []bencode.DictItem, indent string, depth int, st Styles) {
	for _, it := range items {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat(indent, depth), st.label(depth).Sprint(string(it.Key)))
		printValue(w, it.Value, indent, depth+1, st)
	}
}

func printList(w io.Writer, elems []bencode.Value, indent string, depth int, st Styles) {
	for i, v := range elems {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat(indent, depth), st.label(depth).Sprint(strconv.Itoa(i)))
		printValue(w, v, indent, depth+1, st)
	}
}
