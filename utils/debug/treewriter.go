// Package debug provides helpers for human readable dumps of the internal
// trees (normalized XML, layout) stored in debug reports.
package debug

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes quoted value under label, empty values are written as is.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Attrs writes attribute map on a single line sorted by name, nothing is
// written for empty map.
func (tw TreeWriter) Attrs(depth int, attrs map[string]string) {
	if len(attrs) == 0 {
		return
	}
	names := make([]string, 0, len(attrs))
	for k := range attrs {
		names = append(names, k)
	}
	sort.Strings(names)

	tw.indent(depth)
	tw.w.WriteByte('@')
	for i, k := range names {
		if i > 0 {
			tw.w.WriteByte(' ')
		}
		tw.w.WriteString(k)
		tw.w.WriteByte('=')
		tw.w.WriteString(strconv.Quote(attrs[k]))
	}
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
