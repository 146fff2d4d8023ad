package parser

import (
	"regexp"
)

// NotFound marks both ends of a Span whose start anchor did not match.
const NotFound = -1

// Span is a half-open byte range [Start, End) of the document text.
type Span struct {
	Start int
	End   int
}

// Found reports whether the start anchor matched.
func (s Span) Found() bool {
	return s.Start != NotFound
}

// Slice returns the spanned text, or "" when the section is absent.
func (s Span) Slice(text string) string {
	if !s.Found() {
		return ""
	}
	return text[s.Start:s.End]
}

// FindSpan locates the first match of start. The span begins right after
// the match and ends at the earliest match of any end anchor that follows
// it, or at the end of text.
func FindSpan(text string, start *regexp.Regexp, ends []*regexp.Regexp) Span {
	loc := start.FindStringIndex(text)
	if loc == nil {
		return Span{Start: NotFound, End: NotFound}
	}
	span := Span{Start: loc[1], End: len(text)}
	rest := text[span.Start:]
	for _, end := range ends {
		if m := end.FindStringIndex(rest); m != nil && span.Start+m[0] < span.End {
			span.End = span.Start + m[0]
		}
	}
	return span
}

// Anchor names a section and the heading pattern that opens it. Ends
// lists headings outside the layout that also close the section.
type Anchor struct {
	Name    string
	Pattern *regexp.Regexp
	Ends    []*regexp.Regexp
}

// Layout is the ordered list of top-level sections of one bureau's report.
// A section ends where any section listed after it begins.
type Layout struct {
	anchors []Anchor
}

// NewLayout builds a Layout from anchors in document order.
func NewLayout(anchors ...Anchor) Layout {
	return Layout{anchors: append([]Anchor(nil), anchors...)}
}

// Patterns returns the start anchors in layout order.
func (l Layout) Patterns() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(l.anchors))
	for _, a := range l.anchors {
		out = append(out, a.Pattern)
	}
	return out
}

// Sections maps section names to their text. Absent sections are "".
type Sections struct {
	names []string
	text  map[string]string
	spans map[string]Span
}

// Get returns the text of the named section.
func (s Sections) Get(name string) string {
	return s.text[name]
}

// Span returns the byte range of the named section.
func (s Sections) Span(name string) Span {
	if sp, ok := s.spans[name]; ok {
		return sp
	}
	return Span{Start: NotFound, End: NotFound}
}

// Chunks returns the section texts in layout order, for the audit trail.
func (s Sections) Chunks() []string {
	out := make([]string, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.text[n])
	}
	return out
}

// Segment slices text into the layout's sections.
func (l Layout) Segment(text string) Sections {
	secs := Sections{
		text:  make(map[string]string, len(l.anchors)),
		spans: make(map[string]Span, len(l.anchors)),
	}
	for i, a := range l.anchors {
		ends := make([]*regexp.Regexp, 0, len(l.anchors)-i-1+len(a.Ends))
		for _, later := range l.anchors[i+1:] {
			ends = append(ends, later.Pattern)
		}
		ends = append(ends, a.Ends...)
		span := FindSpan(text, a.Pattern, ends)
		secs.names = append(secs.names, a.Name)
		secs.spans[a.Name] = span
		secs.text[a.Name] = span.Slice(text)
	}
	return secs
}

// heading compiles a pattern that matches title on a line of its own.
func heading(title string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*` + title + `[ \t]*$`)
}
