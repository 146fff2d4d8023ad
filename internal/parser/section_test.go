package parser

import (
	"regexp"
	"testing"
)

func TestFindSpan(t *testing.T) {
	text := "A\nfoo\nB\nbar\nC\n"
	a, b, c := heading("A"), heading("B"), heading("C")

	tests := []struct {
		name  string
		start *regexp.Regexp
		ends  []*regexp.Regexp
		want  string
		found bool
	}{
		{"earliest end wins", a, []*regexp.Regexp{c, b}, "\nfoo\n", true},
		{"no ends runs to end of text", b, nil, "\nbar\nC\n", true},
		{"end before start is ignored", b, []*regexp.Regexp{a}, "\nbar\nC\n", true},
		{"missing start", heading("Z"), []*regexp.Regexp{a}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := FindSpan(text, tt.start, tt.ends)
			if span.Found() != tt.found {
				t.Fatalf("found: got %v, want %v", span.Found(), tt.found)
			}
			if !tt.found && (span.Start != NotFound || span.End != NotFound) {
				t.Errorf("got %+v, want both ends NotFound", span)
			}
			if got := span.Slice(text); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeadingMatchesWholeLine(t *testing.T) {
	re := heading("Inquiries")
	if !re.MatchString("x\n  Inquiries  \ny") {
		t.Error("expected indented heading to match")
	}
	if re.MatchString("Promotional Inquiries") {
		t.Error("heading must not match inside a longer line")
	}
	if got := re.FindString("Inquiries\n\nmore"); got != "Inquiries" {
		t.Errorf("got %q, want the heading line only", got)
	}
}

func TestLayoutSegment(t *testing.T) {
	layout := NewLayout(
		Anchor{Name: "one", Pattern: heading("One")},
		Anchor{Name: "two", Pattern: heading("Two")},
		Anchor{Name: "three", Pattern: heading("Three")},
	)

	text := "intro\nOne\nfirst\nThree\nthird\n"
	secs := layout.Segment(text)

	if got := secs.Get("one"); got != "\nfirst\n" {
		t.Errorf("one: got %q", got)
	}
	if got := secs.Get("two"); got != "" {
		t.Errorf("two: got %q, want empty", got)
	}
	if secs.Span("two").Found() {
		t.Error("two should be absent")
	}
	if got := secs.Get("three"); got != "\nthird\n" {
		t.Errorf("three: got %q", got)
	}
	if got := len(secs.Chunks()); got != 3 {
		t.Errorf("chunks: got %d, want 3", got)
	}
	if got := len(layout.Patterns()); got != 3 {
		t.Errorf("patterns: got %d, want 3", got)
	}
}

func TestLayoutSegment_AnchorEnds(t *testing.T) {
	extra := heading("Extra")
	layout := NewLayout(
		Anchor{Name: "one", Pattern: heading("One"), Ends: []*regexp.Regexp{extra}},
		Anchor{Name: "two", Pattern: heading("Two")},
	)

	secs := layout.Segment("One\nfirst\nExtra\nother\nTwo\nsecond\n")
	if got := secs.Get("one"); got != "\nfirst\n" {
		t.Errorf("one: got %q", got)
	}
	if got := secs.Get("two"); got != "\nsecond\n" {
		t.Errorf("two: got %q", got)
	}
}
