package extractor

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	pageBreakRe  = regexp.MustCompile(`(?i)\n+\s*===PAGE\s+\d+===\s*\n+`)
	spaceRunRe   = regexp.MustCompile(`[ \t]{2,}`)
	nbspReplacer = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2007", " ")
)

// isPrivateUse reports whether r is in a Unicode private-use area. Report
// PDFs render icons (checkmarks, bullets) from PUA glyphs.
func isPrivateUse(r rune) bool {
	return (r >= 0xE000 && r <= 0xF8FF) ||
		(r >= 0xF0000 && r <= 0xFFFFD) ||
		(r >= 0x100000 && r <= 0x10FFFD)
}

// Clean prepares extracted text for the parsers: page-break delimiters are
// removed, compatibility glyphs folded (NFKC), private-use glyphs blanked,
// non-breaking spaces normalized and runs of spaces/tabs collapsed.
// Newlines are preserved.
func Clean(text string) string {
	s := pageBreakRe.ReplaceAllString(text, "\n")
	s = nbspReplacer.Replace(s)
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if isPrivateUse(r) {
			return ' '
		}
		return r
	}, s)
	return spaceRunRe.ReplaceAllString(s, " ")
}

// Head returns the first n lines of text.
func Head(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
