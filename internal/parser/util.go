package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/insightdelivered/credit-report-parser/internal/normalize"
)

// Date tokens found in inquiry and record lines.
var (
	// M/D/YYYY
	dateSlashLong = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)
	// M/D/YY(YY), ISO or "March 5, 2024"
	dateAnyForm = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2}|[A-Za-z]{3,9}\s+\d{1,2},\s*\d{4})`)
	// Comma spacing in "March 5,2024"
	dateCommaGap = regexp.MustCompile(`,\s*`)
)

// fieldLike matches label, money and table lines, which never hold a
// creditor name.
var fieldLike = regexp.MustCompile(`[:$|]`)

// splitLines splits on newlines, keeping empty lines so that indices match
// the original layout.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// nearestAbove returns the closest non-empty trimmed line above index i,
// no further up than floor. Lines rejected by skip are passed over.
func nearestAbove(lines []string, i, floor int, skip func(string) bool) string {
	if floor < 0 {
		floor = 0
	}
	for j := i - 1; j >= floor; j-- {
		cand := strings.TrimSpace(lines[j])
		if cand == "" {
			continue
		}
		if skip != nil && skip(cand) {
			continue
		}
		return cand
	}
	return ""
}

// trimName strips the separators that sit between a name and its date.
func trimName(s string) string {
	return strings.Trim(strings.TrimSpace(s), " -:\t•")
}

// parseDateToken parses a date token lifted out of a line of prose.
func parseDateToken(tok string) *time.Time {
	tok = strings.TrimSpace(tok)
	if strings.Contains(tok, ",") {
		tok = dateCommaGap.ReplaceAllString(tok, ", ")
	}
	return normalize.ParseDate(tok)
}
