package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// dateLayouts are tried in order; the first that parses the whole string wins.
var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"1/2006",
	"2006-01",
	"2006-01-02",
	"Jan 2006",
	"Jan-2006",
	"January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006",
}

var (
	monthYearAnywhere = regexp.MustCompile(`([A-Za-z]{3,9})[\s/-]+(\d{4})`)
	yearMonthAnywhere = regexp.MustCompile(`(\d{4})[-/](\d{2})`)

	monthKeyISO       = regexp.MustCompile(`^(\d{4})[-/](\d{2})`)
	monthKeySlash     = regexp.MustCompile(`^(\d{2})/(\d{4})`)
	monthKeyMonthName = regexp.MustCompile(`^([A-Za-z]{3,9})\s+(\d{4})`)
)

// ParseDate parses a report date. Day-less dates resolve to the first of the
// month and bare years to January 1st. Returns nil when nothing matches.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	if m := monthYearAnywhere.FindStringSubmatch(s); m != nil {
		if t := parseMonthYear(m[1], m[2]); t != nil {
			return t
		}
	}
	if m := yearMonthAnywhere.FindStringSubmatch(s); m != nil {
		if t, err := time.Parse("2006-01", m[1]+"-"+m[2]); err == nil {
			return &t
		}
	}
	return nil
}

func parseMonthYear(month, year string) *time.Time {
	for _, layout := range []string{"Jan 2006", "January 2006"} {
		if t, err := time.Parse(layout, month+" "+year); err == nil {
			return &t
		}
	}
	return nil
}

// MonthKey converts a history-table month label to "YYYY-MM".
// Accepts "2024-08", "2024/08", "08/2024", "Aug 2024" and "August 2024".
func MonthKey(s string) string {
	s = strings.TrimSpace(s)
	if m := monthKeyISO.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2]
	}
	if m := monthKeySlash.FindStringSubmatch(s); m != nil {
		return m[2] + "-" + m[1]
	}
	if m := monthKeyMonthName.FindStringSubmatch(s); m != nil {
		if t := parseMonthYear(m[1], m[2]); t != nil {
			return t.Format("2006-01")
		}
	}
	return ""
}

// MonthKeyOf builds "YYYY-MM" from a year and a 1-based month.
func MonthKeyOf(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
