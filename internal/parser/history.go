package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/insightdelivered/credit-report-parser/internal/models"
	"github.com/insightdelivered/credit-report-parser/internal/normalize"
)

const monthLabel = `(?P<month>(?:\d{4}[-/]\d{2}|\d{2}/\d{4}|[A-Za-z]{3,9}\s+\d{4}))`

var (
	tuHistoryHeader = regexp.MustCompile(`(?i)Balance\s*/\s*Past Due\s*/\s*Scheduled Payment\s*/\s*Rating`)
	tuHistoryRow    = regexp.MustCompile(`^\s*` + monthLabel +
		`\s+(?P<bal>[$\d,.]+)\s+(?P<past>[$\d,.]+)\s+(?P<sch>[$\d,.]+)\s+(?P<rating>\S+)`)
	tuHistorySlashRow = regexp.MustCompile(`^\s*` + monthLabel +
		`\s+(?P<bal>[$\d,.]+)\s*/\s*(?P<past>[$\d,.]+)\s*/\s*(?P<sch>[$\d,.]+)\s*/\s*(?P<rating>\S+)`)
	tuHistoryStop = regexp.MustCompile(`(?i)Account Information|Pay Status|Remarks|Account Type|Satisfactory Accounts|Inquiries`)

	exHistoryHeader = regexp.MustCompile(`(?im)^[ \t]*Balance Histories[ \t]*$`)
	exHistoryCols   = regexp.MustCompile(`Date\s*\|`)
	exHistoryRow    = regexp.MustCompile(`^\s*` + monthLabel +
		`\s+(?P<bal>[$\d,.]+)\s+(?P<sch>[$\d,.]+)\s+(?P<paid>\S+)`)
	exHistoryStop = regexp.MustCompile(`(?i)Account Info|Payment History|Remarks|Status|Accounts|Public Records|Hard Inquiries|Soft Inquiries`)

	eqMonthHeader = regexp.MustCompile(`\bJan\b.*\bDec\b`)
	eqMonthToken  = regexp.MustCompile(`Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`)
	eqYearRow     = regexp.MustCompile(`^\s*(20\d{2})[:\-\s]+(.+)$`)
	eqRowSplit    = regexp.MustCompile(`\s+`)
)

var calendarMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// eqNoData marks grid cells with nothing reported.
var eqNoData = map[string]bool{"--": true, "ND": true, "N/A": true, "*": true}

// transUnionHistory reads the "Balance / Past Due / Scheduled Payment /
// Rating" table. Blank lines are tolerated; a heading ends the table.
func transUnionHistory(block string) []models.PaymentHistoryRow {
	rows := []models.PaymentHistoryRow{}
	lines := splitLines(block)
	start := -1
	for i, ln := range lines {
		if tuHistoryHeader.MatchString(ln) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return rows
	}

	for _, ln := range lines[start:] {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		m := tuHistoryRow.FindStringSubmatch(ln)
		re := tuHistoryRow
		if m == nil {
			m = tuHistorySlashRow.FindStringSubmatch(ln)
			re = tuHistorySlashRow
		}
		if m == nil {
			if tuHistoryStop.MatchString(ln) {
				break
			}
			continue
		}
		month := normalize.MonthKey(group(re, m, "month"))
		if month == "" {
			continue
		}
		rows = append(rows, models.PaymentHistoryRow{
			Month:            month,
			Balance:          normalize.ParseAmount(group(re, m, "bal")),
			PastDue:          normalize.ParseAmount(group(re, m, "past")),
			ScheduledPayment: normalize.ParseAmount(group(re, m, "sch")),
			Rating:           group(re, m, "rating"),
		})
	}
	return rows
}

// experianHistory reads the "Balance Histories" table of an account card:
// "Date | Balance | Scheduled Payment | Paid" rows, piped or spaced.
func experianHistory(block string) []models.PaymentHistoryRow {
	rows := []models.PaymentHistoryRow{}
	loc := exHistoryHeader.FindStringIndex(block)
	if loc == nil {
		return rows
	}
	lines := splitLines(block[loc[1]:])
	start := 0
	for i, ln := range lines {
		if exHistoryCols.MatchString(ln) {
			start = i + 1
			break
		}
	}

	for _, ln := range lines[start:] {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		if parts := strings.Split(ln, "|"); len(parts) >= 4 {
			month := normalize.MonthKey(parts[0])
			if month == "" {
				continue
			}
			rows = append(rows, models.PaymentHistoryRow{
				Month:            month,
				Balance:          normalize.ParseAmount(parts[1]),
				ScheduledPayment: normalize.ParseAmount(parts[2]),
				Rating:           strings.TrimSpace(parts[3]),
			})
			continue
		}
		m := exHistoryRow.FindStringSubmatch(ln)
		if m == nil {
			if exHistoryStop.MatchString(ln) {
				break
			}
			continue
		}
		month := normalize.MonthKey(group(exHistoryRow, m, "month"))
		if month == "" {
			continue
		}
		rows = append(rows, models.PaymentHistoryRow{
			Month:            month,
			Balance:          normalize.ParseAmount(group(exHistoryRow, m, "bal")),
			ScheduledPayment: normalize.ParseAmount(group(exHistoryRow, m, "sch")),
			Rating:           group(exHistoryRow, m, "paid"),
		})
	}
	return rows
}

// equifaxGrid reads the yearly 24-month grid: a month header row followed
// by "2024 OK OK 30 ..." rows. Columns follow the header order, or calendar
// order when no header is found.
func equifaxGrid(block string) []models.PaymentHistoryRow {
	rows := []models.PaymentHistoryRow{}
	months := equifaxMonthOrder(block)

	for _, ln := range splitLines(block) {
		m := eqYearRow.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		rest := m[2]
		var cells []string
		if strings.Contains(rest, "|") {
			for _, c := range strings.Split(rest, "|") {
				if c = strings.TrimSpace(c); c != "" {
					cells = append(cells, c)
				}
			}
		} else {
			cells = eqRowSplit.Split(strings.TrimSpace(rest), -1)
		}

		for i, cell := range cells {
			if i >= len(months) {
				break
			}
			if cell == "" || eqNoData[strings.ToUpper(cell)] {
				continue
			}
			rows = append(rows, models.PaymentHistoryRow{
				Month:  normalize.MonthKeyOf(year, monthNumber(months[i])),
				Rating: cell,
			})
		}
	}
	return rows
}

// equifaxMonthOrder returns the month columns of the first header row that
// names at least six distinct months.
func equifaxMonthOrder(block string) []string {
	for _, ln := range splitLines(block) {
		if !eqMonthHeader.MatchString(ln) {
			continue
		}
		toks := eqMonthToken.FindAllString(ln, -1)
		if len(toks) < 6 {
			continue
		}
		var order []string
		seen := map[string]bool{}
		for _, t := range toks {
			if !seen[t] {
				seen[t] = true
				order = append(order, t)
			}
		}
		return order
	}
	return calendarMonths
}

func monthNumber(abbr string) int {
	for i, m := range calendarMonths {
		if m == abbr {
			return i + 1
		}
	}
	return 0
}

func group(re *regexp.Regexp, m []string, name string) string {
	if i := re.SubexpIndex(name); i >= 0 && i < len(m) {
		return strings.TrimSpace(m[i])
	}
	return ""
}
