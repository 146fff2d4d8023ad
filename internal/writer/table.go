package writer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

// TableWriter prints a short summary followed by an account table.
type TableWriter struct{}

var money = message.NewPrinter(language.English)

func (w *TableWriter) Write(out io.Writer, r *models.Report) error {
	var sb strings.Builder

	pulled := "-"
	if r.PulledOn != nil {
		pulled = r.PulledOn.String()
	}
	fmt.Fprintf(&sb, "bureau: %s\n", r.Bureau)
	fmt.Fprintf(&sb, "pulled_on: %s\n", pulled)
	if counts := kindCounts(r.Accounts); counts != "" {
		fmt.Fprintf(&sb, "counts: %s\n", counts)
	}
	util := "-"
	if r.Summary.Utilization != nil {
		util = fmt.Sprintf("%.2f", *r.Summary.Utilization)
	}
	fmt.Fprintf(&sb, "utilization: %s\n", util)

	rows := [][]string{{"Creditor", "Kind", "Status", "Limit", "Balance"}}
	for _, a := range r.Accounts {
		rows = append(rows, []string{
			a.Creditor,
			string(a.Kind),
			string(a.Status),
			formatMoney(a.CreditLimit),
			formatMoney(a.Balance),
		})
	}
	writeTable(&sb, rows)

	_, err := io.WriteString(out, sb.String())
	return err
}

// kindCounts renders "installment=1, revolving=2" sorted by kind.
func kindCounts(accounts []models.Account) string {
	counts := map[models.AccountKind]int{}
	for _, a := range accounts {
		counts[a.Kind]++
	}
	kinds := make([]models.AccountKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}

func writeTable(sb *strings.Builder, rows [][]string) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for idx, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteByte('\n')
		if idx == 0 {
			dashes := make([]string, len(widths))
			for i, w := range widths {
				dashes[i] = strings.Repeat("-", w)
			}
			sb.WriteString(strings.Join(dashes, "-+-"))
			sb.WriteByte('\n')
		}
	}
}

// formatMoney renders whole dollars with thousands separators, "-" when unknown.
func formatMoney(v *float64) string {
	if v == nil {
		return "-"
	}
	return money.Sprintf("$%.0f", *v)
}
