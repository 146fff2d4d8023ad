package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

// CSVWriter writes one row per account.
type CSVWriter struct {
	IncludeHeader bool
}

var csvColumns = []string{
	"Creditor", "Account Number", "Kind", "Status", "Opened", "Closed",
	"Credit Limit", "High Balance", "Balance", "Scheduled Payment", "Past Due", "Remarks",
}

// Write writes accounts in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, r *models.Report) error {
	writer := csv.NewWriter(out)

	// Metadata as comment rows
	if w.IncludeHeader {
		meta := [][]string{
			{"# Bureau", string(r.Bureau)},
			{"# Pulled On", formatDate(r.PulledOn)},
			{"# Total Revolving Limit", formatAmount(&r.Summary.TotalRevolvingLimit)},
			{"# Total Revolving Balance", formatAmount(&r.Summary.TotalRevolvingBalance)},
			{"# Utilization", formatAmount(r.Summary.Utilization)},
		}
		for _, row := range meta {
			if row[1] == "" {
				continue
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	if err := writer.Write(csvColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, a := range r.Accounts {
		row := []string{
			a.Creditor,
			deref(a.MaskedNumber),
			string(a.Kind),
			string(a.Status),
			formatDate(a.OpenedOn),
			formatDate(a.ClosedOn),
			formatAmount(a.CreditLimit),
			formatAmount(a.HighBalance),
			formatAmount(a.Balance),
			formatAmount(a.ScheduledPayment),
			formatAmount(a.PastDue),
			strings.Join(a.Remarks, "; "),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
